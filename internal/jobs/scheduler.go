package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"quadplus/api/internal/repository"
	"quadplus/api/internal/state"
)

// Scheduler runs the background maintenance jobs: purging expired sessions
// and re-persisting the team register snapshot.
type Scheduler struct {
	cron     *cron.Cron
	sessions *repository.SessionRepository
	store    *state.Store
	log      zerolog.Logger
}

func NewScheduler(sessions *repository.SessionRepository, store *state.Store, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		sessions: sessions,
		store:    store,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 * * * *", s.purgeExpiredSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.snapshotTeam); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits up to five seconds for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) purgeExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("purge expired sessions failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("expired sessions purged")
	}
}

// snapshotTeam re-writes the persisted team register in case a synchronous
// save was lost to a transient persistence error.
func (s *Scheduler) snapshotTeam() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.store.PersistTeamSnapshot(ctx); err != nil {
		s.log.Error().Err(err).Msg("team snapshot failed")
	}
}
