// Package state owns the dashboard registers (projects, team, documents,
// meetings, messages) and the notification log. The store is the single
// writer; handlers read snapshots and route every change through a named
// mutation, which validates input, rebuilds the affected register
// copy-on-write, and records exactly one notification.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"quadplus/api/internal/models"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrMemberNotFound   = errors.New("team member not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrFileNotFound     = errors.New("file not found")
	ErrNoPackage        = errors.New("no design package selected")
	ErrMissingFields    = errors.New("required fields missing")
)

// TeamPersister mirrors the one piece of state that survives a restart: the
// team register is written out synchronously after every change and read back
// once at startup.
type TeamPersister interface {
	Save(ctx context.Context, members []models.TeamMember) error
	Load(ctx context.Context) ([]models.TeamMember, error)
}

type Store struct {
	mu sync.Mutex

	projects      []models.Project
	team          []models.TeamMember
	documents     []models.DocumentItem
	meetings      []models.Meeting
	messages      []models.Message
	notifications []string
	settings      models.SettingsData

	persister TeamPersister
	log       zerolog.Logger
}

func NewStore(log zerolog.Logger, persister TeamPersister) *Store {
	return &Store{
		projects:  seedProjects(),
		team:      seedTeam(),
		settings:  seedSettings(),
		persister: persister,
		log:       log,
	}
}

// RestoreTeam replaces the seeded team register with the persisted snapshot,
// if one exists. Called once at startup.
func (s *Store) RestoreTeam(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	members, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}

	s.mu.Lock()
	s.team = members
	s.mu.Unlock()
	return nil
}

// record appends one notification at the head of the log. Callers hold s.mu.
func (s *Store) record(message string) {
	s.notifications = append([]string{message}, s.notifications...)
}

func (s *Store) Notifications() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) NotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

// Counts feeds the overview stat tiles.
type Counts struct {
	Projects    int
	TeamMembers int
	Meetings    int
}

func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts{
		Projects:    len(s.projects),
		TeamMembers: len(s.team),
		Meetings:    len(s.meetings),
	}
}

func seedProjects() []models.Project {
	return []models.Project{
		{ID: 1, Name: "Modern Villa Design", Customer: "John Smith", Status: models.ProjectStatusInProgress, Progress: 75, AssignedRoles: []string{"Architect"}},
		{ID: 2, Name: "Commercial Office Space", Customer: "Tech Solutions Inc", Status: models.ProjectStatusReview, Progress: 90, AssignedRoles: []string{"Architect", "Admin"}},
		{ID: 3, Name: "Luxury Apartment Renovation", Customer: "Sarah Johnson", Status: models.ProjectStatusPlanning, Progress: 30, AssignedRoles: []string{"Customer"}},
		{ID: 4, Name: "Retail Store Design", Customer: "Fashion Outlet", Status: models.ProjectStatusCompleted, Progress: 100, AssignedRoles: []string{"Structural"}},
	}
}

func seedTeam() []models.TeamMember {
	return []models.TeamMember{
		{ID: "seed-alex-morgan", Name: "Alex Morgan", Role: "Admin", Avatar: "/placeholder.svg"},
		{ID: "seed-sarah-johnson", Name: "Sarah Johnson", Role: "Customer", Avatar: "/placeholder.svg"},
		{ID: "seed-emma-stone", Name: "Emma Stone", Role: "Architect", Avatar: "/placeholder.svg"},
	}
}

func seedSettings() models.SettingsData {
	return models.SettingsData{
		ProfileName:   "John Doe",
		ProfileEmail:  "john@example.com",
		Password:      "********",
		Preferences:   "Default Preferences",
		Notifications: "All Notifications",
	}
}
