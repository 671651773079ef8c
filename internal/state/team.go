package state

import (
	"context"
	"fmt"

	"quadplus/api/internal/ids"
	"quadplus/api/internal/models"
)

// TeamMembers returns a snapshot of the team register.
func (s *Store) TeamMembers() []models.TeamMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TeamMember(nil), s.team...)
}

// persistTeam writes the register out synchronously after a change. Callers
// hold s.mu. A failed write keeps the in-memory register authoritative.
func (s *Store) persistTeam(ctx context.Context) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, append([]models.TeamMember(nil), s.team...)); err != nil {
		s.log.Warn().Err(err).Msg("persist team register failed")
	}
}

// PersistTeamSnapshot writes the current register out regardless of whether
// anything changed; the scheduler uses it as a reconcile pass.
func (s *Store) PersistTeamSnapshot(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	s.mu.Lock()
	members := append([]models.TeamMember(nil), s.team...)
	s.mu.Unlock()
	return s.persister.Save(ctx, members)
}

// AddTeamMember appends a member, assigning a stable id at creation time so
// rename and duplicate-name cases stay addressable. Empty fields get the
// source's default row values.
func (s *Store) AddTeamMember(ctx context.Context, member models.TeamMember) models.TeamMember {
	if member.ID == "" {
		member.ID = ids.New()
	}
	if member.Name == "" {
		member.Name = "New Member"
	}
	if member.Role == "" {
		member.Role = "New Role"
	}
	if member.Avatar == "" {
		member.Avatar = "/placeholder.svg"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.team = append(append([]models.TeamMember(nil), s.team...), member)
	s.record(fmt.Sprintf("%s added to the team.", member.Name))
	s.persistTeam(ctx)
	return member
}

// TeamMemberPatch carries the fields an update may change.
type TeamMemberPatch struct {
	Name   *string
	Role   *string
	Avatar *string
}

func (s *Store) UpdateTeamMember(ctx context.Context, id string, patch TeamMemberPatch) (models.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.TeamMember(nil), s.team...)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		if patch.Name != nil {
			next[i].Name = *patch.Name
		}
		if patch.Role != nil {
			next[i].Role = *patch.Role
		}
		if patch.Avatar != nil {
			next[i].Avatar = *patch.Avatar
		}
		s.team = next
		s.record(fmt.Sprintf("%s's details updated.", next[i].Name))
		s.persistTeam(ctx)
		return next[i], nil
	}
	return models.TeamMember{}, ErrMemberNotFound
}

func (s *Store) RemoveTeamMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.TeamMember, 0, len(s.team))
	var removed *models.TeamMember
	for _, member := range s.team {
		if removed == nil && member.ID == id {
			m := member
			removed = &m
			continue
		}
		next = append(next, member)
	}
	if removed == nil {
		return ErrMemberNotFound
	}

	s.team = next
	s.record(fmt.Sprintf("%s removed from the team.", removed.Name))
	s.persistTeam(ctx)
	return nil
}

// RemoveTeamMemberByName removes the first member with the given name. With
// duplicate names only the first match is removed; that is the defined
// behavior for callers that hold a name instead of an id.
func (s *Store) RemoveTeamMemberByName(ctx context.Context, name string) error {
	s.mu.Lock()
	id := ""
	for _, member := range s.team {
		if member.Name == name {
			id = member.ID
			break
		}
	}
	s.mu.Unlock()

	if id == "" {
		return ErrMemberNotFound
	}
	return s.RemoveTeamMember(ctx, id)
}
