package state

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quadplus/api/internal/models"
)

// memoryPersister is an in-process TeamPersister for tests.
type memoryPersister struct {
	saved [][]models.TeamMember
}

func (m *memoryPersister) Save(_ context.Context, members []models.TeamMember) error {
	m.saved = append(m.saved, members)
	return nil
}

func (m *memoryPersister) Load(_ context.Context) ([]models.TeamMember, error) {
	if len(m.saved) == 0 {
		return nil, nil
	}
	return m.saved[len(m.saved)-1], nil
}

func newTestStore() *Store {
	return NewStore(zerolog.Nop(), nil)
}

func TestSeedState(t *testing.T) {
	s := newTestStore()

	projects := s.Projects()
	require.Len(t, projects, 4)
	assert.Equal(t, "Modern Villa Design", projects[0].Name)
	assert.Equal(t, models.ProjectStatusCompleted, projects[3].Status)

	team := s.TeamMembers()
	require.Len(t, team, 3)
	assert.Equal(t, "Alex Morgan", team[0].Name)

	assert.Empty(t, s.Notifications())
	counts := s.Counts()
	assert.Equal(t, 4, counts.Projects)
	assert.Equal(t, 3, counts.TeamMembers)
	assert.Equal(t, 0, counts.Meetings)
}

func TestCreateProjectDefaults(t *testing.T) {
	s := newTestStore()

	p, err := s.CreateProject("Lake House", "Jane Doe", "Alex", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 5, p.ID)
	assert.Equal(t, models.ProjectStatusPlanning, p.Status)
	assert.Equal(t, 0, p.Progress)
	assert.Equal(t, []string{"Architect"}, p.AssignedRoles)
	assert.Equal(t, "Alex", p.LastUpdatedBy)

	// Customer-created projects get the Customer role by default.
	p2, err := s.CreateProject("Beach Condo", "Sarah Johnson", "Sarah Johnson", models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, 6, p2.ID)
	assert.Equal(t, []string{"Customer"}, p2.AssignedRoles)

	_, err = s.CreateProject("", "Jane Doe", "Alex", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestAdjustProgressClampsAfterAddition(t *testing.T) {
	s := newTestStore()

	// Seed project 1 starts at 75.
	p, err := s.AdjustProgress(1, 10, "Alex")
	require.NoError(t, err)
	assert.Equal(t, 85, p.Progress)

	p, err = s.AdjustProgress(1, 40, "Alex")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Progress)

	p, err = s.AdjustProgress(1, -250, "Alex")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Progress)

	_, err = s.AdjustProgress(999, 5, "Alex")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestStore()

	created, err := s.CreateProject("Lake House", "Jane Doe", "Alex", models.RoleAdmin)
	require.NoError(t, err)

	updated, err := s.SetProjectStatus(created.ID, models.ProjectStatusReview, "Alex")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusReview, updated.Status)
	assert.Equal(t, "Alex", updated.LastUpdatedBy)

	notes := s.Notifications()
	require.NotEmpty(t, notes)
	assert.Equal(t, `Project "Lake House" status updated to "Review" by Alex`, notes[0])

	_, err = s.SetProjectStatus(created.ID, models.ProjectStatus("Made Up"), "Alex")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestSetProjectRolesAndPackage(t *testing.T) {
	s := newTestStore()

	p, err := s.SetProjectRoles(2, []string{"Structural"}, "Alex")
	require.NoError(t, err)
	assert.Equal(t, []string{"Structural"}, p.AssignedRoles)

	p, err = s.SetProjectPackage(2, "quad-plus", "Alex")
	require.NoError(t, err)
	assert.Equal(t, "quad-plus", p.DesignPackage)

	_, err = s.SetProjectPackage(2, "", "Alex")
	assert.ErrorIs(t, err, ErrMissingFields)

	notes := s.Notifications()
	assert.Contains(t, notes[0], `package set to "quad-plus"`)
}

func TestAddProjectFilesRequiresPackage(t *testing.T) {
	s := newTestStore()

	_, err := s.AddProjectFiles(1, []models.ProjectFile{{Name: "plan.pdf"}}, "Emma", models.RoleArchitect)
	assert.ErrorIs(t, err, ErrNoPackage)

	_, err = s.SetProjectPackage(1, "good-plus", "Emma")
	require.NoError(t, err)

	p, err := s.AddProjectFiles(1, []models.ProjectFile{{Name: "plan.pdf", ObjectKey: "projects/1/a"}}, "Emma", models.RoleArchitect)
	require.NoError(t, err)
	files := p.Files["good-plus"]
	require.Len(t, files, 1)
	assert.Equal(t, "Emma", files[0].UploadedBy)
	assert.True(t, files[0].ApprovedForCustomer)
}

func TestCustomerUploadsStartUnapproved(t *testing.T) {
	s := newTestStore()
	_, err := s.SetProjectPackage(3, "better-plus", "Sarah Johnson")
	require.NoError(t, err)

	p, err := s.AddProjectFiles(3, []models.ProjectFile{{Name: "wishes.pdf"}}, "Sarah Johnson", models.RoleCustomer)
	require.NoError(t, err)
	require.Len(t, p.Files["better-plus"], 1)
	assert.False(t, p.Files["better-plus"][0].ApprovedForCustomer)

	// Approval flips exactly the targeted file.
	p, err = s.AddProjectFiles(3, []models.ProjectFile{{Name: "more.pdf"}}, "Sarah Johnson", models.RoleCustomer)
	require.NoError(t, err)
	require.Len(t, p.Files["better-plus"], 2)

	p, err = s.ApproveProjectFile(3, 1, "Alex")
	require.NoError(t, err)
	assert.False(t, p.Files["better-plus"][0].ApprovedForCustomer)
	assert.True(t, p.Files["better-plus"][1].ApprovedForCustomer)

	_, err = s.ApproveProjectFile(3, 5, "Alex")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRemoveProjectFile(t *testing.T) {
	s := newTestStore()
	_, err := s.SetProjectPackage(1, "good-plus", "Emma")
	require.NoError(t, err)
	_, err = s.AddProjectFiles(1, []models.ProjectFile{
		{Name: "a.pdf", ObjectKey: "k/a"},
		{Name: "b.pdf", ObjectKey: "k/b"},
	}, "Emma", models.RoleArchitect)
	require.NoError(t, err)

	removed, err := s.RemoveProjectFile(1, 0, "Emma")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", removed.Name)
	assert.Equal(t, "k/a", removed.ObjectKey)

	p, err := s.ProjectByID(1)
	require.NoError(t, err)
	require.Len(t, p.Files["good-plus"], 1)
	assert.Equal(t, "b.pdf", p.Files["good-plus"][0].Name)

	_, err = s.RemoveProjectFile(1, 9, "Emma")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestSnapshotsCarryFileIndexes(t *testing.T) {
	s := newTestStore()
	_, err := s.SetProjectPackage(1, "good-plus", "Emma")
	require.NoError(t, err)
	_, err = s.AddProjectFiles(1, []models.ProjectFile{
		{Name: "a.pdf"}, {Name: "b.pdf"}, {Name: "c.pdf"},
	}, "Emma", models.RoleArchitect)
	require.NoError(t, err)

	p, err := s.ProjectByID(1)
	require.NoError(t, err)
	for i, file := range p.Files["good-plus"] {
		assert.Equal(t, i, file.Index)
	}

	// Indexes are recomputed on each snapshot, so they stay contiguous after
	// a removal.
	_, err = s.RemoveProjectFile(1, 1, "Emma")
	require.NoError(t, err)

	p, err = s.ProjectByID(1)
	require.NoError(t, err)
	names := []string{p.Files["good-plus"][0].Name, p.Files["good-plus"][1].Name}
	assert.Equal(t, []string{"a.pdf", "c.pdf"}, names)
	assert.Equal(t, 0, p.Files["good-plus"][0].Index)
	assert.Equal(t, 1, p.Files["good-plus"][1].Index)

	file, err := s.ProjectFileAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "c.pdf", file.Name)
	assert.Equal(t, 1, file.Index)
}

func TestSnapshotsAreDetached(t *testing.T) {
	s := newTestStore()

	snapshot := s.Projects()
	snapshot[0].Name = "Hacked"
	snapshot[0].AssignedRoles[0] = "Nobody"

	fresh := s.Projects()
	assert.Equal(t, "Modern Villa Design", fresh[0].Name)
	assert.Equal(t, "Architect", fresh[0].AssignedRoles[0])
}

func TestNotificationsMostRecentFirst(t *testing.T) {
	s := newTestStore()

	_, err := s.CreateProject("First", "A", "Alex", models.RoleAdmin)
	require.NoError(t, err)
	_, err = s.CreateProject("Second", "B", "Alex", models.RoleAdmin)
	require.NoError(t, err)

	notes := s.Notifications()
	require.Len(t, notes, 2)
	assert.Contains(t, notes[0], "Second")
	assert.Contains(t, notes[1], "First")
	assert.Equal(t, 2, s.NotificationCount())
}

func TestTeamRegister(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	member := s.AddTeamMember(ctx, models.TeamMember{})
	assert.NotEmpty(t, member.ID)
	assert.Equal(t, "New Member", member.Name)
	assert.Equal(t, "New Role", member.Role)
	assert.Equal(t, "/placeholder.svg", member.Avatar)

	name := "Dana Cole"
	updated, err := s.UpdateTeamMember(ctx, member.ID, TeamMemberPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Dana Cole", updated.Name)

	_, err = s.UpdateTeamMember(ctx, "missing", TeamMemberPatch{Name: &name})
	assert.ErrorIs(t, err, ErrMemberNotFound)

	require.NoError(t, s.RemoveTeamMember(ctx, member.ID))
	assert.ErrorIs(t, s.RemoveTeamMember(ctx, member.ID), ErrMemberNotFound)

	notes := s.Notifications()
	assert.Equal(t, "Dana Cole removed from the team.", notes[0])
	assert.Equal(t, "Dana Cole's details updated.", notes[1])
	assert.Equal(t, "New Member added to the team.", notes[2])
}

func TestRemoveTeamMemberByNameFirstMatch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	first := s.AddTeamMember(ctx, models.TeamMember{Name: "Jordan Lee", Role: "Architect"})
	second := s.AddTeamMember(ctx, models.TeamMember{Name: "Jordan Lee", Role: "Structural"})

	require.NoError(t, s.RemoveTeamMemberByName(ctx, "Jordan Lee"))

	var survivors []models.TeamMember
	for _, m := range s.TeamMembers() {
		if m.Name == "Jordan Lee" {
			survivors = append(survivors, m)
		}
	}
	require.Len(t, survivors, 1)
	assert.Equal(t, second.ID, survivors[0].ID)
	assert.NotEqual(t, first.ID, survivors[0].ID)

	assert.ErrorIs(t, s.RemoveTeamMemberByName(ctx, "Nobody Here"), ErrMemberNotFound)
}

func TestTeamPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	persister := &memoryPersister{}

	s := NewStore(zerolog.Nop(), persister)
	s.AddTeamMember(ctx, models.TeamMember{Name: "Dana Cole", Role: "Admin"})
	require.NotEmpty(t, persister.saved)

	restored := NewStore(zerolog.Nop(), persister)
	require.NoError(t, restored.RestoreTeam(ctx))

	team := restored.TeamMembers()
	require.Len(t, team, 4)
	assert.Equal(t, "Dana Cole", team[3].Name)
}

func TestRestoreTeamKeepsSeedWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewStore(zerolog.Nop(), &memoryPersister{})
	require.NoError(t, s.RestoreTeam(ctx))
	assert.Len(t, s.TeamMembers(), 3)
}

func TestDocumentRegister(t *testing.T) {
	s := newTestStore()

	doc, err := s.AddDocument("Blueprint.pdf", "Alex")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.ID)
	assert.Equal(t, "Alex", doc.UploadedBy)

	_, err = s.AddDocument("", "Alex")
	assert.ErrorIs(t, err, ErrMissingFields)

	renamed, err := s.RenameDocument(doc.ID, "Blueprint-v2.pdf", "Alex")
	require.NoError(t, err)
	assert.Equal(t, "Blueprint-v2.pdf", renamed.Name)

	require.NoError(t, s.DeleteDocument(doc.ID, "Alex"))
	assert.ErrorIs(t, s.DeleteDocument(doc.ID, "Alex"), ErrDocumentNotFound)
	assert.Empty(t, s.Documents())
}

func TestMeetingRegister(t *testing.T) {
	s := newTestStore()

	_, err := s.AddMeeting("", "2026-09-10", []string{"Emma Stone"})
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = s.AddMeeting("Design Review", "", []string{"Emma Stone"})
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = s.AddMeeting("Design Review", "2026-09-10", nil)
	assert.ErrorIs(t, err, ErrMissingFields)

	meeting, err := s.AddMeeting("Design Review", "2026-09-10", []string{"Emma Stone"})
	require.NoError(t, err)
	assert.NotZero(t, meeting.ID)

	title := "Design Review (moved)"
	updated, err := s.UpdateMeeting(meeting.ID, MeetingPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	require.NoError(t, s.RemoveMeeting(meeting.ID))
	assert.ErrorIs(t, s.RemoveMeeting(meeting.ID), ErrMeetingNotFound)
	assert.Equal(t, "Meeting removed.", s.Notifications()[0])
}

func TestSendMessageIgnoresEmptyInput(t *testing.T) {
	s := newTestStore()

	_, ok := s.SendMessage("Alex", "", "hello")
	assert.False(t, ok)
	_, ok = s.SendMessage("Alex", "Emma Stone", "")
	assert.False(t, ok)
	assert.Empty(t, s.Messages())
	assert.Empty(t, s.Notifications())

	msg, ok := s.SendMessage("Alex", "Emma Stone", "hello")
	require.True(t, ok)
	assert.Equal(t, "Alex", msg.From)
	assert.Equal(t, "Message sent by Alex to Emma Stone.", s.Notifications()[0])
	assert.Len(t, s.Messages(), 1)
}

func TestSettings(t *testing.T) {
	s := newTestStore()

	initial := s.Settings()
	assert.Equal(t, "John Doe", initial.ProfileName)

	updated := s.UpdateSettings(models.SettingsData{
		ProfileName:   "Alex Morgan",
		ProfileEmail:  "alex@quadplus.example",
		Password:      "********",
		Preferences:   "Compact",
		Notifications: "Mentions Only",
	})
	assert.Equal(t, "Alex Morgan", updated.ProfileName)
	assert.Equal(t, "Alex Morgan", s.Settings().ProfileName)
}
