package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quadplus/api/internal/models"
)

func navPanels(role models.Role) []Panel {
	items := VisibleNavItems(role)
	panels := make([]Panel, 0, len(items))
	for _, item := range items {
		panels = append(panels, item.Panel)
	}
	return panels
}

func TestVisibleNavItemsPerRole(t *testing.T) {
	assert.Equal(t,
		[]Panel{PanelOverview, PanelProjects, PanelTeam, PanelDocuments, PanelCalendar, PanelMessages, PanelSettings},
		navPanels(models.RoleSuperAdmin))
	assert.Equal(t,
		[]Panel{PanelOverview, PanelProjects, PanelTeam, PanelDocuments, PanelCalendar, PanelMessages, PanelSettings},
		navPanels(models.RoleAdmin))
	assert.Equal(t,
		[]Panel{PanelOverview, PanelProjects, PanelTeam, PanelCalendar, PanelMessages},
		navPanels(models.RoleArchitect))
	assert.Equal(t,
		[]Panel{PanelOverview, PanelProjects, PanelMessages},
		navPanels(models.RoleCustomer))
	assert.Equal(t,
		[]Panel{PanelOverview, PanelProjects},
		navPanels(models.RoleStructural))
}

func TestCanAccessMatchesNav(t *testing.T) {
	allPanels := []Panel{PanelOverview, PanelProjects, PanelTeam, PanelDocuments, PanelCalendar, PanelMessages, PanelSettings}
	for _, role := range models.AllRoles {
		visible := navPanels(role)
		for _, panel := range allPanels {
			found := false
			for _, p := range visible {
				if p == panel {
					found = true
				}
			}
			assert.Equal(t, found, CanAccess(role, panel), "role %s panel %s", role, panel)
		}
	}
	assert.False(t, CanAccess(models.RoleSuperAdmin, Panel("unknown")))
}

func TestCanMutate(t *testing.T) {
	cases := []struct {
		panel Panel
		role  models.Role
		want  bool
	}{
		{PanelProjects, models.RoleStructural, true},
		{PanelProjects, models.RoleCustomer, false},
		{PanelTeam, models.RoleArchitect, true},
		{PanelTeam, models.RoleStructural, false},
		{PanelDocuments, models.RoleAdmin, true},
		{PanelDocuments, models.RoleArchitect, false},
		{PanelCalendar, models.RoleArchitect, true},
		{PanelCalendar, models.RoleCustomer, false},
		{PanelMessages, models.RoleCustomer, true},
		{PanelMessages, models.RoleStructural, false},
		{PanelSettings, models.RoleAdmin, true},
		{PanelSettings, models.RoleArchitect, false},
		{PanelOverview, models.RoleSuperAdmin, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanMutate(tc.role, tc.panel), "role %s panel %s", tc.role, tc.panel)
	}
}

func TestProjectRules(t *testing.T) {
	for _, role := range models.AllRoles {
		assert.True(t, CanCreateProject(role))
		assert.True(t, CanSelectPackage(role))
	}
	assert.False(t, CanCreateProject(models.Role("nope")))

	assert.True(t, CanAssignRoles(models.RoleSuperAdmin))
	assert.True(t, CanAssignRoles(models.RoleAdmin))
	assert.False(t, CanAssignRoles(models.RoleArchitect))

	assert.False(t, CanUploadFile(models.RoleCustomer))
	assert.True(t, CanUploadFile(models.RoleStructural))

	assert.True(t, CanApproveFile(models.RoleAdmin))
	assert.False(t, CanApproveFile(models.RoleArchitect))

	assert.True(t, CanRemoveFile(models.RoleStructural))
	assert.False(t, CanRemoveFile(models.RoleCustomer))
}

func TestCanViewFileHidesUnapprovedFromCustomers(t *testing.T) {
	unapproved := models.ProjectFile{Name: "plan.pdf"}
	approved := models.ProjectFile{Name: "plan.pdf", ApprovedForCustomer: true}

	assert.False(t, CanViewFile(models.RoleCustomer, unapproved))
	assert.True(t, CanViewFile(models.RoleCustomer, approved))
	assert.True(t, CanViewFile(models.RoleArchitect, unapproved))
}

func TestVisibleProjects(t *testing.T) {
	projects := []models.Project{
		{ID: 1, Name: "Modern Villa Design", Customer: "John Smith", AssignedRoles: []string{"Architect"}},
		{ID: 2, Name: "Commercial Office Space", Customer: "Tech Solutions Inc", AssignedRoles: []string{"Architect", "Admin"}},
		{ID: 3, Name: "Luxury Apartment Renovation", Customer: "Sarah Johnson", AssignedRoles: []string{"Customer"}},
		{ID: 4, Name: "Retail Store Design", Customer: "Fashion Outlet", AssignedRoles: []string{"Structural"}},
	}

	assert.Len(t, VisibleProjects(models.RoleSuperAdmin, "Anyone", projects), 4)

	architect := VisibleProjects(models.RoleArchitect, "Emma Stone", projects)
	require.Len(t, architect, 2)
	assert.Equal(t, 1, architect[0].ID)
	assert.Equal(t, 2, architect[1].ID)

	structural := VisibleProjects(models.RoleStructural, "Drew", projects)
	require.Len(t, structural, 1)
	assert.Equal(t, 4, structural[0].ID)

	// Customers match on their display name, not on role assignment.
	sarah := VisibleProjects(models.RoleCustomer, "Sarah Johnson", projects)
	require.Len(t, sarah, 1)
	assert.Equal(t, "Luxury Apartment Renovation", sarah[0].Name)

	assert.Empty(t, VisibleProjects(models.RoleCustomer, "Stranger", projects))
}

func TestVisibleStats(t *testing.T) {
	counts := StatCounts{Projects: 4, TeamMembers: 3, Meetings: 2}

	titles := func(role models.Role) []string {
		stats := VisibleStats(role, counts)
		out := make([]string, 0, len(stats))
		for _, s := range stats {
			out = append(out, s.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Active Projects", "Pending Approvals", "Team Members", "Upcoming Meetings"},
		titles(models.RoleSuperAdmin))
	// Admins see approvals but not the meetings tile.
	assert.Equal(t, []string{"Active Projects", "Pending Approvals", "Team Members"},
		titles(models.RoleAdmin))
	assert.Equal(t, []string{"Active Projects", "Team Members", "Upcoming Meetings"},
		titles(models.RoleArchitect))
	assert.Equal(t, []string{"Active Projects"}, titles(models.RoleCustomer))
	assert.Equal(t, []string{"Assigned Tasks"}, titles(models.RoleStructural))

	stats := VisibleStats(models.RoleSuperAdmin, counts)
	assert.Equal(t, "4", stats[0].Value)
	assert.Equal(t, "3", stats[2].Value)
	assert.Equal(t, "2", stats[3].Value)
}
