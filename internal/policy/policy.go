// Package policy is the single authority for role-based visibility and
// mutation rights across the dashboard. Every decision dispatches on the
// models.Role enum; no caller compares role strings directly.
package policy

import (
	"slices"

	"quadplus/api/internal/models"
)

// Panel identifies one dashboard section.
type Panel string

const (
	PanelOverview  Panel = "overview"
	PanelProjects  Panel = "projects"
	PanelTeam      Panel = "team"
	PanelDocuments Panel = "documents"
	PanelCalendar  Panel = "calendar"
	PanelMessages  Panel = "messages"
	PanelSettings  Panel = "settings"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Panel Panel  `json:"panel"`
	Label string `json:"label"`
}

var navItems = []struct {
	item  NavItem
	roles []models.Role
}{
	{NavItem{PanelOverview, "Overview"}, []models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect, models.RoleCustomer, models.RoleStructural}},
	{NavItem{PanelProjects, "Projects"}, []models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect, models.RoleCustomer, models.RoleStructural}},
	{NavItem{PanelTeam, "Team"}, []models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect}},
	{NavItem{PanelDocuments, "Documents"}, []models.Role{models.RoleSuperAdmin, models.RoleAdmin}},
	{NavItem{PanelCalendar, "Calendar"}, []models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect}},
	{NavItem{PanelMessages, "Messages"}, []models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect, models.RoleCustomer}},
	{NavItem{PanelSettings, "Settings"}, []models.Role{models.RoleSuperAdmin, models.RoleAdmin}},
}

// VisibleNavItems returns the sidebar entries the role may open, in display
// order.
func VisibleNavItems(role models.Role) []NavItem {
	items := make([]NavItem, 0, len(navItems))
	for _, entry := range navItems {
		if slices.Contains(entry.roles, role) {
			items = append(items, entry.item)
		}
	}
	return items
}

// CanAccess reports whether the role may open the panel at all.
func CanAccess(role models.Role, panel Panel) bool {
	for _, entry := range navItems {
		if entry.item.Panel == panel {
			return slices.Contains(entry.roles, role)
		}
	}
	return false
}

var mutateRoles = map[Panel][]models.Role{
	PanelOverview:  nil,
	PanelProjects:  {models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect, models.RoleStructural},
	PanelTeam:      {models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect},
	PanelDocuments: {models.RoleSuperAdmin, models.RoleAdmin},
	PanelCalendar:  {models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect},
	PanelMessages:  {models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect, models.RoleCustomer},
	// Settings visibility and mutation use the same two roles; the looser
	// three-role edit check that existed alongside was dropped in favor of
	// the stricter set.
	PanelSettings: {models.RoleSuperAdmin, models.RoleAdmin},
}

// CanMutate reports whether the role may change the panel's register.
// Customers are excluded from the projects panel here even though they may
// still create a project for themselves; see CanCreateProject.
func CanMutate(role models.Role, panel Panel) bool {
	return slices.Contains(mutateRoles[panel], role)
}

// CanCreateProject covers the one projects-panel mutation open to every role:
// customers may create a project for themselves and pick a package, but may
// not touch status, progress, or role assignments.
func CanCreateProject(role models.Role) bool {
	return role.Valid()
}

func CanSelectPackage(role models.Role) bool {
	return role.Valid()
}

// CanAssignRoles is stricter than the general projects mutate rule: only the
// two admin roles may reassign a project's roles.
func CanAssignRoles(role models.Role) bool {
	return role == models.RoleSuperAdmin || role == models.RoleAdmin
}

func CanUploadFile(role models.Role) bool {
	return role.Valid() && role != models.RoleCustomer
}

func CanApproveFile(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleSuperAdmin
}

func CanRemoveFile(role models.Role) bool {
	switch role {
	case models.RoleArchitect, models.RoleAdmin, models.RoleSuperAdmin, models.RoleStructural:
		return true
	}
	return false
}

// CanViewFile hides unapproved files from customers.
func CanViewFile(role models.Role, file models.ProjectFile) bool {
	if role != models.RoleCustomer {
		return true
	}
	return file.ApprovedForCustomer
}

// VisibleProjects filters a project snapshot for one session. Super Admin
// sees everything; customers see projects whose customer name equals their
// own display name; everyone else sees projects whose assigned roles contain
// their title-cased role.
func VisibleProjects(role models.Role, displayName string, projects []models.Project) []models.Project {
	if role == models.RoleSuperAdmin {
		return projects
	}

	visible := make([]models.Project, 0, len(projects))
	for _, project := range projects {
		if role == models.RoleCustomer {
			if project.Customer == displayName {
				visible = append(visible, project)
			}
			continue
		}
		if slices.Contains(project.AssignedRoles, role.Title()) {
			visible = append(visible, project)
		}
	}
	return visible
}
