package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of dashboard roles. The canonical wire form is
// hyphenated lowercase; Title() renders the display form used in
// notifications and project role assignments.
type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleAdmin      Role = "admin"
	RoleArchitect  Role = "architect"
	RoleStructural Role = "structural"
	RoleCustomer   Role = "customer"
)

// AllRoles is ordered the way the role pickers list them.
var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleArchitect, RoleStructural, RoleCustomer}

var roleTitles = map[Role]string{
	RoleSuperAdmin: "Super Admin",
	RoleAdmin:      "Admin",
	RoleArchitect:  "Architect",
	RoleStructural: "Structural",
	RoleCustomer:   "Customer",
}

// ParseRole normalizes either source format ("Super Admin", "super-admin")
// into the canonical role, including the "structural-team" alias.
func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "-")

	switch normalized {
	case "super-admin", "superadmin":
		return RoleSuperAdmin, nil
	case "admin":
		return RoleAdmin, nil
	case "architect":
		return RoleArchitect, nil
	case "structural", "structural-team":
		return RoleStructural, nil
	case "customer":
		return RoleCustomer, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Title returns the space-separated title-cased display form.
func (r Role) Title() string {
	if title, ok := roleTitles[r]; ok {
		return title
	}
	return string(r)
}

func (r Role) Valid() bool {
	_, ok := roleTitles[r]
	return ok
}
