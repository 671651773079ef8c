package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoleAcceptsBothSourceFormats(t *testing.T) {
	cases := map[string]Role{
		"super-admin":     RoleSuperAdmin,
		"Super Admin":     RoleSuperAdmin,
		"superadmin":      RoleSuperAdmin,
		"admin":           RoleAdmin,
		"Admin":           RoleAdmin,
		"architect":       RoleArchitect,
		"Architect":       RoleArchitect,
		"structural":      RoleStructural,
		"Structural":      RoleStructural,
		"structural-team": RoleStructural,
		"Structural Team": RoleStructural,
		"customer":        RoleCustomer,
		"Customer":        RoleCustomer,
		"  customer  ":    RoleCustomer,
	}

	for input, want := range cases {
		got, err := ParseRole(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "manager", "root", "super admin x"} {
		_, err := ParseRole(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestRoleTitle(t *testing.T) {
	assert.Equal(t, "Super Admin", RoleSuperAdmin.Title())
	assert.Equal(t, "Admin", RoleAdmin.Title())
	assert.Equal(t, "Architect", RoleArchitect.Title())
	assert.Equal(t, "Structural", RoleStructural.Title())
	assert.Equal(t, "Customer", RoleCustomer.Title())
}

func TestRoleValid(t *testing.T) {
	for _, role := range AllRoles {
		assert.True(t, role.Valid())
	}
	assert.False(t, Role("manager").Valid())
	assert.False(t, Role("").Valid())
}
