package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissionTable(t *testing.T) {
	assert.True(t, RolePermissions[RoleManager].Allows("discounts", "delete"))
	assert.True(t, RolePermissions[RoleWaiter].Allows("orders", "create"))
	assert.False(t, RolePermissions[RoleWaiter].Allows("orders", "delete"))
	assert.True(t, RolePermissions[RoleKitchen].Allows("orders", "update"))
	assert.False(t, RolePermissions[RoleKitchen].Allows("orders", "create"))
	assert.True(t, RolePermissions[RoleCashier].Allows("analytics", "view"))
	assert.False(t, RolePermissions[RoleCashier].Allows("staff", "view"))
}

func TestPermissionMapAllowsUnknownResource(t *testing.T) {
	perms := RolePermissions[RoleWaiter]

	assert.False(t, perms.Allows("settings", "update"))
	assert.False(t, perms.Allows("menu", "nonsense"))
}

// A staff row's permission snapshot must not alias the shared role template.
func TestPermissionsForRoleReturnsIndependentCopy(t *testing.T) {
	snapshot := PermissionsForRole(RoleWaiter)
	snapshot["orders"]["delete"] = true
	snapshot["analytics"] = map[string]bool{"view": true}

	assert.False(t, RolePermissions[RoleWaiter].Allows("orders", "delete"))
	assert.False(t, RolePermissions[RoleWaiter].Allows("analytics", "view"))
}

func TestPermissionsForRoleUnknownRoleIsEmpty(t *testing.T) {
	snapshot := PermissionsForRole("sommelier")

	assert.Empty(t, snapshot)
	assert.False(t, snapshot.Allows("orders", "view"))
}

func TestIsValidStaffRole(t *testing.T) {
	assert.True(t, IsValidStaffRole(RoleManager))
	assert.True(t, IsValidStaffRole(RoleKitchen))
	assert.False(t, IsValidStaffRole("owner"))
}
