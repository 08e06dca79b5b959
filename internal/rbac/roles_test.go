// AngelaMos | 2026
// roles_test.go

package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleLevel(t *testing.T) {
	assert.Equal(t, 6, RoleLevel(RoleSuperAdmin))
	assert.Equal(t, 5, RoleLevel(RoleOperatorAdmin))
	assert.Equal(t, 4, RoleLevel(RoleOperationsManager))
	assert.Equal(t, 3, RoleLevel(RoleSalesManager))
	assert.Equal(t, 2, RoleLevel(RoleAccountant))
	assert.Equal(t, 1, RoleLevel(RoleStaff))
	assert.Equal(t, 0, RoleLevel("made_up_role"))
}

func TestCanAssignRole(t *testing.T) {
	tests := []struct {
		name     string
		assigner string
		target   string
		want     bool
	}{
		{"super admin assigns super admin", RoleSuperAdmin, RoleSuperAdmin, true},
		{"super admin assigns staff", RoleSuperAdmin, RoleStaff, true},
		{"operator admin assigns manager", RoleOperatorAdmin, RoleOperationsManager, true},
		{"operator admin assigns staff", RoleOperatorAdmin, RoleStaff, true},
		{"operator admin assigns operator admin", RoleOperatorAdmin, RoleOperatorAdmin, false},
		{"operator admin assigns super admin", RoleOperatorAdmin, RoleSuperAdmin, false},
		{"manager assigns manager", RoleOperationsManager, RoleOperationsManager, false},
		{"manager assigns staff", RoleOperationsManager, RoleStaff, true},
		{"staff assigns staff", RoleStaff, RoleStaff, false},
		{"staff assigns anything", RoleStaff, RoleAccountant, false},
		{"unknown assigner", "made_up_role", RoleStaff, false},
		{"unknown target", RoleOperatorAdmin, "made_up_role", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAssignRole(tt.assigner, tt.target))
		})
	}
}

// Everyone except the super admin can only assign strictly below their own
// level, so no chain of assignments can ever escalate.
func TestCanAssignRoleNeverEscalates(t *testing.T) {
	for _, assigner := range AllRoles {
		if assigner == RoleSuperAdmin {
			continue
		}
		for _, target := range AllRoles {
			if CanAssignRole(assigner, target) {
				assert.Less(t, RoleLevel(target), RoleLevel(assigner),
					"%s assigned %s", assigner, target)
			}
		}
	}
}

func TestResolveScope(t *testing.T) {
	tenantID := int64(42)

	t.Run("nil identity matches nothing", func(t *testing.T) {
		scope := ResolveScope(nil)
		assert.False(t, scope.Unrestricted())
		assert.Equal(t, int64(0), scope.TenantID())
	})

	t.Run("super admin is unrestricted", func(t *testing.T) {
		scope := ResolveScope(&Identity{
			UserID: 1,
			Role:   RoleSuperAdmin,
		})
		assert.True(t, scope.Unrestricted())
	})

	t.Run("tenant user is scoped to own tenant", func(t *testing.T) {
		scope := ResolveScope(&Identity{
			UserID:   2,
			Role:     RoleOperatorAdmin,
			TenantID: &tenantID,
		})
		require.False(t, scope.Unrestricted())
		assert.Equal(t, tenantID, scope.TenantID())
	})

	t.Run("tenant role without tenant matches nothing", func(t *testing.T) {
		scope := ResolveScope(&Identity{
			UserID: 3,
			Role:   RoleStaff,
		})
		require.False(t, scope.Unrestricted())
		assert.Equal(t, int64(0), scope.TenantID())
	})
}

func TestIdentityHelpers(t *testing.T) {
	assert.True(t, (&Identity{Role: RoleSuperAdmin}).IsSuperAdmin())
	assert.False(t, (&Identity{Role: RoleOperatorAdmin}).IsSuperAdmin())

	assert.True(t, (&Identity{Role: RoleSuperAdmin}).IsAdmin())
	assert.True(t, (&Identity{Role: RoleOperatorAdmin}).IsAdmin())
	assert.False(t, (&Identity{Role: RoleOperationsManager}).IsAdmin())
}

func TestIsValidRole(t *testing.T) {
	for _, role := range AllRoles {
		assert.True(t, IsValidRole(role), role)
	}
	assert.False(t, IsValidRole(""))
	assert.False(t, IsValidRole("admin"))
}
