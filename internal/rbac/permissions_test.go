// AngelaMos | 2026
// permissions_test.go

package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		module string
		action string
		want   bool
	}{
		{"super admin full access", RoleSuperAdmin, ModuleSettings, ActionDelete, true},
		{"operator admin full access", RoleOperatorAdmin, ModuleUsers, ActionCreate, true},
		{"ops manager edits bookings", RoleOperationsManager, ModuleBookings, ActionEdit, true},
		{"ops manager cannot edit payments", RoleOperationsManager, ModulePayments, ActionEdit, false},
		{"ops manager has no users module", RoleOperationsManager, ModuleUsers, ActionView, false},
		{"sales manager deletes clients", RoleSalesManager, ModuleClients, ActionDelete, true},
		{"sales manager cannot delete bookings", RoleSalesManager, ModuleBookings, ActionDelete, false},
		{"accountant edits payments", RoleAccountant, ModulePayments, ActionEdit, true},
		{"accountant views reports", RoleAccountant, ModuleReports, ActionView, true},
		{"accountant has no operations module", RoleAccountant, ModuleOperations, ActionView, false},
		{"staff views bookings", RoleStaff, ModuleBookings, ActionView, true},
		{"staff cannot create bookings", RoleStaff, ModuleBookings, ActionCreate, false},
		{"staff has no reports module", RoleStaff, ModuleReports, ActionView, false},
		{"unknown role has nothing", "made_up_role", ModuleDashboard, ActionView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want,
				HasPermission(tt.role, tt.module, tt.action))
		})
	}
}

func TestAccessibleModules(t *testing.T) {
	adminModules := AccessibleModules(RoleOperatorAdmin)
	assert.Len(t, adminModules, 9)

	staffModules := AccessibleModules(RoleStaff)
	assert.ElementsMatch(t, []string{
		ModuleDashboard, ModuleBookings, ModuleServices, ModuleClients,
	}, staffModules)

	assert.Empty(t, AccessibleModules("made_up_role"))
}

func TestRolePermissionsCoversEveryRole(t *testing.T) {
	for _, role := range AllRoles {
		perms := RolePermissions(role)
		require.NotEmpty(t, perms, role)

		// Any granted action must imply view on the same module, otherwise
		// a client could mutate data it cannot read.
		for module, actions := range perms {
			if len(actions) > 0 {
				assert.True(t, HasPermission(role, module, ActionView),
					"%s has actions in %s but no view", role, module)
			}
		}
	}
}
