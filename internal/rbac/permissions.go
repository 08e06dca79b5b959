// AngelaMos | 2026
// permissions.go

package rbac

const (
	ModuleDashboard  = "dashboard"
	ModuleBookings   = "bookings"
	ModuleServices   = "services"
	ModuleClients    = "clients"
	ModulePayments   = "payments"
	ModuleReports    = "reports"
	ModuleOperations = "operations"
	ModuleUsers      = "users"
	ModuleSettings   = "settings"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionExport = "export"
)

var allActions = []string{
	ActionView,
	ActionCreate,
	ActionEdit,
	ActionDelete,
	ActionExport,
}

// permissionMatrix maps role -> module -> allowed actions. A missing module
// means no access at all. Constructed once at init and treated as immutable.
var permissionMatrix = map[string]map[string][]string{
	RoleSuperAdmin:    fullAccess(),
	RoleOperatorAdmin: fullAccess(),
	RoleOperationsManager: {
		ModuleDashboard:  {ActionView, ActionCreate, ActionExport},
		ModuleBookings:   allActions,
		ModuleServices:   allActions,
		ModuleClients:    {ActionView},
		ModulePayments:   {ActionView},
		ModuleReports:    {ActionView, ActionExport},
		ModuleOperations: allActions,
	},
	RoleSalesManager: {
		ModuleDashboard:  {ActionView, ActionCreate, ActionExport},
		ModuleBookings:   {ActionView, ActionCreate, ActionEdit, ActionExport},
		ModuleServices:   {ActionView},
		ModuleClients:    allActions,
		ModulePayments:   {ActionView},
		ModuleReports:    {ActionView, ActionExport},
		ModuleOperations: {ActionView},
	},
	RoleAccountant: {
		ModuleDashboard: {ActionView, ActionCreate, ActionExport},
		ModuleBookings:  {ActionView},
		ModuleServices:  {ActionView},
		ModuleClients:   {ActionView},
		ModulePayments:  allActions,
		ModuleReports:   {ActionView, ActionExport},
	},
	RoleStaff: {
		ModuleDashboard: {ActionView},
		ModuleBookings:  {ActionView},
		ModuleServices:  {ActionView},
		ModuleClients:   {ActionView},
	},
}

func fullAccess() map[string][]string {
	modules := []string{
		ModuleDashboard,
		ModuleBookings,
		ModuleServices,
		ModuleClients,
		ModulePayments,
		ModuleReports,
		ModuleOperations,
		ModuleUsers,
		ModuleSettings,
	}

	access := make(map[string][]string, len(modules))
	for _, m := range modules {
		access[m] = allActions
	}
	return access
}

func HasPermission(role, module, action string) bool {
	modules, ok := permissionMatrix[role]
	if !ok {
		return false
	}

	actions, ok := modules[module]
	if !ok {
		return false
	}

	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// RolePermissions returns the full module->actions map for a role. Callers
// must not mutate the result.
func RolePermissions(role string) map[string][]string {
	return permissionMatrix[role]
}

func AccessibleModules(role string) []string {
	modules, ok := permissionMatrix[role]
	if !ok {
		return nil
	}

	accessible := make([]string, 0, len(modules))
	for m, actions := range modules {
		if len(actions) > 0 {
			accessible = append(accessible, m)
		}
	}
	return accessible
}
