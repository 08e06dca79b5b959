// AngelaMos | 2026
// roles.go

package rbac

const (
	RoleSuperAdmin        = "super_admin"
	RoleOperatorAdmin     = "operator_admin"
	RoleOperationsManager = "operations_manager"
	RoleSalesManager      = "sales_manager"
	RoleAccountant        = "accountant"
	RoleStaff             = "staff"
)

// roleLevels orders roles by privilege. Built once at process start and
// never mutated.
var roleLevels = map[string]int{
	RoleSuperAdmin:        6,
	RoleOperatorAdmin:     5,
	RoleOperationsManager: 4,
	RoleSalesManager:      3,
	RoleAccountant:        2,
	RoleStaff:             1,
}

var AllRoles = []string{
	RoleSuperAdmin,
	RoleOperatorAdmin,
	RoleOperationsManager,
	RoleSalesManager,
	RoleAccountant,
	RoleStaff,
}

func IsValidRole(role string) bool {
	_, ok := roleLevels[role]
	return ok
}

func RoleLevel(role string) int {
	return roleLevels[role]
}

// CanAssignRole reports whether assigner may grant target. Super admins may
// grant any role; everyone else only roles strictly below their own level.
func CanAssignRole(assigner, target string) bool {
	if !IsValidRole(assigner) || !IsValidRole(target) {
		return false
	}
	if assigner == RoleSuperAdmin {
		return true
	}
	return roleLevels[assigner] > roleLevels[target]
}

// Identity is the verified principal derived from a session token.
// TenantID is nil only for super admins and never changes for the lifetime
// of a token.
type Identity struct {
	UserID   int64
	Email    string
	Role     string
	TenantID *int64
}

func (i *Identity) IsSuperAdmin() bool {
	return i.Role == RoleSuperAdmin
}

func (i *Identity) IsAdmin() bool {
	return i.Role == RoleSuperAdmin || i.Role == RoleOperatorAdmin
}

// Scope is the tenant filter derived from an identity: either unrestricted
// (no filter) or pinned to one tenant.
type Scope struct {
	tenantID     int64
	unrestricted bool
}

func UnrestrictedScope() Scope {
	return Scope{unrestricted: true}
}

func TenantScope(tenantID int64) Scope {
	return Scope{tenantID: tenantID}
}

func (s Scope) Unrestricted() bool {
	return s.unrestricted
}

func (s Scope) TenantID() int64 {
	return s.tenantID
}

// ResolveScope maps an identity to its tenant scope. It must be called per
// request, never cached: the identity itself is per-request state.
func ResolveScope(identity *Identity) Scope {
	if identity == nil {
		return TenantScope(0)
	}
	if identity.Role == RoleSuperAdmin {
		return UnrestrictedScope()
	}
	if identity.TenantID == nil {
		// Tenant-scoped role without a tenant: filter matches nothing
		// rather than everything.
		return TenantScope(0)
	}
	return TenantScope(*identity.TenantID)
}
