package domain

// Role defines the authorization level of a principal.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleDriver     Role = "driver"
)

// Principal is the acting identity resolved by the auth layer and passed
// explicitly into every core operation. CompanyID is nil for super admins
// and for legacy users created before tenancy existed.
type Principal struct {
	UserID    string  `json:"userID"`
	Role      Role    `json:"role"`
	CompanyID *string `json:"companyID,omitempty"`
}

// IsAdmin reports whether the principal may perform administrative operations.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperAdmin
}

// TenantFilter restricts a query to the principal's company scope.
// All=true means no restriction (super admin). When scoped, a non-nil
// CompanyID matches that company plus records with no company assigned,
// the legacy carve-out for records created before tenancy existed.
type TenantFilter struct {
	CompanyID *string
	All       bool
}

// TenantFilter returns the company scope for this principal.
func (p Principal) TenantFilter() TenantFilter {
	if p.Role == RoleSuperAdmin {
		return TenantFilter{All: true}
	}
	return TenantFilter{CompanyID: p.CompanyID}
}
