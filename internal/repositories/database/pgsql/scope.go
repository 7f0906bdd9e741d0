package pgsql

import (
	"strconv"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
)

// tenantClause builds the company scope predicate for a query. It returns an
// empty string for unrestricted filters. Scoped filters match the company plus
// rows with no company assigned, which stay visible to every admin.
func tenantClause(col string, filter domain.TenantFilter, args []interface{}) (string, []interface{}) {
	if filter.All {
		return "", args
	}
	if filter.CompanyID == nil {
		return " AND " + col + " IS NULL", args
	}
	args = append(args, *filter.CompanyID)
	return " AND (" + col + " = $" + strconv.Itoa(len(args)) + " OR " + col + " IS NULL)", args
}

// companyInScope checks a loaded row against the filter. Rows with no company
// are in scope for any admin.
func companyInScope(companyID *string, filter domain.TenantFilter) bool {
	if filter.All {
		return true
	}
	if companyID == nil {
		return true
	}
	if filter.CompanyID == nil {
		return false
	}
	return *companyID == *filter.CompanyID
}
