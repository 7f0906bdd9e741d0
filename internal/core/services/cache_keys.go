package services

import "github.com/fleetpulse/fleet_expense_app/internal/core/domain"

const dashboardKeyPrefix = "reports:dashboard:"

// dashboardCacheKey is the cache key for a dashboard read under the given scope.
func dashboardCacheKey(filter domain.TenantFilter) string {
	if filter.All {
		return dashboardKeyPrefix + "all"
	}
	if filter.CompanyID == nil {
		return dashboardKeyPrefix + "legacy"
	}
	return dashboardKeyPrefix + *filter.CompanyID
}

// dashboardCacheKeys lists the keys a monetary write against the given company
// can stale. The unrestricted view is always affected; records with no company
// feed every scoped view, which the short TTL covers.
func dashboardCacheKeys(companyID *string) []string {
	keys := []string{dashboardKeyPrefix + "all", dashboardKeyPrefix + "legacy"}
	if companyID != nil {
		keys = append(keys, dashboardKeyPrefix+*companyID)
	}
	return keys
}
