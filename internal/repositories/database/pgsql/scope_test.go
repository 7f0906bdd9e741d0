package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func TestTenantClause(t *testing.T) {
	companyA := "company-a"

	tests := []struct {
		name       string
		filter     domain.TenantFilter
		args       []interface{}
		wantClause string
		wantArgs   []interface{}
	}{
		{
			name:       "super admin is unrestricted",
			filter:     domain.TenantFilter{All: true},
			args:       []interface{}{"x"},
			wantClause: "",
			wantArgs:   []interface{}{"x"},
		},
		{
			name:       "admin with no company sees only unassigned rows",
			filter:     domain.TenantFilter{},
			args:       nil,
			wantClause: " AND e.company_id IS NULL",
			wantArgs:   nil,
		},
		{
			name:       "scoped admin matches own company plus legacy rows",
			filter:     domain.TenantFilter{CompanyID: &companyA},
			args:       []interface{}{"x"},
			wantClause: " AND (e.company_id = $2 OR e.company_id IS NULL)",
			wantArgs:   []interface{}{"x", companyA},
		},
		{
			name:       "placeholder index follows existing args",
			filter:     domain.TenantFilter{CompanyID: &companyA},
			args:       []interface{}{"x", "y", "z"},
			wantClause: " AND (e.company_id = $4 OR e.company_id IS NULL)",
			wantArgs:   []interface{}{"x", "y", "z", companyA},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tenantClause("e.company_id", tt.filter, tt.args)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCompanyInScope(t *testing.T) {
	tests := []struct {
		name      string
		companyID *string
		filter    domain.TenantFilter
		want      bool
	}{
		{
			name:      "super admin sees any company",
			companyID: strPtr("company-b"),
			filter:    domain.TenantFilter{All: true},
			want:      true,
		},
		{
			name:      "legacy row with no company is visible to any admin",
			companyID: nil,
			filter:    domain.TenantFilter{CompanyID: strPtr("company-a")},
			want:      true,
		},
		{
			name:      "matching company is in scope",
			companyID: strPtr("company-a"),
			filter:    domain.TenantFilter{CompanyID: strPtr("company-a")},
			want:      true,
		},
		{
			name:      "other company is out of scope",
			companyID: strPtr("company-b"),
			filter:    domain.TenantFilter{CompanyID: strPtr("company-a")},
			want:      false,
		},
		{
			name:      "admin with no company cannot see tenanted rows",
			companyID: strPtr("company-a"),
			filter:    domain.TenantFilter{},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, companyInScope(tt.companyID, tt.filter))
		})
	}
}
