package services

import (
	"context"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
)

// CompanySvcFacade defines operations for managing tenant companies.
// All operations are restricted to super admins.
type CompanySvcFacade interface {
	// CreateCompany registers a new tenant company.
	CreateCompany(ctx context.Context, principal domain.Principal, req dto.CreateCompanyRequest) (*domain.Company, error)

	// GetCompanyByID retrieves a company.
	GetCompanyByID(ctx context.Context, principal domain.Principal, companyID string) (*domain.Company, error)

	// ListCompanies retrieves all companies.
	ListCompanies(ctx context.Context, principal domain.Principal) ([]domain.Company, error)
}
