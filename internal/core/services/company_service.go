package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/fleetpulse/fleet_expense_app/internal/middleware"
)

// companyService provides tenant company management.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

// Ensure companyService implements the portssvc.CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany registers a new tenant company.
func (s *companyService) CreateCompany(ctx context.Context, principal domain.Principal, req dto.CreateCompanyRequest) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if principal.Role != domain.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: super admin role required", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
			Version:       1,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("failed to create company", "error", err, "name", req.Name)
		return nil, err
	}

	logger.Info("company created", "company_id", company.CompanyID, "name", company.Name)
	return &company, nil
}

// GetCompanyByID retrieves a company.
func (s *companyService) GetCompanyByID(ctx context.Context, principal domain.Principal, companyID string) (*domain.Company, error) {
	if principal.Role != domain.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: super admin role required", apperrors.ErrForbidden)
	}
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

// ListCompanies retrieves all companies.
func (s *companyService) ListCompanies(ctx context.Context, principal domain.Principal) ([]domain.Company, error) {
	if principal.Role != domain.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: super admin role required", apperrors.ErrForbidden)
	}
	return s.companyRepo.ListCompanies(ctx)
}
