package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetpulse/fleet_expense_app/internal/apperrors"
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	portsrepo "github.com/fleetpulse/fleet_expense_app/internal/core/ports/repositories"
	portssvc "github.com/fleetpulse/fleet_expense_app/internal/core/ports/services"
	"github.com/fleetpulse/fleet_expense_app/internal/dto"
	"github.com/fleetpulse/fleet_expense_app/internal/middleware"
	"github.com/fleetpulse/fleet_expense_app/internal/utils"
)

// userService provides user management and authentication operations.
type userService struct {
	userRepo   portsrepo.UserRepositoryFacade
	driverRepo portsrepo.DriverRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, driverRepo portsrepo.DriverRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:   userRepo,
		driverRepo: driverRepo,
	}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser creates a new user. Driver-role users get a driver profile with a
// zero wallet balance provisioned in the same transaction. A scoped admin can
// only create users in their own company.
func (s *userService) CreateUser(ctx context.Context, principal domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	if domain.Role(req.Role) == domain.RoleSuperAdmin && principal.Role != domain.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: only super admins create super admins", apperrors.ErrForbidden)
	}

	companyID := req.CompanyID
	if principal.Role != domain.RoleSuperAdmin {
		companyID = principal.CompanyID
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hashed,
		Role:         domain.Role(req.Role),
		CompanyID:    companyID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
			Version:       1,
		},
	}

	var driver *domain.Driver
	if user.Role == domain.RoleDriver {
		driver = &domain.Driver{
			DriverID:      uuid.NewString(),
			UserID:        user.UserID,
			CompanyID:     companyID,
			WalletBalance: decimal.Zero,
			Status:        domain.DriverActive,
			AuditFields:   user.AuditFields,
		}
	}

	if err := s.userRepo.SaveUser(ctx, user, driver); err != nil {
		logger.Error("failed to create user", "error", err, "username", req.Username)
		return nil, err
	}

	logger.Info("user created", "user_id", user.UserID, "role", string(user.Role))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// ListUsers retrieves a tenant-scoped paginated list of users.
func (s *userService) ListUsers(ctx context.Context, principal domain.Principal, params dto.ListUsersParams) ([]domain.User, error) {
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return s.userRepo.FindUsers(ctx, principal.TenantFilter(), params.Limit, params.Offset)
}

// UpdateUser updates an existing user. A role change to driver provisions a
// driver profile; a change away from driver removes it.
func (s *userService) UpdateUser(ctx context.Context, principal domain.Principal, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !s.userInScope(user, principal) {
		return nil, apperrors.ErrNotFound
	}

	previousRole := user.Role
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if domain.Role(*req.Role) == domain.RoleSuperAdmin && principal.Role != domain.RoleSuperAdmin {
			return nil, fmt.Errorf("%w: only super admins grant super admin", apperrors.ErrForbidden)
		}
		user.Role = domain.Role(*req.Role)
	}

	now := time.Now().UTC()
	user.LastUpdatedAt = now
	user.LastUpdatedBy = principal.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("failed to update user", "error", err, "user_id", userID)
		return nil, err
	}
	user.Version++

	if user.Role != previousRole {
		if err := s.reconcileDriverProfile(ctx, principal, user, previousRole, now); err != nil {
			return nil, err
		}
	}

	logger.Info("user updated", "user_id", userID)
	return user, nil
}

// reconcileDriverProfile keeps the driver profile in step with role changes.
func (s *userService) reconcileDriverProfile(ctx context.Context, principal domain.Principal, user *domain.User, previousRole domain.Role, now time.Time) error {
	if user.Role == domain.RoleDriver {
		_, err := s.driverRepo.FindDriverByUserID(ctx, user.UserID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return s.driverRepo.SaveDriver(ctx, domain.Driver{
			DriverID:      uuid.NewString(),
			UserID:        user.UserID,
			CompanyID:     user.CompanyID,
			WalletBalance: decimal.Zero,
			Status:        domain.DriverActive,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     principal.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: principal.UserID,
				Version:       1,
			},
		})
	}
	if previousRole == domain.RoleDriver {
		return s.driverRepo.DeleteDriverByUserID(ctx, user.UserID)
	}
	return nil
}

// DeleteUser soft-deletes a user and removes the driver profile. Expense and
// wallet history is retained.
func (s *userService) DeleteUser(ctx context.Context, principal domain.Principal, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsAdmin() {
		return fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	if userID == principal.UserID {
		return fmt.Errorf("%w: cannot delete own account", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.userInScope(user, principal) {
		return apperrors.ErrNotFound
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now().UTC(), principal.UserID); err != nil {
		logger.Error("failed to delete user", "error", err, "user_id", userID)
		return err
	}

	logger.Info("user deleted", "user_id", userID, "deleted_by", principal.UserID)
	return nil
}

// AuthenticateUser verifies username/password credentials.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) userInScope(user *domain.User, principal domain.Principal) bool {
	filter := principal.TenantFilter()
	if filter.All {
		return true
	}
	if user.CompanyID == nil {
		return true
	}
	return filter.CompanyID != nil && *user.CompanyID == *filter.CompanyID
}
