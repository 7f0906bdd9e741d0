package dto

import (
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a new user.
// Users created with the driver role get a driver profile provisioned
// automatically with a zero wallet balance.
type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required,min=8"`
	Name      string  `json:"name" binding:"required"`
	Role      string  `json:"role" binding:"required,oneof=super_admin admin driver"`
	CompanyID *string `json:"companyID"` // Optional, use pointer for nullability
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role" binding:"omitempty,oneof=super_admin admin driver"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
