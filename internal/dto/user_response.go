package dto

import "github.com/fleetpulse/fleet_expense_app/internal/core/domain"

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string  `json:"userID"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	CompanyID *string `json:"companyID,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Name:      user.Name,
		Role:      string(user.Role),
		CompanyID: user.CompanyID,
	}
}
