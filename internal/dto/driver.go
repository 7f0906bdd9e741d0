package dto

import (
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DriverResponse defines the data returned for a driver.
type DriverResponse struct {
	DriverID      string          `json:"driverID"`
	UserID        string          `json:"userID"`
	UserName      string          `json:"userName,omitempty"`
	Username      string          `json:"username,omitempty"`
	CompanyID     *string         `json:"companyID,omitempty"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
	Status        string          `json:"status"`
}

// UpdateDriverStatusRequest defines the data for activating or deactivating a driver.
type UpdateDriverStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// ListDriversParams defines query parameters for listing drivers.
type ListDriversParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListDriversResponse wraps the list of drivers.
type ListDriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}

// ToDriverResponse converts a domain.Driver to DriverResponse DTO
func ToDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		DriverID:      d.DriverID,
		UserID:        d.UserID,
		CompanyID:     d.CompanyID,
		WalletBalance: d.WalletBalance,
		Status:        string(d.Status),
	}
}

// ToListDriversResponse converts joined driver rows to the response DTO
func ToListDriversResponse(drivers []domain.DriverWithUser) ListDriversResponse {
	res := make([]DriverResponse, len(drivers))
	for i, d := range drivers {
		r := ToDriverResponse(&d.Driver)
		r.UserName = d.UserName
		r.Username = d.Username
		res[i] = r
	}
	return ListDriversResponse{Drivers: res}
}
