package dto

import (
	"time"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
)

// CallLogEntry is a single call record in an ingest batch.
type CallLogEntry struct {
	PhoneNumber     string    `json:"phoneNumber" binding:"required"`
	CallerName      string    `json:"callerName"`
	DurationSeconds int       `json:"durationSeconds" binding:"min=0"`
	CallType        string    `json:"callType" binding:"required,oneof=incoming outgoing missed"`
	LoggedAt        time.Time `json:"loggedAt" binding:"required"`
}

// IngestCallLogsRequest defines a batch of call records from a device export.
type IngestCallLogsRequest struct {
	Logs []CallLogEntry `json:"logs" binding:"required,min=1,dive"`
}

// IngestCallLogsResponse reports how the batch was applied.
type IngestCallLogsResponse struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"` // Duplicates on (phoneNumber, loggedAt, duration)
}

// ListCallLogsParams defines query parameters for listing call logs.
type ListCallLogsParams struct {
	PhoneNumber string     `form:"phoneNumber"`
	CallType    string     `form:"callType" binding:"omitempty,oneof=incoming outgoing missed"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
	Limit       int        `form:"limit,default=100"`
}

// CallLogResponse defines the data returned for a call log.
type CallLogResponse struct {
	CallLogID       string    `json:"callLogID"`
	PhoneNumber     string    `json:"phoneNumber"`
	CallerName      string    `json:"callerName"`
	DurationSeconds int       `json:"durationSeconds"`
	CallType        string    `json:"callType"`
	LoggedAt        time.Time `json:"loggedAt"`
}

// ListCallLogsResponse wraps the list of call logs.
type ListCallLogsResponse struct {
	CallLogs []CallLogResponse `json:"callLogs"`
}

// ToListCallLogsResponse converts domain call logs to the response DTO
func ToListCallLogsResponse(logs []domain.CallLog) ListCallLogsResponse {
	res := make([]CallLogResponse, len(logs))
	for i, l := range logs {
		res[i] = CallLogResponse{
			CallLogID:       l.CallLogID,
			PhoneNumber:     l.PhoneNumber,
			CallerName:      l.CallerName,
			DurationSeconds: l.DurationSeconds,
			CallType:        string(l.CallType),
			LoggedAt:        l.LoggedAt,
		}
	}
	return ListCallLogsResponse{CallLogs: res}
}
