package domain

import "time"

// CallType classifies a call log entry.
type CallType string

const (
	CallIncoming CallType = "incoming"
	CallOutgoing CallType = "outgoing"
	CallMissed   CallType = "missed"
)

// CallLog is a single phone call record ingested from a device export.
// Uniqueness is enforced on (phone number, logged at, duration) so repeated
// ingests of the same export are idempotent.
type CallLog struct {
	CallLogID       string    `json:"callLogID"` // Primary Key (e.g., UUID)
	CompanyID       *string   `json:"companyID,omitempty"`
	PhoneNumber     string    `json:"phoneNumber"`
	CallerName      string    `json:"callerName"`
	DurationSeconds int       `json:"durationSeconds"`
	CallType        CallType  `json:"callType"`
	LoggedAt        time.Time `json:"loggedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CallLogFilter narrows a call log listing. Limit is capped by the service.
type CallLogFilter struct {
	PhoneNumber string
	CallType    CallType
	From        *time.Time
	To          *time.Time
	Limit       int
}
