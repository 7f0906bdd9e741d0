package mapping

import (
	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
	"github.com/fleetpulse/fleet_expense_app/internal/models"
)

// ToModelCallLog converts a domain CallLog to a model CallLog
func ToModelCallLog(d domain.CallLog) models.CallLog {
	return models.CallLog{
		CallLogID:       d.CallLogID,
		CompanyID:       d.CompanyID,
		PhoneNumber:     d.PhoneNumber,
		CallerName:      d.CallerName,
		DurationSeconds: d.DurationSeconds,
		CallType:        string(d.CallType),
		LoggedAt:        d.LoggedAt,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainCallLog converts a model CallLog to a domain CallLog
func ToDomainCallLog(m models.CallLog) domain.CallLog {
	return domain.CallLog{
		CallLogID:       m.CallLogID,
		CompanyID:       m.CompanyID,
		PhoneNumber:     m.PhoneNumber,
		CallerName:      m.CallerName,
		DurationSeconds: m.DurationSeconds,
		CallType:        domain.CallType(m.CallType),
		LoggedAt:        m.LoggedAt,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainCallLogSlice converts a slice of model call logs
func ToDomainCallLogSlice(ms []models.CallLog) []domain.CallLog {
	ds := make([]domain.CallLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCallLog(m)
	}
	return ds
}
