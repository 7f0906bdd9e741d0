package domain

// Company is the tenant boundary. Most records carry a company reference used
// to isolate data between customers.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (e.g., UUID)
	Name      string `json:"name"`
	AuditFields
}
