package domain

// CaseStatus enumerates lifecycle states for escalated cases.
type CaseStatus string

const (
	CaseStatusOpen     CaseStatus = "open"
	CaseStatusReturned CaseStatus = "returned"
)

// Valid reports whether the value belongs to the closed status set.
func (s CaseStatus) Valid() bool {
	return s == CaseStatusOpen || s == CaseStatusReturned
}

// Case is the aggregate for escalated case records. Dates are local
// calendar days carried as YYYY-MM-DD strings. DueDate is derived once at
// creation and never recomputed; the JSON keys match the persisted blob
// shape.
type Case struct {
	ID            string     `json:"id"`
	OrgNumber     string     `json:"orgNumber"`
	Department    string     `json:"department"`
	Description   string     `json:"description"`
	DateEscalated string     `json:"dateEscalated"`
	DueDate       string     `json:"dueDate"`
	Status        CaseStatus `json:"status"`
}
