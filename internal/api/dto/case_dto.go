package dto

import (
	"github.com/spec-kit/escalation-service/internal/domain"
	"github.com/spec-kit/escalation-service/internal/sla"
)

// CreateCaseRequest payload.
type CreateCaseRequest struct {
	OrgNumber     string `json:"org_number"`
	Department    string `json:"department"`
	DateEscalated string `json:"date_escalated"`
	Description   string `json:"description"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CaseResponse response.
type CaseResponse struct {
	ID            string            `json:"id"`
	OrgNumber     string            `json:"org_number"`
	Department    string            `json:"department"`
	Description   string            `json:"description"`
	DateEscalated string            `json:"date_escalated"`
	DueDate       string            `json:"due_date"`
	Status        domain.CaseStatus `json:"status"`
}

// CaseListItem is a case row in the list view with its computed aging.
// Bucket is only present while the case is open; returned cases keep the
// day count without severity.
type CaseListItem struct {
	CaseResponse
	Days       int        `json:"days"`
	Bucket     sla.Bucket `json:"bucket,omitempty"`
	AgingLabel string     `json:"aging_label"`
	Highlight  bool       `json:"highlight"`
}

// MeResponse carries the caller's display identity.
type MeResponse struct {
	DisplayName   string `json:"display_name"`
	Authenticated bool   `json:"authenticated"`
}
