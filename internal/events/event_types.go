package events

import (
	"time"

	"github.com/spec-kit/escalation-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCaseCreated       EventType = "case_created"
	EventCaseStatusChanged EventType = "case_status_changed"
	EventCaseDeleted       EventType = "case_deleted"
)

// Event represents a domain event emitted by the case service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CaseID    string      `json:"case_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CaseCreatedPayload payload.
type CaseCreatedPayload struct {
	OrgNumber  string `json:"org_number"`
	Department string `json:"department"`
	DueDate    string `json:"due_date"`
}

// CaseStatusChangedPayload payload.
type CaseStatusChangedPayload struct {
	OldStatus domain.CaseStatus `json:"old_status"`
	NewStatus domain.CaseStatus `json:"new_status"`
}

// CaseDeletedPayload payload.
type CaseDeletedPayload struct {
	OrgNumber string `json:"org_number"`
}
