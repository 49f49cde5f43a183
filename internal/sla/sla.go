// Package sla derives aging status for escalated cases from the
// business-day calendar.
package sla

import (
	"fmt"
	"time"

	"github.com/spec-kit/escalation-service/internal/calendar"
)

// Bucket classifies a case's current business-day age.
type Bucket string

const (
	BucketOK      Bucket = "ok"
	BucketWarning Bucket = "warning"
	BucketOverdue Bucket = "overdue"
)

// Thresholds in business days: warning at five, overdue past seven. Both
// boundaries are inclusive on the warning side.
const (
	warningThreshold = 5
	overdueThreshold = 7
)

// StatusInfo carries the computed age of a case.
type StatusInfo struct {
	Days   int    `json:"days"`
	Bucket Bucket `json:"bucket"`
	Label  string `json:"label"`
}

// ComputeStatusInfo derives the aging status for an escalation date as of
// the given day. Pure function; callers recompute on every read so the
// result self-updates as days pass.
func ComputeStatusInfo(dateEscalated string, today time.Time) StatusInfo {
	days := calendar.BusinessDaysBetween(dateEscalated, today)

	bucket := BucketOK
	qualifier := "OK"
	switch {
	case days > overdueThreshold:
		bucket = BucketOverdue
		qualifier = "overdue"
	case days >= warningThreshold:
		bucket = BucketWarning
		qualifier = "warning"
	}

	return StatusInfo{
		Days:   days,
		Bucket: bucket,
		Label:  fmt.Sprintf("%s (%s)", FormatDays(days), qualifier),
	}
}

// FormatDays renders a day count without severity, e.g. "3 business days".
// Returned cases display this plain form.
func FormatDays(days int) string {
	if days == 1 {
		return "1 business day"
	}
	return fmt.Sprintf("%d business days", days)
}
