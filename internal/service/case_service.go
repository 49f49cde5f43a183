package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/escalation-service/internal/calendar"
	"github.com/spec-kit/escalation-service/internal/domain"
	"github.com/spec-kit/escalation-service/internal/events"
	"github.com/spec-kit/escalation-service/internal/repository"
	"github.com/spec-kit/escalation-service/internal/sla"
	apperrors "github.com/spec-kit/escalation-service/pkg/util/errorutil"
)

// Due dates are fixed at creation: escalation date plus seven business days.
const dueDateOffsetBusinessDays = 7

// CaseFilter selects the list-view subset.
type CaseFilter string

const (
	FilterAll      CaseFilter = "all"
	FilterOpen     CaseFilter = "open"
	FilterReturned CaseFilter = "returned"
)

// Valid reports whether the filter is one of the known values.
func (f CaseFilter) Valid() bool {
	return f == FilterAll || f == FilterOpen || f == FilterReturned
}

// CaseCreateInput describes case creation payload.
type CaseCreateInput struct {
	OrgNumber     string
	Department    string
	DateEscalated string
	Description   string
}

// CaseView couples a case with its computed aging. Highlight is true only
// for open cases; returned cases keep the day count without severity.
type CaseView struct {
	Case      domain.Case
	Aging     sla.StatusInfo
	Highlight bool
}

// CaseDependencies bundles collaborators for the case service.
type CaseDependencies struct {
	CaseRepo   repository.CaseRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// CaseService coordinates escalated-case workflows over the blob store.
// Every mutation reads the full collection, replaces it in memory and
// writes it back whole; a single active writer is assumed.
type CaseService struct {
	cases      repository.CaseRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewCaseService constructs the service. Now defaults to the wall clock.
func NewCaseService(deps CaseDependencies) *CaseService {
	svc := &CaseService{
		cases:      deps.CaseRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// CreateCase validates input, derives the due date and appends the new
// case to the collection.
func (s *CaseService) CreateCase(ctx context.Context, input CaseCreateInput) (*domain.Case, error) {
	orgNumber := strings.TrimSpace(input.OrgNumber)
	description := strings.TrimSpace(input.Description)

	if orgNumber == "" || input.Department == "" || input.DateEscalated == "" {
		return nil, apperrors.NewValidationError("org_number, department, date_escalated required", nil)
	}
	escalated, err := calendar.ParseDate(input.DateEscalated)
	if err != nil {
		return nil, apperrors.NewValidationError("date_escalated must be a YYYY-MM-DD date", map[string]any{
			"date_escalated": input.DateEscalated,
		})
	}

	newCase := domain.Case{
		ID:            uuid.NewString(),
		OrgNumber:     orgNumber,
		Department:    input.Department,
		Description:   description,
		DateEscalated: input.DateEscalated,
		DueDate:       calendar.FormatDate(calendar.AddBusinessDays(escalated, dueDateOffsetBusinessDays)),
		Status:        domain.CaseStatusOpen,
	}

	cases, err := s.cases.Load(ctx)
	if err != nil {
		return nil, err
	}
	cases = append(cases, newCase)
	if err := s.cases.Save(ctx, cases); err != nil {
		return nil, err
	}
	s.logger.Debug("case created",
		zap.String("case_id", newCase.ID),
		zap.String("due_date", newCase.DueDate))

	s.publishEvent(ctx, events.Event{
		Type:   events.EventCaseCreated,
		CaseID: newCase.ID,
		Payload: events.CaseCreatedPayload{
			OrgNumber:  newCase.OrgNumber,
			Department: newCase.Department,
			DueDate:    newCase.DueDate,
		},
	})
	return &newCase, nil
}

// SetStatus replaces the status of the matching case. An unknown id is a
// no-op, not an error; the due date is never touched.
func (s *CaseService) SetStatus(ctx context.Context, id string, newStatus domain.CaseStatus) error {
	if !newStatus.Valid() {
		return apperrors.NewValidationError("status must be open or returned", map[string]any{
			"status": string(newStatus),
		})
	}

	cases, err := s.cases.Load(ctx)
	if err != nil {
		return err
	}

	var oldStatus domain.CaseStatus
	changed := false
	for i := range cases {
		if cases[i].ID == id {
			oldStatus = cases[i].Status
			cases[i].Status = newStatus
			changed = oldStatus != newStatus
			break
		}
	}
	if err := s.cases.Save(ctx, cases); err != nil {
		return err
	}

	if changed {
		s.publishEvent(ctx, events.Event{
			Type:   events.EventCaseStatusChanged,
			CaseID: id,
			Payload: events.CaseStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: newStatus,
			},
		})
	}
	return nil
}

// DeleteCase removes the matching case permanently. An unknown id is a
// no-op.
func (s *CaseService) DeleteCase(ctx context.Context, id string) error {
	cases, err := s.cases.Load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]domain.Case, 0, len(cases))
	var removed *domain.Case
	for i := range cases {
		if cases[i].ID == id {
			removed = &cases[i]
			continue
		}
		remaining = append(remaining, cases[i])
	}
	if err := s.cases.Save(ctx, remaining); err != nil {
		return err
	}

	if removed != nil {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventCaseDeleted,
			CaseID:  id,
			Payload: events.CaseDeletedPayload{OrgNumber: removed.OrgNumber},
		})
	}
	return nil
}

// BuildView selects the filtered subset, sorts it ascending by due date
// and attaches the computed aging to each case. Aging is recomputed on
// every call so the view self-updates as days pass.
func (s *CaseService) BuildView(ctx context.Context, filter CaseFilter) ([]CaseView, error) {
	if !filter.Valid() {
		return nil, apperrors.NewValidationError("filter must be all, open or returned", map[string]any{
			"filter": string(filter),
		})
	}

	cases, err := s.cases.Load(ctx)
	if err != nil {
		return nil, err
	}

	selected := make([]domain.Case, 0, len(cases))
	for _, c := range cases {
		switch filter {
		case FilterOpen:
			if c.Status != domain.CaseStatusOpen {
				continue
			}
		case FilterReturned:
			if c.Status != domain.CaseStatusReturned {
				continue
			}
		}
		selected = append(selected, c)
	}

	// Stable so that coinciding due dates keep their original order.
	// Unparseable due dates sort as the zero time, i.e. first.
	dueKeys := make([]time.Time, len(selected))
	for i, c := range selected {
		if due, err := calendar.ParseDate(c.DueDate); err == nil {
			dueKeys[i] = due
		}
	}
	indexes := make([]int, len(selected))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		return dueKeys[indexes[a]].Before(dueKeys[indexes[b]])
	})

	today := s.now()
	view := make([]CaseView, 0, len(selected))
	for _, idx := range indexes {
		c := selected[idx]
		view = append(view, CaseView{
			Case:      c,
			Aging:     sla.ComputeStatusInfo(c.DateEscalated, today),
			Highlight: c.Status == domain.CaseStatusOpen,
		})
	}
	return view, nil
}

func (s *CaseService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
