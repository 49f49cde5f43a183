package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/escalation-service/internal/api/dto"
	"github.com/spec-kit/escalation-service/internal/domain"
	"github.com/spec-kit/escalation-service/internal/service"
	"github.com/spec-kit/escalation-service/internal/sla"
	apperrors "github.com/spec-kit/escalation-service/pkg/util/errorutil"
)

// CasesHandler exposes the escalated-case endpoints.
type CasesHandler struct {
	service *service.CaseService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(caseService *service.CaseService) *CasesHandler {
	return &CasesHandler{service: caseService}
}

// CreateCase POST /cases.
func (h *CasesHandler) CreateCase(c *fiber.Ctx) error {
	var req dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	created, err := h.service.CreateCase(c.Context(), service.CaseCreateInput{
		OrgNumber:     req.OrgNumber,
		Department:    req.Department,
		DateEscalated: req.DateEscalated,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": caseResponse(created)})
}

// ListCases GET /cases?filter=all|open|returned. Open cases are the
// default view.
func (h *CasesHandler) ListCases(c *fiber.Ctx) error {
	filter := service.CaseFilter(c.Query("filter", string(service.FilterOpen)))
	view, err := h.service.BuildView(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.CaseListItem, 0, len(view))
	for i := range view {
		items = append(items, caseListItem(&view[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateStatus PATCH /cases/:id/status.
func (h *CasesHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.SetStatus(c.Context(), c.Params("id"), domain.CaseStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":     c.Params("id"),
		"status": req.Status,
	}})
}

// DeleteCase DELETE /cases/:id.
func (h *CasesHandler) DeleteCase(c *fiber.Ctx) error {
	if err := h.service.DeleteCase(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func caseResponse(record *domain.Case) dto.CaseResponse {
	return dto.CaseResponse{
		ID:            record.ID,
		OrgNumber:     record.OrgNumber,
		Department:    record.Department,
		Description:   record.Description,
		DateEscalated: record.DateEscalated,
		DueDate:       record.DueDate,
		Status:        record.Status,
	}
}

func caseListItem(view *service.CaseView) dto.CaseListItem {
	item := dto.CaseListItem{
		CaseResponse: caseResponse(&view.Case),
		Days:         view.Aging.Days,
		AgingLabel:   view.Aging.Label,
		Highlight:    view.Highlight,
	}
	if view.Highlight {
		item.Bucket = view.Aging.Bucket
	} else {
		item.AgingLabel = sla.FormatDays(view.Aging.Days)
	}
	return item
}
