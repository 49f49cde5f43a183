package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/escalation-service/internal/api/dto"
	"github.com/spec-kit/escalation-service/internal/identity"
)

// MeHandler exposes the caller's display identity.
type MeHandler struct{}

// NewMeHandler constructs handler.
func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// Show GET /me. Anonymous callers get an empty name, never an error.
func (h *MeHandler) Show(c *fiber.Ctx) error {
	resp := dto.MeResponse{}
	if principal, ok := identity.PrincipalFromContext(c); ok {
		resp.DisplayName = principal.Name
		resp.Authenticated = true
	}
	return c.JSON(fiber.Map{"data": resp})
}
