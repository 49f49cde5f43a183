package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/escalation-service/internal/api/http/handlers"
	"github.com/spec-kit/escalation-service/internal/identity"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Cases    *handlers.CasesHandler
	Me       *handlers.MeHandler
	Identity *identity.Resolver
	Metrics  fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	app.Get("/me", cfg.Identity.Middleware(), cfg.Me.Show)

	cases := app.Group("/cases", cfg.Identity.Middleware())
	cases.Post("/", cfg.Cases.CreateCase)
	cases.Get("/", cfg.Cases.ListCases)
	cases.Patch("/:id/status", cfg.Cases.UpdateStatus)
	cases.Delete("/:id", cfg.Cases.DeleteCase)
}
