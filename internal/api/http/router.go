package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rescue-dispatch/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Rescues  *handlers.RescuesHandler
	Messages *handlers.MessagesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/rescues", cfg.Rescues.List)
	api.Get("/rescues/:handle", cfg.Rescues.Get)
	api.Get("/metrics", cfg.Rescues.Metrics)
	if cfg.Messages != nil {
		api.Post("/messages", cfg.Messages.Post)
	}
}
