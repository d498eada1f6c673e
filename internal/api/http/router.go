package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/api/http/handlers"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Requests *handlers.RequestsHandler
	Reports  *handlers.ReportsHandler
	Files    *handlers.FilesHandler
	Session  *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("/api", cfg.Session.Handle)

	api.Post("/requests", cfg.Requests.Submit)
	api.Get("/requests/duedate", cfg.Requests.PreviewDueDate)
	api.Get("/requests/log", cfg.Requests.UnifiedLog)
	api.Post("/requests/:id/actions/:action", auth.RequireStaff(), cfg.Requests.PerformAction)

	api.Get("/reports/sla", auth.RequireStaff(), cfg.Reports.SLAReport)

	api.Post("/files", auth.RequireStaff(), cfg.Files.Upload)
	api.Get("/files/:id", cfg.Files.Download)
}
