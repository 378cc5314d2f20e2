package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/support-kit/analytics-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Tickets   *handlers.TicketsHandler
	Clients   *handlers.ClientsHandler
	Companies *handlers.CompaniesHandler
	Sync      *handlers.SyncHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	ticket := app.Group("/ticket")
	ticket.Get("/main", cfg.Tickets.Main)
	ticket.Get("/all", cfg.Tickets.All)
	ticket.Get("/trend/value/:tagName", cfg.Tickets.TrendValue)
	ticket.Get("/trend/:tagName", cfg.Tickets.Trend)
	ticket.Get("/status/:statusName", cfg.Tickets.CountByStatus)
	ticket.Post("/search", cfg.Tickets.Search)

	clients := app.Group("/clients")
	clients.Post("/search", cfg.Clients.Search)
	clients.Get("/client/activities/:clientId", cfg.Clients.Activities)
	clients.Get("/client/:clientId", cfg.Clients.Client)

	companies := app.Group("/companies")
	companies.Post("/search", cfg.Companies.Search)
	companies.Get("/client/:clientId", cfg.Companies.Client)

	app.Get("/sync/status", cfg.Sync.Status)
}
