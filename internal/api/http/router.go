package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/savari-hq/savari/internal/api/http/handlers"
	"github.com/savari-hq/savari/internal/auth"
	"github.com/savari-hq/savari/internal/domain"
	"github.com/savari-hq/savari/internal/observability"
)

// RouteConfig bundles everything the router needs.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Operators  *handlers.OperatorsHandler
	Routes     *handlers.RoutesHandler
	Passengers *handlers.PassengersHandler
	Trips      *handlers.TripsHandler
	Reports    *handlers.ReportsHandler

	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes mounts the full HTTP surface.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", func(c *fiber.Ctx) error {
		requests, errs := cfg.Metrics.Snapshot()
		return c.JSON(fiber.Map{"data": fiber.Map{"requests": requests, "errors": errs}})
	})

	api := app.Group("/api/v1")

	api.Post("/auth/register", cfg.Auth.Register)
	api.Post("/auth/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Auth.Me)

	// Operator creation and invite acceptance are reachable before the
	// caller holds a membership.
	protected.Post("/operators", cfg.Operators.Create)
	protected.Post("/invites/accept", cfg.Operators.AcceptInvite)

	operatorOnly := protected.Group("", auth.RequireRole(domain.RoleOperator))
	operatorOnly.Get("/members", cfg.Operators.ListMembers)
	operatorOnly.Delete("/members/:id", cfg.Operators.RemoveMember)
	operatorOnly.Post("/invites", cfg.Operators.CreateInvite)

	operatorOnly.Post("/routes", cfg.Routes.Create)
	operatorOnly.Patch("/routes/:id", cfg.Routes.Update)
	operatorOnly.Delete("/routes/:id", cfg.Routes.Delete)

	members := protected.Group("", auth.RequireMembership())
	members.Get("/routes", cfg.Routes.List)
	members.Get("/routes/:id", cfg.Routes.Get)

	members.Get("/passengers", cfg.Passengers.List)
	members.Get("/passengers/:id", cfg.Passengers.Get)

	businessOrOperator := protected.Group("", auth.RequireRole(domain.RoleBusiness, domain.RoleOperator))
	businessOrOperator.Post("/passengers", cfg.Passengers.Create)
	businessOrOperator.Post("/passengers/:id/archive", cfg.Passengers.Archive)

	drivers := protected.Group("", auth.RequireRole(domain.RoleDriver))
	drivers.Post("/trips", cfg.Trips.Start)
	drivers.Get("/trips/active", cfg.Trips.Active)
	drivers.Post("/trips/:id/end", cfg.Trips.End)
	drivers.Post("/trips/:id/scans", cfg.Trips.Scan)

	reports := protected.Group("/reports", auth.RequireRole(domain.RoleOperator))
	reports.Get("/route-activity", cfg.Reports.RouteActivity)
	reports.Get("/recent-trips", cfg.Reports.RecentTrips)
	reports.Get("/passenger-scans", cfg.Reports.PassengerScanCounts)
}
