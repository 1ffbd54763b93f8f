package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/venue-service/internal/api/http/handlers"
	"github.com/spec-kit/venue-service/internal/auth"
	"github.com/spec-kit/venue-service/internal/realtime"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Users        *handlers.UsersHandler
	Merchants    *handlers.MerchantsHandler
	Venues       *handlers.VenuesHandler
	Reservations *handlers.ReservationsHandler
	CheckIns     *handlers.CheckInsHandler
	Gate         *auth.Gate
	OccupancyHub *realtime.Hub
}

// RegisterRoutes wires HTTP routes. The gate runs on every request and
// attaches the caller's identity when a valid token is present; the
// per-group guards below decide who gets through.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/dev/reset-password", cfg.Auth.DevResetPassword)

	authProtected := authGroup.Group("", auth.RequireAuthenticated())
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Post("/refresh", cfg.Auth.Refresh)
	authProtected.Get("/user/info", cfg.Auth.UserInfo)

	adminOnly := auth.RequireAuthority("ROLE_ADMIN")
	merchantOrAdmin := auth.RequireAuthority("ROLE_MERCHANT", "ROLE_ADMIN")

	users := app.Group("/users", adminOnly)
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Put("/:id/status", cfg.Users.ChangeStatus)
	users.Put("/:id/roles", cfg.Users.AssignRoles)

	roles := app.Group("/roles", adminOnly)
	roles.Get("/", cfg.Users.ListRoles)
	roles.Post("/", cfg.Users.CreateRole)

	merchants := app.Group("/merchants", adminOnly)
	merchants.Get("/", cfg.Merchants.List)
	merchants.Post("/", cfg.Merchants.Create)
	merchants.Get("/:id", cfg.Merchants.Get)
	merchants.Put("/:id/status", cfg.Merchants.ChangeStatus)

	venues := app.Group("/venues", auth.RequireAuthenticated())
	venues.Get("/", cfg.Venues.List)
	venues.Get("/popular", cfg.Venues.Popular)
	venues.Get("/:id", cfg.Venues.Get)
	venues.Get("/:id/realtime", cfg.Venues.Realtime)
	venues.Post("/", merchantOrAdmin, cfg.Venues.Create)
	venues.Put("/:id", merchantOrAdmin, cfg.Venues.Update)
	venues.Delete("/:id", merchantOrAdmin, cfg.Venues.Delete)
	venues.Put("/:id/status", merchantOrAdmin, cfg.Venues.ChangeStatus)
	venues.Put("/:id/occupancy", merchantOrAdmin, cfg.Venues.SetOccupancy)
	venues.Get("/:id/reservations", merchantOrAdmin, cfg.Reservations.ListByVenue)
	venues.Get("/:id/checkins", merchantOrAdmin, cfg.CheckIns.ListByVenue)

	reservations := app.Group("/reservations", auth.RequireAuthenticated())
	reservations.Post("/", cfg.Reservations.Create)
	reservations.Get("/", cfg.Reservations.ListMine)
	reservations.Get("/:id", cfg.Reservations.Get)
	reservations.Put("/:id/cancel", cfg.Reservations.Cancel)
	reservations.Put("/:id/confirm", merchantOrAdmin, cfg.Reservations.Confirm)
	reservations.Put("/:id/complete", merchantOrAdmin, cfg.Reservations.Complete)

	checkIns := app.Group("/checkins", auth.RequireAuthenticated())
	checkIns.Post("/", cfg.CheckIns.CheckIn)
	checkIns.Post("/checkout", cfg.CheckIns.CheckOut)
	checkIns.Get("/", cfg.CheckIns.ListMine)

	app.Get("/ws/occupancy/:venueId", realtime.UpgradeRequired, cfg.OccupancyHub.Handler())
}
