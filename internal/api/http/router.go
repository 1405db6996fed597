package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trip-service/internal/api/http/handlers"
	"github.com/spec-kit/trip-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Trips  *handlers.TripsHandler
	Guides *handlers.GuidesHandler
	Guard  *auth.Guard
}

// RegisterRoutes wires HTTP routes and declares each route's access
// policy in the same place, so no endpoint can be exposed without a
// deliberate role declaration.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	g := cfg.Guard

	app.Get("/health/live", g.Secure("GET /health/live", cfg.Health.Live, auth.RoleAnyone)...)
	app.Get("/health/ready", g.Secure("GET /health/ready", cfg.Health.Ready, auth.RoleAnyone)...)
	app.Get("/health/metrics", g.Secure("GET /health/metrics", cfg.Health.Metrics, auth.RoleAdmin)...)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", g.Secure("POST /auth/login", cfg.Auth.Login, auth.RoleAnyone)...)
	authGroup.Post("/register", g.Secure("POST /auth/register", cfg.Auth.Register, auth.RoleAnyone)...)
	authGroup.Post("/populate", g.Secure("POST /auth/populate", cfg.Auth.Populate, auth.RoleAnyone)...)
	authGroup.Get("/healthcheck", g.Secure("GET /auth/healthcheck", cfg.Auth.Healthcheck, auth.RoleAnyone)...)

	trips := app.Group("/trips")
	trips.Post("/", g.Secure("POST /trips", cfg.Trips.Create, auth.RoleAdmin)...)
	trips.Get("/", g.Secure("GET /trips", cfg.Trips.List, auth.RoleUser, auth.RoleAdmin)...)
	trips.Get("/guides/totalprice", g.Secure("GET /trips/guides/totalprice", cfg.Trips.TotalPriceByGuide, auth.RoleUser, auth.RoleAdmin)...)
	trips.Get("/:id", g.Secure("GET /trips/:id", cfg.Trips.GetByID, auth.RoleUser, auth.RoleAdmin)...)
	trips.Put("/:id", g.Secure("PUT /trips/:id", cfg.Trips.Update, auth.RoleAdmin)...)
	trips.Delete("/:id", g.Secure("DELETE /trips/:id", cfg.Trips.Delete, auth.RoleAdmin)...)
	trips.Get("/:id/packing", g.Secure("GET /trips/:id/packing", cfg.Trips.Packing, auth.RoleUser, auth.RoleAdmin)...)
	trips.Get("/:id/packing/weight", g.Secure("GET /trips/:id/packing/weight", cfg.Trips.PackingWeight, auth.RoleUser, auth.RoleAdmin)...)
	trips.Put("/:tripId/guides/:guideId", g.Secure("PUT /trips/:tripId/guides/:guideId", cfg.Trips.LinkGuide, auth.RoleAdmin)...)

	guides := app.Group("/guides")
	guides.Post("/", g.Secure("POST /guides", cfg.Guides.Create, auth.RoleAnyone)...)
	guides.Get("/", g.Secure("GET /guides", cfg.Guides.List, auth.RoleAnyone)...)
	guides.Get("/:id", g.Secure("GET /guides/:id", cfg.Guides.GetByID, auth.RoleAnyone)...)
	guides.Put("/:id", g.Secure("PUT /guides/:id", cfg.Guides.Update, auth.RoleAnyone)...)
	guides.Delete("/:id", g.Secure("DELETE /guides/:id", cfg.Guides.Delete, auth.RoleAnyone)...)
}
