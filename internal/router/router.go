package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"                             // Echo web framework for routing
	"github.com/prometheus/client_golang/prometheus/promhttp" // Prometheus scrape endpoint

	"github.com/veletic/cinema-ticketing/internal/handler"    // handlers implementing the business logic
	"github.com/veletic/cinema-ticketing/internal/middleware" // JWT authentication and role enforcement
)

// RegisterRoutes registers routes that require no authentication and no
// versioned prefix: the health check used by load balancers and the
// Prometheus metrics endpoint.
func RegisterRoutes(e *echo.Echo) {
	// Liveness probe; returns 200 as long as the process serves HTTP.
	e.GET("/healthz", handler.Health)
	// Prometheus scrapes booking and payment metrics from here.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the authentication routes.  Register, login,
// refresh and logout need no session; /api/v1/me requires a valid
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked
	// and a brand new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout accepts the refresh token in the body and revokes it; no
	// access token is required so expired sessions can still log out.
	g.POST("/logout", a.Logout)

	auth := e.Group("/api/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints.  The
// optional cache middleware (Redis response cache) is applied to the
// whole group when non-nil; browse data changes rarely and tolerates a
// short TTL.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/api/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/movies", p.ListMovies)
	g.GET("/movies/:id", p.GetMovie)
	g.GET("/movies/:id/screenings", p.ListScreeningsByMovie)
	g.GET("/screenings/:id", p.GetScreening)
	// Seat availability is advisory only; the booking transaction is
	// the authoritative check.
	g.GET("/screenings/:id/seats", p.GetScreeningSeats)
	g.GET("/cinemas", p.ListCinemas)
	g.GET("/cinemas/:id/rooms", p.ListRoomsByCinema)
	g.GET("/ticket-types", p.ListTicketTypes)
}
