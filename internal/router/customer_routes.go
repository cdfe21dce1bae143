package router

import (
	"github.com/labstack/echo/v4"

	"github.com/veletic/cinema-ticketing/internal/handler"
	"github.com/veletic/cinema-ticketing/internal/middleware"
	"github.com/veletic/cinema-ticketing/internal/model"
)

// RegisterCustomer registers the authenticated customer surface: the
// checkout operation and the purchase history.  Both require a valid
// access token; any role may buy tickets.  The optional ratelimit
// middleware (Redis token bucket) protects checkout from bursts that
// would pile up on the seat locks.
func RegisterCustomer(e *echo.Echo, co *handler.CheckoutHandler, tk *handler.TicketHandler, jwtSecret string, ratelimit echo.MiddlewareFunc) {
	g := e.Group("/api/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCustomer))

	checkout := g.Group("/checkout")
	if ratelimit != nil {
		checkout.Use(ratelimit)
	}
	checkout.POST("/complete", co.Complete)

	g.GET("/my-tickets", tk.MyTickets)
}
