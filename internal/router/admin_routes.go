package router

import (
	"github.com/labstack/echo/v4"

	"github.com/veletic/cinema-ticketing/internal/handler"
	"github.com/veletic/cinema-ticketing/internal/middleware"
	"github.com/veletic/cinema-ticketing/internal/model"
)

// RegisterAdmin registers the management surface under
// /api/v1/admin.  Catalogue, venue, scheduling and pricing endpoints
// require MANAGER or above; user management requires ADMIN.
func RegisterAdmin(e *echo.Echo, mv *handler.MovieHandler, cn *handler.CinemaHandler, sc *handler.ScreeningHandler, tt *handler.TicketTypeHandler, us *handler.UserAdminHandler, jwtSecret string) {
	g := e.Group("/api/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleManager))

	// movie catalogue
	g.POST("/movies", mv.Create)
	g.PUT("/movies/:id", mv.Update)
	g.DELETE("/movies/:id", mv.Delete)

	// venues
	g.POST("/cinemas", cn.CreateCinema)
	g.PUT("/cinemas/:id", cn.UpdateCinema)
	g.DELETE("/cinemas/:id", cn.DeleteCinema)
	g.POST("/cinemas/:id/rooms", cn.CreateRoom)
	g.PUT("/rooms/:id", cn.RenameRoom)
	g.DELETE("/rooms/:id", cn.DeleteRoom)
	g.POST("/rooms/:id/seats", cn.CreateSeats)
	g.GET("/rooms/:id/seats", cn.ListSeats)
	g.DELETE("/seats/:id", cn.DeleteSeat)

	// scheduling
	g.POST("/screenings", sc.Create)
	g.PUT("/screenings/:id", sc.Update)
	g.DELETE("/screenings/:id", sc.Delete)

	// pricing
	g.POST("/ticket-types", tt.Create)
	g.PUT("/ticket-types/:id", tt.Update)
	g.DELETE("/ticket-types/:id", tt.Delete)

	// user management is for admins only
	users := g.Group("/users")
	users.Use(middleware.RequireRole(model.RoleAdmin))
	users.GET("", us.List)
	users.PUT("/:id/role", us.SetRole)
	users.PUT("/:id/active", us.SetActive)
}
