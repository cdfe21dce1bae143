package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veletic/cinema-ticketing/internal/repository"
)

// TicketHandler serves the authenticated user's purchase history.
type TicketHandler struct {
	Tickets *repository.TicketRepo
}

func NewTicketHandler(tickets *repository.TicketRepo) *TicketHandler {
	if tickets == nil {
		panic("nil TicketRepo passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets}
}

// MyTickets handles GET /api/v1/my-tickets.  Tickets are returned
// newest first with movie, cinema, room and seat details joined in.
func (h *TicketHandler) MyTickets(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Tickets.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
