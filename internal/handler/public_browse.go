package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veletic/cinema-ticketing/internal/repository"
)

// PublicHandler serves the unauthenticated browse surface: movies,
// screenings, cinemas and seat availability.  These endpoints return
// sanitized read-only data and sit behind the Redis response cache.
type PublicHandler struct {
	Movies      *repository.MovieRepo
	Screenings  *repository.ScreeningRepo
	Cinemas     *repository.CinemaRepo
	Rooms       *repository.RoomRepo
	Seats       *repository.SeatRepo
	TicketTypes *repository.TicketTypeRepo
}

// NewPublicHandler constructs a PublicHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewPublicHandler(movies *repository.MovieRepo, screenings *repository.ScreeningRepo, cinemas *repository.CinemaRepo, rooms *repository.RoomRepo, seats *repository.SeatRepo, ticketTypes *repository.TicketTypeRepo) *PublicHandler {
	if movies == nil || screenings == nil || cinemas == nil || rooms == nil || seats == nil || ticketTypes == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{
		Movies:      movies,
		Screenings:  screenings,
		Cinemas:     cinemas,
		Rooms:       rooms,
		Seats:       seats,
		TicketTypes: ticketTypes,
	}
}

// ListMovies handles GET /api/v1/movies.  Soft-deleted movies are
// never listed.
func (h *PublicHandler) ListMovies(c echo.Context) error {
	items, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetMovie handles GET /api/v1/movies/:id.
func (h *PublicHandler) GetMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if m.IsDeleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": m})
}

// ListScreeningsByMovie handles GET /api/v1/movies/:id/screenings.
func (h *PublicHandler) ListScreeningsByMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	if _, err := h.Movies.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Screenings.ListByMovie(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetScreening handles GET /api/v1/screenings/:id and returns the
// screening joined with movie, room and cinema names.
func (h *PublicHandler) GetScreening(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	info, err := h.Screenings.GetInfo(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": info})
}

// GetScreeningSeats handles GET /api/v1/screenings/:id/seats.  Every
// active seat of the screening's room is returned with a taken flag so
// clients can render availability.  This read takes no locks; the
// authoritative check happens inside the booking transaction.
func (h *PublicHandler) GetScreeningSeats(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	if _, err := h.Screenings.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	seats, err := h.Seats.AvailabilityByScreening(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	free := 0
	for _, s := range seats {
		if !s.Taken {
			free++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": seats, "free": free})
}

// ListCinemas handles GET /api/v1/cinemas.
func (h *PublicHandler) ListCinemas(c echo.Context) error {
	items, err := h.Cinemas.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListRoomsByCinema handles GET /api/v1/cinemas/:id/rooms.
func (h *PublicHandler) ListRoomsByCinema(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	if _, err := h.Cinemas.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Rooms.ListByCinema(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListTicketTypes handles GET /api/v1/ticket-types so clients can
// compose orders with authoritative prices.
func (h *PublicHandler) ListTicketTypes(c echo.Context) error {
	items, err := h.TicketTypes.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]echo.Map, 0, len(items))
	for _, t := range items {
		out = append(out, echo.Map{"id": t.ID, "name": t.Name, "price": t.Price.String()})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
