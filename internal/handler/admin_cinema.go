package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/veletic/cinema-ticketing/internal/model"
	"github.com/veletic/cinema-ticketing/internal/repository"
)

// CinemaHandler implements the manager-facing CRUD for cinemas, rooms
// and seats.  Seats are only created in bulk; the physical layout of a
// room is a count of numbered seats, not individual rows.
type CinemaHandler struct {
	Cinemas *repository.CinemaRepo
	Rooms   *repository.RoomRepo
	Seats   *repository.SeatRepo
}

func NewCinemaHandler(cinemas *repository.CinemaRepo, rooms *repository.RoomRepo, seats *repository.SeatRepo) *CinemaHandler {
	if cinemas == nil || rooms == nil || seats == nil {
		panic("nil repository passed to NewCinemaHandler")
	}
	return &CinemaHandler{Cinemas: cinemas, Rooms: rooms, Seats: seats}
}

type cinemaReq struct {
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Address *string `json:"address"`
}

// CreateCinema handles POST /api/v1/admin/cinemas.
func (h *CinemaHandler) CreateCinema(c echo.Context) error {
	var req cinemaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.City = strings.TrimSpace(req.City)
	if req.Name == "" || req.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city are required"})
	}
	cin := &model.Cinema{Name: req.Name, City: req.City, Address: req.Address}
	if err := h.Cinemas.Create(c.Request().Context(), cin); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cinema name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": cin})
}

// UpdateCinema handles PUT /api/v1/admin/cinemas/:id.
func (h *CinemaHandler) UpdateCinema(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	var req cinemaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.City = strings.TrimSpace(req.City)
	if req.Name == "" || req.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city are required"})
	}
	cin := &model.Cinema{ID: id, Name: req.Name, City: req.City, Address: req.Address}
	if err := h.Cinemas.Update(c.Request().Context(), cin); err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": cin})
}

// DeleteCinema handles DELETE /api/v1/admin/cinemas/:id.  A cinema
// that still has rooms cannot be deleted.
func (h *CinemaHandler) DeleteCinema(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	if err := h.Cinemas.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCinemaNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "cinema still has rooms"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

type roomReq struct {
	Name string `json:"name"`
}

// CreateRoom handles POST /api/v1/admin/cinemas/:id/rooms.
func (h *CinemaHandler) CreateRoom(c echo.Context) error {
	cinemaID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if _, err := h.Cinemas.GetByID(c.Request().Context(), cinemaID); err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	room := &model.Room{CinemaID: cinemaID, Name: req.Name}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists in this cinema"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": room})
}

// RenameRoom handles PUT /api/v1/admin/rooms/:id.
func (h *CinemaHandler) RenameRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := h.Rooms.Rename(c.Request().Context(), id, req.Name); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room renamed"})
}

// DeleteRoom handles DELETE /api/v1/admin/rooms/:id.  A room with
// screenings scheduled cannot be deleted.
func (h *CinemaHandler) DeleteRoom(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room still has screenings or seats"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

type createSeatsReq struct {
	Count int `json:"count"`
}

// CreateSeats handles POST /api/v1/admin/rooms/:id/seats.  Seats are
// appended in bulk and numbered after the highest existing seat
// number, so repeated calls grow the room without renumbering.
func (h *CinemaHandler) CreateSeats(c echo.Context) error {
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req createSeatsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Count <= 0 || req.Count > 1000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be between 1 and 1000"})
	}
	if _, err := h.Rooms.GetByID(c.Request().Context(), roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Seats.CreateBulk(c.Request().Context(), roomID, req.Count); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "seats created", "count": req.Count})
}

// ListSeats handles GET /api/v1/admin/rooms/:id/seats.
func (h *CinemaHandler) ListSeats(c echo.Context) error {
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	seats, err := h.Seats.ListByRoom(c.Request().Context(), roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": seats})
}

// DeleteSeat handles DELETE /api/v1/admin/seats/:id.  The seat is soft
// deleted so tickets already sold for it remain valid.
func (h *CinemaHandler) DeleteSeat(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	if err := h.Seats.SoftDelete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}
