package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/veletic/cinema-ticketing/internal/model"
	"github.com/veletic/cinema-ticketing/internal/repository"
)

// MovieGetter and RoomGetter are the lookup slices the screening
// handler needs to verify referenced rows exist.
type MovieGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}
type RoomGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
}

// ScreeningStore is the write surface of the screening repository.
type ScreeningStore interface {
	Create(ctx context.Context, s *model.Screening) error
	Update(ctx context.Context, s *model.Screening) error
	Delete(ctx context.Context, id uint64) error
}

// ScreeningHandler implements manager-facing screening scheduling.
type ScreeningHandler struct {
	Screenings ScreeningStore
	Movies     MovieGetter
	Rooms      RoomGetter
}

func NewScreeningHandler(screenings ScreeningStore, movies MovieGetter, rooms RoomGetter) *ScreeningHandler {
	if screenings == nil || movies == nil || rooms == nil {
		panic("nil repository passed to NewScreeningHandler")
	}
	return &ScreeningHandler{Screenings: screenings, Movies: movies, Rooms: rooms}
}

type screeningReq struct {
	MovieID  uint64 `json:"movie_id"`
	RoomID   uint64 `json:"room_id"`
	StartsAt string `json:"starts_at"` // RFC3339
	EndsAt   string `json:"ends_at"`   // RFC3339
}

func (r *screeningReq) parse() (starts, ends time.Time, err error) {
	if r.MovieID == 0 || r.RoomID == 0 {
		return starts, ends, errors.New("movie_id and room_id are required")
	}
	starts, err = time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return starts, ends, errors.New("starts_at must be RFC3339")
	}
	ends, err = time.Parse(time.RFC3339, r.EndsAt)
	if err != nil {
		return starts, ends, errors.New("ends_at must be RFC3339")
	}
	if !ends.After(starts) {
		return starts, ends, errors.New("ends_at must be after starts_at")
	}
	return starts, ends, nil
}

// checkRefs verifies that the referenced movie and room exist.  It
// only reports; the caller maps the sentinel errors onto a status and
// must abort on any non-nil return.
func (h *ScreeningHandler) checkRefs(ctx context.Context, movieID, roomID uint64) error {
	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		return err
	}
	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		return err
	}
	return nil
}

func refsErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrMovieNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
}

// Create handles POST /api/v1/admin/screenings.
func (h *ScreeningHandler) Create(c echo.Context) error {
	var req screeningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	starts, ends, err := req.parse()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.checkRefs(c.Request().Context(), req.MovieID, req.RoomID); err != nil {
		return refsErrorResponse(c, err)
	}
	s := &model.Screening{MovieID: req.MovieID, RoomID: req.RoomID, StartsAt: starts, EndsAt: ends}
	if err := h.Screenings.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": s})
}

// Update handles PUT /api/v1/admin/screenings/:id.
func (h *ScreeningHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	var req screeningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	starts, ends, err := req.parse()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.checkRefs(c.Request().Context(), req.MovieID, req.RoomID); err != nil {
		return refsErrorResponse(c, err)
	}
	s := &model.Screening{ID: id, MovieID: req.MovieID, RoomID: req.RoomID, StartsAt: starts, EndsAt: ends}
	if err := h.Screenings.Update(c.Request().Context(), s); err != nil {
		if errors.Is(err, repository.ErrScreeningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": s})
}

// Delete handles DELETE /api/v1/admin/screenings/:id.  A screening
// with tickets sold cannot be deleted.
func (h *ScreeningHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	if err := h.Screenings.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrScreeningNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "screening has tickets sold"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
