package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veletic/cinema-ticketing/internal/model"
	"github.com/veletic/cinema-ticketing/internal/repository"
)

type stubMovieGetter struct{ err error }

func (s *stubMovieGetter) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Movie{ID: id, Title: "Stalker"}, nil
}

type stubRoomGetter struct{ err error }

func (s *stubRoomGetter) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Room{ID: id, Name: "Hall A"}, nil
}

type stubScreeningStore struct {
	creates int
	updates int
	deletes int
	err     error
}

func (s *stubScreeningStore) Create(ctx context.Context, sc *model.Screening) error {
	s.creates++
	return s.err
}

func (s *stubScreeningStore) Update(ctx context.Context, sc *model.Screening) error {
	s.updates++
	return s.err
}

func (s *stubScreeningStore) Delete(ctx context.Context, id uint64) error {
	s.deletes++
	return s.err
}

const screeningBody = `{
	"movie_id": 3,
	"room_id": 5,
	"starts_at": "2026-09-01T18:00:00Z",
	"ends_at": "2026-09-01T20:30:00Z"
}`

func doScreening(t *testing.T, h *ScreeningHandler, method, target, body, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	switch method {
	case http.MethodPost:
		require.NoError(t, h.Create(c))
	case http.MethodPut:
		require.NoError(t, h.Update(c))
	case http.MethodDelete:
		require.NoError(t, h.Delete(c))
	}
	return rec
}

func TestScreeningCreateOK(t *testing.T) {
	store := &stubScreeningStore{}
	h := NewScreeningHandler(store, &stubMovieGetter{}, &stubRoomGetter{})

	resp := doScreening(t, h, http.MethodPost, "/api/v1/admin/screenings", screeningBody, "")
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, 1, store.creates)
}

func TestScreeningCreateMissingMovieAborts(t *testing.T) {
	store := &stubScreeningStore{}
	h := NewScreeningHandler(store, &stubMovieGetter{err: repository.ErrMovieNotFound}, &stubRoomGetter{})

	resp := doScreening(t, h, http.MethodPost, "/api/v1/admin/screenings", screeningBody, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, 0, store.creates, "create must not run for an unknown movie")

	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "movie not found", body["error"])
}

func TestScreeningCreateLookupErrorAborts(t *testing.T) {
	store := &stubScreeningStore{}
	h := NewScreeningHandler(store, &stubMovieGetter{err: errors.New("connection reset")}, &stubRoomGetter{})

	resp := doScreening(t, h, http.MethodPost, "/api/v1/admin/screenings", screeningBody, "")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, 0, store.creates, "create must not run when the lookup fails")
}

func TestScreeningUpdateMissingRoomAborts(t *testing.T) {
	store := &stubScreeningStore{}
	h := NewScreeningHandler(store, &stubMovieGetter{}, &stubRoomGetter{err: repository.ErrRoomNotFound})

	resp := doScreening(t, h, http.MethodPut, "/api/v1/admin/screenings/9", screeningBody, "9")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, 0, store.updates, "update must not run for an unknown room")

	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "room not found", body["error"])
}

func TestScreeningCreateBadTimes(t *testing.T) {
	store := &stubScreeningStore{}
	h := NewScreeningHandler(store, &stubMovieGetter{}, &stubRoomGetter{})

	bad := `{"movie_id": 3, "room_id": 5, "starts_at": "2026-09-01T20:00:00Z", "ends_at": "2026-09-01T18:00:00Z"}`
	resp := doScreening(t, h, http.MethodPost, "/api/v1/admin/screenings", bad, "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, 0, store.creates)
}

func TestScreeningDeleteConflict(t *testing.T) {
	store := &stubScreeningStore{err: repository.ErrConflict}
	h := NewScreeningHandler(store, &stubMovieGetter{}, &stubRoomGetter{})

	resp := doScreening(t, h, http.MethodDelete, "/api/v1/admin/screenings/9", "", "9")
	assert.Equal(t, http.StatusConflict, resp.Code)
}
