package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/veletic/cinema-ticketing/internal/model"
)

// ErrScreeningNotFound is returned when a screening lookup yields no rows.
var ErrScreeningNotFound = errors.New("screening not found")

// ScreeningRepo provides CRUD operations for screenings.  Screenings
// are immutable from the booking flow's point of view; only the admin
// surface creates, edits and deletes them.
type ScreeningRepo struct {
	db *sql.DB
}

// NewScreeningRepo constructs a ScreeningRepo with the given DB handle.
func NewScreeningRepo(db *sql.DB) *ScreeningRepo { return &ScreeningRepo{db: db} }

// DB exposes the underlying handle so that orchestrating code (the
// booking service) can open transactions spanning several repositories.
func (r *ScreeningRepo) DB() *sql.DB { return r.db }

// Create inserts a screening. On success the screening's ID is populated.
func (r *ScreeningRepo) Create(ctx context.Context, s *model.Screening) error {
	const q = `INSERT INTO screenings (movie_id, room_id, starts_at, ends_at) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.RoomID, s.StartsAt.UTC(), s.EndsAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a screening by its id.
func (r *ScreeningRepo) GetByID(ctx context.Context, id uint64) (*model.Screening, error) {
	const q = `SELECT id, movie_id, room_id, starts_at, ends_at, created_at, updated_at
	           FROM screenings WHERE id = ?`
	var s model.Screening
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.MovieID, &s.RoomID, &s.StartsAt, &s.EndsAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreeningNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByMovie returns all screenings of a movie ordered by start time.
func (r *ScreeningRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Screening, error) {
	const q = `SELECT id, movie_id, room_id, starts_at, ends_at, created_at, updated_at
	           FROM screenings
	           WHERE movie_id = ?
	           ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Screening, 0)
	for rows.Next() {
		var s model.Screening
		if err := rows.Scan(&s.ID, &s.MovieID, &s.RoomID, &s.StartsAt, &s.EndsAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update changes a screening's schedule.  Only explicit admin edits go
// through here.
func (r *ScreeningRepo) Update(ctx context.Context, s *model.Screening) error {
	const q = `UPDATE screenings SET movie_id = ?, room_id = ?, starts_at = ?, ends_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.RoomID, s.StartsAt.UTC(), s.EndsAt.UTC(), s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gerr := r.GetByID(ctx, s.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// Delete removes a screening.  Deletion fails with ErrConflict when
// tickets have already been sold for it.
func (r *ScreeningRepo) Delete(ctx context.Context, id uint64) error {
	var sold int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets WHERE screening_id = ?`, id).Scan(&sold); err != nil {
		return err
	}
	if sold > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM screenings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrScreeningNotFound
	}
	return nil
}

// ScreeningInfo carries the display fields of a screening joined with
// its movie, room and cinema.  It feeds the browse surface and the
// tickets.booked event payload.
type ScreeningInfo struct {
	ID         uint64 `json:"id"`
	MovieID    uint64 `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	RoomID     uint64 `json:"room_id"`
	RoomName   string `json:"room_name"`
	CinemaID   uint64 `json:"cinema_id"`
	CinemaName string `json:"cinema_name"`
	StartsAt   string `json:"starts_at"`
	EndsAt     string `json:"ends_at"`
}

// GetInfo loads a screening together with movie, room and cinema names.
func (r *ScreeningRepo) GetInfo(ctx context.Context, id uint64) (*ScreeningInfo, error) {
	const q = `SELECT sc.id, m.id, m.title, ro.id, ro.name, c.id, c.name, sc.starts_at, sc.ends_at
	           FROM screenings sc
	           JOIN movies m ON m.id = sc.movie_id
	           JOIN rooms ro ON ro.id = sc.room_id
	           JOIN cinemas c ON c.id = ro.cinema_id
	           WHERE sc.id = ?`
	var info ScreeningInfo
	var startsAt, endsAt sql.NullTime
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&info.ID, &info.MovieID, &info.MovieTitle,
		&info.RoomID, &info.RoomName,
		&info.CinemaID, &info.CinemaName,
		&startsAt, &endsAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreeningNotFound
		}
		return nil, err
	}
	if startsAt.Valid {
		info.StartsAt = startsAt.Time.UTC().Format(time.RFC3339)
	}
	if endsAt.Valid {
		info.EndsAt = endsAt.Time.UTC().Format(time.RFC3339)
	}
	return &info, nil
}
