package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/veletic/cinema-ticketing/internal/model"
)

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo provides CRUD operations for movies.  Movies are
// soft-deleted so that screenings and tickets sold in the past keep
// resolving to a title.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieCols = `id, title, description, duration_min, poster_url, is_deleted, created_at, updated_at`

func scanMovie(row interface{ Scan(...interface{}) error }) (*model.Movie, error) {
	var m model.Movie
	var desc, poster sql.NullString
	if err := row.Scan(&m.ID, &m.Title, &desc, &m.DurationMin, &poster, &m.IsDeleted, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		m.Description = &d
	}
	if poster.Valid {
		p := poster.String
		m.PosterURL = &p
	}
	return &m, nil
}

// Create inserts a movie. On success the movie's ID is populated.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, description, duration_min, poster_url) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.DurationMin, m.PosterURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID retrieves a movie by its id, including soft-deleted ones.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, `SELECT `+movieCols+` FROM movies WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns all movies that are not soft-deleted, ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+movieCols+` FROM movies WHERE is_deleted = 0 ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update changes a movie's mutable fields.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies SET title = ?, description = ?, duration_min = ?, poster_url = ? WHERE id = ? AND is_deleted = 0`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.DurationMin, m.PosterURL, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gerr := r.GetByID(ctx, m.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// SoftDelete flags a movie as deleted so it disappears from listings
// while past screenings keep their reference.
func (r *MovieRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE movies SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
