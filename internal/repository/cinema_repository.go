package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/veletic/cinema-ticketing/internal/model"
)

// ErrCinemaNotFound is returned when a cinema lookup yields no rows.
var ErrCinemaNotFound = errors.New("cinema not found")

// CinemaRepo provides CRUD operations for cinemas.
type CinemaRepo struct {
	db *sql.DB
}

// NewCinemaRepo constructs a CinemaRepo with the given DB handle.
func NewCinemaRepo(db *sql.DB) *CinemaRepo { return &CinemaRepo{db: db} }

// Create inserts a cinema. On success the cinema's ID is populated.
func (r *CinemaRepo) Create(ctx context.Context, c *model.Cinema) error {
	const q = `INSERT INTO cinemas (name, city, address) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.City, c.Address)
	if err != nil {
		if strings.Contains(err.Error(), "1062") { // duplicate name
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID retrieves a cinema by its id.
func (r *CinemaRepo) GetByID(ctx context.Context, id uint64) (*model.Cinema, error) {
	const q = `SELECT id, name, city, address, created_at, updated_at FROM cinemas WHERE id = ?`
	var c model.Cinema
	var address sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&c.ID, &c.Name, &c.City, &address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCinemaNotFound
		}
		return nil, err
	}
	if address.Valid {
		a := address.String
		c.Address = &a
	}
	return &c, nil
}

// List returns all cinemas ordered by name.
func (r *CinemaRepo) List(ctx context.Context) ([]model.Cinema, error) {
	const q = `SELECT id, name, city, address, created_at, updated_at FROM cinemas ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Cinema, 0)
	for rows.Next() {
		var c model.Cinema
		var address sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.City, &address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if address.Valid {
			a := address.String
			c.Address = &a
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update changes a cinema's name, city and address.
func (r *CinemaRepo) Update(ctx context.Context, c *model.Cinema) error {
	const q = `UPDATE cinemas SET name = ?, city = ?, address = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.City, c.Address, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// distinguish "no such row" from "nothing changed"
		if _, gerr := r.GetByID(ctx, c.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// Delete removes a cinema.  Deletion fails with ErrConflict when the
// cinema still contains rooms.
func (r *CinemaRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rooms WHERE cinema_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM cinemas WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") { // FK restriction raced us
			return ErrConflict
		}
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrCinemaNotFound
	}
	return nil
}
