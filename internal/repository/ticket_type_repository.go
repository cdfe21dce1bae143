package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/veletic/cinema-ticketing/internal/model"
)

// ErrTicketTypeNotFound is returned when a ticket type lookup yields no rows.
var ErrTicketTypeNotFound = errors.New("ticket type not found")

// TicketTypeRepo provides access to the priced admission categories.
// For the booking flow this is read-only reference data; the admin
// surface may edit it.
type TicketTypeRepo struct {
	db *sql.DB
}

// NewTicketTypeRepo constructs a TicketTypeRepo with the given DB handle.
func NewTicketTypeRepo(db *sql.DB) *TicketTypeRepo { return &TicketTypeRepo{db: db} }

// Create inserts a ticket type. On success its ID is populated.
func (r *TicketTypeRepo) Create(ctx context.Context, t *model.TicketType) error {
	const q = `INSERT INTO ticket_types (name, price) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Price.String())
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
	t.ID = uint64(id)
	return nil
}

// GetByID retrieves a ticket type by its id.
func (r *TicketTypeRepo) GetByID(ctx context.Context, id uint64) (*model.TicketType, error) {
	const q = `SELECT id, name, price, created_at, updated_at FROM ticket_types WHERE id = ?`
	var t model.TicketType
	var price string
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &price, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketTypeNotFound
		}
		return nil, err
	}
	t.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all ticket types ordered by id.
func (r *TicketTypeRepo) List(ctx context.Context) ([]model.TicketType, error) {
	const q = `SELECT id, name, price, created_at, updated_at FROM ticket_types ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.TicketType, 0)
	for rows.Next() {
		var t model.TicketType
		var price string
		if err := rows.Scan(&t.ID, &t.Name, &price, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if t.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetPrices loads the price of each requested type id into a map.  A
// missing id is simply absent from the map; callers decide whether
// that is an error.  Duplicate ids are collapsed.
func (r *TicketTypeRepo) GetPrices(ctx context.Context, ids []uint64) (map[uint64]decimal.Decimal, error) {
	prices := make(map[uint64]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT id, price FROM ticket_types WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var price string
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		prices[id] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}

// Update changes a ticket type's name and price.
func (r *TicketTypeRepo) Update(ctx context.Context, t *model.TicketType) error {
	const q = `UPDATE ticket_types SET name = ?, price = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Price.String(), t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gerr := r.GetByID(ctx, t.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// Delete removes a ticket type.  Deletion fails with ErrConflict when
// tickets were sold under it.
func (r *TicketTypeRepo) Delete(ctx context.Context, id uint64) error {
	var sold int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets WHERE ticket_type_id = ?`, id).Scan(&sold); err != nil {
		return err
	}
	if sold > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM ticket_types WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTicketTypeNotFound
	}
	return nil
}
