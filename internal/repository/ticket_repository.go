package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TicketRepo provides persistence for tickets.  Tickets are only ever
// created inside the booking transaction and never mutated afterwards;
// everything else is read-side reporting.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// TicketRecord mirrors the columns needed to insert a ticket row.  It
// is used internally by the booking transaction when persisting the
// allocated (seat, type) pairs.
type TicketRecord struct {
	ScreeningID  uint64
	UserID       uint64
	SeatID       uint64
	TicketTypeID uint64
	Price        decimal.Decimal
	PaymentRef   string
}

// CreateBulkTx inserts multiple ticket rows in a single statement
// within the provided transaction.  The caller must commit or roll
// back.  Passing an empty slice has no effect and returns nil.  The
// UNIQUE(screening_id, seat_id) key makes a racing duplicate insert
// fail the whole statement, which the booking transaction turns into
// a rollback.
func (r *TicketRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, tickets []TicketRecord) error {
	if len(tickets) == 0 {
		return nil
	}
	query := `INSERT INTO tickets (screening_id, user_id, seat_id, ticket_type_id, price, payment_ref) VALUES `
	args := make([]interface{}, 0, len(tickets)*6)
	for i, t := range tickets {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, t.ScreeningID, t.UserID, t.SeatID, t.TicketTypeID, t.Price.String(), t.PaymentRef)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// CountByScreening returns the number of tickets sold for a screening.
func (r *TicketRepo) CountByScreening(ctx context.Context, screeningID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets WHERE screening_id = ?`, screeningID).Scan(&n)
	return n, err
}

// TicketDetail is a ticket joined with its screening, movie, room,
// cinema and seat for display to the owning customer.
type TicketDetail struct {
	ID             uint64  `json:"id"`
	ScreeningID    uint64  `json:"screening_id"`
	MovieTitle     string  `json:"movie_title"`
	CinemaName     string  `json:"cinema_name"`
	RoomName       string  `json:"room_name"`
	SeatNumber     uint32  `json:"seat_number"`
	TicketTypeName string  `json:"ticket_type"`
	Price          string  `json:"price"`
	StartsAt       *string `json:"starts_at"`
	EndsAt         *string `json:"ends_at"`
	PurchasedAt    string  `json:"purchased_at"`
}

// ListByUser returns all tickets of a user, newest purchase first.
// When no tickets exist an empty slice is returned.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]TicketDetail, error) {
	const q = `SELECT t.id, t.screening_id, m.title, c.name, ro.name, s.seat_number, tt.name, t.price,
	                  sc.starts_at, sc.ends_at, t.created_at
	           FROM tickets t
	           JOIN screenings sc ON sc.id = t.screening_id
	           JOIN movies m ON m.id = sc.movie_id
	           JOIN rooms ro ON ro.id = sc.room_id
	           JOIN cinemas c ON c.id = ro.cinema_id
	           JOIN seats s ON s.id = t.seat_id
	           JOIN ticket_types tt ON tt.id = t.ticket_type_id
	           WHERE t.user_id = ?
	           ORDER BY t.created_at DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]TicketDetail, 0)
	for rows.Next() {
		var d TicketDetail
		var startsAt, endsAt sql.NullTime
		var purchasedAt time.Time
		if err := rows.Scan(
			&d.ID, &d.ScreeningID, &d.MovieTitle, &d.CinemaName, &d.RoomName,
			&d.SeatNumber, &d.TicketTypeName, &d.Price,
			&startsAt, &endsAt, &purchasedAt,
		); err != nil {
			return nil, err
		}
		if startsAt.Valid {
			iso := startsAt.Time.UTC().Format(time.RFC3339)
			d.StartsAt = &iso
		}
		if endsAt.Valid {
			iso := endsAt.Time.UTC().Format(time.RFC3339)
			d.EndsAt = &iso
		}
		d.PurchasedAt = purchasedAt.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// SeatNumbersTx resolves seat numbers for the given seat ids inside a
// transaction.  Used to enrich the tickets.booked event without an
// extra round-trip after commit.
func (r *TicketRepo) SeatNumbersTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64) (map[uint64]uint32, error) {
	numbers := make(map[uint64]uint32, len(seatIDs))
	if len(seatIDs) == 0 {
		return numbers, nil
	}
	query := `SELECT id, seat_number FROM seats WHERE id IN (`
	args := make([]interface{}, 0, len(seatIDs))
	for i, id := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `)`
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var num uint32
		if err := rows.Scan(&id, &num); err != nil {
			return nil, err
		}
		numbers[id] = num
	}
	return numbers, rows.Err()
}
