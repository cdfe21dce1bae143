package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions

	"github.com/veletic/cinema-ticketing/internal/model"
)

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo provides methods to work with seats in the database,
// including the locking read that backs the booking transaction.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// CreateBulk inserts numbered seats for a room in a single statement.
// Seats are numbered sequentially starting after the current maximum
// seat number of the room.
func (r *SeatRepo) CreateBulk(ctx context.Context, roomID uint64, count int) error {
	if count <= 0 {
		return nil
	}
	var maxNum sql.NullInt64
	if err := r.db.QueryRowContext(ctx,
		`SELECT MAX(seat_number) FROM seats WHERE room_id = ?`, roomID).Scan(&maxNum); err != nil {
		return err
	}
	next := uint32(1)
	if maxNum.Valid {
		next = uint32(maxNum.Int64) + 1
	}
	query := `INSERT INTO seats (room_id, seat_number) VALUES `
	args := make([]interface{}, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, roomID, next+uint32(i))
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, room_id, seat_number, is_deleted, created_at, updated_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.RoomID, &s.SeatNumber, &s.IsDeleted, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByRoom retrieves all non-deleted seats of a room ordered by seat number.
func (r *SeatRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error) {
	const q = `SELECT id, room_id, seat_number, is_deleted, created_at, updated_at
	           FROM seats
	           WHERE room_id = ? AND is_deleted = 0
	           ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.RoomID, &s.SeatNumber, &s.IsDeleted, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SoftDelete flags a seat as deleted.  Existing tickets keep their
// reference; the seat is simply never offered again.
func (r *SeatRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE seats SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// ReserveForScreeningTx returns up to `limit` seat IDs of the
// screening's room that are not soft-deleted and not yet ticketed for
// the screening, locking the returned rows for the duration of the
// enclosing transaction (SELECT ... FOR UPDATE).  Two concurrent
// bookings against the same screening scan seats in the same order,
// so the second blocks on the first's row locks and then observes the
// tickets the first one committed.  The caller must check the length
// of the result: fewer rows than requested means the screening does
// not have enough free seats.
func (r *SeatRepo) ReserveForScreeningTx(ctx context.Context, tx *sql.Tx, screeningID uint64, limit int) ([]uint64, error) {
	const q = `SELECT s.id
	           FROM seats s
	           WHERE s.room_id = (SELECT room_id FROM screenings WHERE id = ?)
	             AND s.is_deleted = 0
	             AND NOT EXISTS (
	                 SELECT 1 FROM tickets t
	                 WHERE t.screening_id = ? AND t.seat_id = s.id
	             )
	           ORDER BY s.seat_number
	           LIMIT ?
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, screeningID, screeningID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatIDs := make([]uint64, 0, limit)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		seatIDs = append(seatIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seatIDs, nil
}

// SeatAvailability pairs a seat with its availability for one screening.
type SeatAvailability struct {
	SeatID     uint64 `json:"seat_id"`
	SeatNumber uint32 `json:"seat_number"`
	Taken      bool   `json:"taken"`
}

// AvailabilityByScreening returns every active seat of the screening's
// room together with a flag telling whether a ticket already consumes
// it.  This is a plain read used by the browse surface; it takes no
// locks.
func (r *SeatRepo) AvailabilityByScreening(ctx context.Context, screeningID uint64) ([]SeatAvailability, error) {
	const q = `SELECT s.id, s.seat_number,
	                  EXISTS (
	                      SELECT 1 FROM tickets t
	                      WHERE t.screening_id = ? AND t.seat_id = s.id
	                  ) AS taken
	           FROM seats s
	           WHERE s.room_id = (SELECT room_id FROM screenings WHERE id = ?)
	             AND s.is_deleted = 0
	           ORDER BY s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, screeningID, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]SeatAvailability, 0)
	for rows.Next() {
		var sa SeatAvailability
		if err := rows.Scan(&sa.SeatID, &sa.SeatNumber, &sa.Taken); err != nil {
			return nil, err
		}
		result = append(result, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
