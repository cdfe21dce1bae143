package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veletic/cinema-ticketing/internal/monitoring"
	"github.com/veletic/cinema-ticketing/internal/payment"
	"github.com/veletic/cinema-ticketing/internal/repository"
)

// Result summarizes a committed booking.
type Result struct {
	TicketsBooked int
	SeatIDs       []uint64
	SeatNumbers   []uint32
	Total         decimal.Decimal
	PaymentRef    string
}

// Service orchestrates the booking transaction.  The steps are linear:
// validate the price, begin a transaction, lock and fetch free seats,
// check capacity, charge the payment provider under a timeout, insert
// the tickets and commit.  Any failure after Begin rolls the whole
// transaction back, so concurrent observers only ever see full success
// or no change at all.
type Service struct {
	db         *sql.DB
	seats      *repository.SeatRepo
	tickets    *repository.TicketRepo
	types      *repository.TicketTypeRepo
	screenings *repository.ScreeningRepo
	provider   payment.Provider
	payTimeout time.Duration
}

// NewService constructs a booking Service.  All dependencies must be non-nil.
func NewService(db *sql.DB, seats *repository.SeatRepo, tickets *repository.TicketRepo, types *repository.TicketTypeRepo, screenings *repository.ScreeningRepo, provider payment.Provider, payTimeout time.Duration) *Service {
	if db == nil || seats == nil || tickets == nil || types == nil || screenings == nil || provider == nil {
		panic("nil dependency passed to booking.NewService")
	}
	if payTimeout <= 0 {
		payTimeout = 3 * time.Second
	}
	return &Service{
		db:         db,
		seats:      seats,
		tickets:    tickets,
		types:      types,
		screenings: screenings,
		provider:   provider,
		payTimeout: payTimeout,
	}
}

// Complete runs the full checkout for an authenticated user.  It
// returns the sentinel errors of this package for client faults
// (ErrPriceMismatch, ErrInsufficientInventory, ErrUnknownTicketType,
// ErrPaymentDeclined, ErrPaymentFailed, repository.ErrScreeningNotFound)
// and wrapped database errors for everything else.
func (s *Service) Complete(ctx context.Context, userID uint64, ord Order) (*Result, error) {
	started := time.Now()
	res, err := s.complete(ctx, userID, ord)
	monitoring.ObserveBooking(outcomeOf(res, err), bookedSeats(res), time.Since(started))
	return res, err
}

func (s *Service) complete(ctx context.Context, userID uint64, ord Order) (*Result, error) {
	if err := ord.CheckShape(); err != nil {
		return nil, err
	}

	// Price validation happens before any transaction or lock.  A
	// mismatch is a hard abort, never a warning.
	prices, err := s.types.GetPrices(ctx, ord.TypeIDs())
	if err != nil {
		return nil, fmt.Errorf("load ticket prices: %w", err)
	}
	total, err := ord.ValidateTotal(prices)
	if err != nil {
		return nil, err
	}

	if _, err := s.screenings.GetByID(ctx, ord.ScreeningID); err != nil {
		return nil, err
	}

	need := ord.TotalCount()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin booking transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock & fetch.  The locking read serializes concurrent bookings
	// against this screening's seat pool.
	seatIDs, err := s.seats.ReserveForScreeningTx(ctx, tx, ord.ScreeningID, need)
	if err != nil {
		return nil, fmt.Errorf("reserve seats: %w", err)
	}
	if len(seatIDs) < need {
		return nil, ErrInsufficientInventory
	}

	assignments, err := Allocate(seatIDs, ord.Lines)
	if err != nil {
		return nil, err
	}

	// Charge while holding the row locks, but never longer than the
	// payment timeout: a hung gateway must not pin the seat pool.
	payStarted := time.Now()
	payCtx, cancel := context.WithTimeout(ctx, s.payTimeout)
	payRes, err := s.provider.Charge(payCtx, payment.Request{
		UserID:      userID,
		ScreeningID: ord.ScreeningID,
		Amount:      total,
	})
	cancel()
	monitoring.ObservePayment(time.Since(payStarted))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if payRes.Status != payment.Approved {
		return nil, ErrPaymentDeclined
	}

	records := make([]repository.TicketRecord, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, repository.TicketRecord{
			ScreeningID:  ord.ScreeningID,
			UserID:       userID,
			SeatID:       a.SeatID,
			TicketTypeID: a.TypeID,
			Price:        prices[a.TypeID],
			PaymentRef:   payRes.Ref,
		})
	}
	if err := s.tickets.CreateBulkTx(ctx, tx, records); err != nil {
		return nil, fmt.Errorf("insert tickets: %w", err)
	}

	numbers, err := s.tickets.SeatNumbersTx(ctx, tx, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve seat numbers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking transaction: %w", err)
	}
	committed = true

	seatNumbers := make([]uint32, 0, len(seatIDs))
	for _, id := range seatIDs {
		seatNumbers = append(seatNumbers, numbers[id])
	}
	return &Result{
		TicketsBooked: len(assignments),
		SeatIDs:       seatIDs,
		SeatNumbers:   seatNumbers,
		Total:         total,
		PaymentRef:    payRes.Ref,
	}, nil
}

func outcomeOf(res *Result, err error) string {
	switch {
	case err == nil && res != nil:
		return monitoring.OutcomeBooked
	case errors.Is(err, ErrInvalidOrder) || errors.Is(err, ErrUnknownTicketType):
		return monitoring.OutcomeInvalidOrder
	case errors.Is(err, ErrPriceMismatch):
		return monitoring.OutcomePriceMismatch
	case errors.Is(err, ErrInsufficientInventory):
		return monitoring.OutcomeNoInventory
	case errors.Is(err, ErrPaymentDeclined) || errors.Is(err, ErrPaymentFailed):
		return monitoring.OutcomePaymentFailed
	case errors.Is(err, repository.ErrScreeningNotFound):
		return monitoring.OutcomeRejected
	default:
		return monitoring.OutcomeStorageFailure
	}
}

func bookedSeats(res *Result) int {
	if res == nil {
		return 0
	}
	return res.TicketsBooked
}
