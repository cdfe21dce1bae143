package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veletic/cinema-ticketing/internal/monitoring"
	"github.com/veletic/cinema-ticketing/internal/payment"
	"github.com/veletic/cinema-ticketing/internal/repository"
)

type scriptedProvider struct {
	res    payment.Result
	err    error
	called bool
}

func (p *scriptedProvider) Charge(ctx context.Context, req payment.Request) (payment.Result, error) {
	p.called = true
	return p.res, p.err
}

func newBookingService(t *testing.T, provider payment.Provider) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	svc := NewService(db,
		repository.NewSeatRepo(db),
		repository.NewTicketRepo(db),
		repository.NewTicketTypeRepo(db),
		repository.NewScreeningRepo(db),
		provider, time.Second)
	return svc, mock
}

// twoSeatOrder is two tickets of type 1 at 12.50 each.
func twoSeatOrder() Order {
	return Order{
		ScreeningID: 7,
		Lines:       []TicketLine{{TypeID: 1, Count: 2}},
		TotalPrice:  decimal.RequireFromString("25.00"),
	}
}

func expectPreTx(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT id, price FROM ticket_types WHERE id IN").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(1, "12.50"))
	now := time.Now()
	mock.ExpectQuery("FROM screenings WHERE id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "room_id", "starts_at", "ends_at", "created_at", "updated_at"}).
			AddRow(7, 3, 5, now, now.Add(2*time.Hour), now, now))
}

func lockRows(ids ...uint64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	return rows
}

func TestCompleteCommitsOnSuccess(t *testing.T) {
	provider := &scriptedProvider{res: payment.Result{Status: payment.Approved, Ref: "sim_ok"}}
	svc, mock := newBookingService(t, provider)

	expectPreTx(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(7, 7, 2).WillReturnRows(lockRows(10, 11))
	mock.ExpectExec("INSERT INTO tickets").WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectQuery("SELECT id, seat_number FROM seats WHERE id IN").
		WithArgs(10, 11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number"}).AddRow(10, 1).AddRow(11, 2))
	mock.ExpectCommit()

	res, err := svc.Complete(context.Background(), 42, twoSeatOrder())
	require.NoError(t, err)
	assert.Equal(t, 2, res.TicketsBooked)
	assert.Equal(t, []uint64{10, 11}, res.SeatIDs)
	assert.Equal(t, []uint32{1, 2}, res.SeatNumbers)
	assert.Equal(t, "25.00", res.Total.String())
	assert.Equal(t, "sim_ok", res.PaymentRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRollsBackOnDecline(t *testing.T) {
	provider := &scriptedProvider{res: payment.Result{Status: payment.Declined}}
	svc, mock := newBookingService(t, provider)

	expectPreTx(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(7, 7, 2).WillReturnRows(lockRows(10, 11))
	mock.ExpectRollback() // no INSERT may reach the database

	res, err := svc.Complete(context.Background(), 42, twoSeatOrder())
	assert.ErrorIs(t, err, ErrPaymentDeclined)
	assert.Nil(t, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRollsBackOnInsertFailure(t *testing.T) {
	provider := &scriptedProvider{res: payment.Result{Status: payment.Approved, Ref: "sim_dup"}}
	svc, mock := newBookingService(t, provider)

	expectPreTx(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(7, 7, 2).WillReturnRows(lockRows(10, 11))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnError(errors.New("Error 1062: Duplicate entry '7-10' for key 'uq_tickets_screening_seat'"))
	mock.ExpectRollback()

	res, err := svc.Complete(context.Background(), 42, twoSeatOrder())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRollsBackOnShortInventory(t *testing.T) {
	provider := &scriptedProvider{res: payment.Result{Status: payment.Approved, Ref: "sim_na"}}
	svc, mock := newBookingService(t, provider)

	expectPreTx(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(7, 7, 2).WillReturnRows(lockRows(10))
	mock.ExpectRollback()

	res, err := svc.Complete(context.Background(), 42, twoSeatOrder())
	assert.ErrorIs(t, err, ErrInsufficientInventory)
	assert.Nil(t, res)
	assert.False(t, provider.called, "payment must not run without the full seat count locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRollsBackOnPaymentError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("gateway timeout")}
	svc, mock := newBookingService(t, provider)

	expectPreTx(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs(7, 7, 2).WillReturnRows(lockRows(10, 11))
	mock.ExpectRollback()

	res, err := svc.Complete(context.Background(), 42, twoSeatOrder())
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Nil(t, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutcomeLabels(t *testing.T) {
	cases := []struct {
		name string
		res  *Result
		err  error
		want string
	}{
		{"booked", &Result{TicketsBooked: 2}, nil, monitoring.OutcomeBooked},
		{"invalid order", nil, ErrInvalidOrder, monitoring.OutcomeInvalidOrder},
		{"unknown type", nil, ErrUnknownTicketType, monitoring.OutcomeInvalidOrder},
		{"price mismatch", nil, ErrPriceMismatch, monitoring.OutcomePriceMismatch},
		{"no inventory", nil, ErrInsufficientInventory, monitoring.OutcomeNoInventory},
		{"declined", nil, ErrPaymentDeclined, monitoring.OutcomePaymentFailed},
		{"unknown screening", nil, repository.ErrScreeningNotFound, monitoring.OutcomeRejected},
		{"db down", nil, errors.New("connection reset"), monitoring.OutcomeStorageFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, outcomeOf(tc.res, tc.err))
		})
	}
}
