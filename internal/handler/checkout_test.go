package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veletic/cinema-ticketing/internal/booking"
	"github.com/veletic/cinema-ticketing/internal/queue"
	"github.com/veletic/cinema-ticketing/internal/repository"
)

type stubBooking struct {
	res     *booking.Result
	err     error
	gotUser uint64
	gotOrd  booking.Order
}

func (s *stubBooking) Complete(ctx context.Context, userID uint64, ord booking.Order) (*booking.Result, error) {
	s.gotUser = userID
	s.gotOrd = ord
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

type eventRecorder struct {
	mu sync.Mutex
	wg sync.WaitGroup
	ev queue.TicketsBookedEvent
}

func (r *eventRecorder) publish(ctx context.Context, ev queue.TicketsBookedEvent) error {
	r.mu.Lock()
	r.ev = ev
	r.mu.Unlock()
	r.wg.Done()
	return nil
}

const orderBody = `{
	"screening_id": 7,
	"ticket_types": [{"type_id": 1, "count": 2, "ticket_type_price": "12.50"}],
	"total_price": "25.00"
}`

func doCheckout(t *testing.T, h *CheckoutHandler, body string, userID interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/complete", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	require.NoError(t, h.Complete(c))
	return rec
}

func TestCheckoutCompleteSuccess(t *testing.T) {
	stub := &stubBooking{res: &booking.Result{
		TicketsBooked: 2,
		SeatIDs:       []uint64{10, 11},
		SeatNumbers:   []uint32{1, 2},
		Total:         decimal.RequireFromString("25.00"),
		PaymentRef:    "sim_abc",
	}}
	rec := &eventRecorder{}
	rec.wg.Add(1)
	h := &CheckoutHandler{Booking: stub, Publish: rec.publish}

	resp := doCheckout(t, h, orderBody, float64(42))
	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "booking confirmed", body["message"])
	assert.Equal(t, float64(2), body["tickets_booked"])

	assert.Equal(t, uint64(42), stub.gotUser)
	assert.Equal(t, uint64(7), stub.gotOrd.ScreeningID)
	require.Len(t, stub.gotOrd.Lines, 1)
	assert.Equal(t, 2, stub.gotOrd.Lines[0].Count)

	rec.wg.Wait() // event goes out asynchronously
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, uint64(7), rec.ev.ScreeningID)
	assert.Equal(t, uint64(42), rec.ev.UserID)
	assert.Equal(t, []uint64{10, 11}, rec.ev.SeatIDs)
	assert.Equal(t, "25.00", rec.ev.TotalPrice)
	assert.Equal(t, "sim_abc", rec.ev.PaymentRef)
}

func TestCheckoutCompleteErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid order", booking.ErrInvalidOrder, http.StatusBadRequest},
		{"unknown type", booking.ErrUnknownTicketType, http.StatusBadRequest},
		{"price mismatch", booking.ErrPriceMismatch, http.StatusBadRequest},
		{"no inventory", booking.ErrInsufficientInventory, http.StatusBadRequest},
		{"unknown screening", repository.ErrScreeningNotFound, http.StatusNotFound},
		{"payment declined", booking.ErrPaymentDeclined, http.StatusPaymentRequired},
		{"payment failed", booking.ErrPaymentFailed, http.StatusBadGateway},
		{"storage failure", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			published := false
			h := &CheckoutHandler{
				Booking: &stubBooking{err: tc.err},
				Publish: func(ctx context.Context, ev queue.TicketsBookedEvent) error {
					published = true
					return nil
				},
			}
			resp := doCheckout(t, h, orderBody, float64(1))
			assert.Equal(t, tc.code, resp.Code)
			assert.False(t, published, "no event may be published on failure")
		})
	}
}

func TestCheckoutCompleteRequiresUser(t *testing.T) {
	h := &CheckoutHandler{Booking: &stubBooking{}}
	resp := doCheckout(t, h, orderBody, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCheckoutCompleteBadBody(t *testing.T) {
	h := &CheckoutHandler{Booking: &stubBooking{}}
	resp := doCheckout(t, h, `{"screening_id": "not-a-number"`, float64(1))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
