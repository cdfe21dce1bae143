package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/veletic/cinema-ticketing/internal/booking"
	"github.com/veletic/cinema-ticketing/internal/queue"
	"github.com/veletic/cinema-ticketing/internal/repository"
	queue_publisher "github.com/veletic/cinema-ticketing/internal/service"
)

// BookingService is the slice of the booking package the checkout
// endpoint needs.  Kept as an interface so tests can substitute
// outcomes without a database.
type BookingService interface {
	Complete(ctx context.Context, userID uint64, ord booking.Order) (*booking.Result, error)
}

// ScreeningInfoLoader resolves display details of a screening for the
// tickets.booked event payload.
type ScreeningInfoLoader interface {
	GetInfo(ctx context.Context, id uint64) (*repository.ScreeningInfo, error)
}

// CheckoutHandler exposes POST /api/v1/checkout/complete.  It parses
// the order, delegates to the booking service and maps its error
// taxonomy onto HTTP statuses.  Beyond invoking the service it never
// touches the database.
type CheckoutHandler struct {
	Booking    BookingService
	Screenings ScreeningInfoLoader
	// Publish emits the tickets.booked event after a successful
	// booking.  Failures are logged by the publisher and ignored
	// here; eventing must never fail a committed checkout.
	Publish func(ctx context.Context, ev queue.TicketsBookedEvent) error
}

// NewCheckoutHandler constructs a CheckoutHandler wired to the RabbitMQ
// publisher.
func NewCheckoutHandler(b BookingService, s ScreeningInfoLoader) *CheckoutHandler {
	if b == nil {
		panic("nil booking service passed to NewCheckoutHandler")
	}
	return &CheckoutHandler{Booking: b, Screenings: s, Publish: queue_publisher.PublishTicketsBooked}
}

// Complete handles POST /api/v1/checkout/complete.
func (h *CheckoutHandler) Complete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var ord booking.Order
	if err := c.Bind(&ord); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	res, err := h.Booking.Complete(c.Request().Context(), userID, ord)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidOrder):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order"})
		case errors.Is(err, booking.ErrUnknownTicketType):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown ticket type"})
		case errors.Is(err, booking.ErrPriceMismatch):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price mismatch"})
		case errors.Is(err, booking.ErrInsufficientInventory):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "not enough free seats"})
		case errors.Is(err, repository.ErrScreeningNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		case errors.Is(err, booking.ErrPaymentDeclined):
			return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "payment declined"})
		case errors.Is(err, booking.ErrPaymentFailed):
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment processing failed"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}

	h.publishBooked(userID, ord.ScreeningID, res)

	return c.JSON(http.StatusOK, echo.Map{
		"message":        "booking confirmed",
		"tickets_booked": res.TicketsBooked,
		"seat_ids":       res.SeatIDs,
	})
}

// publishBooked assembles and emits the tickets.booked event in the
// background.  The request is already answered by commit time, so the
// publish must not block or fail it.
func (h *CheckoutHandler) publishBooked(userID, screeningID uint64, res *booking.Result) {
	if h.Publish == nil {
		return
	}
	ev := queue.TicketsBookedEvent{
		ScreeningID:   screeningID,
		UserID:        userID,
		SeatIDs:       res.SeatIDs,
		SeatNumbers:   res.SeatNumbers,
		TicketsBooked: res.TicketsBooked,
		TotalPrice:    res.Total.String(),
		PaymentRef:    res.PaymentRef,
		BookedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if h.Screenings != nil {
			if info, err := h.Screenings.GetInfo(ctx, screeningID); err == nil {
				ev.MovieTitle = info.MovieTitle
				ev.CinemaName = info.CinemaName
				ev.RoomName = info.RoomName
				ev.StartsAt = info.StartsAt
			}
		}
		_ = h.Publish(ctx, ev)
	}()
}
