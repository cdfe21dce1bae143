// Package monitoring exposes Prometheus metrics for the booking flow.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_bookings_total",
			Help: "Checkout attempts by outcome",
		},
		[]string{"outcome"},
	)

	seatsBooked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_seats_booked_total",
			Help: "Seats successfully booked",
		},
	)

	bookingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_booking_duration_seconds",
			Help:    "Wall time of the whole booking transaction",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	paymentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_payment_duration_seconds",
			Help:    "Wall time of the payment provider call",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
)

// Booking outcomes recorded on the checkout counter.
const (
	OutcomeBooked         = "booked"
	OutcomeInvalidOrder   = "invalid_order"
	OutcomePriceMismatch  = "price_mismatch"
	OutcomeNoInventory    = "insufficient_inventory"
	OutcomePaymentFailed  = "payment_failed"
	OutcomeRejected       = "rejected"
	OutcomeStorageFailure = "storage_failure"
)

// ObserveBooking records one checkout attempt.
func ObserveBooking(outcome string, seats int, took time.Duration) {
	bookings.WithLabelValues(outcome).Inc()
	bookingDuration.Observe(took.Seconds())
	if outcome == OutcomeBooked && seats > 0 {
		seatsBooked.Add(float64(seats))
	}
}

// ObservePayment records the duration of one provider call.
func ObservePayment(took time.Duration) {
	paymentDuration.Observe(took.Seconds())
}
