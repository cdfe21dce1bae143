// Package booking implements the transactional checkout core: price
// validation, pessimistic seat reservation, allocation of seats to
// ticket lines, payment and atomic ticket persistence.
package booking

import "errors"

// ErrPriceMismatch is returned when the client-submitted total does
// not equal the server-computed sum of count × type price.  The order
// is rejected before any transaction or lock is taken; resubmitting a
// corrected order succeeds.
var ErrPriceMismatch = errors.New("submitted total does not match ticket prices")

// ErrInsufficientInventory is returned when fewer free seats exist
// than tickets requested at lock time.  The transaction is rolled
// back; seat availability is left unchanged.
var ErrInsufficientInventory = errors.New("not enough free seats for this screening")

// ErrUnknownTicketType is returned when an order references a ticket
// type id that does not exist.
var ErrUnknownTicketType = errors.New("unknown ticket type")

// ErrPaymentDeclined is returned when the payment provider rejects
// the charge.  The transaction is rolled back and no ticket is issued.
var ErrPaymentDeclined = errors.New("payment declined")

// ErrPaymentFailed is returned when the payment provider errors or
// times out.  It is deliberately distinct from persistence failures:
// the caller can tell "your card was not charged" apart from "we
// broke".  The transaction is rolled back either way.
var ErrPaymentFailed = errors.New("payment processing failed")
