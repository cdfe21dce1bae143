package booking

import (
	"errors"

	"github.com/shopspring/decimal"
)

// TicketLine is one (ticket type, count) entry of an order.  The
// SubmittedPrice is the per-ticket price the client believes applies;
// it is informational — validation always uses server-side prices.
type TicketLine struct {
	TypeID         uint64          `json:"type_id"`
	Count          int             `json:"count"`
	SubmittedPrice decimal.Decimal `json:"ticket_type_price"`
}

// Order is a client-submitted checkout request: a screening and a
// breakdown of ticket counts per type, plus the total the client
// computed.  Orders are transient; nothing is persisted until the
// booking transaction commits tickets.
type Order struct {
	ScreeningID uint64          `json:"screening_id"`
	Lines       []TicketLine    `json:"ticket_types"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// ErrInvalidOrder is returned for structurally broken orders (no
// screening, no lines, non-positive counts).
var ErrInvalidOrder = errors.New("invalid order")

// CheckShape validates the structural invariants of the order before
// any price or inventory work is done.
func (o Order) CheckShape() error {
	if o.ScreeningID == 0 || len(o.Lines) == 0 {
		return ErrInvalidOrder
	}
	for _, l := range o.Lines {
		if l.TypeID == 0 || l.Count <= 0 {
			return ErrInvalidOrder
		}
	}
	return nil
}

// TotalCount returns the number of tickets (and therefore seats) the
// order requests.
func (o Order) TotalCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Count
	}
	return n
}

// TypeIDs returns the ticket type ids referenced by the order, in
// input order, duplicates included.
func (o Order) TypeIDs() []uint64 {
	ids := make([]uint64, 0, len(o.Lines))
	for _, l := range o.Lines {
		ids = append(ids, l.TypeID)
	}
	return ids
}

// ValidateTotal recomputes the order total from authoritative prices
// and compares it to the client-submitted total.  A type id missing
// from the price map yields ErrUnknownTicketType; a differing total
// yields ErrPriceMismatch.  Validation is a hard abort: no transaction
// is opened and no seat is touched on failure.
func (o Order) ValidateTotal(prices map[uint64]decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range o.Lines {
		price, ok := prices[l.TypeID]
		if !ok {
			return decimal.Zero, ErrUnknownTicketType
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Count))))
	}
	if !total.Equal(o.TotalPrice) {
		return decimal.Zero, ErrPriceMismatch
	}
	return total, nil
}
