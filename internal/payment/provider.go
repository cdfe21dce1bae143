// Package payment defines the external payment provider boundary of
// the checkout flow.  The booking transaction talks to a Provider and
// treats its failures as their own error class, separate from
// persistence failures.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the tagged outcome of a charge attempt.
type Status uint8

const (
	Approved Status = iota // the charge went through
	Declined               // the provider refused the charge
)

// Request describes one charge: who pays what for which order.
type Request struct {
	UserID      uint64
	ScreeningID uint64
	Amount      decimal.Decimal
}

// Result is the provider's answer to an approved or declined charge.
// Ref identifies the charge at the provider and is stored on tickets.
type Result struct {
	Status Status
	Ref    string
}

// Provider is the gateway interface.  Charge blocks until the
// provider answers or ctx is cancelled; an error means the outcome is
// unknown (network failure, timeout) as opposed to a clean decline.
type Provider interface {
	Charge(ctx context.Context, req Request) (Result, error)
}

// SimulatedProvider stands in for a real gateway.  It waits a fixed
// processing delay and approves every non-negative charge, declining
// the rest.  The delay also honours ctx so that the booking
// transaction's payment timeout cuts it short.
type SimulatedProvider struct {
	Delay time.Duration
}

// NewSimulated returns a SimulatedProvider with the given processing delay.
func NewSimulated(delay time.Duration) *SimulatedProvider {
	return &SimulatedProvider{Delay: delay}
}

// Charge implements Provider.
func (p *SimulatedProvider) Charge(ctx context.Context, req Request) (Result, error) {
	if p.Delay > 0 {
		t := time.NewTimer(p.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-t.C:
		}
	}
	if req.Amount.IsNegative() {
		return Result{Status: Declined}, nil
	}
	ref, err := chargeRef()
	if err != nil {
		return Result{}, err
	}
	return Result{Status: Approved, Ref: ref}, nil
}

// chargeRef produces an opaque reference comparable to what a real
// gateway would return.
func chargeRef() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sim_" + hex.EncodeToString(b), nil
}
