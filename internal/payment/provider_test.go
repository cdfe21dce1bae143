package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedProviderApproves(t *testing.T) {
	p := NewSimulated(0)

	res, err := p.Charge(context.Background(), Request{
		UserID:      1,
		ScreeningID: 2,
		Amount:      decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.Equal(t, Approved, res.Status)
	assert.True(t, strings.HasPrefix(res.Ref, "sim_"))
}

func TestSimulatedProviderDeclinesNegativeAmount(t *testing.T) {
	p := NewSimulated(0)

	res, err := p.Charge(context.Background(), Request{
		UserID: 1,
		Amount: decimal.NewFromInt(-1),
	})
	require.NoError(t, err)
	assert.Equal(t, Declined, res.Status)
	assert.Empty(t, res.Ref)
}

func TestSimulatedProviderHonoursContext(t *testing.T) {
	p := NewSimulated(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Charge(ctx, Request{UserID: 1, Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second, "charge must abort with the context, not sleep out the delay")
}

func TestChargeRefsAreUnique(t *testing.T) {
	p := NewSimulated(0)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		res, err := p.Charge(context.Background(), Request{UserID: 1, Amount: decimal.NewFromInt(1)})
		require.NoError(t, err)
		assert.False(t, seen[res.Ref], "duplicate charge ref %s", res.Ref)
		seen[res.Ref] = true
	}
}
