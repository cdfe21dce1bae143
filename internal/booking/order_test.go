package booking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCheckShape(t *testing.T) {
	valid := Order{
		ScreeningID: 1,
		Lines:       []TicketLine{{TypeID: 1, Count: 2}},
	}
	assert.NoError(t, valid.CheckShape())

	cases := map[string]Order{
		"no screening":   {Lines: []TicketLine{{TypeID: 1, Count: 1}}},
		"no lines":       {ScreeningID: 1},
		"zero count":     {ScreeningID: 1, Lines: []TicketLine{{TypeID: 1, Count: 0}}},
		"negative count": {ScreeningID: 1, Lines: []TicketLine{{TypeID: 1, Count: -3}}},
		"zero type id":   {ScreeningID: 1, Lines: []TicketLine{{TypeID: 0, Count: 1}}},
	}
	for name, ord := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, ord.CheckShape(), ErrInvalidOrder)
		})
	}
}

func TestValidateTotalMatches(t *testing.T) {
	ord := Order{
		ScreeningID: 1,
		Lines: []TicketLine{
			{TypeID: 1, Count: 2, SubmittedPrice: d("12.50")},
			{TypeID: 2, Count: 1, SubmittedPrice: d("8.00")},
		},
		TotalPrice: d("33.00"),
	}
	prices := map[uint64]decimal.Decimal{1: d("12.50"), 2: d("8.00")}

	total, err := ord.ValidateTotal(prices)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("33.00")))
}

func TestValidateTotalIgnoresSubmittedLinePrices(t *testing.T) {
	// client lies about the per-line price but the total is right;
	// only server-side prices count
	ord := Order{
		ScreeningID: 1,
		Lines:       []TicketLine{{TypeID: 1, Count: 2, SubmittedPrice: d("0.01")}},
		TotalPrice:  d("25.00"),
	}
	prices := map[uint64]decimal.Decimal{1: d("12.50")}

	total, err := ord.ValidateTotal(prices)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("25.00")))
}

func TestValidateTotalMismatch(t *testing.T) {
	ord := Order{
		ScreeningID: 1,
		Lines:       []TicketLine{{TypeID: 1, Count: 2}},
		TotalPrice:  d("20.00"), // server says 25.00
	}
	prices := map[uint64]decimal.Decimal{1: d("12.50")}

	_, err := ord.ValidateTotal(prices)
	assert.ErrorIs(t, err, ErrPriceMismatch)
}

func TestValidateTotalUnknownType(t *testing.T) {
	ord := Order{
		ScreeningID: 1,
		Lines:       []TicketLine{{TypeID: 99, Count: 1}},
		TotalPrice:  d("12.50"),
	}
	prices := map[uint64]decimal.Decimal{1: d("12.50")}

	_, err := ord.ValidateTotal(prices)
	assert.ErrorIs(t, err, ErrUnknownTicketType)
}

func TestValidateTotalScaleInsensitive(t *testing.T) {
	// 25.0 and 25.00 are the same amount
	ord := Order{
		ScreeningID: 1,
		Lines:       []TicketLine{{TypeID: 1, Count: 2}},
		TotalPrice:  d("25.0"),
	}
	prices := map[uint64]decimal.Decimal{1: d("12.50")}

	_, err := ord.ValidateTotal(prices)
	assert.NoError(t, err)
}

func TestTotalCountAndTypeIDs(t *testing.T) {
	ord := Order{
		ScreeningID: 1,
		Lines: []TicketLine{
			{TypeID: 3, Count: 2},
			{TypeID: 1, Count: 1},
			{TypeID: 3, Count: 1},
		},
	}
	assert.Equal(t, 4, ord.TotalCount())
	assert.Equal(t, []uint64{3, 1, 3}, ord.TypeIDs())
}
