package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateZipsSeatsInOrder(t *testing.T) {
	seats := []uint64{10, 11, 12, 13}
	lines := []TicketLine{
		{TypeID: 1, Count: 2},
		{TypeID: 2, Count: 1},
	}

	got, err := Allocate(seats, lines)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, Assignment{SeatID: 10, TypeID: 1}, got[0])
	assert.Equal(t, Assignment{SeatID: 11, TypeID: 1}, got[1])
	assert.Equal(t, Assignment{SeatID: 12, TypeID: 2}, got[2])
}

func TestAllocateIsDeterministic(t *testing.T) {
	seats := []uint64{5, 6, 7}
	lines := []TicketLine{{TypeID: 9, Count: 3}}

	first, err := Allocate(seats, lines)
	require.NoError(t, err)
	second, err := Allocate(seats, lines)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAllocateInsufficientSeats(t *testing.T) {
	seats := []uint64{1}
	lines := []TicketLine{{TypeID: 1, Count: 2}}

	got, err := Allocate(seats, lines)
	assert.ErrorIs(t, err, ErrInsufficientInventory)
	assert.Nil(t, got)
}

func TestAllocateLeavesSurplusSeatsUnused(t *testing.T) {
	seats := []uint64{1, 2, 3, 4, 5}
	lines := []TicketLine{{TypeID: 1, Count: 2}}

	got, err := Allocate(seats, lines)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].SeatID)
	assert.Equal(t, uint64(2), got[1].SeatID)
}
