package booking

// Assignment pairs one reserved seat with the ticket type it will be
// sold under.
type Assignment struct {
	SeatID uint64
	TypeID uint64
}

// Allocate deterministically assigns available seats to the flattened
// list of requested tickets: type A repeated count_A times, then type
// B, in input order, zipped with the seats in the order the inventory
// query returned them.  One seat per ticket; the type only affects the
// price, never the seat.  There is no randomization and no adjacency
// or accessibility preference.
//
// When fewer seats are available than tickets requested it returns
// ErrInsufficientInventory and no partial allocation.
func Allocate(seatIDs []uint64, lines []TicketLine) ([]Assignment, error) {
	total := 0
	for _, l := range lines {
		total += l.Count
	}
	if len(seatIDs) < total {
		return nil, ErrInsufficientInventory
	}
	out := make([]Assignment, 0, total)
	i := 0
	for _, l := range lines {
		for n := 0; n < l.Count; n++ {
			out = append(out, Assignment{SeatID: seatIDs[i], TypeID: l.TypeID})
			i++
		}
	}
	return out, nil
}
