// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketsBookedEvent is published when a checkout commits.  It carries
// enough information for downstream consumers to log, notify, or feed
// analytics without querying the primary database.
type TicketsBookedEvent struct {
    ScreeningID   uint64   `json:"screening_id"`
    UserID        uint64   `json:"user_id"`
    MovieTitle    string   `json:"movie_title"`
    CinemaName    string   `json:"cinema_name"`
    RoomName      string   `json:"room_name"`
    StartsAt      string   `json:"starts_at"`
    SeatIDs       []uint64 `json:"seat_ids"`
    SeatNumbers   []uint32 `json:"seat_numbers"`
    TicketsBooked int      `json:"tickets_booked"`
    TotalPrice    string   `json:"total_price"`
    PaymentRef    string   `json:"payment_ref"`
    BookedAt      string   `json:"booked_at"`
}
