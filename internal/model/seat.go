package model

import "time"

// Seat describes a physical seat in a room.  Seats are uniquely
// identified by their room and seat number.  A soft-deleted seat stays
// in the table so that historical tickets keep a valid reference, but
// it is never offered to new bookings.
//
// Fields:
//  ID         – primary key identifier.
//  RoomID     – room to which this seat belongs.
//  SeatNumber – number of the seat within the room (1-based).
//  IsDeleted  – soft-delete flag; deleted seats are not bookable.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Seat struct {
    ID         uint64    // seats.id
    RoomID     uint64    // seats.room_id
    SeatNumber uint32    // seats.seat_number
    IsDeleted  bool      // seats.is_deleted
    CreatedAt  time.Time // seats.created_at
    UpdatedAt  time.Time // seats.updated_at
}
