package model

import "time"

// Screening represents a scheduled showing of a movie in a particular
// room.  Once created a screening only changes through explicit admin
// edits; the booking flow treats it as immutable.
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – movie being shown.
//  RoomID    – room where the screening takes place.
//  StartsAt  – when the screening begins.
//  EndsAt    – when the screening ends (must be after StartsAt).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Screening struct {
    ID        uint64    // screenings.id
    MovieID   uint64    // screenings.movie_id
    RoomID    uint64    // screenings.room_id
    StartsAt  time.Time // screenings.starts_at
    EndsAt    time.Time // screenings.ends_at
    CreatedAt time.Time // screenings.created_at
    UpdatedAt time.Time // screenings.updated_at
}
