package model

import "time"

// Cinema represents a theatre venue.  A cinema contains one or more
// rooms in which screenings take place.  This struct corresponds to a
// row in the `cinemas` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique cinema name.
//  City      – city the venue is located in.
//  Address   – optional street address.
//  CreatedAt – timestamp when the cinema was created.
//  UpdatedAt – timestamp of last update.
type Cinema struct {
    ID        uint64    // cinemas.id
    Name      string    // cinemas.name
    City      string    // cinemas.city
    Address   *string   // cinemas.address (nullable)
    CreatedAt time.Time // cinemas.created_at
    UpdatedAt time.Time // cinemas.updated_at
}

// Room is an individual auditorium within a cinema.  Seats belong to
// exactly one room and screenings are scheduled per room.
//
// Fields:
//  ID        – primary key identifier.
//  CinemaID  – cinema the room belongs to.
//  Name      – room name unique per cinema (e.g. "Sala 1").
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
    ID        uint64    // rooms.id
    CinemaID  uint64    // rooms.cinema_id
    Name      string    // rooms.name
    CreatedAt time.Time // rooms.created_at
    UpdatedAt time.Time // rooms.updated_at
}
