package model

import "time"

// Movie is a film that can be scheduled for screenings.  Movies are
// soft-deleted so that past screenings and tickets keep their titles.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – movie title.
//  Description – optional synopsis.
//  DurationMin – running time in minutes.
//  PosterURL   – optional poster image location.
//  IsDeleted   – soft-delete flag.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Movie struct {
    ID          uint64    // movies.id
    Title       string    // movies.title
    Description *string   // movies.description (nullable)
    DurationMin uint32    // movies.duration_min
    PosterURL   *string   // movies.poster_url (nullable)
    IsDeleted   bool      // movies.is_deleted
    CreatedAt   time.Time // movies.created_at
    UpdatedAt   time.Time // movies.updated_at
}
