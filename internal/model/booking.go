package model

import "time"

// Booking statuses. A booking starts Confirmed and may only ever
// transition to Cancelled. Rows are never physically deleted.
const (
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// Booking records a confirmed purchase of one or more seats for a
// showing. The movie title is denormalized at booking time and is not
// re-synced if the movie record ever changes. Date and Time are kept as
// the free-text strings the client submitted; together with MovieID they
// form the implicit showing key used when querying prior bookings.
//
// Fields:
//  ID         – auto-assigned, monotonically increasing identifier.
//  MovieID    – foreign reference into movies.
//  MovieTitle – title captured at booking time.
//  Date       – showing date as submitted (not validated as a calendar value).
//  Time       – showing time as submitted.
//  Seats      – seat numbers 1..50, unique within the booking, stored as CSV.
//  Name       – contact name.
//  Email      – contact email.
//  Phone      – contact phone.
//  Total      – seats × movie price at booking time.
//  Status     – Confirmed or Cancelled.
//  Reference  – opaque UUID handed back to the client.
//  CreatedAt  – row creation timestamp.
type Booking struct {
	ID         int64     `json:"id"`          // bookings.id
	MovieID    int64     `json:"movie_id"`    // bookings.movie_id
	MovieTitle string    `json:"movie_title"` // bookings.movie_title
	Date       string    `json:"date"`        // bookings.date
	Time       string    `json:"time"`        // bookings.time
	Seats      []int     `json:"seats"`       // bookings.seats (CSV column)
	Name       string    `json:"name"`        // bookings.name
	Email      string    `json:"email"`       // bookings.email
	Phone      string    `json:"phone"`       // bookings.phone
	Total      int64     `json:"total"`       // bookings.total
	Status     string    `json:"status"`      // bookings.status
	Reference  string    `json:"reference"`   // bookings.reference
	CreatedAt  time.Time `json:"created_at"`  // bookings.created_at
}
