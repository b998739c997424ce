// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a booking row is committed.
// It carries enough detail for downstream consumers (notification,
// box-office reporting) to act without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   int64  `json:"booking_id"`
	Reference   string `json:"reference"`
	MovieID     int64  `json:"movie_id"`
	MovieTitle  string `json:"movie_title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Seats       []int  `json:"seats"`
	Total       int64  `json:"total"`
	Email       string `json:"email"`
	ConfirmedAt string `json:"confirmed_at"`
}
