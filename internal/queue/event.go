// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a booking transaction commits.
// It carries enough information for downstream consumers to log, notify,
// or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID  uint64 `json:"booking_id"`
	Reference  string `json:"reference"`
	SeatID     uint64 `json:"seat_id"`
	SeatName   string `json:"seat_name"`
	SeatNumber string `json:"seat_number"`
	UserID     uint64 `json:"user_id"`
	BookedAt   string `json:"booked_at"`
}
