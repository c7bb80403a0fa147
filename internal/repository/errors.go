// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrSeatAlreadyBooked signals that a booking attempt lost
// the race for a seat (or the seat was booked long before), while
// ErrSeatNotFound indicates the referenced seat does not exist at all.
package repository

import "errors"

// ErrSeatAlreadyBooked is returned when the conditional booking update
// touches zero rows because the seat is no longer free. Handlers should
// translate this into an HTTP 409 response. Repeating the attempt on
// the same seat keeps returning this error and never mutates state.
var ErrSeatAlreadyBooked = errors.New("seat already booked")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
// Handlers should translate this into an HTTP 404 response.
var ErrSeatNotFound = errors.New("seat not found")
