package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// BookingRepo provides access to the booking ledger. Ledger rows are
// append-only: one immutable record per successfully booked seat,
// written in the same transaction as the seat status transition. The
// UNIQUE index on seat_id backs the one-booking-per-seat invariant at
// the schema level in addition to the conditional update that gates
// every insert.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Booking mirrors the schema of the bookings table. Reference is an
// opaque UUID handed to clients instead of the numeric primary key.
type Booking struct {
	ID        uint64
	Reference string
	SeatID    uint64
	UserID    uint64
	CreatedAt time.Time
}

// CreateTx appends a ledger record within the scope of an existing
// transaction. It generates the public reference, populates the
// generated ID and creation timestamp on the provided record and
// returns any error from the database. The caller must commit or
// rollback the transaction; it must only be called after the seat's
// conditional transition succeeded on the same transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *Booking) error {
	if b.Reference == "" {
		b.Reference = uuid.NewString()
	}
	const q = `INSERT INTO bookings (reference, seat_id, user_id) VALUES (?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, b.Reference, b.SeatID, b.UserID)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the row to populate the DB-assigned timestamp
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// BookingDetail is a ledger record joined with its seat, returned by
// ListByUser for display to customers.
type BookingDetail struct {
	ID         uint64    `json:"id"`
	Reference  string    `json:"reference"`
	SeatID     uint64    `json:"seat_id"`
	SeatName   string    `json:"seat_name"`
	SeatNumber string    `json:"seat_number"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListByUser returns all ledger records for the given user along with
// seat details, newest first. When no bookings exist an empty slice is
// returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.reference, b.seat_id, s.name, s.seat_number, b.created_at
	           FROM bookings b
	           JOIN seats s ON s.id = b.seat_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.Reference, &d.SeatID, &d.SeatName, &d.SeatNumber, &d.CreatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// UnledgeredSeats returns the ids of seats marked booked that have no
// ledger record. Because the status flip and the ledger append share a
// transaction this should always be empty; the query exists as an
// operational audit so a drifting store is detected instead of guessed at.
func (r *BookingRepo) UnledgeredSeats(ctx context.Context) ([]uint64, error) {
	const q = `SELECT s.id
	           FROM seats s
	           LEFT JOIN bookings b ON b.seat_id = s.id
	           WHERE s.is_booked = 1 AND b.id IS NULL`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
