package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons
	"time"
)

// Seat represents a bookable seat in the shared inventory. Name is the
// display label shown to customers and Number the printed seat number;
// neither is required to be unique. IsBooked flips from false to true
// exactly once in a seat's lifetime.
type Seat struct {
	ID        uint64 // primary key
	Name      string // display name, e.g. "VIP"
	Number    string // seat number, e.g. "A1"
	IsBooked  bool   // booking status, false = free
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// DB exposes the underlying handle so handlers can begin transactions
// that span the seat update and the ledger insert.
func (r *SeatRepo) DB() *sql.DB { return r.db }

// Create inserts a single seat record with is_booked defaulting to false.
// On success the seat's ID is populated.
func (r *SeatRepo) Create(ctx context.Context, s *Seat) error {
	const q = `INSERT INTO seats (name, seat_number) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Number)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// List retrieves all seats with their current booking status. Ordering by
// id gives stable iteration of the store at call time; no stronger
// ordering is guaranteed.
func (r *SeatRepo) List(ctx context.Context) ([]Seat, error) {
	const q = `SELECT id, name, seat_number, is_booked, created_at, updated_at
	           FROM seats
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Seat
	for rows.Next() {
		var s Seat
		if err := rows.Scan(&s.ID, &s.Name, &s.Number, &s.IsBooked, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*Seat, error) {
	const q = `SELECT id, name, seat_number, is_booked, created_at, updated_at
	           FROM seats WHERE id = ?`
	var s Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.Name, &s.Number, &s.IsBooked, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// BookTx performs the conditional free -> booked transition inside the
// given transaction. The UPDATE only matches while is_booked is still 0,
// so under concurrent attempts the database serializes the row write and
// exactly one caller sees an affected row. A zero count means the seat
// was either taken by another booking or never existed; a follow-up
// probe on the same transaction distinguishes the two.
//
// This is the only code path that writes seat status.
func (r *SeatRepo) BookTx(ctx context.Context, tx *sql.Tx, seatID uint64) error {
	const q = `UPDATE seats
	           SET is_booked = 1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND is_booked = 0`
	res, err := tx.ExecContext(ctx, q, seatID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	// Zero affected rows plus an existing row can only mean the seat is
	// already booked, so the probe checks existence alone.
	const probe = `SELECT 1 FROM seats WHERE id = ?`
	var one int
	if err := tx.QueryRowContext(ctx, probe, seatID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSeatNotFound
		}
		return err
	}
	return ErrSeatAlreadyBooked
}
