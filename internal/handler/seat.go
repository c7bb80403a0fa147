package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/bookitdev/seat-booking/internal/cache"
	"github.com/bookitdev/seat-booking/internal/queue"
	"github.com/bookitdev/seat-booking/internal/repository"
	queue_publisher "github.com/bookitdev/seat-booking/internal/service"
)

// SeatHandler groups the repositories needed to manage the seat inventory
// and perform atomic bookings. The booking path runs the seat transition
// and the ledger append inside a single transaction: either both commit
// or neither does, so a booked seat always has exactly one ledger record.
type SeatHandler struct {
	SeatRepo    *repository.SeatRepo
	BookingRepo *repository.BookingRepo
	Cache       *cache.SeatCache

	// Publish sends the post-commit booking event. Nil disables publishing.
	Publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// NewSeatHandler constructs a SeatHandler with the provided dependencies
// and the default RabbitMQ publisher. Repositories must be non-nil.
func NewSeatHandler(seatRepo *repository.SeatRepo, bookingRepo *repository.BookingRepo, seatCache *cache.SeatCache) *SeatHandler {
	if seatRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{
		SeatRepo:    seatRepo,
		BookingRepo: bookingRepo,
		Cache:       seatCache,
		Publish:     queue_publisher.PublishBookingConfirmed,
	}
}

// AddSeat handles POST /v1/seats. It creates a seat with status free.
// Name and number must be non-empty; malformed input is rejected before
// touching the store. No uniqueness is enforced on (name, number).
func (h *SeatHandler) AddSeat(c echo.Context) error {
	var body struct {
		Name   string `json:"name"`
		Number string `json:"number"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Number = strings.TrimSpace(body.Number)
	if body.Name == "" || body.Number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and number are required"})
	}

	ctx := c.Request().Context()
	seat := &repository.Seat{Name: body.Name, Number: body.Number}
	if err := h.SeatRepo.Create(ctx, seat); err != nil {
		logrus.WithError(err).WithField("op", "add_seat").Error("seat insert failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if h.Cache != nil {
		h.Cache.Invalidate(ctx)
	}
	return c.JSON(http.StatusCreated, echo.Map{"seat_id": seat.ID})
}

// seatItem is the wire shape of a seat in the list response.
type seatItem struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Number   string `json:"number"`
	IsBooked bool   `json:"is_booked"`
}

// ListSeats handles GET /v1/seats. It returns all seats with their
// current booking status, served from the Redis cache when warm.
func (h *SeatHandler) ListSeats(c echo.Context) error {
	ctx := c.Request().Context()
	if h.Cache != nil {
		if body, ok := h.Cache.Get(ctx); ok {
			return c.JSONBlob(http.StatusOK, body)
		}
	}

	seats, err := h.SeatRepo.List(ctx)
	if err != nil {
		logrus.WithError(err).WithField("op", "list_seats").Error("seat query failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]seatItem, 0, len(seats))
	for _, s := range seats {
		items = append(items, seatItem{ID: s.ID, Name: s.Name, Number: s.Number, IsBooked: s.IsBooked})
	}
	payload := echo.Map{"items": items}
	if h.Cache != nil {
		if body, err := json.Marshal(payload); err == nil {
			h.Cache.Set(ctx, body)
		}
	}
	return c.JSON(http.StatusOK, payload)
}

// BookSeat handles PUT and POST /v1/seats/:id/book. It books the seat for
// the given user, atomically: the conditional status update and the
// ledger insert share one transaction. Under a race for the same seat
// exactly one request commits; every other request observes 409. The
// user id is taken from the request body and falls back to the
// authenticated subject.
func (h *SeatHandler) BookSeat(c echo.Context) error {
	seatID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || seatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var body struct {
		UserID uint64 `json:"user_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	userID := body.UserID
	if userID == 0 {
		if uid, err := getUserID(c); err == nil {
			userID = uid
		}
	}
	if userID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	ctx := c.Request().Context()
	log := logrus.WithFields(logrus.Fields{"op": "book_seat", "seat_id": seatID, "user_id": userID})

	tx, err := h.SeatRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		log.WithError(err).Error("failed to start transaction")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.SeatRepo.BookTx(ctx, tx, seatID); err != nil {
		switch {
		case errors.Is(err, repository.ErrSeatNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		case errors.Is(err, repository.ErrSeatAlreadyBooked):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat already booked"})
		default:
			log.WithError(err).Error("conditional booking update failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	booking := &repository.Booking{SeatID: seatID, UserID: userID}
	if err := h.BookingRepo.CreateTx(ctx, tx, booking); err != nil {
		// rollback undoes the status flip, so a failed ledger append
		// never leaves a booked seat without a record
		log.WithError(err).Error("ledger append failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := tx.Commit(); err != nil {
		log.WithError(err).Error("failed to commit booking")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true
	log.WithField("booking_id", booking.ID).Info("seat booked")

	if h.Cache != nil {
		h.Cache.Invalidate(ctx)
	}
	if h.Publish != nil {
		go h.publishBooked(*booking)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"booking_id": booking.ID,
		"reference":  booking.Reference,
	})
}

// publishBooked enriches the committed booking with seat details and
// publishes the booking.confirmed event. Runs detached from the request;
// failures are logged by the publisher and never affect the response.
func (h *SeatHandler) publishBooked(b repository.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev := queue.BookingConfirmedEvent{
		BookingID: b.ID,
		Reference: b.Reference,
		SeatID:    b.SeatID,
		UserID:    b.UserID,
		BookedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if seat, err := h.SeatRepo.GetByID(ctx, b.SeatID); err == nil {
		ev.SeatName = seat.Name
		ev.SeatNumber = seat.Number
	}
	_ = h.Publish(ctx, ev)
}
