package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/bookitdev/seat-booking/internal/repository"
)

// BookingHandler exposes read access to the booking ledger. Ledger rows
// are written exclusively by the booking transaction in SeatHandler.
type BookingHandler struct {
	BookingRepo *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler. The repository must be non-nil.
func NewBookingHandler(bookingRepo *repository.BookingRepo) *BookingHandler {
	if bookingRepo == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{BookingRepo: bookingRepo}
}

// ListMyBookings handles GET /v1/my-bookings. It returns all ledger
// records of the authenticated user with seat details, newest first.
// When no bookings exist it returns an empty array.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	details, err := h.BookingRepo.ListByUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"op": "list_bookings", "user_id": userID}).Error("ledger query failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}
