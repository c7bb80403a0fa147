package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/bookitdev/seat-booking/internal/handler"
	"github.com/bookitdev/seat-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check, used by
// load balancers and monitoring systems to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware. Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout takes a refresh token in the body, so it does not need a JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterSeats registers the seat inventory and booking ledger routes.
// Browsing the seat list is public so guests can inspect availability
// before registering. Seat creation is an administrative operation;
// booking and ledger reads require any authenticated role.
func RegisterSeats(e *echo.Echo, s *handler.SeatHandler, b *handler.BookingHandler, jwtSecret string) {
	e.GET("/v1/seats", s.ListSeats)

	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.POST("/seats", s.AddSeat)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
	// Both verbs perform the same booking; PUT is kept for older clients.
	auth.POST("/seats/:id/book", s.BookSeat)
	auth.PUT("/seats/:id/book", s.BookSeat)
	auth.GET("/my-bookings", b.ListMyBookings)
}
