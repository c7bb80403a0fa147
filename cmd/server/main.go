package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/bookitdev/seat-booking/internal/cache"
	"github.com/bookitdev/seat-booking/internal/config"
	"github.com/bookitdev/seat-booking/internal/database"
	"github.com/bookitdev/seat-booking/internal/handler"
	"github.com/bookitdev/seat-booking/internal/middleware"
	"github.com/bookitdev/seat-booking/internal/queue"
	"github.com/bookitdev/seat-booking/internal/repository"
	"github.com/bookitdev/seat-booking/internal/router"
)

func main() {
	_ = godotenv.Load() // optional .env for local development
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}

	seatRepo := repository.NewSeatRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// Ledger audit at startup: with the single-transaction booking path this
	// should never find anything; a non-empty result means the store drifted.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if ids, err := bookingRepo.UnledgeredSeats(ctx); err != nil {
		logrus.WithError(err).Warn("ledger audit failed")
	} else if len(ids) > 0 {
		logrus.WithField("seat_ids", ids).Error("booked seats without ledger records detected")
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logrus.Warn("redis unavailable; seat cache and rate limiting disabled")
	}
	seatCache := cache.NewSeatCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	seatHandler := handler.NewSeatHandler(seatRepo, bookingRepo, seatCache)
	bookingHandler := handler.NewBookingHandler(bookingRepo)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterSeats(e, seatHandler, bookingHandler, cfg.JWTSecret)

	// Background consumer appends an audit line per confirmed booking.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			logrus.WithError(err).Warn("booking consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
