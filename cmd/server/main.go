package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/hotel-room-reservation/internal/booking"    // availability and booking engine
	"github.com/iliyamo/hotel-room-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/hotel-room-reservation/internal/database"   // MySQL connector
	"github.com/iliyamo/hotel-room-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/hotel-room-reservation/internal/middleware" // rate limit + response cache
	"github.com/iliyamo/hotel-room-reservation/internal/queue"      // reservation.confirmed consumer
	"github.com/iliyamo/hotel-room-reservation/internal/repository" // storage adapters
	"github.com/iliyamo/hotel-room-reservation/internal/router"     // Internal router setup
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the rate limiter and response cache
	// become pass-throughs. Booking correctness never depends on Redis.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and caching disabled")
	}

	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db, cfg.BookLockWait)

	booker := booking.NewBooker(rooms, reservations)
	lifecycle := booking.NewLifecycle(reservations)
	availability := booking.NewAvailability(rooms, reservations)

	// Background consumer appends confirmed reservations to
	// logs/reservation.log; it reconnects on broker failures.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	e.Validator = handler.NewRequestValidator()

	rate := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	resHandler := handler.NewReservationHandler(booker, lifecycle, rooms, true)
	availHandler := handler.NewAvailabilityHandler(availability, rooms)
	router.RegisterRoutes(e, resHandler, availHandler, rate, cache)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
