package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/veletic/cinema-ticketing/internal/booking"    // Transactional checkout service
	"github.com/veletic/cinema-ticketing/internal/config"     // Environment config loaders
	"github.com/veletic/cinema-ticketing/internal/database"   // MySQL connection helper
	"github.com/veletic/cinema-ticketing/internal/handler"    // HTTP handlers
	"github.com/veletic/cinema-ticketing/internal/middleware" // Redis cache and rate limit middleware
	"github.com/veletic/cinema-ticketing/internal/payment"    // Payment provider
	"github.com/veletic/cinema-ticketing/internal/queue"      // RabbitMQ booking consumer
	"github.com/veletic/cinema-ticketing/internal/repository" // Data access layer
	"github.com/veletic/cinema-ticketing/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win

	cfg := config.Load()                 // Core config (DB, JWT, payment)
	cacheCfg := config.LoadCacheConfig() // Redis response cache settings
	rlCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	rdb, err := config.NewRedisClient() // Shared Redis client (tokens, cache, rate limit)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	defer rdb.Close()

	// repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(rdb)
	cinemas := repository.NewCinemaRepo(db)
	rooms := repository.NewRoomRepo(db)
	seats := repository.NewSeatRepo(db)
	movies := repository.NewMovieRepo(db)
	screenings := repository.NewScreeningRepo(db)
	ticketTypes := repository.NewTicketTypeRepo(db)
	tickets := repository.NewTicketRepo(db)

	provider := &payment.SimulatedProvider{Delay: cfg.PaymentDelay}
	bookingSvc := booking.NewService(db, seats, tickets, ticketTypes, screenings, provider, cfg.PaymentTimeout)

	// handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(movies, screenings, cinemas, rooms, seats, ticketTypes)
	checkoutH := handler.NewCheckoutHandler(bookingSvc, screenings)
	ticketH := handler.NewTicketHandler(tickets)
	movieH := handler.NewMovieHandler(movies)
	cinemaH := handler.NewCinemaHandler(cinemas, rooms, seats)
	screeningH := handler.NewScreeningHandler(screenings, movies, rooms)
	typeH := handler.NewTicketTypeHandler(ticketTypes)
	userH := handler.NewUserAdminHandler(users, tokens)

	// optional middleware; disabled via env keeps them nil
	var cacheMW, rateMW echo.MiddlewareFunc
	if cacheCfg.Enabled {
		cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
	}
	if rlCfg.Enabled {
		rateMW = middleware.NewTokenBucket(rlCfg, rdb)
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cacheMW)
	router.RegisterCustomer(e, checkoutH, ticketH, cfg.JWTSecret, rateMW)
	router.RegisterAdmin(e, movieH, cinemaH, screeningH, typeH, userH, cfg.JWTSecret)

	// The consumer logs booked-tickets events; the API must not depend
	// on the broker being up, so failures only warn.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
