package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yerassyl/event-reservation/internal/config"
	"github.com/yerassyl/event-reservation/internal/database"
	"github.com/yerassyl/event-reservation/internal/feedback"
	"github.com/yerassyl/event-reservation/internal/handler"
	"github.com/yerassyl/event-reservation/internal/queue"
	"github.com/yerassyl/event-reservation/internal/repository"
	"github.com/yerassyl/event-reservation/internal/router"
	"github.com/yerassyl/event-reservation/internal/service"
	"github.com/yerassyl/event-reservation/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	policy := service.OverlapExistence
	if cfg.OverlapPolicy == config.OverlapPolicyWindow {
		policy = service.OverlapWindow
	}

	db, err := database.Open(database.Params{
		User:            cfg.DBUser,
		Pass:            cfg.DBPass,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifeMin) * time.Minute,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	var sessions *session.Store
	if rdb != nil {
		sessions = session.NewStore(rdb, time.Duration(cfg.SessionTTLMin)*time.Minute)
	} else {
		log.Warn().Msg("redis unavailable: sessions and rate limiting disabled")
	}

	feedbackStore, err := feedback.NewStore(cfg.FeedbackDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not prepare feedback directory")
	}

	eventRepo := repository.NewEventRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	userRepo := repository.NewUserRepo(db)

	publisher := queue.NewPublisher(log)
	go queue.StartReservationConsumer(log)

	eventSvc := service.NewEventService(eventRepo, reservationRepo, policy, log)
	reservationSvc := service.NewReservationService(reservationRepo, eventRepo, publisher, policy, log)
	userSvc := service.NewUserService(userRepo, cfg.BcryptCost, log)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, router.Handlers{
		Events:       handler.NewEventHandler(eventSvc, log),
		Reservations: handler.NewReservationHandler(reservationSvc, log),
		Auth:         handler.NewAuthHandler(userSvc, sessions, log),
		Feedback:     handler.NewFeedbackHandler(feedbackStore, log),
	}, sessions, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Str("overlap_policy", cfg.OverlapPolicy).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
