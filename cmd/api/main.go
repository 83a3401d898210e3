package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/raffleworks/raffle-api/internal/config"
	"github.com/raffleworks/raffle-api/internal/database"
	"github.com/raffleworks/raffle-api/internal/handler"
	"github.com/raffleworks/raffle-api/internal/middleware"
	"github.com/raffleworks/raffle-api/internal/models"
	"github.com/raffleworks/raffle-api/internal/repository"
	"github.com/raffleworks/raffle-api/internal/router"
	"github.com/raffleworks/raffle-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Activity{}, &models.Prize{}, &models.Participant{}, &models.WinnerRecord{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	cache := service.NewStatsCache(nil, cfg.StatsCacheTTL, logger)
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("stats cache disabled, continuing without redis")
		} else {
			defer redisClient.Close()
			cache = service.NewStatsCache(redisClient, cfg.StatsCacheTTL, logger)
		}
	}

	var events service.EventPublisher
	if cfg.NATSURL != "" {
		conn, err := nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			logger.Warn().Err(err).Msg("event fanout disabled, continuing without nats")
		} else {
			defer conn.Drain()
			events = conn
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityRepo := repository.NewActivityRepository(db)
	prizeRepo := repository.NewPrizeRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	recordRepo := repository.NewWinnerRecordRepository(db)
	drawRepo := repository.NewDrawRepository(db)

	activityService := service.NewActivityService(activityRepo, cache, validate, logger)
	prizeService := service.NewPrizeService(prizeRepo, activityRepo, cache, validate, logger)
	participantService := service.NewParticipantService(participantRepo, activityRepo, cache, validate, logger)
	drawService := service.NewDrawService(activityRepo, prizeRepo, participantRepo, recordRepo, drawRepo, cache, events, validate, logger)

	activityHandler := handler.NewActivityHandler(activityService, logger)
	prizeHandler := handler.NewPrizeHandler(prizeService, logger)
	participantHandler := handler.NewParticipantHandler(participantService, logger)
	lotteryHandler := handler.NewLotteryHandler(drawService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ActivityHandler:    activityHandler,
		PrizeHandler:       prizeHandler,
		ParticipantHandler: participantHandler,
		LotteryHandler:     lotteryHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
