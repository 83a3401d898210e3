package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/raffleworks/raffle-api/internal/config"
	"github.com/raffleworks/raffle-api/internal/handler"
	"github.com/raffleworks/raffle-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ActivityHandler    *handler.ActivityHandler
	PrizeHandler       *handler.PrizeHandler
	ParticipantHandler *handler.ParticipantHandler
	LotteryHandler     *handler.LotteryHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.ActivityHandler != nil {
		activities := api.Group("/activities")
		deps.ActivityHandler.Register(activities)

		if deps.PrizeHandler != nil {
			prizes := api.Group("/activities/:activityId/prizes")
			deps.PrizeHandler.Register(prizes)
		}

		if deps.ParticipantHandler != nil {
			participants := api.Group("/activities/:activityId/participants")
			deps.ParticipantHandler.Register(participants)
		}
	}

	if deps.LotteryHandler != nil {
		lottery := api.Group("/lottery")
		deps.LotteryHandler.Register(lottery)
	}
}
