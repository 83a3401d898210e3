package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/raffleworks/raffle-api/internal/dto"
	"github.com/raffleworks/raffle-api/internal/repository"
	"github.com/raffleworks/raffle-api/internal/service"
	"github.com/raffleworks/raffle-api/internal/utils"
)

// LotteryHandler wires the draw engine HTTP routes.
type LotteryHandler struct {
	service service.DrawService
	logger  zerolog.Logger
}

// NewLotteryHandler constructs the handler.
func NewLotteryHandler(service service.DrawService, logger zerolog.Logger) *LotteryHandler {
	return &LotteryHandler{
		service: service,
		logger:  logger.With().Str("component", "lottery_handler").Logger(),
	}
}

// Register attaches lottery endpoints to the router group.
func (h *LotteryHandler) Register(router fiber.Router) {
	router.Post("/draw", h.draw)
	router.Get("/winners/:activityId", h.winners)
	router.Get("/winners/:activityId/round/:round", h.winnersByRound)
	router.Post("/reset/:activityId", h.reset)
	router.Get("/stats/:activityId", h.stats)
	router.Get("/round/:activityId", h.nextRound)
}

func (h *LotteryHandler) draw(c *fiber.Ctx) error {
	var payload dto.DrawRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Draw(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "draw completed", result)
}

func (h *LotteryHandler) winners(c *fiber.Ctx) error {
	activityID, err := parseUintParam(c, "activityId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	records, err := h.service.Winners(c.Context(), activityID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "winner records retrieved", records)
}

func (h *LotteryHandler) winnersByRound(c *fiber.Ctx) error {
	activityID, err := parseUintParam(c, "activityId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	round, err := parseIntParam(c, "round")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	records, err := h.service.WinnersByRound(c.Context(), activityID, round)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "winner records retrieved", records)
}

func (h *LotteryHandler) reset(c *fiber.Ctx) error {
	activityID, err := parseUintParam(c, "activityId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.Reset(c.Context(), activityID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, result.Message, result)
}

func (h *LotteryHandler) stats(c *fiber.Ctx) error {
	activityID, err := parseUintParam(c, "activityId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	stats, err := h.service.Stats(c.Context(), activityID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "activity stats retrieved", stats)
}

func (h *LotteryHandler) nextRound(c *fiber.Ctx) error {
	activityID, err := parseUintParam(c, "activityId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	round, err := h.service.NextRound(c.Context(), activityID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "next round retrieved", round)
}

func (h *LotteryHandler) handleError(c *fiber.Ctx, err error) error {
	var (
		validationErrors validator.ValidationErrors
		inventoryErr     *service.InsufficientInventoryError
		participantsErr  *service.InsufficientParticipantsError
	)

	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "activity not found")
	case errors.Is(err, service.ErrPrizeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "prize not found")
	case errors.As(err, &inventoryErr):
		return utils.SendError(c, fiber.StatusBadRequest, inventoryErr.Error())
	case errors.As(err, &participantsErr):
		return utils.SendError(c, fiber.StatusBadRequest, participantsErr.Error())
	case errors.Is(err, service.ErrInvalidDrawCount):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrDrawConflict):
		return utils.SendError(c, fiber.StatusConflict, "draw conflicted with a concurrent write, retry the request")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
