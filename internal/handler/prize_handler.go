package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/raffleworks/raffle-api/internal/dto"
	"github.com/raffleworks/raffle-api/internal/service"
	"github.com/raffleworks/raffle-api/internal/utils"
)

// PrizeHandler wires prize HTTP routes nested under an activity.
type PrizeHandler struct {
	service service.PrizeService
	logger  zerolog.Logger
}

// NewPrizeHandler constructs the handler.
func NewPrizeHandler(service service.PrizeService, logger zerolog.Logger) *PrizeHandler {
	return &PrizeHandler{
		service: service,
		logger:  logger.With().Str("component", "prize_handler").Logger(),
	}
}

// Register attaches prize endpoints to the router group.
func (h *PrizeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *PrizeHandler) list(c *fiber.Ctx) error {
	activityID, err := parseUintParam(c, "activityId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	prizes, err := h.service.List(c.Context(), activityID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "prizes retrieved", prizes)
}

func (h *PrizeHandler) get(c *fiber.Ctx) error {
	activityID, err := parseUintParam(c, "activityId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	prize, err := h.service.Get(c.Context(), activityID, id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "prize retrieved", prize)
}

func (h *PrizeHandler) create(c *fiber.Ctx) error {
	activityID, err := parseUintParam(c, "activityId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.PrizeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	prize, err := h.service.Create(c.Context(), activityID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "prize created", prize)
}

func (h *PrizeHandler) update(c *fiber.Ctx) error {
	activityID, err := parseUintParam(c, "activityId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.PrizeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	prize, err := h.service.Update(c.Context(), activityID, id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "prize updated", prize)
}

func (h *PrizeHandler) delete(c *fiber.Ctx) error {
	activityID, err := parseUintParam(c, "activityId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), activityID, id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "prize deleted", fiber.Map{"id": id})
}

func (h *PrizeHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "activity not found")
	case errors.Is(err, service.ErrPrizeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "prize not found")
	case errors.Is(err, service.ErrIDMismatch):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWinnerRecordsExist):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
