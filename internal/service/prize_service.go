package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/raffleworks/raffle-api/internal/dto"
	"github.com/raffleworks/raffle-api/internal/models"
	"github.com/raffleworks/raffle-api/internal/repository"
)

// PrizeService exposes prize management use cases, scoped to an activity.
type PrizeService interface {
	List(ctx context.Context, activityID uint) ([]dto.PrizeResponse, error)
	Get(ctx context.Context, activityID, id uint) (dto.PrizeResponse, error)
	Create(ctx context.Context, activityID uint, payload dto.PrizeCreateRequest) (dto.PrizeResponse, error)
	Update(ctx context.Context, activityID, id uint, payload dto.PrizeUpdateRequest) (dto.PrizeResponse, error)
	Delete(ctx context.Context, activityID, id uint) error
}

type prizeService struct {
	prizes     repository.PrizeRepository
	activities repository.ActivityRepository
	cache      *StatsCache
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewPrizeService builds a new prize service.
func NewPrizeService(prizes repository.PrizeRepository, activities repository.ActivityRepository, cache *StatsCache, validate *validator.Validate, logger zerolog.Logger) PrizeService {
	return &prizeService{
		prizes:     prizes,
		activities: activities,
		cache:      cache,
		validator:  validate,
		logger:     logger.With().Str("component", "prize_service").Logger(),
	}
}

func (s *prizeService) List(ctx context.Context, activityID uint) ([]dto.PrizeResponse, error) {
	if err := s.requireActivity(ctx, activityID); err != nil {
		return nil, err
	}

	prizes, err := s.prizes.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	return dto.NewPrizeResponseSlice(prizes), nil
}

func (s *prizeService) Get(ctx context.Context, activityID, id uint) (dto.PrizeResponse, error) {
	prize, err := s.getScoped(ctx, activityID, id)
	if err != nil {
		return dto.PrizeResponse{}, err
	}

	return dto.NewPrizeResponse(prize), nil
}

func (s *prizeService) Create(ctx context.Context, activityID uint, payload dto.PrizeCreateRequest) (dto.PrizeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PrizeResponse{}, err
	}

	if err := s.requireActivity(ctx, activityID); err != nil {
		return dto.PrizeResponse{}, err
	}

	level := payload.Level
	if level == 0 {
		level = 1
	}
	quantity := payload.Quantity
	if quantity == 0 {
		quantity = 1
	}

	prize := models.Prize{
		ActivityID: activityID,
		Name:       payload.Name,
		Level:      level,
		Quantity:   quantity,
		// Inventory starts full; only the draw engine decrements it.
		RemainingQuantity: quantity,
		ImageURL:          payload.ImageURL,
	}

	if err := s.prizes.Create(ctx, &prize); err != nil {
		return dto.PrizeResponse{}, err
	}

	s.cache.Invalidate(ctx, activityID)
	s.logger.Info().Uint("activity_id", activityID).Uint("prize_id", prize.ID).Msg("prize created")

	return dto.NewPrizeResponse(prize), nil
}

func (s *prizeService) Update(ctx context.Context, activityID, id uint, payload dto.PrizeUpdateRequest) (dto.PrizeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PrizeResponse{}, err
	}

	if payload.ID != id || payload.ActivityID != activityID {
		return dto.PrizeResponse{}, ErrIDMismatch
	}

	prize, err := s.getScoped(ctx, activityID, id)
	if err != nil {
		return dto.PrizeResponse{}, err
	}

	if payload.Name != nil {
		prize.Name = *payload.Name
	}
	if payload.Level != nil {
		prize.Level = *payload.Level
	}
	if payload.Quantity != nil {
		// Changing the baseline preserves units already awarded, keeping
		// 0 <= remaining <= quantity.
		awarded := prize.Awarded()
		prize.Quantity = *payload.Quantity
		prize.RemainingQuantity = prize.Quantity - awarded
		if prize.RemainingQuantity < 0 {
			prize.RemainingQuantity = 0
		}
	}
	if payload.ImageURL != nil {
		prize.ImageURL = *payload.ImageURL
	}

	if err := s.prizes.Update(ctx, &prize); err != nil {
		return dto.PrizeResponse{}, err
	}

	s.cache.Invalidate(ctx, activityID)
	s.logger.Info().Uint("activity_id", activityID).Uint("prize_id", prize.ID).Msg("prize updated")

	return dto.NewPrizeResponse(prize), nil
}

func (s *prizeService) Delete(ctx context.Context, activityID, id uint) error {
	if err := s.prizes.Delete(ctx, activityID, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrPrizeNotFound
		case errors.Is(err, repository.ErrReferencedByWinners):
			return ErrWinnerRecordsExist
		default:
			return err
		}
	}

	s.cache.Invalidate(ctx, activityID)
	s.logger.Info().Uint("activity_id", activityID).Uint("prize_id", id).Msg("prize deleted")

	return nil
}

func (s *prizeService) getScoped(ctx context.Context, activityID, id uint) (models.Prize, error) {
	prize, err := s.prizes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Prize{}, ErrPrizeNotFound
		}

		return models.Prize{}, err
	}

	if prize.ActivityID != activityID {
		return models.Prize{}, ErrPrizeNotFound
	}

	return prize, nil
}

func (s *prizeService) requireActivity(ctx context.Context, activityID uint) error {
	exists, err := s.activities.Exists(ctx, activityID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrActivityNotFound
	}

	return nil
}
