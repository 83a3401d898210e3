package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/raffleworks/raffle-api/internal/dto"
	"github.com/raffleworks/raffle-api/internal/models"
	"github.com/raffleworks/raffle-api/internal/repository"
)

// ActivityService exposes raffle activity management use cases.
type ActivityService interface {
	List(ctx context.Context) ([]dto.ActivityResponse, error)
	Get(ctx context.Context, id uint) (dto.ActivityResponse, error)
	Create(ctx context.Context, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error)
	Update(ctx context.Context, id uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error)
	Delete(ctx context.Context, id uint) error
}

type activityService struct {
	repo      repository.ActivityRepository
	cache     *StatsCache
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewActivityService builds a new activity service.
func NewActivityService(repo repository.ActivityRepository, cache *StatsCache, validate *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:      repo,
		cache:     cache,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) List(ctx context.Context) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewActivityResponseSlice(activities), nil
}

func (s *activityService) Get(ctx context.Context, id uint) (dto.ActivityResponse, error) {
	activity, err := s.repo.GetWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}

		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Create(ctx context.Context, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	themeType := payload.ThemeType
	if themeType == "" {
		themeType = models.DefaultThemeType
	}

	activity := models.Activity{
		Name:          s.clean(payload.Name),
		Description:   s.clean(payload.Description),
		ThemeType:     themeType,
		ThemeSettings: payload.ThemeSettings,
		Status:        models.ActivityStatusNotStarted,
	}

	if err := s.repo.Create(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.logger.Info().Uint("activity_id", activity.ID).Msg("activity created")

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Update(ctx context.Context, id uint, payload dto.ActivityUpdateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	if payload.ID != id {
		return dto.ActivityResponse{}, ErrIDMismatch
	}

	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}

		return dto.ActivityResponse{}, err
	}

	if payload.Name != nil {
		activity.Name = s.clean(*payload.Name)
	}
	if payload.Description != nil {
		activity.Description = s.clean(*payload.Description)
	}
	if payload.ThemeType != nil {
		activity.ThemeType = *payload.ThemeType
	}
	if payload.ThemeSettings != nil {
		activity.ThemeSettings = payload.ThemeSettings
	}
	if payload.Status != nil {
		activity.Status = *payload.Status
	}

	if err := s.repo.Update(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.logger.Info().Uint("activity_id", activity.ID).Msg("activity updated")

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		return err
	}

	s.cache.Invalidate(ctx, id)
	s.logger.Info().Uint("activity_id", id).Msg("activity deleted")

	return nil
}

func (s *activityService) clean(input string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(input))
}
