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

// ParticipantService exposes participant roster use cases, scoped to an
// activity. The winner flag is never writable through this surface; it
// belongs to the draw engine.
type ParticipantService interface {
	List(ctx context.Context, activityID uint) ([]dto.ParticipantResponse, error)
	ListAvailable(ctx context.Context, activityID uint) ([]dto.ParticipantResponse, error)
	Get(ctx context.Context, activityID, id uint) (dto.ParticipantResponse, error)
	Create(ctx context.Context, activityID uint, payload dto.ParticipantCreateRequest) (dto.ParticipantResponse, error)
	Import(ctx context.Context, activityID uint, payload dto.ParticipantImportRequest) (dto.ParticipantImportResult, error)
	Delete(ctx context.Context, activityID, id uint) error
	Clear(ctx context.Context, activityID uint) (dto.ParticipantClearResult, error)
}

type participantService struct {
	participants repository.ParticipantRepository
	activities   repository.ActivityRepository
	cache        *StatsCache
	validator    *validator.Validate
	logger       zerolog.Logger
}

// NewParticipantService builds a new participant service.
func NewParticipantService(participants repository.ParticipantRepository, activities repository.ActivityRepository, cache *StatsCache, validate *validator.Validate, logger zerolog.Logger) ParticipantService {
	return &participantService{
		participants: participants,
		activities:   activities,
		cache:        cache,
		validator:    validate,
		logger:       logger.With().Str("component", "participant_service").Logger(),
	}
}

func (s *participantService) List(ctx context.Context, activityID uint) ([]dto.ParticipantResponse, error) {
	if err := s.requireActivity(ctx, activityID); err != nil {
		return nil, err
	}

	participants, err := s.participants.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	return dto.NewParticipantResponseSlice(participants), nil
}

func (s *participantService) ListAvailable(ctx context.Context, activityID uint) ([]dto.ParticipantResponse, error) {
	if err := s.requireActivity(ctx, activityID); err != nil {
		return nil, err
	}

	participants, err := s.participants.ListEligible(ctx, activityID)
	if err != nil {
		return nil, err
	}

	return dto.NewParticipantResponseSlice(participants), nil
}

func (s *participantService) Get(ctx context.Context, activityID, id uint) (dto.ParticipantResponse, error) {
	participant, err := s.participants.GetByID(ctx, activityID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ParticipantResponse{}, ErrParticipantNotFound
		}

		return dto.ParticipantResponse{}, err
	}

	return dto.NewParticipantResponse(participant), nil
}

func (s *participantService) Create(ctx context.Context, activityID uint, payload dto.ParticipantCreateRequest) (dto.ParticipantResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ParticipantResponse{}, err
	}

	if err := s.requireActivity(ctx, activityID); err != nil {
		return dto.ParticipantResponse{}, err
	}

	participant := models.Participant{
		ActivityID: activityID,
		Name:       payload.Name,
		Code:       payload.Code,
		Department: payload.Department,
		IsWinner:   false,
	}

	if err := s.participants.Create(ctx, &participant); err != nil {
		return dto.ParticipantResponse{}, err
	}

	s.cache.Invalidate(ctx, activityID)
	s.logger.Info().Uint("activity_id", activityID).Uint("participant_id", participant.ID).Msg("participant created")

	return dto.NewParticipantResponse(participant), nil
}

func (s *participantService) Import(ctx context.Context, activityID uint, payload dto.ParticipantImportRequest) (dto.ParticipantImportResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ParticipantImportResult{}, err
	}

	if err := s.requireActivity(ctx, activityID); err != nil {
		return dto.ParticipantImportResult{}, err
	}

	participants := make([]models.Participant, 0, len(payload.Participants))
	for _, row := range payload.Participants {
		participants = append(participants, models.Participant{
			ActivityID: activityID,
			Name:       row.Name,
			Code:       row.Code,
			Department: row.Department,
			IsWinner:   false,
		})
	}

	if err := s.participants.CreateBatch(ctx, participants); err != nil {
		return dto.ParticipantImportResult{}, err
	}

	s.cache.Invalidate(ctx, activityID)
	s.logger.Info().Uint("activity_id", activityID).Int("imported", len(participants)).Msg("participants imported")

	return dto.ParticipantImportResult{Imported: len(participants)}, nil
}

func (s *participantService) Delete(ctx context.Context, activityID, id uint) error {
	if err := s.participants.Delete(ctx, activityID, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrParticipantNotFound
		case errors.Is(err, repository.ErrReferencedByWinners):
			return ErrWinnerRecordsExist
		default:
			return err
		}
	}

	s.cache.Invalidate(ctx, activityID)
	s.logger.Info().Uint("activity_id", activityID).Uint("participant_id", id).Msg("participant deleted")

	return nil
}

func (s *participantService) Clear(ctx context.Context, activityID uint) (dto.ParticipantClearResult, error) {
	if err := s.requireActivity(ctx, activityID); err != nil {
		return dto.ParticipantClearResult{}, err
	}

	deleted, err := s.participants.DeleteByActivity(ctx, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrReferencedByWinners) {
			return dto.ParticipantClearResult{}, ErrWinnerRecordsExist
		}

		return dto.ParticipantClearResult{}, err
	}

	s.cache.Invalidate(ctx, activityID)
	s.logger.Info().Uint("activity_id", activityID).Int64("deleted", deleted).Msg("participants cleared")

	return dto.ParticipantClearResult{Deleted: int(deleted)}, nil
}

func (s *participantService) requireActivity(ctx context.Context, activityID uint) error {
	exists, err := s.activities.Exists(ctx, activityID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrActivityNotFound
	}

	return nil
}
