package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/raffleworks/raffle-api/internal/models"
)

// ParticipantRepository defines persistence operations for participants.
type ParticipantRepository interface {
	ListByActivity(ctx context.Context, activityID uint) ([]models.Participant, error)
	ListEligible(ctx context.Context, activityID uint) ([]models.Participant, error)
	GetByID(ctx context.Context, activityID, id uint) (models.Participant, error)
	Create(ctx context.Context, participant *models.Participant) error
	CreateBatch(ctx context.Context, participants []models.Participant) error
	Delete(ctx context.Context, activityID, id uint) error
	DeleteByActivity(ctx context.Context, activityID uint) (int64, error)
	CountByActivity(ctx context.Context, activityID uint) (int64, error)
	CountEligible(ctx context.Context, activityID uint) (int64, error)
}

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository instantiates a GORM-backed repository.
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) ListByActivity(ctx context.Context, activityID uint) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("code ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	return participants, nil
}

// ListEligible returns the activity's draw pool: participants not yet
// flagged as winners. It always queries fresh state since every committed
// draw changes the pool's membership.
func (r *participantRepository) ListEligible(ctx context.Context, activityID uint) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).
		Where("activity_id = ? AND is_winner = ?", activityID, false).
		Order("code ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *participantRepository) GetByID(ctx context.Context, activityID, id uint) (models.Participant, error) {
	var participant models.Participant
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		First(&participant, id).Error
	if err != nil {
		return models.Participant{}, err
	}

	return participant, nil
}

func (r *participantRepository) Create(ctx context.Context, participant *models.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *participantRepository) CreateBatch(ctx context.Context, participants []models.Participant) error {
	if len(participants) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&participants).Error
}

// Delete removes a participant unless winner records still reference them.
func (r *participantRepository) Delete(ctx context.Context, activityID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var references int64
		if err := tx.Model(&models.WinnerRecord{}).Where("participant_id = ?", id).Count(&references).Error; err != nil {
			return err
		}
		if references > 0 {
			return ErrReferencedByWinners
		}

		result := tx.Where("activity_id = ?", activityID).Delete(&models.Participant{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

// DeleteByActivity clears the whole roster. Rejected while any winner record
// exists for the activity; reset first, then clear.
func (r *participantRepository) DeleteByActivity(ctx context.Context, activityID uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var references int64
		if err := tx.Model(&models.WinnerRecord{}).Where("activity_id = ?", activityID).Count(&references).Error; err != nil {
			return err
		}
		if references > 0 {
			return ErrReferencedByWinners
		}

		result := tx.Where("activity_id = ?", activityID).Delete(&models.Participant{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected

		return nil
	})

	return deleted, err
}

func (r *participantRepository) CountByActivity(ctx context.Context, activityID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Participant{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error

	return count, err
}

func (r *participantRepository) CountEligible(ctx context.Context, activityID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Participant{}).
		Where("activity_id = ? AND is_winner = ?", activityID, false).
		Count(&count).Error

	return count, err
}
