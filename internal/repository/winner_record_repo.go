package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/raffleworks/raffle-api/internal/models"
)

// WinnerRecordRepository defines read operations over the winner audit trail.
// Records are written by DrawRepository.CommitDraw and removed only by
// DrawRepository.Reset or the activity cascade.
type WinnerRecordRepository interface {
	ListByActivity(ctx context.Context, activityID uint) ([]models.WinnerRecord, error)
	ListByActivityAndRound(ctx context.Context, activityID uint, round int) ([]models.WinnerRecord, error)
	MaxRound(ctx context.Context, activityID uint) (int, error)
	CountByActivity(ctx context.Context, activityID uint) (int64, error)
}

type winnerRecordRepository struct {
	db *gorm.DB
}

// NewWinnerRecordRepository instantiates a GORM-backed repository.
func NewWinnerRecordRepository(db *gorm.DB) WinnerRecordRepository {
	return &winnerRecordRepository{db: db}
}

func (r *winnerRecordRepository) ListByActivity(ctx context.Context, activityID uint) ([]models.WinnerRecord, error) {
	var records []models.WinnerRecord
	err := r.db.WithContext(ctx).
		Preload("Participant").
		Preload("Prize").
		Where("activity_id = ?", activityID).
		Order("won_at DESC").
		Order("id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *winnerRecordRepository) ListByActivityAndRound(ctx context.Context, activityID uint, round int) ([]models.WinnerRecord, error) {
	var records []models.WinnerRecord
	err := r.db.WithContext(ctx).
		Preload("Participant").
		Preload("Prize").
		Where("activity_id = ? AND round = ?", activityID, round).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *winnerRecordRepository) MaxRound(ctx context.Context, activityID uint) (int, error) {
	var maxRound int
	err := r.db.WithContext(ctx).Model(&models.WinnerRecord{}).
		Select("COALESCE(MAX(round), 0)").
		Where("activity_id = ?", activityID).
		Scan(&maxRound).Error
	if err != nil {
		return 0, err
	}

	return maxRound, nil
}

func (r *winnerRecordRepository) CountByActivity(ctx context.Context, activityID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WinnerRecord{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error

	return count, err
}
