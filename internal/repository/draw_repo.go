package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/raffleworks/raffle-api/internal/models"
)

// DrawRepository owns the two multi-row write paths of the draw engine.
// Both run inside a single transaction: either every row lands or none do.
type DrawRepository interface {
	// CommitDraw flags the selected participants as winners, appends one
	// winner record per participant and decrements the prize inventory by
	// count. Returns ErrDrawConflict when the guarded writes observe state
	// that no longer matches the validated preconditions.
	CommitDraw(ctx context.Context, activityID, prizeID uint, round, count int, winnerIDs []uint, wonAt time.Time) error

	// Reset restores the activity to its pre-draw baseline and reports how
	// many winner records were purged. Resetting an already-clean activity
	// is a no-op returning zero.
	Reset(ctx context.Context, activityID uint) (int64, error)
}

type drawRepository struct {
	db *gorm.DB
}

// NewDrawRepository instantiates a GORM-backed repository.
func NewDrawRepository(db *gorm.DB) DrawRepository {
	return &drawRepository{db: db}
}

func (r *drawRepository) CommitDraw(ctx context.Context, activityID, prizeID uint, round, count int, winnerIDs []uint, wonAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guarded decrement: refuses to go below zero even if another
		// writer slipped in after the precondition check.
		decrement := tx.Model(&models.Prize{}).
			Where("id = ? AND activity_id = ? AND remaining_quantity >= ?", prizeID, activityID, count).
			UpdateColumn("remaining_quantity", gorm.Expr("remaining_quantity - ?", count))
		if decrement.Error != nil {
			return decrement.Error
		}
		if decrement.RowsAffected == 0 {
			return ErrDrawConflict
		}

		// Guarded flag flip: only participants still eligible may win.
		flagged := tx.Model(&models.Participant{}).
			Where("id IN ? AND activity_id = ? AND is_winner = ?", winnerIDs, activityID, false).
			UpdateColumn("is_winner", true)
		if flagged.Error != nil {
			return flagged.Error
		}
		if flagged.RowsAffected != int64(len(winnerIDs)) {
			return ErrDrawConflict
		}

		records := make([]models.WinnerRecord, 0, len(winnerIDs))
		for _, winnerID := range winnerIDs {
			records = append(records, models.WinnerRecord{
				ActivityID:    activityID,
				ParticipantID: winnerID,
				PrizeID:       prizeID,
				Round:         round,
				WonAt:         wonAt,
			})
		}

		return tx.Create(&records).Error
	})
}

func (r *drawRepository) Reset(ctx context.Context, activityID uint) (int64, error) {
	var cleared int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Participant{}).
			Where("activity_id = ?", activityID).
			UpdateColumn("is_winner", false).Error
		if err != nil {
			return err
		}

		err = tx.Model(&models.Prize{}).
			Where("activity_id = ?", activityID).
			UpdateColumn("remaining_quantity", gorm.Expr("quantity")).Error
		if err != nil {
			return err
		}

		result := tx.Where("activity_id = ?", activityID).Delete(&models.WinnerRecord{})
		if result.Error != nil {
			return result.Error
		}
		cleared = result.RowsAffected

		return nil
	})

	return cleared, err
}
