package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/raffleworks/raffle-api/internal/models"
)

// PrizeInventory aggregates prize quantities across one activity.
type PrizeInventory struct {
	Total     int
	Remaining int
}

// PrizeRepository defines persistence operations for prizes.
type PrizeRepository interface {
	ListByActivity(ctx context.Context, activityID uint) ([]models.Prize, error)
	GetByID(ctx context.Context, id uint) (models.Prize, error)
	Create(ctx context.Context, prize *models.Prize) error
	Update(ctx context.Context, prize *models.Prize) error
	Delete(ctx context.Context, activityID, id uint) error
	Inventory(ctx context.Context, activityID uint) (PrizeInventory, error)
}

type prizeRepository struct {
	db *gorm.DB
}

// NewPrizeRepository instantiates a GORM-backed repository.
func NewPrizeRepository(db *gorm.DB) PrizeRepository {
	return &prizeRepository{db: db}
}

func (r *prizeRepository) ListByActivity(ctx context.Context, activityID uint) ([]models.Prize, error) {
	var prizes []models.Prize
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("level ASC").
		Find(&prizes).Error
	if err != nil {
		return nil, err
	}

	return prizes, nil
}

func (r *prizeRepository) GetByID(ctx context.Context, id uint) (models.Prize, error) {
	var prize models.Prize
	if err := r.db.WithContext(ctx).First(&prize, id).Error; err != nil {
		return models.Prize{}, err
	}

	return prize, nil
}

func (r *prizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	return r.db.WithContext(ctx).Create(prize).Error
}

func (r *prizeRepository) Update(ctx context.Context, prize *models.Prize) error {
	return r.db.WithContext(ctx).Save(prize).Error
}

// Delete removes a prize unless winner records still reference it. The
// restrict check and the delete run in one transaction so a draw committing
// in between cannot slip a record under a disappearing prize.
func (r *prizeRepository) Delete(ctx context.Context, activityID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var references int64
		if err := tx.Model(&models.WinnerRecord{}).Where("prize_id = ?", id).Count(&references).Error; err != nil {
			return err
		}
		if references > 0 {
			return ErrReferencedByWinners
		}

		result := tx.Where("activity_id = ?", activityID).Delete(&models.Prize{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func (r *prizeRepository) Inventory(ctx context.Context, activityID uint) (PrizeInventory, error) {
	var inventory PrizeInventory
	err := r.db.WithContext(ctx).Model(&models.Prize{}).
		Select("COALESCE(SUM(quantity), 0) AS total, COALESCE(SUM(remaining_quantity), 0) AS remaining").
		Where("activity_id = ?", activityID).
		Scan(&inventory).Error
	if err != nil {
		return PrizeInventory{}, err
	}

	return inventory, nil
}
