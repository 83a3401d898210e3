package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/raffleworks/raffle-api/internal/models"
)

// newTestDB opens an in-memory database scoped to the calling test so state
// never bleeds across tests sharing the package connection pool.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Activity{}, &models.Prize{}, &models.Participant{}, &models.WinnerRecord{}))

	return db
}

func newTestValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func seedActivity(t *testing.T, db *gorm.DB, name string) models.Activity {
	t.Helper()

	activity := models.Activity{Name: name, ThemeType: models.DefaultThemeType}
	require.NoError(t, db.Create(&activity).Error)

	return activity
}

func seedPrize(t *testing.T, db *gorm.DB, activityID uint, name string, quantity int) models.Prize {
	t.Helper()

	prize := models.Prize{
		ActivityID:        activityID,
		Name:              name,
		Level:             1,
		Quantity:          quantity,
		RemainingQuantity: quantity,
	}
	require.NoError(t, db.Create(&prize).Error)

	return prize
}

func seedParticipants(t *testing.T, db *gorm.DB, activityID uint, count int) []models.Participant {
	t.Helper()

	participants := make([]models.Participant, 0, count)
	for i := 0; i < count; i++ {
		participant := models.Participant{
			ActivityID: activityID,
			Name:       fmt.Sprintf("Participant %02d", i+1),
			Code:       fmt.Sprintf("P%03d", i+1),
		}
		require.NoError(t, db.Create(&participant).Error)
		participants = append(participants, participant)
	}

	return participants
}

func countRecords(t *testing.T, db *gorm.DB, activityID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.WinnerRecord{}).Where("activity_id = ?", activityID).Count(&count).Error)

	return count
}

var testCtx = context.Background()
