package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/raffleworks/raffle-api/internal/dto"
	"github.com/raffleworks/raffle-api/internal/models"
	"github.com/raffleworks/raffle-api/internal/repository"
)

func TestActivityServiceCreateAppliesDefaultsAndSanitizes(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(repository.NewActivityRepository(db), nil, newTestValidator(), zerolog.Nop())

	created, err := svc.Create(testCtx, dto.ActivityCreateRequest{
		Name:        "Spring Gala <script>alert(1)</script>",
		Description: "  Annual <b>draw</b> night  ",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Spring Gala", created.Name)
	require.Equal(t, "Annual draw night", created.Description)
	require.Equal(t, models.DefaultThemeType, created.ThemeType)
	require.Equal(t, models.ActivityStatusNotStarted, created.Status)
}

func TestActivityServiceCreateRejectsInvalidPayload(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(repository.NewActivityRepository(db), nil, newTestValidator(), zerolog.Nop())

	_, err := svc.Create(testCtx, dto.ActivityCreateRequest{Name: ""})
	require.Error(t, err)

	_, err = svc.Create(testCtx, dto.ActivityCreateRequest{Name: "Bad Theme", ThemeType: "cube"})
	require.Error(t, err)
}

func TestActivityServiceGetIncludesRelations(t *testing.T) {
	db := newTestDB(t)
	activity := seedActivity(t, db, "With Relations")
	seedPrize(t, db, activity.ID, "Prize A", 2)
	seedParticipants(t, db, activity.ID, 3)

	svc := NewActivityService(repository.NewActivityRepository(db), nil, newTestValidator(), zerolog.Nop())

	found, err := svc.Get(testCtx, activity.ID)
	require.NoError(t, err)
	require.Len(t, found.Prizes, 1)
	require.Len(t, found.Participants, 3)

	_, err = svc.Get(testCtx, 999)
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestActivityServiceUpdatePatchesFields(t *testing.T) {
	db := newTestDB(t)
	activity := seedActivity(t, db, "Original")

	svc := NewActivityService(repository.NewActivityRepository(db), nil, newTestValidator(), zerolog.Nop())

	name := "Renamed"
	status := models.ActivityStatusInProgress
	updated, err := svc.Update(testCtx, activity.ID, dto.ActivityUpdateRequest{
		ID:     activity.ID,
		Name:   &name,
		Status: &status,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, models.ActivityStatusInProgress, updated.Status)
	// Untouched fields survive the patch.
	require.Equal(t, models.DefaultThemeType, updated.ThemeType)

	_, err = svc.Update(testCtx, activity.ID, dto.ActivityUpdateRequest{ID: activity.ID + 1, Name: &name})
	require.ErrorIs(t, err, ErrIDMismatch)

	_, err = svc.Update(testCtx, 999, dto.ActivityUpdateRequest{ID: 999, Name: &name})
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestActivityServiceDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	activity := seedActivity(t, db, "Doomed")
	prize := seedPrize(t, db, activity.ID, "Prize", 1)
	participants := seedParticipants(t, db, activity.ID, 2)
	record := models.WinnerRecord{
		ActivityID:    activity.ID,
		ParticipantID: participants[0].ID,
		PrizeID:       prize.ID,
		Round:         1,
	}
	require.NoError(t, db.Create(&record).Error)

	svc := NewActivityService(repository.NewActivityRepository(db), nil, newTestValidator(), zerolog.Nop())

	require.NoError(t, svc.Delete(testCtx, activity.ID))

	for _, model := range []interface{}{&models.Prize{}, &models.Participant{}, &models.WinnerRecord{}} {
		var count int64
		require.NoError(t, db.Model(model).Where("activity_id = ?", activity.ID).Count(&count).Error)
		require.Zero(t, count)
	}

	require.ErrorIs(t, svc.Delete(testCtx, activity.ID), ErrActivityNotFound)
}
