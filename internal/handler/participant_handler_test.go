package handler_test

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/raffleworks/raffle-api/internal/dto"
	"github.com/raffleworks/raffle-api/internal/models"
)

func TestParticipantHandlerImportAndListAvailable(t *testing.T) {
	app, db := setupApp(t)

	activity := models.Activity{Name: "Roster", ThemeType: models.DefaultThemeType}
	require.NoError(t, db.Create(&activity).Error)

	resp := postJSON(t, app, fmt.Sprintf("/api/v1/activities/%d/participants/import", activity.ID), dto.ParticipantImportRequest{
		Participants: []dto.ParticipantCreateRequest{
			{Name: "Alice", Code: "A1"},
			{Name: "Bob", Code: "B2"},
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var importBody struct {
		Success bool                        `json:"success"`
		Data    dto.ParticipantImportResult `json:"data"`
	}
	decodeResponse(t, resp, &importBody)
	require.True(t, importBody.Success)
	require.Equal(t, 2, importBody.Data.Imported)

	// One of them already won; only the other remains eligible.
	require.NoError(t, db.Model(&models.Participant{}).
		Where("activity_id = ? AND code = ?", activity.ID, "A1").
		UpdateColumn("is_winner", true).Error)

	availableReq := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/activities/%d/participants/available", activity.ID), nil)
	availableResp, err := app.Test(availableReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, availableResp.StatusCode)

	var availableBody struct {
		Data []dto.ParticipantResponse `json:"data"`
	}
	decodeResponse(t, availableResp, &availableBody)
	require.Len(t, availableBody.Data, 1)
	require.Equal(t, "B2", availableBody.Data[0].Code)
}

func TestParticipantHandlerClearRestrictedByWinnerRecords(t *testing.T) {
	app, db := setupApp(t)

	activity := models.Activity{Name: "Guarded Roster", ThemeType: models.DefaultThemeType}
	require.NoError(t, db.Create(&activity).Error)
	prize := models.Prize{ActivityID: activity.ID, Name: "Prize", Level: 1, Quantity: 1, RemainingQuantity: 1}
	require.NoError(t, db.Create(&prize).Error)
	participant := models.Participant{ActivityID: activity.ID, Name: "Winner", Code: "W1", IsWinner: true}
	require.NoError(t, db.Create(&participant).Error)
	record := models.WinnerRecord{ActivityID: activity.ID, ParticipantID: participant.ID, PrizeID: prize.ID, Round: 1}
	require.NoError(t, db.Create(&record).Error)

	clearReq := httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/activities/%d/participants", activity.ID), nil)
	clearResp, err := app.Test(clearReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, clearResp.StatusCode)

	deleteReq := httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/activities/%d/participants/%d", activity.ID, participant.ID), nil)
	deleteResp, err := app.Test(deleteReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, deleteResp.StatusCode)

	require.NoError(t, db.Delete(&record).Error)

	clearResp, err = app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/activities/%d/participants", activity.ID), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, clearResp.StatusCode)

	var clearBody struct {
		Data dto.ParticipantClearResult `json:"data"`
	}
	decodeResponse(t, clearResp, &clearBody)
	require.Equal(t, 1, clearBody.Data.Deleted)
}
