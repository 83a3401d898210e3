package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/raffleworks/raffle-api/internal/config"
	"github.com/raffleworks/raffle-api/internal/dto"
	"github.com/raffleworks/raffle-api/internal/handler"
	"github.com/raffleworks/raffle-api/internal/models"
	"github.com/raffleworks/raffle-api/internal/repository"
	"github.com/raffleworks/raffle-api/internal/router"
	"github.com/raffleworks/raffle-api/internal/service"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Activity{}, &models.Prize{}, &models.Participant{}, &models.WinnerRecord{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	activityRepo := repository.NewActivityRepository(db)
	prizeRepo := repository.NewPrizeRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	recordRepo := repository.NewWinnerRecordRepository(db)
	drawRepo := repository.NewDrawRepository(db)

	activityService := service.NewActivityService(activityRepo, nil, validate, logger)
	prizeService := service.NewPrizeService(prizeRepo, activityRepo, nil, validate, logger)
	participantService := service.NewParticipantService(participantRepo, activityRepo, nil, validate, logger)
	drawService := service.NewDrawService(activityRepo, prizeRepo, participantRepo, recordRepo, drawRepo, nil, nil, validate, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		ActivityHandler:    handler.NewActivityHandler(activityService, logger),
		PrizeHandler:       handler.NewPrizeHandler(prizeService, logger),
		ParticipantHandler: handler.NewParticipantHandler(participantService, logger),
		LotteryHandler:     handler.NewLotteryHandler(drawService, logger),
	})

	return app, db
}

func seedLotteryFixture(t *testing.T, db *gorm.DB, quantity, participants int) (models.Activity, models.Prize) {
	t.Helper()

	activity := models.Activity{Name: "Launch Party", ThemeType: models.DefaultThemeType}
	require.NoError(t, db.Create(&activity).Error)

	prize := models.Prize{ActivityID: activity.ID, Name: "Laptop", Level: 1, Quantity: quantity, RemainingQuantity: quantity}
	require.NoError(t, db.Create(&prize).Error)

	for i := 0; i < participants; i++ {
		participant := models.Participant{ActivityID: activity.ID, Name: fmt.Sprintf("Guest %d", i+1), Code: fmt.Sprintf("G%03d", i+1)}
		require.NoError(t, db.Create(&participant).Error)
	}

	return activity, prize
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func putJSON(t *testing.T, path string, payload interface{}) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

func TestLotteryHandlerDrawAndWinners(t *testing.T) {
	app, db := setupApp(t)
	activity, prize := seedLotteryFixture(t, db, 2, 5)

	resp := postJSON(t, app, "/api/v1/lottery/draw", dto.DrawRequest{
		ActivityID: activity.ID,
		PrizeID:    prize.ID,
		Count:      2,
		Round:      1,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var drawBody struct {
		Success bool           `json:"success"`
		Data    dto.DrawResult `json:"data"`
		Message string         `json:"message"`
	}
	decodeResponse(t, resp, &drawBody)
	require.True(t, drawBody.Success)
	require.Equal(t, "draw completed", drawBody.Message)
	require.Len(t, drawBody.Data.Winners, 2)
	require.Equal(t, 0, drawBody.Data.Prize.RemainingQuantity)

	winnersReq := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/lottery/winners/%d", activity.ID), nil)
	winnersResp, err := app.Test(winnersReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, winnersResp.StatusCode)

	var winnersBody struct {
		Success bool                       `json:"success"`
		Data    []dto.WinnerRecordResponse `json:"data"`
	}
	decodeResponse(t, winnersResp, &winnersBody)
	require.Len(t, winnersBody.Data, 2)
	require.NotEmpty(t, winnersBody.Data[0].Participant.Name)

	roundReq := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/lottery/winners/%d/round/1", activity.ID), nil)
	roundResp, err := app.Test(roundReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, roundResp.StatusCode)

	var roundBody struct {
		Data []dto.WinnerRecordResponse `json:"data"`
	}
	decodeResponse(t, roundResp, &roundBody)
	require.Len(t, roundBody.Data, 2)
}

func TestLotteryHandlerDrawRejections(t *testing.T) {
	app, db := setupApp(t)
	activity, prize := seedLotteryFixture(t, db, 1, 1)

	resp := postJSON(t, app, "/api/v1/lottery/draw", dto.DrawRequest{
		ActivityID: activity.ID,
		PrizeID:    prize.ID,
		Count:      3,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, "insufficient prize inventory, remaining: 1", body.Message)

	resp = postJSON(t, app, "/api/v1/lottery/draw", dto.DrawRequest{ActivityID: 999, PrizeID: prize.ID})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/lottery/draw", dto.DrawRequest{ActivityID: activity.ID, PrizeID: 999})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/lottery/draw", dto.DrawRequest{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLotteryHandlerResetStatsAndRound(t *testing.T) {
	app, db := setupApp(t)
	activity, prize := seedLotteryFixture(t, db, 2, 4)

	resp := postJSON(t, app, "/api/v1/lottery/draw", dto.DrawRequest{
		ActivityID: activity.ID,
		PrizeID:    prize.ID,
		Count:      2,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	statsReq := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/lottery/stats/%d", activity.ID), nil)
	statsResp, err := app.Test(statsReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, statsResp.StatusCode)

	var statsBody struct {
		Data dto.ActivityStats `json:"data"`
	}
	decodeResponse(t, statsResp, &statsBody)
	require.Equal(t, 4, statsBody.Data.TotalParticipants)
	require.Equal(t, 2, statsBody.Data.AvailableParticipants)
	require.Equal(t, 2, statsBody.Data.TotalWinners)
	require.Equal(t, 0, statsBody.Data.RemainingPrizes)

	nextReq := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/lottery/round/%d", activity.ID), nil)
	nextResp, err := app.Test(nextReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, nextResp.StatusCode)

	var nextBody struct {
		Data dto.RoundInfo `json:"data"`
	}
	decodeResponse(t, nextResp, &nextBody)
	require.Equal(t, 2, nextBody.Data.NextRound)

	resetReq := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/lottery/reset/%d", activity.ID), nil)
	resetResp, err := app.Test(resetReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resetResp.StatusCode)

	var resetBody struct {
		Success bool            `json:"success"`
		Data    dto.ResetResult `json:"data"`
		Message string          `json:"message"`
	}
	decodeResponse(t, resetResp, &resetBody)
	require.True(t, resetBody.Success)
	require.Equal(t, 2, resetBody.Data.RecordsCleared)
	require.Equal(t, "draw results have been reset", resetBody.Message)

	missingReq := httptest.NewRequest("POST", "/api/v1/lottery/reset/999", nil)
	missingResp, err := app.Test(missingReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, missingResp.StatusCode)
}
