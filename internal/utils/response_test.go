package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, APIResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var body APIResponse
	require.NoError(t, json.Unmarshal(data, &body))

	return resp.StatusCode, body
}

func TestSendSuccess(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "all good", fiber.Map{"id": 7})
	})

	require.Equal(t, fiber.StatusOK, status)
	require.True(t, body.Success)
	require.Equal(t, "all good", body.Message)
	require.NotNil(t, body.Data)
}

func TestSendSuccessDefaultsMessage(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "", nil)
	})

	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "success", body.Message)
}

func TestSendCreated(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendCreated(c, "made it", fiber.Map{"id": 1})
	})

	require.Equal(t, fiber.StatusCreated, status)
	require.True(t, body.Success)
	require.Equal(t, "made it", body.Message)
}

func TestSendError(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusConflict, "already exists")
	})

	require.Equal(t, fiber.StatusConflict, status)
	require.False(t, body.Success)
	require.Equal(t, "already exists", body.Message)
	require.Nil(t, body.Data)
}
