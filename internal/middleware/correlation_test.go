package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDGeneratesWhenAbsent(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())

	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen = GetCorrelationID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	header := resp.Header.Get("X-Correlation-ID")
	require.NotEmpty(t, header)
	require.Equal(t, header, seen)
	_, err = uuid.Parse(header)
	require.NoError(t, err)
}

func TestCorrelationIDPreservesIncoming(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Correlation-ID", "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "abc-123", resp.Header.Get("X-Correlation-ID"))

	// X-Request-ID works as a fallback.
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-9")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "req-9", resp.Header.Get("X-Correlation-ID"))
}
