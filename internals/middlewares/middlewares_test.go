package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/register", RegisterRateLimiter(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusSeeOther)
	})

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/register", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusSeeOther, resp.StatusCode, "attempt %d", i+1)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/register", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRequestIDEchoesOrGenerates(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		_, hasDeadline := c.UserContext().Deadline()
		assert.True(t, hasDeadline)
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-42", resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}

func TestCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://lg87arena.com"}, CorsOrigins("https://lg87arena.com/", false))
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, CorsOrigins("", true))
}
