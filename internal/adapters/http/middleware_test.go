package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlearn/coredata/internal/platform/mlog"
)

func TestWithCorrelationID_GeneratesOneWhenAbsent(t *testing.T) {
	app := fiber.New()
	app.Use(WithCorrelationID())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(c.Get(headerCorrelationID))
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get(headerCorrelationID))
}

func TestWithCorrelationID_PreservesIncomingValue(t *testing.T) {
	app := fiber.New()
	app.Use(WithCorrelationID())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(headerCorrelationID, "fixed-id")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "fixed-id", resp.Header.Get(headerCorrelationID))
}

func TestWithHTTPLogging_SkipsHealthRoute(t *testing.T) {
	app := fiber.New()
	app.Use(WithHTTPLogging(&mlog.NoneLogger{}))
	app.Get("/.well-known/health", Ping)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWithHTTPLogging_InstallsLoggerInUserContext(t *testing.T) {
	app := fiber.New()
	app.Use(WithHTTPLogging(&mlog.NoneLogger{}))

	var sawLogger mlog.Logger

	app.Get("/test", func(c *fiber.Ctx) error {
		sawLogger = mlog.FromContext(c.UserContext())
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotNil(t, sawLogger)
}

func TestPing_ReturnsOK(t *testing.T) {
	app := fiber.New()
	app.Get("/", Ping)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
