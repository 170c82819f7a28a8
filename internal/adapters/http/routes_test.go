package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlearn/coredata/internal/operation"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/mlog"
)

// operationUseCaseStub is a zero-value UseCase: Dispatch never touches its
// Command/Query fields before it fails on an unknown or malformed envelope,
// so there is nothing to wire in these handler-level tests.
var operationUseCaseStub operation.UseCase

func TestWriteError_BadRequestMapsTo400WithReason(t *testing.T) {
	app := fiber.New()
	app.Get("/test", func(c *fiber.Ctx) error {
		return writeError(c, apperr.BadRequest("entityId is required"))
	})

	resp := doGet(t, app, "/test")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "entityId is required", body["reason"])
}

func TestWriteError_NotFoundMapsTo404WithNullBody(t *testing.T) {
	app := fiber.New()
	app.Get("/test", func(c *fiber.Ctx) error {
		return writeError(c, apperr.NotFound("no such entity"))
	})

	resp := doGet(t, app, "/test")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestWriteError_LegacyRouteMapsTo404(t *testing.T) {
	app := fiber.New()
	app.Get("/test", func(c *fiber.Ctx) error {
		return writeError(c, apperr.LegacyRoute("/old/path"))
	})

	resp := doGet(t, app, "/test")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWriteError_InternalMapsTo500WithEmptyBody(t *testing.T) {
	app := fiber.New()
	app.Get("/test", func(c *fiber.Ctx) error {
		return writeError(c, apperr.Internal(assert.AnError))
	})

	resp := doGet(t, app, "/test")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestPing_ReturnsEmpty200(t *testing.T) {
	app := fiber.New()
	app.Get("/", Ping)
	app.Get("/.well-known/health", Ping)

	for _, path := range []string{"/", "/.well-known/health"} {
		resp := doGet(t, app, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestEnvelopeHandler_UnknownOperationIsBadRequest(t *testing.T) {
	app := fiber.New()
	h := &envelopeHandler{uc: &operationUseCaseStub, pool: nil, logger: &mlog.NoneLogger{}}
	app.Post("/", h.Handle)

	body := []byte(`{"type":"NotARealOperation","payload":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEnvelopeHandler_MalformedEnvelopeIsBadRequest(t *testing.T) {
	app := fiber.New()
	h := &envelopeHandler{uc: &operationUseCaseStub, pool: nil, logger: &mlog.NoneLogger{}}
	app.Post("/", h.Handle)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func doGet(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}
