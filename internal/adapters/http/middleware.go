package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/mlog"
)

const headerCorrelationID = "X-Correlation-Id"

// WithCorrelationID stamps every request with a correlation id, mirroring
// the teacher's common/net/http.WithCorrelationID.
func WithCorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cid := c.Get(headerCorrelationID)
		if cid == "" {
			cid = uuid.NewString()
		}

		c.Set(headerCorrelationID, cid)
		c.Request().Header.Set(headerCorrelationID, cid)

		return c.Next()
	}
}

// WithHTTPLogging logs one line per request and installs logger (tagged
// with the request's correlation id) into the request's user context, so
// every operation handler downstream picks it up via mlog.FromContext.
func WithHTTPLogging(logger mlog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/.well-known/health" {
			return c.Next()
		}

		requestLogger := logger.WithFields(headerCorrelationID, c.Get(headerCorrelationID))
		c.SetUserContext(mlog.ContextWithLogger(c.UserContext(), requestLogger))

		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		requestLogger.Infof("%s %s -> %d (%s)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), duration)

		return err
	}
}

// Ping answers the two liveness routes spec §6 names explicitly (GET "/"
// and GET "/.well-known/health") with an empty 200.
func Ping(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}
