// Package http is the outer shell the spec deliberately keeps thin (§1,
// "the HTTP listener and JSON (de)serialization shell" is out of scope
// of the dispatch+transaction core): one POST route decodes an envelope
// and hands it straight to operation.Dispatch, grounded on the teacher's
// internal/bootstrap/http/routes.go route table and common/net/http's
// WithCorrelationID/WithHTTPLogging middleware chain.
package http

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/openlearn/coredata/internal/operation"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
)

// NewRouter builds the fiber app exposing the single operation envelope
// endpoint plus the two liveness routes spec §6 names explicitly.
func NewRouter(uc *operation.UseCase, pool *dbtx.Pool, logger mlog.Logger) *fiber.App {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	f.Use(WithCorrelationID())
	f.Use(WithHTTPLogging(logger))

	h := &envelopeHandler{uc: uc, pool: pool, logger: logger}

	f.Get("/", Ping)
	f.Get("/.well-known/health", Ping)
	f.Post("/", h.Handle)

	return f
}

// envelope is the wire shape of every request body: spec §6's
// `{ "type": "<OperationName>", "payload": <…> }`.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type envelopeHandler struct {
	uc     *operation.UseCase
	pool   *dbtx.Pool
	logger mlog.Logger
}

// Handle decodes the envelope, dispatches it, and maps the result (or
// error) onto the four-kinded HTTP response spec §4.2/§6 describe. A
// request-scoped "Rollback: true" header wraps the whole dispatch in a
// transaction that is always rolled back afterward, win or lose (§4.2,
// §9 "operations must therefore be idempotent with respect to outer
// rollback").
func (h *envelopeHandler) Handle(c *fiber.Ctx) error {
	var env envelope
	if err := json.Unmarshal(c.Body(), &env); err != nil {
		return writeError(c, apperr.BadRequest("malformed envelope: %s", err))
	}

	ctx := c.UserContext()
	if _, none := mlog.FromContext(ctx).(*mlog.NoneLogger); none {
		ctx = mlog.ContextWithLogger(ctx, h.logger)
	}

	var (
		result any
		err    error
	)

	if c.Get("Rollback") == "true" {
		result, err = h.dispatchRolledBack(ctx, env)
	} else {
		result, err = operation.Dispatch(ctx, h.uc, env.Type, env.Payload)
	}

	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// forcedRollback is never returned to the caller; it only makes
// dbtx.RunInTransaction roll back unconditionally.
var forcedRollback = errors.New("coredata: forced rollback")

func (h *envelopeHandler) dispatchRolledBack(ctx context.Context, env envelope) (any, error) {
	var (
		result any
		opErr  error
	)

	_ = dbtx.RunInTransaction(ctx, h.pool, func(ctx context.Context) error {
		result, opErr = operation.Dispatch(ctx, h.uc, env.Type, env.Payload)
		return forcedRollback
	})

	return result, opErr
}

// writeError maps apperr's four-kinded taxonomy onto the wire contract
// spec §4.2/§6 spell out. Any other error (should not happen, since
// every operation returns through apperr) is treated as internal.
func writeError(c *fiber.Ctx, err error) error {
	var badReq *apperr.BadRequestError
	if errors.As(err, &badReq) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"reason":  badReq.Reason,
		})
	}

	var notFound *apperr.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(nil)
	}

	var legacy *apperr.LegacyRouteError
	if errors.As(err, &legacy) {
		return c.Status(fiber.StatusNotFound).JSON(nil)
	}

	var internal *apperr.InternalError
	if errors.As(err, &internal) {
		return c.Status(fiber.StatusInternalServerError).Send(nil)
	}

	return c.Status(fiber.StatusInternalServerError).Send(nil)
}

// errorHandler catches errors fiber's own routing/body-parsing layer
// raises before a handler runs (malformed requests, panics surfaced as
// errors) and funnels them through the same mapping.
func errorHandler(logger mlog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger.Errorf("unhandled request error: %s", err)
		return writeError(c, apperr.Internal(err))
	}
}
