// Package apperr is the four-kind error taxonomy from spec §7, collapsed
// from the teacher's finer-grained kinds (common/errors.go:
// EntityNotFoundError, ValidationError, EntityConflictError,
// UnprocessableOperationError, ...) down to exactly what the wire
// protocol distinguishes: BadRequest, NotFound, InternalServerError, and
// the alias resolver's extra LegacyRoute case.
package apperr

import "fmt"

// BadRequestError maps to HTTP 400 with {success:false, reason}.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string { return e.Reason }

// BadRequest constructs a BadRequestError, optionally formatting reason.
func BadRequest(format string, args ...any) *BadRequestError {
	return &BadRequestError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError maps to HTTP 404 with a null body.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Reason == "" {
		return "not found"
	}

	return e.Reason
}

// NotFound constructs a NotFoundError, optionally formatting reason.
func NotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Reason: fmt.Sprintf(format, args...)}
}

// InternalError maps to HTTP 500 with an empty body and a server-side log
// line; Cause is never serialized to the client.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string { return e.Cause.Error() }

func (e *InternalError) Unwrap() error { return e.Cause }

// Internal wraps cause as an InternalError.
func Internal(cause error) *InternalError {
	return &InternalError{Cause: cause}
}

// LegacyRouteError is surfaced by the alias resolver only (§4.10); the
// outer shell maps it to HTTP 404 like NotFound, but it is a distinct
// kind so the resolver's own tests can assert on it specifically.
type LegacyRouteError struct {
	Path string
}

func (e *LegacyRouteError) Error() string { return "legacy route: " + e.Path }

// LegacyRoute constructs a LegacyRouteError for path.
func LegacyRoute(path string) *LegacyRouteError {
	return &LegacyRouteError{Path: path}
}
