package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadRequest_FormatsReason(t *testing.T) {
	err := BadRequest("entity %s not found", "abc")
	assert.Equal(t, "entity abc not found", err.Error())
	assert.Equal(t, "entity abc not found", err.Reason)
}

func TestNotFound_DefaultsReason(t *testing.T) {
	err := NotFound("")
	assert.Equal(t, "not found", err.Error())
}

func TestNotFound_FormatsReason(t *testing.T) {
	err := NotFound("page %s", "xyz")
	assert.Equal(t, "page xyz", err.Error())
}

func TestInternal_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, "connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestLegacyRoute_CarriesPath(t *testing.T) {
	err := LegacyRoute("/math/example")
	assert.Equal(t, "/math/example", err.Path)
	assert.Contains(t, err.Error(), "/math/example")
}

func TestErrorsAs_DistinguishesKinds(t *testing.T) {
	var err error = BadRequest("bad")

	var badReq *BadRequestError
	assert.True(t, errors.As(err, &badReq))

	var notFound *NotFoundError
	assert.False(t, errors.As(err, &notFound))
}
