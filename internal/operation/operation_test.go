package operation

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openlearn/coredata/internal/platform/apperr"
)

func TestDispatch_UnknownType(t *testing.T) {
	_, err := Dispatch(context.Background(), &UseCase{}, "NotARealOperation", nil)

	var badReq *apperr.BadRequestError
	assert.ErrorAs(t, err, &badReq)
}

func TestDispatch_KnownTypeRoutesToHandler(t *testing.T) {
	called := false
	register("__test_noop__", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		called = true
		return "ok", nil
	})

	result, err := Dispatch(context.Background(), &UseCase{}, "__test_noop__", nil)

	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", result)
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	register("__test_dup__", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		return nil, nil
	})

	assert.Panics(t, func() {
		register("__test_dup__", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
			return nil, nil
		})
	})
}

func TestDecode_MalformedJSON(t *testing.T) {
	var out struct {
		ID uuid.UUID `json:"id"`
	}

	err := decode(json.RawMessage(`{not json`), &out)

	var badReq *apperr.BadRequestError
	assert.ErrorAs(t, err, &badReq)
}

type requiredIDPayload struct {
	EntityID uuid.UUID `json:"entityId" validate:"required"`
}

func TestDecode_MissingRequiredFieldIsBadRequest(t *testing.T) {
	var out requiredIDPayload

	err := decode(json.RawMessage(`{}`), &out)

	var badReq *apperr.BadRequestError
	assert.ErrorAs(t, err, &badReq)
	assert.Contains(t, badReq.Reason, "entityId")
}

func TestDecode_ValidPayloadPasses(t *testing.T) {
	id := uuid.New()
	var out requiredIDPayload

	payload, err := json.Marshal(requiredIDPayload{EntityID: id})
	assert.NoError(t, err)

	err = decode(payload, &out)
	assert.NoError(t, err)
	assert.Equal(t, id, out.EntityID)
}

func TestDecode_NonStructTargetSkipsValidation(t *testing.T) {
	var out []uuid.UUID

	err := decode(json.RawMessage(`[]`), &out)
	assert.NoError(t, err)
}
