package operation

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/services/command"
)

func init() {
	register("UuidQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			ID uuid.UUID `json:"id"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.Uuid(ctx, in.ID)
	})

	register("UuidSetStateMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			IDs     []uuid.UUID `json:"ids"`
			Trashed bool        `json:"trashed"`
			ActorID uuid.UUID   `json:"actorId"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		// The underlying primitive flips one id per call (spec §4.3
		// "Set trashed flag" is written per-id); the mutation's wire
		// shape takes a batch, so the fan-out lives here rather than
		// reshaping command.SetUuidState's own transaction.
		for _, id := range in.IDs {
			if err := uc.Command.SetUuidState(ctx, &command.SetUuidStateInput{
				ID:      id,
				Trashed: in.Trashed,
				ActorID: in.ActorID,
			}); err != nil {
				return nil, err
			}
		}

		return nil, nil
	})
}
