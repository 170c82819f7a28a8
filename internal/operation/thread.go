package operation

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/services/command"
)

func init() {
	register("ThreadCreateThreadMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.CreateThreadInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Command.CreateThread(ctx, &in)
	})

	register("ThreadCreateCommentMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.CreateCommentInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Command.CreateComment(ctx, &in)
	})

	register("ThreadSetThreadArchivedMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SetThreadArchivedInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SetThreadArchived(ctx, &in)
	})

	register("ThreadSetThreadStatusMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SetThreadStatusInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SetThreadStatus(ctx, &in)
	})

	register("ThreadEditCommentMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.EditCommentInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.EditComment(ctx, &in)
	})

	register("ThreadsQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			ObjectID uuid.UUID `json:"objectId"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.Threads(ctx, in.ObjectID)
	})
}
