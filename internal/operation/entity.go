package operation

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/services/command"
)

func init() {
	register("EntityCreateMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.CreateEntityInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Command.CreateEntity(ctx, &in)
	})

	register("EntityAddRevisionMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.AddEntityRevisionInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Command.AddEntityRevision(ctx, &in)
	})

	register("EntityCheckoutRevisionMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.CheckoutEntityRevisionInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.CheckoutEntityRevision(ctx, &in)
	})

	register("EntityRejectRevisionMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.RejectEntityRevisionInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.RejectEntityRevision(ctx, &in)
	})

	register("EntitySortMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SortEntityChildrenInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SortEntityChildren(ctx, &in)
	})

	register("EntitySetLicenseMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SetEntityLicenseInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SetEntityLicense(ctx, &in)
	})

	register("UnrevisedEntitiesQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		return uc.Query.UnrevisedEntities(ctx)
	})

	register("DeletedEntitiesQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			First int `json:"first"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.DeletedEntities(ctx, in.First)
	})

	register("EntitiesMetadataQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			Instance *shared.Instance `json:"instance"`
			After    *uuid.UUID       `json:"after"`
			First    int              `json:"first"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.EntitiesMetadata(ctx, in.Instance, in.After, in.First)
	})
}
