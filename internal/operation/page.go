package operation

import (
	"context"
	"encoding/json"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/services/command"
)

func init() {
	register("PageCreateMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.CreatePageInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Command.CreatePage(ctx, &in)
	})

	register("PageAddRevisionMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.AddPageRevisionInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Command.AddPageRevision(ctx, &in)
	})

	register("PageCheckoutRevisionMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.CheckoutPageRevisionInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.CheckoutPageRevision(ctx, &in)
	})

	register("PageRejectRevisionMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.RejectPageRevisionInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.RejectPageRevision(ctx, &in)
	})

	register("PagesQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			Instance shared.Instance `json:"instance"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.Pages(ctx, in.Instance)
	})
}
