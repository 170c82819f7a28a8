package operation

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/services/command"
)

func init() {
	register("AliasQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			Instance shared.Instance `json:"instance"`
			Path     string          `json:"path"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.Alias(ctx, in.Instance, in.Path)
	})

	register("LicenseQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			ID int64 `json:"id"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.License(ctx, in.ID)
	})

	register("NavigationQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			Instance shared.Instance `json:"instance"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.Navigation(ctx, in.Instance)
	})

	register("VocabularyTaxonomyQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			RootID uuid.UUID `json:"rootId"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.VocabularyTaxonomy(ctx, in.RootID)
	})

	register("EventQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			ID uuid.UUID `json:"id"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.Event(ctx, in.ID)
	})

	register("EventsQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			Instance shared.Instance  `json:"instance"`
			ObjectID *uuid.UUID       `json:"objectId"`
			ActorID  *uuid.UUID       `json:"actorId"`
			Types    []event.EventType `json:"types"`
			After    *uuid.UUID       `json:"after"`
			First    int              `json:"first"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.Events(ctx, event.Filter{
			Instance: in.Instance,
			ObjectID: in.ObjectID,
			ActorID:  in.ActorID,
			Types:    in.Types,
			After:    in.After,
			First:    in.First,
		})
	})

	register("NotificationsQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			UserID     uuid.UUID `json:"userId"`
			UnseenOnly bool      `json:"unseenOnly"`
			First      int       `json:"first"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.Notifications(ctx, in.UserID, in.UnseenOnly, in.First)
	})

	register("NotificationSetStateMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SetNotificationSeenInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SetNotificationSeen(ctx, &in)
	})

	register("SubscriptionsQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			UserID uuid.UUID `json:"userId"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.Subscriptions(ctx, in.UserID)
	})

	register("SubscriptionSetMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SetSubscriptionInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SetSubscription(ctx, &in)
	})
}
