package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/subscription"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// SetSubscriptionInput is the payload of SubscriptionSetMutation.
type SetSubscriptionInput struct {
	ObjectIDs     []uuid.UUID
	UserID        uuid.UUID `validate:"required"`
	Subscribe     bool
	SendEmail     bool
	IncludeThread bool
}

// SetSubscription subscribes or unsubscribes a user from a batch of
// objects in one call (spec §4.8 "Set subscription").
func (uc *UseCase) SetSubscription(ctx context.Context, in *SetSubscriptionInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.set_subscription")
	defer span.End()

	logger.Infof("setting subscription on %d objects for user %s: subscribe=%t", len(in.ObjectIDs), in.UserID, in.Subscribe)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		for _, objectID := range in.ObjectIDs {
			if !in.Subscribe {
				if err := uc.SubscriptionRepo.Unset(ctx, objectID, in.UserID); err != nil {
					return err
				}

				continue
			}

			s := &subscription.Subscription{
				ObjectID:      objectID,
				UserID:        in.UserID,
				SendEmail:     in.SendEmail,
				IncludeThread: in.IncludeThread,
			}

			if err := uc.SubscriptionRepo.Set(ctx, s); err != nil {
				return err
			}
		}

		return nil
	})
}
