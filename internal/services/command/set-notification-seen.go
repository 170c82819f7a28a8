package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// SetNotificationSeenInput is the payload of NotificationSetStateMutation.
type SetNotificationSeenInput struct {
	NotificationIDs []uuid.UUID
	UserID          uuid.UUID `validate:"required"`
	Seen            bool
}

// SetNotificationSeen flips the seen flag on a batch of notifications
// owned by the caller (spec §4.8 "Set notification state").
func (uc *UseCase) SetNotificationSeen(ctx context.Context, in *SetNotificationSeenInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.set_notification_seen")
	defer span.End()

	logger.Infof("setting %d notifications seen=%t for user %s", len(in.NotificationIDs), in.Seen, in.UserID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		for _, id := range in.NotificationIDs {
			n, err := uc.NotificationRepo.Find(ctx, id)
			if err != nil {
				return err
			}

			if n.UserID != in.UserID {
				return apperr.BadRequest("notification %s does not belong to user %s", id, in.UserID)
			}

			if n.Seen == in.Seen {
				continue
			}

			if err := uc.NotificationRepo.SetSeen(ctx, id, in.Seen); err != nil {
				return err
			}
		}

		return nil
	})
}
