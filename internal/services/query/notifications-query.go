package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// Notifications lists a user's notification ids, newest first, with
// optional unseen-only filtering (spec §6 NotificationsQuery).
func (uc *UseCase) Notifications(ctx context.Context, userID uuid.UUID, unseenOnly bool, first int) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.notifications")
	defer span.End()

	logger.Infof("listing notifications for user %s", userID)

	return uc.NotificationRepo.ByUser(ctx, userID, unseenOnly, first)
}
