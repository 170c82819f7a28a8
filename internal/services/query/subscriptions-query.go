package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// Subscriptions lists every object id a user subscribes to (spec §6
// SubscriptionsQuery).
func (uc *UseCase) Subscriptions(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.subscriptions")
	defer span.End()

	logger.Infof("listing subscriptions for user %s", userID)

	return uc.SubscriptionRepo.BySubscriber(ctx, userID)
}
