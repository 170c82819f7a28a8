package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// ActivityByType is one event type's count for a user.
type ActivityByType struct {
	Type  event.EventType
	Count int
}

// activityTypes are the event kinds the activity dashboard breaks a
// user's contributions down by (spec §6 UserActivityByTypeQuery).
var activityTypes = []event.EventType{
	event.TypeCreateEntity,
	event.TypeCreateEntityRevision,
	event.TypeCreateComment,
	event.TypeCreateTaxonomyTerm,
	event.TypeSetTaxonomyTerm,
	event.TypeCheckoutRevision,
	event.TypeRejectRevision,
}

// UserActivityByType breaks userID's contribution count down per event
// type within instance (spec §6 UserActivityByTypeQuery).
func (uc *UseCase) UserActivityByType(ctx context.Context, instance shared.Instance, userID uuid.UUID) ([]ActivityByType, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.user_activity_by_type")
	defer span.End()

	logger.Infof("counting activity for user %s in instance %s", userID, instance)

	out := make([]ActivityByType, 0, len(activityTypes))

	for _, t := range activityTypes {
		count, err := uc.EventRepo.CountByActorAndType(ctx, instance, userID, t)
		if err != nil {
			return nil, err
		}

		out = append(out, ActivityByType{Type: t, Count: count})
	}

	return out, nil
}
