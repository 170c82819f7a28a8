package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// ActiveReviewers lists the most recently active reviewers in instance,
// meaning actors behind a checkout or rejection (spec §6
// ActiveReviewersQuery).
func (uc *UseCase) ActiveReviewers(ctx context.Context, instance shared.Instance, first int) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.active_reviewers")
	defer span.End()

	logger.Infof("listing active reviewers in instance %s", instance)

	return uc.EventRepo.DistinctActors(ctx, instance, []event.EventType{
		event.TypeCheckoutRevision,
		event.TypeRejectRevision,
	}, first)
}
