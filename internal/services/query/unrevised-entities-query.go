package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// UnrevisedEntities lists entity ids with at least one non-trashed
// revision whose id is greater than their current revision id (spec §6
// UnrevisedEntitiesQuery).
func (uc *UseCase) UnrevisedEntities(ctx context.Context) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.unrevised_entities")
	defer span.End()

	logger.Infof("listing unrevised entities")

	return uc.EntityRepo.UnrevisedIDs(ctx)
}
