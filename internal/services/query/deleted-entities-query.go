package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// DeletedEntities lists trashed entity ids (spec §6 DeletedEntitiesQuery).
func (uc *UseCase) DeletedEntities(ctx context.Context, first int) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.deleted_entities")
	defer span.End()

	logger.Infof("listing deleted entities")

	return uc.EntityRepo.DeletedIDs(ctx, first)
}
