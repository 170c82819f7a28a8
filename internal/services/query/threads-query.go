package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// Threads lists the first-comment id of every thread attached to
// objectID, ordered by thread id descending (spec §6 ThreadsQuery).
func (uc *UseCase) Threads(ctx context.Context, objectID uuid.UUID) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.threads")
	defer span.End()

	logger.Infof("listing threads on object %s", objectID)

	return uc.ThreadRepo.ThreadsByObject(ctx, objectID)
}
