package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// Event loads a single event log row by id (spec §6 EventQuery).
func (uc *UseCase) Event(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.event")
	defer span.End()

	logger.Infof("loading event %s", id)

	return uc.EventRepo.Find(ctx, id)
}
