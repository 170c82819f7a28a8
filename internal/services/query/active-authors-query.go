package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// ActiveAuthors lists the most recently active revision authors in
// instance (spec §6 ActiveAuthorsQuery).
func (uc *UseCase) ActiveAuthors(ctx context.Context, instance shared.Instance, first int) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.active_authors")
	defer span.End()

	logger.Infof("listing active authors in instance %s", instance)

	return uc.EventRepo.DistinctActors(ctx, instance, []event.EventType{
		event.TypeCreateEntityRevision,
		event.TypeCreateEntity,
	}, first)
}
