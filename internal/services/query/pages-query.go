package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// Pages lists every non-trashed root page id for instance, the entry
// point for walking the page tree (spec §6 PagesQuery).
func (uc *UseCase) Pages(ctx context.Context, instance shared.Instance) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.pages")
	defer span.End()

	logger.Infof("listing root pages for instance %s", instance)

	return uc.PageRepo.ByInstance(ctx, instance)
}
