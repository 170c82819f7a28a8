package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// Subjects lists every taxonomy term one level below an instance root,
// of type subject or topic (spec §6 SubjectsQuery).
func (uc *UseCase) Subjects(ctx context.Context) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.subjects")
	defer span.End()

	logger.Infof("listing subjects")

	return uc.TaxonomyRepo.Subjects(ctx)
}
