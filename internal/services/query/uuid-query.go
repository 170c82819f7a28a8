package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// Uuid loads id's identifier row and dispatches to its variant loader
// (spec §4.3 "Load by id", spec §6 UuidQuery).
func (uc *UseCase) Uuid(ctx context.Context, id uuid.UUID) (*uuidmodel.Uuid, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.uuid")
	defer span.End()

	logger.Infof("loading uuid %s", id)

	return uc.Load(ctx, id)
}
