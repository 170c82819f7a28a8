package query

import (
	"context"

	"github.com/openlearn/coredata/internal/domain/license"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// License loads one row of the static license catalog (spec §6
// LicenseQuery).
func (uc *UseCase) License(ctx context.Context, id int64) (*license.License, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.license")
	defer span.End()

	logger.Infof("loading license %d", id)

	return uc.LicenseRepo.Find(ctx, id)
}
