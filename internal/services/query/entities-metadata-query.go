package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// entitiesMetadataMaxFirst bounds a single metadata page (original source:
// the metadata exporter rejects first >= 10000 outright).
const entitiesMetadataMaxFirst = 10000

// EntitiesMetadata lists non-trashed entity ids, keyset-paginated by id
// and optionally scoped to one instance, for the external RDF metadata
// exporter to render — serialization itself is out of scope (spec §5;
// spec §6 EntitiesMetadataQuery).
func (uc *UseCase) EntitiesMetadata(ctx context.Context, instance *shared.Instance, after *uuid.UUID, first int) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.entities_metadata")
	defer span.End()

	if first >= entitiesMetadataMaxFirst {
		return nil, apperr.BadRequest("first must be less than %d", entitiesMetadataMaxFirst)
	}

	logger.Infof("listing entity metadata ids, first=%d", first)

	return uc.EntityRepo.AllIDs(ctx, instance, after, first)
}
