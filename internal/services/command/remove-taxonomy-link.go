package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// RemoveTaxonomyLinkInput is the payload of TaxonomyDeleteEntityLinksMutation.
type RemoveTaxonomyLinkInput struct {
	TermID    uuid.UUID `validate:"required"`
	EntityIDs []uuid.UUID
	ActorID   uuid.UUID `validate:"required"`
}

// RemoveTaxonomyLink unfiles a batch of entities from a taxonomy term,
// refusing to remove any entity's last remaining link (spec §4.5
// "Unlink entities": "it must remain connected to at least one taxonomy
// term").
func (uc *UseCase) RemoveTaxonomyLink(ctx context.Context, in *RemoveTaxonomyLinkInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.remove_taxonomy_link")
	defer span.End()

	logger.Infof("unlinking %d entities from taxonomy term %s", len(in.EntityIDs), in.TermID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		t, err := uc.TaxonomyRepo.Find(ctx, in.TermID)
		if err != nil {
			return err
		}

		for _, entityID := range in.EntityIDs {
			parents, err := uc.EntityRepo.TaxonomyParents(ctx, entityID)
			if err != nil {
				return err
			}

			if len(parents) <= 1 {
				return apperr.BadRequest("entity %s must remain linked to at least one taxonomy term", entityID)
			}

			if err := uc.TaxonomyRepo.UnlinkEntity(ctx, in.TermID, entityID); err != nil {
				return err
			}

			if err := uc.emit(ctx, &event.Event{
				ID:        uuid.New(),
				Type:      event.TypeRemoveTaxonomyLink,
				ActorID:   in.ActorID,
				ObjectID:  entityID,
				Instance:  t.Instance,
				CreatedAt: shared.Now(),
				Parameters: []event.Parameter{
					event.UUIDParam("termId", in.TermID),
				},
			}); err != nil {
				return err
			}
		}

		return nil
	})
}
