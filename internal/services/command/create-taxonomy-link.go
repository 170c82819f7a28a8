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

// CreateTaxonomyLinkInput is the payload of TaxonomyCreateEntityLinksMutation.
type CreateTaxonomyLinkInput struct {
	TermID    uuid.UUID `validate:"required"`
	EntityIDs []uuid.UUID
	ActorID   uuid.UUID `validate:"required"`
}

// CreateTaxonomyLink files a batch of entities directly under a taxonomy
// term (spec §4.5 "Link entities"): rejects entities of sub-type
// coursePage, groupedExercise, or solution (they link via ParentID
// instead), rejects cross-instance entities, silently skips links that
// already exist, and appends the rest at the end of the term's current
// link order, one CreateTaxonomyLink event per link actually created.
func (uc *UseCase) CreateTaxonomyLink(ctx context.Context, in *CreateTaxonomyLinkInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_taxonomy_link")
	defer span.End()

	logger.Infof("linking %d entities under taxonomy term %s", len(in.EntityIDs), in.TermID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		t, err := uc.TaxonomyRepo.Find(ctx, in.TermID)
		if err != nil {
			return err
		}

		for _, entityID := range in.EntityIDs {
			e, err := uc.EntityRepo.Find(ctx, entityID)
			if err != nil {
				return err
			}

			if e.SubType.HasParentEntity() {
				return apperr.BadRequest("entity %s of sub-type %s links via parentId, not taxonomy terms", entityID, e.SubType)
			}

			if e.Instance != t.Instance {
				return apperr.BadRequest("entity %s belongs to a different instance than term %s", entityID, in.TermID)
			}

			links, err := uc.TaxonomyRepo.EntityLinks(ctx, in.TermID)
			if err != nil {
				return err
			}

			if containsID(links, entityID) {
				continue
			}

			if err := uc.TaxonomyRepo.LinkEntity(ctx, in.TermID, entityID, len(links)); err != nil {
				return err
			}

			if err := uc.emit(ctx, &event.Event{
				ID:        uuid.New(),
				Type:      event.TypeCreateTaxonomyLink,
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

func containsID(ids []uuid.UUID, target uuid.UUID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}

	return false
}
