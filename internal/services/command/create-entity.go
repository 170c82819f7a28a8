package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/entity"
	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// CreateEntityInput is the payload of EntityCreateMutation.
type CreateEntityInput struct {
	SubType   entity.SubType
	Instance  shared.Instance
	LicenseID int64
	ActorID   uuid.UUID `validate:"required"`

	// TaxonomyTermIDs is required for sub-types that link to taxonomy
	// terms directly; ParentID is required for the three sub-types that
	// link to a parent entity instead (spec §3, §4.4).
	TaxonomyTermIDs []uuid.UUID
	ParentID        *uuid.UUID

	Fields      map[string]string
	NeedsReview bool
}

// CreateEntity creates a new entity, wires its initial taxonomy or
// parent link, and delegates to AddEntityRevision for the first
// revision (spec §4.4 "Create entity"). An entity must be linked to at
// least one taxonomy term or a parent entity at all times, so
// CreateEntity refuses to create one with neither.
func (uc *UseCase) CreateEntity(ctx context.Context, in *CreateEntityInput) (uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_entity")
	defer span.End()

	logger.Infof("creating entity of sub-type %s", in.SubType)

	if in.SubType.HasParentEntity() {
		if in.ParentID == nil {
			return uuid.Nil, apperr.BadRequest("%s requires a parentId, not taxonomy term links", in.SubType)
		}

		if in.SubType == entity.SubTypeSolution {
			count, err := uc.EntityRepo.ActiveSolutionCount(ctx, *in.ParentID)
			if err != nil {
				return uuid.Nil, err
			}

			if count > 0 {
				return uuid.Nil, apperr.BadRequest("parent already has a non-trashed solution")
			}
		}
	} else if len(in.TaxonomyTermIDs) == 0 {
		return uuid.Nil, apperr.BadRequest("entity must be linked to at least one taxonomy term")
	}

	id := uuid.New()

	err := dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		if err := uc.UUIDRepo.Create(ctx, id, uuidmodel.DiscriminatorEntity); err != nil {
			return err
		}

		e := &entity.Entity{
			ID:        id,
			SubType:   in.SubType,
			Instance:  in.Instance,
			LicenseID: in.LicenseID,
			ParentID:  in.ParentID,
			CreatedAt: shared.Now(),
		}

		if err := uc.EntityRepo.Create(ctx, e); err != nil {
			return err
		}

		// Step 2: the parent-link event is emitted before CreateEntity
		// (spec §4.4: "Emitted events, in order: the parent-link event
		// (CreateTaxonomyLink or CreateEntityLink), CreateEntity, ...").
		if in.SubType.HasParentEntity() {
			siblings, err := uc.EntityRepo.Children(ctx, *in.ParentID)
			if err != nil {
				return err
			}

			if err := uc.EntityRepo.Reorder(ctx, *in.ParentID, append(siblings, id)); err != nil {
				return err
			}

			if err := uc.emit(ctx, &event.Event{
				ID:        uuid.New(),
				Type:      event.TypeCreateEntityLink,
				ActorID:   in.ActorID,
				ObjectID:  id,
				Instance:  in.Instance,
				CreatedAt: shared.Now(),
				Parameters: []event.Parameter{
					event.UUIDParam("parentId", *in.ParentID),
				},
			}); err != nil {
				return err
			}
		} else {
			for position, termID := range in.TaxonomyTermIDs {
				if err := uc.TaxonomyRepo.LinkEntity(ctx, termID, id, position); err != nil {
					return err
				}

				if err := uc.emit(ctx, &event.Event{
					ID:        uuid.New(),
					Type:      event.TypeCreateTaxonomyLink,
					ActorID:   in.ActorID,
					ObjectID:  id,
					Instance:  in.Instance,
					CreatedAt: shared.Now(),
					Parameters: []event.Parameter{
						event.UUIDParam("termId", termID),
					},
				}); err != nil {
					return err
				}
			}
		}

		if err := uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeCreateEntity,
			ActorID:   in.ActorID,
			ObjectID:  id,
			Instance:  in.Instance,
			CreatedAt: shared.Now(),
		}); err != nil {
			return err
		}

		// Steps 3-4: delegate to add revision, which itself emits
		// CreateEntityRevision and, if needsReview is false, CheckoutRevision.
		_, err := uc.addEntityRevisionTx(ctx, e, in.ActorID, in.Fields, in.NeedsReview, false, false)

		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}
