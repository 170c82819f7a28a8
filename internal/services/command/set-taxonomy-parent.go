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

// SetTaxonomyParentInput is the payload of TaxonomyTermSetParentMutation.
type SetTaxonomyParentInput struct {
	TermID   uuid.UUID `validate:"required"`
	ParentID uuid.UUID `validate:"required"`
	ActorID  uuid.UUID `validate:"required"`
}

// SetTaxonomyParent moves a term to a new parent, emitting SetTaxonomyParent.
func (uc *UseCase) SetTaxonomyParent(ctx context.Context, in *SetTaxonomyParentInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.set_taxonomy_parent")
	defer span.End()

	logger.Infof("reparenting taxonomy term %s under %s", in.TermID, in.ParentID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		t, err := uc.TaxonomyRepo.Find(ctx, in.TermID)
		if err != nil {
			return err
		}

		if in.TermID == in.ParentID {
			return apperr.BadRequest("taxonomy term %s cannot be its own parent", in.TermID)
		}

		if _, err := uc.TaxonomyRepo.Find(ctx, in.ParentID); err != nil {
			return err
		}

		if err := uc.TaxonomyRepo.Reparent(ctx, in.TermID, in.ParentID); err != nil {
			return err
		}

		return uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeSetTaxonomyParent,
			ActorID:   in.ActorID,
			ObjectID:  in.TermID,
			Instance:  t.Instance,
			CreatedAt: shared.Now(),
			Parameters: []event.Parameter{
				event.UUIDParam("parentId", in.ParentID),
			},
		})
	})
}
