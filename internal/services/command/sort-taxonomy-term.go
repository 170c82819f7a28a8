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

// SortTaxonomyTermInput is the payload of TaxonomySortMutation.
type SortTaxonomyTermInput struct {
	ParentID   uuid.UUID `validate:"required"`
	ChildOrder []uuid.UUID
	ActorID    uuid.UUID `validate:"required"`
}

// SortTaxonomyTerm persists a new relative order for a term's children —
// sub-terms by weight, linked entities by position — applying the same
// permutation rule as SortEntityChildren (spec §4.5 "Sort children").
func (uc *UseCase) SortTaxonomyTerm(ctx context.Context, in *SortTaxonomyTermInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.sort_taxonomy_term")
	defer span.End()

	logger.Infof("sorting %d children under taxonomy term %s", len(in.ChildOrder), in.ParentID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		current, err := uc.TaxonomyRepo.Children(ctx, in.ParentID)
		if err != nil {
			return err
		}

		if !isPermutationOf(current, in.ChildOrder) {
			return apperr.BadRequest("child order for taxonomy term %s is not a permutation of its current children", in.ParentID)
		}

		if sameOrder(current, in.ChildOrder) {
			return nil
		}

		if err := uc.TaxonomyRepo.Reorder(ctx, in.ParentID, in.ChildOrder); err != nil {
			return err
		}

		subjectID, instance, err := uc.resolveSubjectRoot(ctx, in.ParentID)
		if err != nil {
			return err
		}

		return uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeSetTaxonomyTerm,
			ActorID:   in.ActorID,
			ObjectID:  subjectID,
			Instance:  instance,
			CreatedAt: shared.Now(),
		})
	})
}
