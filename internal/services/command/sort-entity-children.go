package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/taxonomyterm"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// SortEntityChildrenInput is the payload of EntitySortMutation.
type SortEntityChildrenInput struct {
	ParentID   uuid.UUID `validate:"required"`
	ChildOrder []uuid.UUID
	ActorID    uuid.UUID `validate:"required"`
}

// SortEntityChildren reorders parentID's children to match ChildOrder
// exactly (spec §4.4 "Sort children", §8 invariant: a no-op when the
// permutation equals the current order, otherwise exactly the requested
// order and one SetTaxonomyTerm event on the enclosing subject root).
func (uc *UseCase) SortEntityChildren(ctx context.Context, in *SortEntityChildrenInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.sort_entity_children")
	defer span.End()

	logger.Infof("sorting children of %s", in.ParentID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		current, err := uc.EntityRepo.Children(ctx, in.ParentID)
		if err != nil {
			return err
		}

		if !isPermutationOf(current, in.ChildOrder) {
			return apperr.BadRequest("child order must be a permutation of the current children")
		}

		if sameOrder(current, in.ChildOrder) {
			return nil
		}

		if err := uc.EntityRepo.Reorder(ctx, in.ParentID, in.ChildOrder); err != nil {
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

// resolveSubjectRoot finds the canonical subject taxonomy term enclosing
// parentID, which is either a taxonomy term itself or an entity linked
// under one (spec §4.4, §4.5 "Canonical-subject resolution").
func (uc *UseCase) resolveSubjectRoot(ctx context.Context, parentID uuid.UUID) (uuid.UUID, shared.Instance, error) {
	ident, err := uc.UUIDRepo.FindIdentifier(ctx, parentID)
	if err != nil {
		return uuid.Nil, "", err
	}

	termID := parentID

	if ident.Discriminator != uuidmodel.DiscriminatorTaxonomyTerm {
		parents, err := uc.EntityRepo.TaxonomyParents(ctx, parentID)
		if err != nil {
			return uuid.Nil, "", err
		}

		if len(parents) == 0 {
			return uuid.Nil, "", apperr.BadRequest("entity %s has no taxonomy ancestor to resolve a subject from", parentID)
		}

		termID = parents[0]
	}

	subjectID, ok, err := taxonomyterm.ResolveCanonicalSubject(ctx, uc.TaxonomyRepo, termID)
	if err != nil {
		return uuid.Nil, "", err
	}

	if !ok {
		return uuid.Nil, "", apperr.BadRequest("taxonomy term %s has no subject ancestor", termID)
	}

	subject, err := uc.TaxonomyRepo.Find(ctx, subjectID)
	if err != nil {
		return uuid.Nil, "", err
	}

	return subjectID, subject.Instance, nil
}

func sameOrder(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func isPermutationOf(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}

	seen := make(map[uuid.UUID]int, len(a))
	for _, id := range a {
		seen[id]++
	}

	for _, id := range b {
		if seen[id] == 0 {
			return false
		}

		seen[id]--
	}

	return true
}
