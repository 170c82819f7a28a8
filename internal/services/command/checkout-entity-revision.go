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

// CheckoutEntityRevisionInput is the payload of EntityCheckoutRevisionMutation.
type CheckoutEntityRevisionInput struct {
	EntityID   uuid.UUID `validate:"required"`
	RevisionID uuid.UUID `validate:"required"`
	ActorID    uuid.UUID `validate:"required"`
	Reason     string
}

// CheckoutEntityRevision sets an entity's current revision (spec §4.4
// "Checkout revision", §8 invariant): the revision must belong to the
// entity and not be trashed; un-trashing it is a side effect of
// checkout.
func (uc *UseCase) CheckoutEntityRevision(ctx context.Context, in *CheckoutEntityRevisionInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.checkout_entity_revision")
	defer span.End()

	logger.Infof("checking out revision %s on entity %s", in.RevisionID, in.EntityID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		e, err := uc.EntityRepo.Find(ctx, in.EntityID)
		if err != nil {
			return err
		}

		if e.CurrentRevisionID != nil && *e.CurrentRevisionID == in.RevisionID {
			return apperr.BadRequest("revision is already checked out")
		}

		return uc.checkoutRevisionTx(ctx, in.EntityID, in.RevisionID, in.ActorID, e.Instance, in.Reason)
	})
}

// checkoutRevisionTx is the shared checkout body used both by the
// standalone mutation and by AddEntityRevision's needsReview=false path.
// It must run inside an already-open transaction.
func (uc *UseCase) checkoutRevisionTx(ctx context.Context, entityID, revisionID, actorID uuid.UUID, instance shared.Instance, reason string) error {
	rev, err := uc.EntityRevisionRepo.Find(ctx, revisionID)
	if err != nil {
		return err
	}

	if rev.EntityID != entityID {
		return apperr.BadRequest("revision %s does not belong to entity %s", revisionID, entityID)
	}

	if rev.Trashed {
		if err := uc.EntityRevisionRepo.SetTrashed(ctx, revisionID, false); err != nil {
			return err
		}
	}

	if err := uc.EntityRepo.SetCurrentRevision(ctx, entityID, revisionID); err != nil {
		return err
	}

	return uc.emit(ctx, &event.Event{
		ID:        uuid.New(),
		Type:      event.TypeCheckoutRevision,
		ActorID:   actorID,
		ObjectID:  entityID,
		Instance:  instance,
		CreatedAt: shared.Now(),
		Parameters: []event.Parameter{
			event.UUIDParam("revisionId", revisionID),
			event.StringParam("reason", reason),
		},
	})
}
