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

// CheckoutPageRevisionInput is the payload of PageCheckoutRevisionMutation.
type CheckoutPageRevisionInput struct {
	PageID     uuid.UUID `validate:"required"`
	RevisionID uuid.UUID `validate:"required"`
	ActorID    uuid.UUID `validate:"required"`
}

// CheckoutPageRevision sets a page's current revision (spec §4.5).
func (uc *UseCase) CheckoutPageRevision(ctx context.Context, in *CheckoutPageRevisionInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.checkout_page_revision")
	defer span.End()

	logger.Infof("checking out revision %s on page %s", in.RevisionID, in.PageID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		p, err := uc.PageRepo.Find(ctx, in.PageID)
		if err != nil {
			return err
		}

		return uc.checkoutPageRevisionTx(ctx, in.PageID, in.RevisionID, in.ActorID, p.Instance)
	})
}

func (uc *UseCase) checkoutPageRevisionTx(ctx context.Context, pageID, revisionID, actorID uuid.UUID, instance shared.Instance) error {
	rev, err := uc.PageRevisionRepo.Find(ctx, revisionID)
	if err != nil {
		return err
	}

	if rev.PageID != pageID {
		return apperr.BadRequest("revision %s does not belong to page %s", revisionID, pageID)
	}

	if err := uc.PageRepo.SetCurrentRevision(ctx, pageID, revisionID); err != nil {
		return err
	}

	return uc.emit(ctx, &event.Event{
		ID:        uuid.New(),
		Type:      event.TypeCheckoutRevision,
		ActorID:   actorID,
		ObjectID:  pageID,
		Instance:  instance,
		CreatedAt: shared.Now(),
		Parameters: []event.Parameter{
			event.UUIDParam("revisionId", revisionID),
		},
	})
}
