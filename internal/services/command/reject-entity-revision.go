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

// RejectEntityRevisionInput is the payload of EntityRejectRevisionMutation.
type RejectEntityRevisionInput struct {
	EntityID   uuid.UUID `validate:"required"`
	RevisionID uuid.UUID `validate:"required"`
	ActorID    uuid.UUID `validate:"required"`
	Reason     string
}

// RejectEntityRevision trashes a revision that was never checked out
// (spec §4.4 "Reject revision"). Rejecting the entity's current revision
// is refused — checkout another revision first.
func (uc *UseCase) RejectEntityRevision(ctx context.Context, in *RejectEntityRevisionInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.reject_entity_revision")
	defer span.End()

	logger.Infof("rejecting revision %s on entity %s", in.RevisionID, in.EntityID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		e, err := uc.EntityRepo.Find(ctx, in.EntityID)
		if err != nil {
			return err
		}

		if e.CurrentRevisionID != nil && *e.CurrentRevisionID == in.RevisionID {
			return apperr.BadRequest("cannot reject the current revision of entity %s", in.EntityID)
		}

		rev, err := uc.EntityRevisionRepo.Find(ctx, in.RevisionID)
		if err != nil {
			return err
		}

		if rev.EntityID != in.EntityID {
			return apperr.BadRequest("revision %s does not belong to entity %s", in.RevisionID, in.EntityID)
		}

		if rev.Trashed {
			return apperr.BadRequest("revision is already rejected")
		}

		if err := uc.EntityRevisionRepo.SetTrashed(ctx, in.RevisionID, true); err != nil {
			return err
		}

		return uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeRejectRevision,
			ActorID:   in.ActorID,
			ObjectID:  in.EntityID,
			Instance:  e.Instance,
			CreatedAt: shared.Now(),
			Parameters: []event.Parameter{
				event.UUIDParam("revisionId", in.RevisionID),
				event.StringParam("reason", in.Reason),
			},
		})
	})
}
