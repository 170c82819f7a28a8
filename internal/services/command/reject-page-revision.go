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

// RejectPageRevisionInput is the payload of PageRejectRevisionMutation.
type RejectPageRevisionInput struct {
	PageID     uuid.UUID `validate:"required"`
	RevisionID uuid.UUID `validate:"required"`
	ActorID    uuid.UUID `validate:"required"`
}

// RejectPageRevision trashes a page revision that was never checked out.
func (uc *UseCase) RejectPageRevision(ctx context.Context, in *RejectPageRevisionInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.reject_page_revision")
	defer span.End()

	logger.Infof("rejecting revision %s on page %s", in.RevisionID, in.PageID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		p, err := uc.PageRepo.Find(ctx, in.PageID)
		if err != nil {
			return err
		}

		if p.CurrentRevisionID != nil && *p.CurrentRevisionID == in.RevisionID {
			return apperr.BadRequest("cannot reject the current revision of page %s", in.PageID)
		}

		rev, err := uc.PageRevisionRepo.Find(ctx, in.RevisionID)
		if err != nil {
			return err
		}

		if rev.PageID != in.PageID {
			return apperr.BadRequest("revision %s does not belong to page %s", in.RevisionID, in.PageID)
		}

		if err := uc.UUIDRepo.SetTrashed(ctx, in.RevisionID, true); err != nil {
			return err
		}

		return uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeRejectRevision,
			ActorID:   in.ActorID,
			ObjectID:  in.PageID,
			Instance:  p.Instance,
			CreatedAt: shared.Now(),
			Parameters: []event.Parameter{
				event.UUIDParam("revisionId", in.RevisionID),
			},
		})
	})
}
