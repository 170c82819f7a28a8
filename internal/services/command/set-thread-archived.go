package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// SetThreadArchivedInput is the payload of ThreadSetThreadArchivedMutation.
type SetThreadArchivedInput struct {
	ThreadIDs []uuid.UUID
	Archived  bool
	ActorID   uuid.UUID `validate:"required"`
}

// SetThreadArchived flips the archived flag of a batch of threads. Both
// directions surface as SetThreadState on the event log (spec §4.6
// "Set thread archived state"): each named id must be a comment, and
// only threads whose current value differs emit an event.
func (uc *UseCase) SetThreadArchived(ctx context.Context, in *SetThreadArchivedInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.set_thread_archived")
	defer span.End()

	logger.Infof("setting %d threads archived=%t", len(in.ThreadIDs), in.Archived)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		for _, threadID := range in.ThreadIDs {
			ident, err := uc.UUIDRepo.FindIdentifier(ctx, threadID)
			if err != nil {
				return err
			}

			if ident.Discriminator != uuidmodel.DiscriminatorComment {
				return apperr.BadRequest("%s is not a comment", threadID)
			}

			t, err := uc.ThreadRepo.FindThread(ctx, threadID)
			if err != nil {
				return err
			}

			if t.Archived == in.Archived {
				continue
			}

			if err := uc.ThreadRepo.SetArchived(ctx, threadID, in.Archived); err != nil {
				return err
			}

			instance, err := uc.resolveInstance(ctx, t.ObjectID)
			if err != nil {
				return err
			}

			if err := uc.emit(ctx, &event.Event{
				ID:        uuid.New(),
				Type:      event.TypeSetThreadState,
				ActorID:   in.ActorID,
				ObjectID:  threadID,
				Instance:  instance,
				CreatedAt: shared.Now(),
			}); err != nil {
				return err
			}
		}

		return nil
	})
}
