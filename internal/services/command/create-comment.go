package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/subscription"
	"github.com/openlearn/coredata/internal/domain/thread"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// CreateCommentInput is the payload of ThreadCreateCommentMutation.
type CreateCommentInput struct {
	ThreadID  uuid.UUID `validate:"required"`
	AuthorID  uuid.UUID `validate:"required"`
	Content   string
	Subscribe bool
}

// CreateComment appends a comment to an existing, unarchived thread,
// emitting CreateComment (spec §4.6 "Create comment").
func (uc *UseCase) CreateComment(ctx context.Context, in *CreateCommentInput) (uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_comment")
	defer span.End()

	logger.Infof("commenting on thread %s", in.ThreadID)

	if in.Content == "" {
		return uuid.Nil, apperr.BadRequest("comment content must not be empty")
	}

	id := uuid.New()

	err := dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		t, err := uc.ThreadRepo.FindThread(ctx, in.ThreadID)
		if err != nil {
			return err
		}

		if t.Archived {
			return apperr.BadRequest("thread is already archived")
		}

		instance, err := uc.resolveInstance(ctx, t.ObjectID)
		if err != nil {
			return err
		}

		if err := uc.UUIDRepo.Create(ctx, id, uuidmodel.DiscriminatorComment); err != nil {
			return err
		}

		c := &thread.Comment{
			ID:        id,
			ThreadID:  in.ThreadID,
			AuthorID:  in.AuthorID,
			Content:   in.Content,
			CreatedAt: shared.Now(),
		}

		if err := uc.ThreadRepo.CreateComment(ctx, c); err != nil {
			return err
		}

		if err := uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeCreateComment,
			ActorID:   in.AuthorID,
			ObjectID:  t.ObjectID,
			Instance:  instance,
			CreatedAt: shared.Now(),
			Parameters: []event.Parameter{
				event.UUIDParam("threadId", in.ThreadID),
				event.UUIDParam("commentId", id),
			},
		}); err != nil {
			return err
		}

		if in.Subscribe {
			if err := uc.SubscriptionRepo.Set(ctx, &subscription.Subscription{
				ObjectID: in.ThreadID,
				UserID:   in.AuthorID,
			}); err != nil {
				return err
			}

			if err := uc.SubscriptionRepo.Set(ctx, &subscription.Subscription{
				ObjectID: id,
				UserID:   in.AuthorID,
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}
