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

// CreateThreadInput is the payload of ThreadCreateThreadMutation.
type CreateThreadInput struct {
	ObjectID  uuid.UUID `validate:"required"`
	AuthorID  uuid.UUID `validate:"required"`
	Content   string
	Subscribe bool
}

// CreateThread opens a new discussion on objectID with an opening
// comment, emitting CreateThread (spec §4.6 "Create thread").
func (uc *UseCase) CreateThread(ctx context.Context, in *CreateThreadInput) (uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_thread")
	defer span.End()

	logger.Infof("opening thread on object %s", in.ObjectID)

	if in.Content == "" {
		return uuid.Nil, apperr.BadRequest("comment content must not be empty")
	}

	id := uuid.New()

	err := dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		instance, err := uc.resolveInstance(ctx, in.ObjectID)
		if err != nil {
			return err
		}

		if err := uc.UUIDRepo.Create(ctx, id, uuidmodel.DiscriminatorComment); err != nil {
			return err
		}

		first := &thread.Comment{
			ID:        id,
			ThreadID:  id,
			AuthorID:  in.AuthorID,
			Content:   in.Content,
			CreatedAt: shared.Now(),
		}

		if err := uc.ThreadRepo.CreateThread(ctx, in.ObjectID, first); err != nil {
			return err
		}

		if err := uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeCreateThread,
			ActorID:   in.AuthorID,
			ObjectID:  in.ObjectID,
			Instance:  instance,
			CreatedAt: shared.Now(),
			Parameters: []event.Parameter{
				event.UUIDParam("threadId", id),
			},
		}); err != nil {
			return err
		}

		if in.Subscribe {
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
