package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// EditCommentInput is the payload of ThreadEditCommentMutation.
type EditCommentInput struct {
	CommentID uuid.UUID `validate:"required"`
	ActorID   uuid.UUID `validate:"required"`
	Content   string
}

// EditComment updates a comment's content in place (spec §4.6 "Edit
// comment"): only the author may edit, a trashed or archived comment
// refuses the edit, and an unchanged content skips the write. Editing
// does not emit an event.
func (uc *UseCase) EditComment(ctx context.Context, in *EditCommentInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.edit_comment")
	defer span.End()

	logger.Infof("editing comment %s", in.CommentID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		c, err := uc.ThreadRepo.FindComment(ctx, in.CommentID)
		if err != nil {
			return err
		}

		if c.AuthorID != in.ActorID {
			return apperr.BadRequest("only the author may edit comment %s", in.CommentID)
		}

		if c.Trashed {
			return apperr.BadRequest("comment %s is trashed", in.CommentID)
		}

		t, err := uc.ThreadRepo.FindThread(ctx, c.ThreadID)
		if err != nil {
			return err
		}

		if t.Archived {
			return apperr.BadRequest("thread is already archived")
		}

		if c.Content == in.Content {
			return nil
		}

		return uc.ThreadRepo.EditComment(ctx, in.CommentID, in.Content)
	})
}
