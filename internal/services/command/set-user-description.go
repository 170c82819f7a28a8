package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// SetUserDescriptionInput is the payload of UserSetDescriptionMutation.
type SetUserDescriptionInput struct {
	UserID      uuid.UUID `validate:"required"`
	Description string
}

// SetUserDescription updates a user's profile description.
func (uc *UseCase) SetUserDescription(ctx context.Context, in *SetUserDescriptionInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.set_user_description")
	defer span.End()

	logger.Infof("setting description for user %s", in.UserID)

	if len(in.Description) > 64*1024 {
		return apperr.BadRequest("description must be under 64 KiB")
	}

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		if _, err := uc.UserRepo.Find(ctx, in.UserID); err != nil {
			return err
		}

		return uc.UserRepo.SetDescription(ctx, in.UserID, in.Description)
	})
}
