package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// SetUserEmailInput is the payload of UserSetEmailMutation.
type SetUserEmailInput struct {
	UserID uuid.UUID `validate:"required"`
	Email  string
}

// SetUserEmail updates a user's email address.
func (uc *UseCase) SetUserEmail(ctx context.Context, in *SetUserEmailInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.set_user_email")
	defer span.End()

	logger.Infof("setting email for user %s", in.UserID)

	if len(in.Email) > 254 {
		return apperr.BadRequest("email must be at most 254 bytes")
	}

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		if _, err := uc.UserRepo.Find(ctx, in.UserID); err != nil {
			return err
		}

		return uc.UserRepo.SetEmail(ctx, in.UserID, in.Email)
	})
}
