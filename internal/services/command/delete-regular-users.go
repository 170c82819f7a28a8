package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/user"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// DeleteRegularUsersInput is the payload of UserDeleteRegularUsersMutation.
type DeleteRegularUsersInput struct {
	UserIDs []uuid.UUID
}

// DeleteRegularUsers removes a batch of accounts, first reassigning
// every row they authored to the well-known deleted-user id and then
// dropping the user row itself (spec §4.9 "Delete regular user":
// "reassigns authorship fields to a designated deleted user id and
// removes personal rows").
func (uc *UseCase) DeleteRegularUsers(ctx context.Context, in *DeleteRegularUsersInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_regular_users")
	defer span.End()

	logger.Infof("deleting %d regular user accounts", len(in.UserIDs))

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		for _, id := range in.UserIDs {
			if id == user.DeletedUserID {
				return apperr.BadRequest("cannot delete the reserved deleted-user account")
			}

			if _, err := uc.UserRepo.Find(ctx, id); err != nil {
				return err
			}

			if err := uc.EntityRevisionRepo.ReassignAuthor(ctx, id, user.DeletedUserID); err != nil {
				return err
			}

			if err := uc.PageRevisionRepo.ReassignAuthor(ctx, id, user.DeletedUserID); err != nil {
				return err
			}

			if err := uc.ThreadRepo.ReassignAuthor(ctx, id, user.DeletedUserID); err != nil {
				return err
			}

			if err := uc.UserRepo.Delete(ctx, id); err != nil {
				return err
			}
		}

		return nil
	})
}
