package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/user"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// RemoveUserRoleInput is the payload of UserRemoveRoleMutation.
type RemoveUserRoleInput struct {
	UserID   uuid.UUID `validate:"required"`
	Instance shared.Instance
	Role     user.Role
}

// RemoveUserRole revokes role from a user within instance.
func (uc *UseCase) RemoveUserRole(ctx context.Context, in *RemoveUserRoleInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.remove_user_role")
	defer span.End()

	logger.Infof("revoking role %s from user %s in %s", in.Role, in.UserID, in.Instance)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		u, err := uc.UserRepo.Find(ctx, in.UserID)
		if err != nil {
			return err
		}

		if !u.HasRole(in.Instance, in.Role) {
			return nil
		}

		remaining := make([]user.Role, 0, len(u.Roles[in.Instance]))

		for _, r := range u.Roles[in.Instance] {
			if r != in.Role {
				remaining = append(remaining, r)
			}
		}

		return uc.UserRepo.SetRoles(ctx, in.UserID, in.Instance, remaining)
	})
}
