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

// AddUserRoleInput is the payload of UserAddRoleMutation.
type AddUserRoleInput struct {
	UserID   uuid.UUID `validate:"required"`
	Instance shared.Instance
	Role     user.Role
}

// AddUserRole grants role to a user within instance, a no-op if already held.
func (uc *UseCase) AddUserRole(ctx context.Context, in *AddUserRoleInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.add_user_role")
	defer span.End()

	logger.Infof("granting role %s to user %s in %s", in.Role, in.UserID, in.Instance)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		u, err := uc.UserRepo.Find(ctx, in.UserID)
		if err != nil {
			return err
		}

		if u.HasRole(in.Instance, in.Role) {
			return nil
		}

		roles := append(append([]user.Role{}, u.Roles[in.Instance]...), in.Role)

		return uc.UserRepo.SetRoles(ctx, in.UserID, in.Instance, roles)
	})
}
