package operation

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/user"
	"github.com/openlearn/coredata/internal/services/command"
)

func init() {
	register("UserCreateMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.CreateUserInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Command.CreateUser(ctx, &in)
	})

	register("UserAddRoleMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.AddUserRoleInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.AddUserRole(ctx, &in)
	})

	register("UserRemoveRoleMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.RemoveUserRoleInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.RemoveUserRole(ctx, &in)
	})

	register("UserSetDescriptionMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SetUserDescriptionInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SetUserDescription(ctx, &in)
	})

	register("UserSetEmailMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SetUserEmailInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SetUserEmail(ctx, &in)
	})

	register("UserDeleteBotsMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.DeleteBotsInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.DeleteBots(ctx, &in)
	})

	register("UserDeleteRegularUsersMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.DeleteRegularUsersInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.DeleteRegularUsers(ctx, &in)
	})

	register("UserPotentialSpamUsersQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			First int `json:"first"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.PotentialSpamUsers(ctx, in.First)
	})

	register("UsersByRoleQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			Instance shared.Instance `json:"instance"`
			Role     user.Role       `json:"role"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.UsersByRole(ctx, in.Instance, in.Role)
	})

	register("ActiveAuthorsQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			Instance shared.Instance `json:"instance"`
			First    int             `json:"first"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.ActiveAuthors(ctx, in.Instance, in.First)
	})

	register("ActiveReviewersQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			Instance shared.Instance `json:"instance"`
			First    int             `json:"first"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.ActiveReviewers(ctx, in.Instance, in.First)
	})

	register("UserActivityByTypeQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in struct {
			Instance shared.Instance `json:"instance"`
			UserID   uuid.UUID       `json:"userId"`
		}
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Query.UserActivityByType(ctx, in.Instance, in.UserID)
	})
}
