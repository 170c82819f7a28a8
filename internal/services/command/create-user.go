package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/user"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// CreateUserInput is the payload of UserCreateMutation.
type CreateUserInput struct {
	Username    string
	Email       string
	Description string
}

// CreateUser registers a new account (spec §4.9 validation: username
// non-empty and at most 32 bytes, email at most 254 bytes, description
// under 64 KiB).
func (uc *UseCase) CreateUser(ctx context.Context, in *CreateUserInput) (uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_user")
	defer span.End()

	logger.Infof("creating user %q", in.Username)

	if in.Username == "" || len(in.Username) > 32 {
		return uuid.Nil, apperr.BadRequest("username must be 1-32 bytes")
	}

	if len(in.Email) > 254 {
		return uuid.Nil, apperr.BadRequest("email must be at most 254 bytes")
	}

	if len(in.Description) > 64*1024 {
		return uuid.Nil, apperr.BadRequest("description must be under 64 KiB")
	}

	id := uuid.New()

	err := dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		if err := uc.UUIDRepo.Create(ctx, id, uuidmodel.DiscriminatorUser); err != nil {
			return err
		}

		u := &user.User{
			ID:          id,
			Username:    in.Username,
			Email:       in.Email,
			Description: in.Description,
			CreatedAt:   shared.Now(),
		}

		return uc.UserRepo.Create(ctx, u)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}
