package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// SetEntityLicenseInput is the payload of EntitySetLicenseMutation.
type SetEntityLicenseInput struct {
	EntityID  uuid.UUID `validate:"required"`
	LicenseID int64
	ActorID   uuid.UUID `validate:"required"`
}

// SetEntityLicense updates an entity's license id, emitting SetLicense.
func (uc *UseCase) SetEntityLicense(ctx context.Context, in *SetEntityLicenseInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.set_entity_license")
	defer span.End()

	logger.Infof("setting license %d on entity %s", in.LicenseID, in.EntityID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		e, err := uc.EntityRepo.Find(ctx, in.EntityID)
		if err != nil {
			return err
		}

		if err := uc.EntityRepo.SetLicense(ctx, in.EntityID, in.LicenseID); err != nil {
			return err
		}

		return uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeSetLicense,
			ActorID:   in.ActorID,
			ObjectID:  in.EntityID,
			Instance:  e.Instance,
			CreatedAt: shared.Now(),
		})
	})
}
