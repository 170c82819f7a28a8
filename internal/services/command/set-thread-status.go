package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// SetThreadStatusInput is the payload of ThreadSetThreadStatusMutation.
type SetThreadStatusInput struct {
	ThreadID uuid.UUID `validate:"required"`
	StatusID uuid.UUID `validate:"required"`
}

// SetThreadStatus assigns a named status (e.g. open, done, noStatus) to
// a thread (spec §4.6 "Set thread status"). The status id must itself
// resolve to a comment row, a quirk carried over from the legacy
// deployment where statuses are sentinel comments; it does not emit an
// event.
func (uc *UseCase) SetThreadStatus(ctx context.Context, in *SetThreadStatusInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.set_thread_status")
	defer span.End()

	logger.Infof("setting thread %s status to %s", in.ThreadID, in.StatusID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		if _, err := uc.ThreadRepo.FindThread(ctx, in.ThreadID); err != nil {
			return err
		}

		ident, err := uc.UUIDRepo.FindIdentifier(ctx, in.StatusID)
		if err != nil {
			return err
		}

		if ident.Discriminator != uuidmodel.DiscriminatorComment {
			return apperr.BadRequest("status %s is not a comment", in.StatusID)
		}

		return uc.ThreadRepo.SetStatus(ctx, in.ThreadID, in.StatusID)
	})
}
