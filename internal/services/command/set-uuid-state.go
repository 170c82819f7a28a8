package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// SetUuidStateInput is the payload of UuidSetStateMutation.
type SetUuidStateInput struct {
	ID      uuid.UUID `validate:"required"`
	Trashed bool
	ActorID uuid.UUID `validate:"required"`
}

// SetUuidState flips the trashed flag on any content object (spec §4.3).
// Untrashable discriminators (entityRevision, user) are rejected, and
// setting trashed to its current value is a silent no-op: no write, no
// event (spec §8 universal invariant).
func (uc *UseCase) SetUuidState(ctx context.Context, in *SetUuidStateInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.set_uuid_state")
	defer span.End()

	logger.Infof("setting trashed=%v on %s", in.Trashed, in.ID)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		ident, err := uc.UUIDRepo.FindIdentifier(ctx, in.ID)
		if err != nil {
			var notFound *apperr.NotFoundError
			if errors.As(err, &notFound) {
				return apperr.BadRequest("id %s does not exist", in.ID)
			}

			return err
		}

		if ident.Discriminator.Untrashable() {
			return apperr.BadRequest("%s ids cannot be trashed", ident.Discriminator)
		}

		if ident.Trashed == in.Trashed {
			return nil
		}

		if err := uc.UUIDRepo.SetTrashed(ctx, in.ID, in.Trashed); err != nil {
			return err
		}

		instance, err := uc.resolveIdentifierInstance(ctx, ident)
		if err != nil {
			return err
		}

		return uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeSetUuidState,
			ActorID:   in.ActorID,
			ObjectID:  in.ID,
			Instance:  instance,
			CreatedAt: shared.Now(),
			Parameters: []event.Parameter{
				event.StringParam("trashed", strconv.FormatBool(in.Trashed)),
			},
		})
	})
}

// resolveIdentifierInstance finds the real instance an identifier belongs
// to by dispatching on its discriminator, the same pattern uuid-loader.go's
// Load uses to dispatch to a variant repository (spec §4.3: SetUuidState
// events must carry the object's actual instance, not a guess).
func (uc *UseCase) resolveIdentifierInstance(ctx context.Context, ident *uuidmodel.Identifier) (shared.Instance, error) {
	switch ident.Discriminator {
	case uuidmodel.DiscriminatorEntity:
		e, err := uc.EntityRepo.Find(ctx, ident.ID)
		if err != nil {
			return "", err
		}

		return e.Instance, nil
	case uuidmodel.DiscriminatorPage:
		p, err := uc.PageRepo.Find(ctx, ident.ID)
		if err != nil {
			return "", err
		}

		return p.Instance, nil
	case uuidmodel.DiscriminatorTaxonomyTerm:
		term, err := uc.TaxonomyRepo.Find(ctx, ident.ID)
		if err != nil {
			return "", err
		}

		return term.Instance, nil
	case uuidmodel.DiscriminatorPageRevision:
		rev, err := uc.PageRevisionRepo.Find(ctx, ident.ID)
		if err != nil {
			return "", err
		}

		p, err := uc.PageRepo.Find(ctx, rev.PageID)
		if err != nil {
			return "", err
		}

		return p.Instance, nil
	case uuidmodel.DiscriminatorComment:
		c, err := uc.ThreadRepo.FindComment(ctx, ident.ID)
		if err != nil {
			return "", err
		}

		th, err := uc.ThreadRepo.FindThread(ctx, c.ThreadID)
		if err != nil {
			return "", err
		}

		objIdent, err := uc.UUIDRepo.FindIdentifier(ctx, th.ObjectID)
		if err != nil {
			return "", err
		}

		return uc.resolveIdentifierInstance(ctx, objIdent)
	default:
		return "", apperr.Internal(fmt.Errorf("cannot resolve instance for discriminator %s", ident.Discriminator))
	}
}
