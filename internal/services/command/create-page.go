package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/page"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// CreatePageInput is the payload of PageCreateMutation.
type CreatePageInput struct {
	Instance shared.Instance
	ParentID *uuid.UUID
	ActorID  uuid.UUID `validate:"required"`
}

// CreatePage creates a new page in the site's page tree (spec §4.5,
// simplified sibling of CreateEntity with no taxonomy links).
func (uc *UseCase) CreatePage(ctx context.Context, in *CreatePageInput) (uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_page")
	defer span.End()

	logger.Infof("creating page in instance %s", in.Instance)

	id := uuid.New()

	err := dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		if err := uc.UUIDRepo.Create(ctx, id, uuidmodel.DiscriminatorPage); err != nil {
			return err
		}

		p := &page.Page{
			ID:        id,
			Instance:  in.Instance,
			ParentID:  in.ParentID,
			CreatedAt: shared.Now(),
		}

		if err := uc.PageRepo.Create(ctx, p); err != nil {
			return err
		}

		return uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeCreateEntity,
			ActorID:   in.ActorID,
			ObjectID:  id,
			Instance:  in.Instance,
			CreatedAt: shared.Now(),
		})
	})
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}
