package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/pagerevision"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// AddPageRevisionInput is the payload of PageAddRevisionMutation.
type AddPageRevisionInput struct {
	PageID      uuid.UUID `validate:"required"`
	AuthorID    uuid.UUID `validate:"required"`
	Title       string
	Content     string
	NeedsReview bool
}

// AddPageRevision inserts a new page revision, skipping the write when
// title and content are unchanged from the current revision, matching
// entity's AddRevision dedup rule but over the page's fixed two fields.
func (uc *UseCase) AddPageRevision(ctx context.Context, in *AddPageRevisionInput) (uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.add_page_revision")
	defer span.End()

	logger.Infof("adding revision to page %s", in.PageID)

	var revisionID uuid.UUID

	err := dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		p, err := uc.PageRepo.Find(ctx, in.PageID)
		if err != nil {
			return err
		}

		if p.CurrentRevisionID != nil {
			current, err := uc.PageRevisionRepo.Find(ctx, *p.CurrentRevisionID)
			if err != nil {
				return err
			}

			if current.Title == in.Title && current.Content == in.Content {
				revisionID = current.ID
				return nil
			}
		}

		revisionID = uuid.New()

		if err := uc.UUIDRepo.Create(ctx, revisionID, uuidmodel.DiscriminatorPageRevision); err != nil {
			return err
		}

		rev := &pagerevision.Revision{
			ID:        revisionID,
			PageID:    in.PageID,
			AuthorID:  in.AuthorID,
			Title:     in.Title,
			Content:   in.Content,
			CreatedAt: shared.Now(),
		}

		if err := uc.PageRevisionRepo.Create(ctx, rev); err != nil {
			return err
		}

		if err := uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeCreateEntityRevision,
			ActorID:   in.AuthorID,
			ObjectID:  in.PageID,
			Instance:  p.Instance,
			CreatedAt: shared.Now(),
			Parameters: []event.Parameter{
				event.UUIDParam("revisionId", revisionID),
			},
		}); err != nil {
			return err
		}

		if !in.NeedsReview {
			return uc.checkoutPageRevisionTx(ctx, in.PageID, revisionID, in.AuthorID, p.Instance)
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return revisionID, nil
}
