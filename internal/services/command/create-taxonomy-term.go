package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/taxonomyterm"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// CreateTaxonomyTermInput is the payload of TaxonomyTermCreateMutation.
type CreateTaxonomyTermInput struct {
	Type        taxonomyterm.TaxonomyType
	Instance    shared.Instance
	Name        string
	Description string
	ParentID    uuid.UUID `validate:"required"`
	ActorID     uuid.UUID `validate:"required"`
}

// CreateTaxonomyTerm inserts a new term under an existing parent term
// (spec §4.5 "Create term").
func (uc *UseCase) CreateTaxonomyTerm(ctx context.Context, in *CreateTaxonomyTermInput) (uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_taxonomy_term")
	defer span.End()

	logger.Infof("creating taxonomy term %q under %s", in.Name, in.ParentID)

	id := uuid.New()

	err := dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		if _, err := uc.TaxonomyRepo.Find(ctx, in.ParentID); err != nil {
			return err
		}

		if err := uc.UUIDRepo.Create(ctx, id, uuidmodel.DiscriminatorTaxonomyTerm); err != nil {
			return err
		}

		parentID := in.ParentID

		t := &taxonomyterm.TaxonomyTerm{
			ID:          id,
			Type:        in.Type,
			Instance:    in.Instance,
			Name:        in.Name,
			Description: in.Description,
			ParentID:    &parentID,
			CreatedAt:   shared.Now(),
		}

		if err := uc.TaxonomyRepo.Create(ctx, t); err != nil {
			return err
		}

		return uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeCreateTaxonomyTerm,
			ActorID:   in.ActorID,
			ObjectID:  id,
			Instance:  in.Instance,
			CreatedAt: shared.Now(),
			Parameters: []event.Parameter{
				event.UUIDParam("parentId", in.ParentID),
			},
		})
	})
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}
