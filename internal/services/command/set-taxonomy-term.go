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

// SetTaxonomyTermInput is the payload of TaxonomyTermSetNameAndDescriptionMutation.
type SetTaxonomyTermInput struct {
	TermID      uuid.UUID `validate:"required"`
	Name        string
	Description string
	ActorID     uuid.UUID `validate:"required"`
}

// SetTaxonomyTerm renames a taxonomy term and replaces its description in
// one update, emitting SetTaxonomyTerm (spec §4.5 "Rename / set
// description": same name-uniqueness rule as creation).
func (uc *UseCase) SetTaxonomyTerm(ctx context.Context, in *SetTaxonomyTermInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.set_taxonomy_term")
	defer span.End()

	logger.Infof("renaming taxonomy term %s to %q", in.TermID, in.Name)

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		t, err := uc.TaxonomyRepo.Find(ctx, in.TermID)
		if err != nil {
			return err
		}

		if err := uc.TaxonomyRepo.SetNameAndDescription(ctx, in.TermID, in.Name, in.Description); err != nil {
			return err
		}

		return uc.emit(ctx, &event.Event{
			ID:        uuid.New(),
			Type:      event.TypeSetTaxonomyTerm,
			ActorID:   in.ActorID,
			ObjectID:  in.TermID,
			Instance:  t.Instance,
			CreatedAt: shared.Now(),
		})
	})
}
