package operation

import (
	"context"
	"encoding/json"

	"github.com/openlearn/coredata/internal/services/command"
)

func init() {
	register("TaxonomyTermCreateMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.CreateTaxonomyTermInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return uc.Command.CreateTaxonomyTerm(ctx, &in)
	})

	register("TaxonomyTermSetNameAndDescriptionMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SetTaxonomyTermInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SetTaxonomyTerm(ctx, &in)
	})

	// TaxonomyTermSetParentMutation is not in the spec's published
	// catalog line but its command-side primitive already exists
	// (set-taxonomy-parent.go); registered so it stays reachable rather
	// than dead code, per DESIGN.md's "wire it or delete it" rule.
	register("TaxonomyTermSetParentMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SetTaxonomyParentInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SetTaxonomyParent(ctx, &in)
	})

	register("TaxonomyCreateEntityLinksMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.CreateTaxonomyLinkInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.CreateTaxonomyLink(ctx, &in)
	})

	register("TaxonomyDeleteEntityLinksMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.RemoveTaxonomyLinkInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.RemoveTaxonomyLink(ctx, &in)
	})

	register("TaxonomySortMutation", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		var in command.SortTaxonomyTermInput
		if err := decode(payload, &in); err != nil {
			return nil, err
		}

		return nil, uc.Command.SortTaxonomyTerm(ctx, &in)
	})

	register("SubjectsQuery", func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error) {
		return uc.Query.Subjects(ctx)
	})
}
