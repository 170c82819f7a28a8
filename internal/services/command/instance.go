package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/apperr"
)

// resolveInstance looks up which site instance a content object belongs
// to, dispatching on its discriminator the same way a VariantLoader
// would (spec §4.3 "load an id by reading its discriminator first").
// Threads attach to entities, pages and taxonomy terms, the three kinds
// handled here. SetUuidState uses resolveIdentifierInstance instead,
// which also resolves comments and page revisions.
func (uc *UseCase) resolveInstance(ctx context.Context, objectID uuid.UUID) (shared.Instance, error) {
	ident, err := uc.UUIDRepo.FindIdentifier(ctx, objectID)
	if err != nil {
		return "", err
	}

	switch ident.Discriminator {
	case uuidmodel.DiscriminatorEntity:
		e, err := uc.EntityRepo.Find(ctx, objectID)
		if err != nil {
			return "", err
		}

		return e.Instance, nil
	case uuidmodel.DiscriminatorPage:
		p, err := uc.PageRepo.Find(ctx, objectID)
		if err != nil {
			return "", err
		}

		return p.Instance, nil
	case uuidmodel.DiscriminatorTaxonomyTerm:
		t, err := uc.TaxonomyRepo.Find(ctx, objectID)
		if err != nil {
			return "", err
		}

		return t.Instance, nil
	default:
		return "", apperr.BadRequest("object %s of kind %s has no resolvable instance", objectID, ident.Discriminator)
	}
}
