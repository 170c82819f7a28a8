package query

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/taxonomyterm"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/slug"
)

var _ uuidmodel.VariantLoader = (*UseCase)(nil)

// Load reads the identifier row for id, dispatches to the matching
// variant repository, and computes the variant's alias string (spec
// §4.3 "Load by id", §6 "Alias format"). It backs both UuidQuery and
// step 5 of alias resolution ("load the uuid and rebuild the canonical
// alias string from it").
func (uc *UseCase) Load(ctx context.Context, id uuid.UUID) (*uuidmodel.Uuid, error) {
	ident, err := uc.UUIDRepo.FindIdentifier(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &uuidmodel.Uuid{Identifier: *ident}

	switch ident.Discriminator {
	case uuidmodel.DiscriminatorEntity:
		e, err := uc.EntityRepo.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		title := ""

		if e.CurrentRevisionID != nil {
			rev, err := uc.EntityRevisionRepo.Find(ctx, *e.CurrentRevisionID)
			if err == nil {
				title, _ = rev.Field("title")
			}
		}

		out.Alias = uc.aliasForEntity(ctx, e.ID, title)
		out.Payload = e

	case uuidmodel.DiscriminatorPage:
		p, err := uc.PageRepo.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		title := ""

		if p.CurrentRevisionID != nil {
			rev, err := uc.PageRevisionRepo.Find(ctx, *p.CurrentRevisionID)
			if err == nil {
				title = rev.Title
			}
		}

		out.Alias = fmt.Sprintf("/%s/%s", p.ID, slug.Slugify(title))
		out.Payload = p

	case uuidmodel.DiscriminatorTaxonomyTerm:
		t, err := uc.TaxonomyRepo.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		out.Alias = uc.aliasForTaxonomyTerm(ctx, t.ID, t.Name)
		out.Payload = t

	case uuidmodel.DiscriminatorUser:
		u, err := uc.UserRepo.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		out.Alias = "/user/profile/" + u.Username
		out.Payload = u

	case uuidmodel.DiscriminatorComment:
		t, err := uc.ThreadRepo.FindThread(ctx, id)
		if err == nil {
			out.Alias = fmt.Sprintf("/%s", t.ObjectID)
		}

		c, err := uc.ThreadRepo.FindComment(ctx, id)
		if err != nil {
			return nil, err
		}

		out.Payload = c

	case uuidmodel.DiscriminatorEntityRevision:
		r, err := uc.EntityRevisionRepo.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		out.Payload = r

	case uuidmodel.DiscriminatorPageRevision:
		r, err := uc.PageRevisionRepo.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		out.Payload = r

	default:
		return nil, apperr.Internal(fmt.Errorf("uuid %s has unsupported discriminator %s", id, ident.Discriminator))
	}

	return out, nil
}

// aliasForEntity resolves entityID's canonical subject (through a
// taxonomy term if linked directly, or through the nearest taxonomy-
// linked ancestor for parent-entity sub-types) and renders the full
// alias path.
func (uc *UseCase) aliasForEntity(ctx context.Context, entityID uuid.UUID, title string) string {
	subjectSlug := ""

	e, err := uc.EntityRepo.Find(ctx, entityID)

	current := entityID
	for err == nil && e.ParentID != nil {
		current = *e.ParentID
		e, err = uc.EntityRepo.Find(ctx, current)
	}

	if err == nil {
		parents, err := uc.EntityRepo.TaxonomyParents(ctx, current)
		if err == nil && len(parents) > 0 {
			if subjectID, ok, err := taxonomyterm.ResolveCanonicalSubject(ctx, uc.TaxonomyRepo, parents[0]); err == nil && ok {
				if subject, err := uc.TaxonomyRepo.Find(ctx, subjectID); err == nil {
					subjectSlug = slug.Slugify(subject.Name)
				}
			}
		}
	}

	return buildAlias(subjectSlug, entityID, title)
}

// aliasForTaxonomyTerm resolves termID's own canonical subject, which may
// be termID itself.
func (uc *UseCase) aliasForTaxonomyTerm(ctx context.Context, termID uuid.UUID, name string) string {
	subjectSlug := ""

	if subjectID, ok, err := taxonomyterm.ResolveCanonicalSubject(ctx, uc.TaxonomyRepo, termID); err == nil && ok && subjectID != termID {
		if subject, err := uc.TaxonomyRepo.Find(ctx, subjectID); err == nil {
			subjectSlug = slug.Slugify(subject.Name)
		}
	}

	return buildAlias(subjectSlug, termID, name)
}

// buildAlias renders "/<subject-slug>/<id>/<title-slug>", omitting the
// subject segment when absent (spec §6 "Alias format").
func buildAlias(subjectSlug string, id uuid.UUID, title string) string {
	titleSlug := slug.Slugify(title)

	if subjectSlug == "" {
		return fmt.Sprintf("/%s/%s", id, titleSlug)
	}

	return fmt.Sprintf("/%s/%s/%s", subjectSlug, id, titleSlug)
}
