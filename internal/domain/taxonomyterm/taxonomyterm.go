// Package taxonomyterm implements TaxonomyTerm, the tree structure that
// entities are filed under (spec §3 "TaxonomyTerm", §4.5).
package taxonomyterm

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// TaxonomyType is the closed set of term kinds (spec §3).
type TaxonomyType string

const (
	TypeRoot         TaxonomyType = "root"
	TypeSubject      TaxonomyType = "subject"
	TypeTopic        TaxonomyType = "topic"
	TypeTopicFolder  TaxonomyType = "topicFolder"
	TypeCurriculum   TaxonomyType = "curriculum"
	TypeLocale       TaxonomyType = "locale"
)

// maxAncestorWalk bounds the canonical-subject ancestor walk (spec §4.5:
// "walk at most 20 levels before giving up, to bound pathological or
// cyclic trees").
const maxAncestorWalk = 20

// TaxonomyTerm is one node in the taxonomy tree.
type TaxonomyTerm struct {
	ID          uuid.UUID
	Type        TaxonomyType
	Instance    shared.Instance
	Name        string
	Description string
	ParentID    *uuid.UUID // nil only for the instance's root node
	Trashed     bool
	CreatedAt   shared.Datetime
}

// Repository is the persistence contract for taxonomy terms (spec §4.5).
type Repository interface {
	Create(ctx context.Context, t *TaxonomyTerm) error
	Find(ctx context.Context, id uuid.UUID) (*TaxonomyTerm, error)

	// SetNameAndDescription renames a term and replaces its description
	// in one update (spec §4.5 "Rename / set description").
	SetNameAndDescription(ctx context.Context, id uuid.UUID, name, description string) error
	Reparent(ctx context.Context, id uuid.UUID, parentID uuid.UUID) error

	// Children returns ordered child term ids.
	Children(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error)
	Reorder(ctx context.Context, parentID uuid.UUID, orderedChildIDs []uuid.UUID) error

	// EntityLinks returns entity ids linked directly under a term, in
	// display order (spec §4.5 "Link entities").
	EntityLinks(ctx context.Context, termID uuid.UUID) ([]uuid.UUID, error)
	LinkEntity(ctx context.Context, termID, entityID uuid.UUID, position int) error
	UnlinkEntity(ctx context.Context, termID, entityID uuid.UUID) error

	// Subjects returns every non-trashed term one level below an
	// instance root, of type subject or topic (spec §6 SubjectsQuery).
	Subjects(ctx context.Context) ([]uuid.UUID, error)
}

// ResolveCanonicalSubject walks up the taxonomy tree from termID looking
// for the nearest ancestor of TaxonomyType subject, giving up after
// maxAncestorWalk hops (spec §4.5 "Canonical subject"). It returns
// uuid.Nil, false if no subject ancestor is found within the bound.
func ResolveCanonicalSubject(ctx context.Context, repo Repository, termID uuid.UUID) (uuid.UUID, bool, error) {
	current := termID

	for hop := 0; hop < maxAncestorWalk; hop++ {
		term, err := repo.Find(ctx, current)
		if err != nil {
			return uuid.Nil, false, fmt.Errorf("resolving canonical subject: %w", err)
		}

		if term.Type == TypeSubject {
			return term.ID, true, nil
		}

		if term.ParentID == nil {
			return uuid.Nil, false, nil
		}

		current = *term.ParentID
	}

	return uuid.Nil, false, nil
}
