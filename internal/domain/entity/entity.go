// Package entity implements the Entity half of the versioned-content
// engine (spec §3 "Entity and EntityRevision", §4.4).
package entity

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// SubType is one of the ten entity sub-types.
type SubType string

const (
	SubTypeApplet          SubType = "applet"
	SubTypeArticle         SubType = "article"
	SubTypeCourse          SubType = "course"
	SubTypeCoursePage      SubType = "coursePage"
	SubTypeEvent           SubType = "event"
	SubTypeExercise        SubType = "exercise"
	SubTypeExerciseGroup   SubType = "exerciseGroup"
	SubTypeGroupedExercise SubType = "groupedExercise"
	SubTypeSolution        SubType = "solution"
	SubTypeVideo           SubType = "video"
)

// HasParentEntity reports whether sub-types of this kind link to a parent
// entity instead of taxonomy terms directly (spec §3: coursePage →
// course, groupedExercise → exerciseGroup, solution → exercise or
// groupedExercise).
func (s SubType) HasParentEntity() bool {
	switch s {
	case SubTypeCoursePage, SubTypeGroupedExercise, SubTypeSolution:
		return true
	default:
		return false
	}
}

// Entity is one versioned content object.
type Entity struct {
	ID                uuid.UUID
	SubType           SubType
	Instance          shared.Instance
	LicenseID         int64
	CurrentRevisionID *uuid.UUID
	ParentID          *uuid.UUID // set iff SubType.HasParentEntity()
	Trashed           bool
	CreatedAt         shared.Datetime
}

// Repository is the persistence contract for entities and their
// taxonomy/parent links (spec §4.4, §4.5 "Link entities").
type Repository interface {
	Create(ctx context.Context, e *Entity) error
	Find(ctx context.Context, id uuid.UUID) (*Entity, error)
	SetCurrentRevision(ctx context.Context, id, revisionID uuid.UUID) error
	SetLicense(ctx context.Context, id uuid.UUID, licenseID int64) error

	// TaxonomyParents returns the taxonomy term ids an entity is linked
	// to (empty for sub-types that use ParentID instead).
	TaxonomyParents(ctx context.Context, entityID uuid.UUID) ([]uuid.UUID, error)
	LinkCount(ctx context.Context, entityID uuid.UUID) (int, error)

	// ActiveSolutionCount returns the number of non-trashed solutions
	// whose ParentID is parentID (spec §3 invariant: at most one).
	ActiveSolutionCount(ctx context.Context, parentID uuid.UUID) (int, error)

	// UnrevisedIDs returns entity ids with at least one non-trashed
	// revision whose id is greater than their current revision id (or
	// with no current revision), ordered by the smallest such revision
	// id ascending (spec §4.4).
	UnrevisedIDs(ctx context.Context) ([]uuid.UUID, error)

	// DeletedIDs returns trashed entity ids (DeletedEntitiesQuery, §6).
	DeletedIDs(ctx context.Context, first int) ([]uuid.UUID, error)

	// AllIDs returns non-trashed entity ids for EntitiesMetadataQuery
	// (spec §6), keyset-paginated by id and optionally scoped to one
	// instance, in ascending id order.
	AllIDs(ctx context.Context, instance *shared.Instance, after *uuid.UUID, first int) ([]uuid.UUID, error)

	// Children returns the ordered (by position) entity ids linked to a
	// taxonomy term, or the ordered sub-entity ids linked to a parent
	// entity, depending on which relation this entity's children use.
	Children(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error)

	// Reorder persists a new relative order for a subset of children
	// under parentID (spec §4.4 "Sort children").
	Reorder(ctx context.Context, parentID uuid.UUID, orderedChildIDs []uuid.UUID) error
}
