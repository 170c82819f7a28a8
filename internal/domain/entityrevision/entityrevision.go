// Package entityrevision implements EntityRevision, the immutable
// snapshot half of the Entity/EntityRevision pair (spec §3, §4.4).
package entityrevision

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// Revision is one immutable content snapshot belonging to an Entity.
// Fields is a flexible payload bag because the shape of a revision
// varies by the owning entity's SubType (spec §3: "fields vary per
// sub-type but are always string-valued"); typed accessors are layered
// on top by callers that know the sub-type.
type Revision struct {
	ID        uuid.UUID
	EntityID  uuid.UUID
	AuthorID  uuid.UUID
	Trashed   bool
	Fields    map[string]string
	CreatedAt shared.Datetime
}

// Field returns a field value and whether it was present.
func (r *Revision) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Repository is the persistence contract for revisions (spec §4.4
// "Add revision", "Checkout revision", "Reject revision").
type Repository interface {
	Create(ctx context.Context, r *Revision) error
	Find(ctx context.Context, id uuid.UUID) (*Revision, error)

	// ByEntity returns revision ids for an entity, newest first.
	ByEntity(ctx context.Context, entityID uuid.UUID) ([]uuid.UUID, error)

	// SetTrashed flips the reject/restore flag. EntityRevision ids
	// themselves are never trashed through uuidmodel (they are
	// Untrashable there); this is the revision-specific reject/restore
	// flag spec §4.4 "Reject revision" operates on instead.
	SetTrashed(ctx context.Context, id uuid.UUID, trashed bool) error

	// ReassignAuthor rewrites every revision authored by fromUserID to
	// toUserID (spec §4.9 "Delete regular user": "reassigns authorship
	// fields to a designated deleted user id").
	ReassignAuthor(ctx context.Context, fromUserID, toUserID uuid.UUID) error
}
