// Package pagerevision implements PageRevision, the immutable content
// snapshot belonging to a Page (spec §3, §4.5).
package pagerevision

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// Revision is one immutable page content snapshot. Unlike
// entityrevision.Revision, a page revision's shape is fixed: title and
// content are always present (spec §3).
type Revision struct {
	ID        uuid.UUID
	PageID    uuid.UUID
	AuthorID  uuid.UUID
	Trashed   bool
	Title     string
	Content   string
	CreatedAt shared.Datetime
}

// Repository is the persistence contract for page revisions.
type Repository interface {
	Create(ctx context.Context, r *Revision) error
	Find(ctx context.Context, id uuid.UUID) (*Revision, error)
	ByPage(ctx context.Context, pageID uuid.UUID) ([]uuid.UUID, error)

	// ReassignAuthor rewrites every revision authored by fromUserID to
	// toUserID (spec §4.9 "Delete regular user").
	ReassignAuthor(ctx context.Context, fromUserID, toUserID uuid.UUID) error
}
