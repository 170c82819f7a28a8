// Package page implements Page, the simplified single-hierarchy sibling
// of Entity used for static site pages (spec §3 "Page and PageRevision",
// §4.5).
package page

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// Page is one page in the site's single page tree.
type Page struct {
	ID                uuid.UUID
	Instance          shared.Instance
	ParentID          *uuid.UUID // nil for a root page
	CurrentRevisionID *uuid.UUID
	Trashed           bool
	CreatedAt         shared.Datetime
}

// Repository is the persistence contract for pages (spec §4.5).
type Repository interface {
	Create(ctx context.Context, p *Page) error
	Find(ctx context.Context, id uuid.UUID) (*Page, error)
	SetCurrentRevision(ctx context.Context, id, revisionID uuid.UUID) error

	// Children returns ordered child page ids under parentID, or root
	// page ids when parentID is nil.
	Children(ctx context.Context, parentID *uuid.UUID) ([]uuid.UUID, error)

	// ByInstance returns every non-trashed root page id for an instance,
	// the entry point for the page-tree navigation query (spec §6
	// PagesQuery).
	ByInstance(ctx context.Context, instance shared.Instance) ([]uuid.UUID, error)
}
