// Package uuidmodel implements the polymorphic identifier model (spec
// §3 "Polymorphic identifier (UUID)", §4.3). Every content object in the
// system shares this id space; loading an id means reading its
// discriminator first, then dispatching to the matching variant loader.
package uuidmodel

import (
	"context"

	"github.com/google/uuid"
)

// Discriminator is the closed set of content kinds an identifier row can
// point at. Two extra values (Attachment, BlogPost) are recognized so the
// notification exclusion rule (spec §4.8) can name them, even though this
// service has no variant loader for either — they are owned by an
// external collaborator per spec §1.
type Discriminator string

const (
	DiscriminatorComment        Discriminator = "comment"
	DiscriminatorEntity         Discriminator = "entity"
	DiscriminatorEntityRevision Discriminator = "entityRevision"
	DiscriminatorPage           Discriminator = "page"
	DiscriminatorPageRevision   Discriminator = "pageRevision"
	DiscriminatorTaxonomyTerm   Discriminator = "taxonomyTerm"
	DiscriminatorUser           Discriminator = "user"
	DiscriminatorAttachment     Discriminator = "attachment"
	DiscriminatorBlogPost       Discriminator = "blogPost"
)

// Untrashable reports whether ids of this discriminator may never be
// trashed (spec §3 invariant: "Trashing is forbidden for entityRevision
// and user").
func (d Discriminator) Untrashable() bool {
	return d == DiscriminatorEntityRevision || d == DiscriminatorUser
}

// Identifier is the row shared by every content object: (id, trashed,
// discriminator).
type Identifier struct {
	ID            uuid.UUID
	Trashed       bool
	Discriminator Discriminator
}

// Uuid is the generic, loaded view of any identifier: the discriminator
// plus the variant-specific payload and its computed alias. Handlers
// that only need "what kind of thing is this and is it trashed" use
// Identifier directly; UuidQuery (spec §6) returns this richer shape.
type Uuid struct {
	Identifier
	Alias   string
	Payload any
}

// Repository is the persistence contract for the identifier table and
// the generic trashed-flag flip (spec §4.3). Variant-specific loads are
// delegated to each variant's own repository once the discriminator is
// known; VariantLoader below is the seam that wires them back together.
type Repository interface {
	FindIdentifier(ctx context.Context, id uuid.UUID) (*Identifier, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	SetTrashed(ctx context.Context, id uuid.UUID, trashed bool) error
}

// VariantLoader loads the full Uuid (including alias and payload) for an
// id once its discriminator is known. query.UseCase implements it by
// dispatching on the discriminator to each variant's repository, so this
// package needs no compile-time dependency on those packages.
type VariantLoader interface {
	Load(ctx context.Context, id uuid.UUID) (*Uuid, error)
}
