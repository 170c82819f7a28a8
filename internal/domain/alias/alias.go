// Package alias implements alias resolution: turning a human-readable
// path into the uuid it names (spec §3 "Alias", §4.10).
package alias

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// Source is where an alias resolution came from, surfaced to callers so
// a legacy-route alias can be reported distinctly from an ordinary one
// (spec §4.10, and the apperr.LegacyRoute error kind it feeds).
type Source string

const (
	SourceUsernameProfile Source = "usernameProfile" // "/user/profile/<username>"
	SourceIDTitle         Source = "idTitle"          // "/<instance>/<id>/<slug>"
	SourceAliasTable      Source = "aliasTable"       // explicit alias row
	SourceLegacyRoute     Source = "legacyRoute"      // historical redirect table
)

// Resolution is the outcome of resolving a path.
type Resolution struct {
	ID     uuid.UUID
	Source Source
	// Target is set only for SourceLegacyRoute: the canonical path the
	// caller should be redirected to instead of the id being used
	// directly (spec §4.10 "Legacy routes never resolve straight to an
	// id; they always carry a redirect target").
	Target string
}

// Repository is the persistence contract for the explicit alias table
// and the legacy-route redirect table.
type Repository interface {
	FindAlias(ctx context.Context, instance shared.Instance, path string) (uuid.UUID, bool, error)
	SetAlias(ctx context.Context, instance shared.Instance, path string, id uuid.UUID) error

	FindLegacyRoute(ctx context.Context, instance shared.Instance, path string) (target string, ok bool, err error)
}
