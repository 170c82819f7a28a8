// Package license implements License, the static per-instance catalog of
// content licenses entities point at via LicenseID (spec §6 LicenseQuery;
// not part of the identifier/event model, just a lookup table).
package license

import (
	"context"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// License is one entry in the license catalog.
type License struct {
	ID        int64
	Instance  shared.Instance
	Default   bool
	Title     string
	URL       string
	Content   string
	Agreement string
	IconHref  string
}

// Repository is the persistence contract for the license catalog.
type Repository interface {
	Find(ctx context.Context, id int64) (*License, error)
}
