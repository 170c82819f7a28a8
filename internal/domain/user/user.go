// Package user implements User, the account and role model shared by
// every other module as an author/actor id (spec §3 "User", §4.9).
package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// DeletedUserID is the well-known id substituted for an author when the
// real account has been permanently erased. It is a fixture of the
// system, not a row anyone can create through CreateUser (spec §4.9,
// resolved Open Question — see SPEC_FULL.md §10).
var DeletedUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Role is the closed set of per-instance roles (spec §3).
type Role string

const (
	RoleLogin      Role = "login"
	RoleReviewer   Role = "reviewer"
	RoleArchitect  Role = "architect"
	RoleAdmin      Role = "admin"
)

// User is one account.
type User struct {
	ID          uuid.UUID
	Username    string
	Email       string
	Description string
	Trashed     bool
	Roles       map[shared.Instance][]Role
	CreatedAt   shared.Datetime
}

// HasRole reports whether the user holds role in instance.
func (u *User) HasRole(instance shared.Instance, role Role) bool {
	for _, r := range u.Roles[instance] {
		if r == role {
			return true
		}
	}

	return false
}

// ActivityCounters is the set of per-user counts the teacher's activity
// dashboard reads in one shot (spec §4.9 "Activity counters").
type ActivityCounters struct {
	EntitiesCreated  int
	RevisionsCreated int
	CommentsCreated  int
	TaxonomyEdits    int
}

// Repository is the persistence contract for users (spec §4.9).
type Repository interface {
	Create(ctx context.Context, u *User) error
	Find(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	SetDescription(ctx context.Context, id uuid.UUID, description string) error
	SetEmail(ctx context.Context, id uuid.UUID, email string) error
	SetRoles(ctx context.Context, id uuid.UUID, instance shared.Instance, roles []Role) error

	// PotentialSpamIDs returns ids of non-trashed users whose description
	// contains a link, newest first (spec §4.9 "Spam scan"). No review
	// state is tracked or checked.
	PotentialSpamIDs(ctx context.Context, first int) ([]uuid.UUID, error)
	ActivityCounters(ctx context.Context, id uuid.UUID) (*ActivityCounters, error)

	// ByRole returns user ids holding role in instance (UsersByRoleQuery, §6).
	ByRole(ctx context.Context, instance shared.Instance, role Role) ([]uuid.UUID, error)

	// Delete permanently removes a user row (spec §4.9 "Delete regular
	// user": personal rows are removed once authorship has been
	// reassigned away from id).
	Delete(ctx context.Context, id uuid.UUID) error
}
