// Package subscription implements Subscription: a user's opt-in to be
// notified about activity on an object (spec §3 "Subscription", §4.8
// "Set subscription").
package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Subscription is one user's watch on one object.
type Subscription struct {
	ObjectID      uuid.UUID
	UserID        uuid.UUID
	SendEmail     bool
	IncludeThread bool // also notify on children of ObjectID, e.g. a course's pages
}

// Repository is the persistence contract for subscriptions.
type Repository interface {
	// Set upserts a subscription row, matching the teacher's upsert
	// pattern (spec §4.8: "Setting a subscription twice updates the
	// existing row rather than erroring or duplicating it").
	Set(ctx context.Context, s *Subscription) error
	Unset(ctx context.Context, objectID, userID uuid.UUID) error
	Find(ctx context.Context, objectID, userID uuid.UUID) (*Subscription, error)

	// BySubscriber returns every object id a user subscribes to.
	BySubscriber(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// Subscribers returns every subscription watching objectID directly,
	// and — for each id in ancestorIDs — also those watching that
	// ancestor that opted into IncludeThread (spec §4.8 "Notify
	// subscribers").
	Subscribers(ctx context.Context, objectID uuid.UUID, ancestorIDs []uuid.UUID) ([]Subscription, error)
}
