// Package notification implements Notification, the per-user fan-out
// of an Event (spec §3 "Notification", §4.8).
package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// Notification is one user's copy of an event.
type Notification struct {
	ID        uuid.UUID
	EventID   uuid.UUID
	UserID    uuid.UUID
	Seen      bool
	Email     bool // whether an email should be (or was) sent for this row
	CreatedAt shared.Datetime
}

// Repository is the persistence contract for notifications.
type Repository interface {
	// CreateBatch inserts one notification per recipient for the same
	// event. It does not deduplicate; the caller passes each recipient
	// once (spec §4.8 invariant: "A user receives at most one
	// notification per event, even if they subscribe through more than
	// one path to the same object").
	CreateBatch(ctx context.Context, eventID uuid.UUID, recipients []Recipient) error

	// ByUser returns notification ids for a user, newest first, with
	// optional unseen-only filtering (spec §6 NotificationsQuery).
	ByUser(ctx context.Context, userID uuid.UUID, unseenOnly bool, first int) ([]uuid.UUID, error)
	Find(ctx context.Context, id uuid.UUID) (*Notification, error)
	SetSeen(ctx context.Context, id uuid.UUID, seen bool) error
	UnseenCount(ctx context.Context, userID uuid.UUID) (int, error)
}

// Recipient names a user and whether their subscription asked for email
// delivery, the two facts CreateBatch needs per row.
type Recipient struct {
	UserID uuid.UUID
	Email  bool
}
