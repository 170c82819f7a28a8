// Package thread implements Thread and Comment, the discussion layer
// attached to any content object (spec §3 "Thread and Comment", §4.6).
package thread

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// Thread is one discussion attached to an object, identified by its
// first comment's id (spec §3: "A thread's id is its first comment's
// id; there is no separate Thread row").
type Thread struct {
	ObjectID  uuid.UUID
	FirstID   uuid.UUID
	Archived  bool
	StatusID  *uuid.UUID // legacy: a status is a reference to a sentinel comment row (spec §4.6 "Set thread status")
	CreatedAt shared.Datetime
}

// Comment is one message within a thread.
type Comment struct {
	ID         uuid.UUID
	ThreadID   uuid.UUID // equals Thread.FirstID
	AuthorID   uuid.UUID
	Content    string
	Trashed    bool
	CreatedAt  shared.Datetime
}

// Repository is the persistence contract for threads and comments
// (spec §4.6 "Create thread", "Create comment", "Archive thread",
// "Set thread status", "Edit comment").
type Repository interface {
	CreateThread(ctx context.Context, objectID uuid.UUID, first *Comment) error
	CreateComment(ctx context.Context, c *Comment) error
	FindComment(ctx context.Context, id uuid.UUID) (*Comment, error)

	// ThreadsByObject returns the first-comment id of every thread
	// attached to objectID, ordered by that id descending (not by
	// creation time).
	ThreadsByObject(ctx context.Context, objectID uuid.UUID) ([]uuid.UUID, error)
	FindThread(ctx context.Context, firstID uuid.UUID) (*Thread, error)

	// CommentsByThread returns comment ids in a thread, oldest first.
	CommentsByThread(ctx context.Context, threadID uuid.UUID) ([]uuid.UUID, error)

	SetArchived(ctx context.Context, threadID uuid.UUID, archived bool) error

	// SetStatus assigns a status id to a thread (spec §4.6 "Set thread
	// status"); statusID must name a comment row by convention of the
	// legacy deployment.
	SetStatus(ctx context.Context, threadID uuid.UUID, statusID uuid.UUID) error
	EditComment(ctx context.Context, id uuid.UUID, content string) error

	// ReassignAuthor rewrites every comment authored by fromUserID to
	// toUserID (spec §4.9 "Delete regular user").
	ReassignAuthor(ctx context.Context, fromUserID, toUserID uuid.UUID) error
}
