// Package thread is the Postgres adapter for Thread and Comment (spec §4.6).
package thread

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/thread"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Repository is a Postgres-specific implementation of thread.Repository.
// Comments carry their thread's first-comment id directly (thread_id),
// so a thread row never needs to exist independently; CreateThread just
// inserts the first comment with thread_id equal to its own id and an
// object_id linking it to the discussed content object.
type Repository struct {
	pool           *dbtx.Pool
	commentTable   string
	threadMetaView string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, commentTable: "comment", threadMetaView: "thread_meta"}
}

var _ thread.Repository = (*Repository)(nil)

// CreateThread inserts first as the opening comment of a new thread on
// objectID, also writing a thread_meta row carrying the archived flag.
func (r *Repository) CreateThread(ctx context.Context, objectID uuid.UUID, first *thread.Comment) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	first.ThreadID = first.ID

	query, args, err := sqrl.Insert(r.commentTable).
		Columns("id", "thread_id", "object_id", "author_id", "content", "trashed", "created_at").
		Values(first.ID.String(), first.ThreadID.String(), objectID.String(), first.AuthorID.String(), first.Content, first.Trashed, first.CreatedAt.Time).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return apperr.Internal(err)
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return apperr.FromPGError(err)
	}

	metaQuery, metaArgs, err := sqrl.Insert(r.threadMetaView).
		Columns("thread_id", "object_id", "archived", "status_id").
		Values(first.ID.String(), objectID.String(), false, nil).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return apperr.Internal(err)
	}

	if _, err := exec.ExecContext(ctx, metaQuery, metaArgs...); err != nil {
		return apperr.FromPGError(err)
	}

	return nil
}

// CreateComment inserts a follow-up comment into an existing thread.
func (r *Repository) CreateComment(ctx context.Context, c *thread.Comment) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Insert(r.commentTable).
		Columns("id", "thread_id", "author_id", "content", "trashed", "created_at").
		Values(c.ID.String(), c.ThreadID.String(), c.AuthorID.String(), c.Content, c.Trashed, c.CreatedAt.Time).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return apperr.Internal(err)
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return apperr.FromPGError(err)
	}

	return nil
}

// FindComment retrieves a comment by id.
func (r *Repository) FindComment(ctx context.Context, id uuid.UUID) (*thread.Comment, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "thread_id", "author_id", "content", "trashed", "created_at").
		From(r.commentTable).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var idStr, threadIDStr, authorIDStr string

	var createdAt sql.NullTime

	c := &thread.Comment{}

	row := exec.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&idStr, &threadIDStr, &authorIDStr, &c.Content, &c.Trashed, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("comment %s not found", id)
		}

		return nil, apperr.Internal(err)
	}

	var err2 error

	if c.ID, err2 = uuid.Parse(idStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	if c.ThreadID, err2 = uuid.Parse(threadIDStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	if c.AuthorID, err2 = uuid.Parse(authorIDStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	c.CreatedAt = shared.NewDatetime(createdAt.Time)

	return c, nil
}

// ThreadsByObject returns the first-comment id of every thread attached
// to objectID, ordered by thread id descending (not by creation time).
func (r *Repository) ThreadsByObject(ctx context.Context, objectID uuid.UUID) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("thread_id").
		From(r.threadMetaView).
		Where(sqrl.Eq{"object_id": objectID}).
		OrderBy("thread_id DESC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return queryIDs(ctx, exec, query, args...)
}

// FindThread retrieves a thread's archived flag and object_id.
func (r *Repository) FindThread(ctx context.Context, firstID uuid.UUID) (*thread.Thread, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("thread_id", "object_id", "archived", "status_id").
		From(r.threadMetaView).
		Where(sqrl.Eq{"thread_id": firstID}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var threadIDStr, objectIDStr string

	var statusIDStr sql.NullString

	t := &thread.Thread{}

	row := exec.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&threadIDStr, &objectIDStr, &t.Archived, &statusIDStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("thread %s not found", firstID)
		}

		return nil, apperr.Internal(err)
	}

	var err2 error

	if t.FirstID, err2 = uuid.Parse(threadIDStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	if t.ObjectID, err2 = uuid.Parse(objectIDStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	if statusIDStr.Valid {
		statusID, err := uuid.Parse(statusIDStr.String)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		t.StatusID = &statusID
	}

	return t, nil
}

// CommentsByThread returns comment ids in a thread, oldest first.
func (r *Repository) CommentsByThread(ctx context.Context, threadID uuid.UUID) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id").
		From(r.commentTable).
		Where(sqrl.Eq{"thread_id": threadID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return queryIDs(ctx, exec, query, args...)
}

// SetArchived flips a thread's archived flag.
func (r *Repository) SetArchived(ctx context.Context, threadID uuid.UUID, archived bool) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.threadMetaView).
		Set("archived", archived).
		Where(sqrl.Eq{"thread_id": threadID}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return apperr.Internal(err)
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return apperr.FromPGError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Internal(err)
	}

	if rows == 0 {
		return apperr.NotFound("thread %s not found", threadID)
	}

	return nil
}

// SetStatus assigns a status id to a thread.
func (r *Repository) SetStatus(ctx context.Context, threadID uuid.UUID, statusID uuid.UUID) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.threadMetaView).
		Set("status_id", statusID.String()).
		Where(sqrl.Eq{"thread_id": threadID}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return apperr.Internal(err)
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return apperr.FromPGError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Internal(err)
	}

	if rows == 0 {
		return apperr.NotFound("thread %s not found", threadID)
	}

	return nil
}

// EditComment updates a comment's content (spec §4.6 "Edit comment").
func (r *Repository) EditComment(ctx context.Context, id uuid.UUID, content string) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.commentTable).
		Set("content", content).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return apperr.Internal(err)
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return apperr.FromPGError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Internal(err)
	}

	if rows == 0 {
		return apperr.NotFound("comment %s not found", id)
	}

	return nil
}

// ReassignAuthor rewrites every comment authored by fromUserID to
// toUserID (spec §4.9 "Delete regular user").
func (r *Repository) ReassignAuthor(ctx context.Context, fromUserID, toUserID uuid.UUID) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.commentTable).
		Set("author_id", toUserID.String()).
		Where(sqrl.Eq{"author_id": fromUserID}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return apperr.Internal(err)
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return apperr.FromPGError(err)
	}

	return nil
}

func queryIDs(ctx context.Context, exec dbtx.Executor, query string, args ...any) ([]uuid.UUID, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, apperr.Internal(err)
		}

		id, err := uuid.Parse(s)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}
