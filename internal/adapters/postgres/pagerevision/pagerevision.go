// Package pagerevision is the Postgres adapter for PageRevision (spec §4.5).
package pagerevision

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/pagerevision"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Repository is a Postgres-specific implementation of pagerevision.Repository.
type Repository struct {
	pool      *dbtx.Pool
	tableName string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, tableName: "page_revision"}
}

var _ pagerevision.Repository = (*Repository)(nil)

// Create inserts a new page revision row.
func (r *Repository) Create(ctx context.Context, rev *pagerevision.Revision) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "page_id", "author_id", "trashed", "title", "content", "created_at").
		Values(rev.ID.String(), rev.PageID.String(), rev.AuthorID.String(), rev.Trashed, rev.Title, rev.Content, rev.CreatedAt.Time).
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

// Find retrieves a page revision by id.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*pagerevision.Revision, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "page_id", "author_id", "trashed", "title", "content", "created_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var idStr, pageIDStr, authorIDStr string

	rev := &pagerevision.Revision{}

	row := exec.QueryRowContext(ctx, query, args...)

	var createdAt sql.NullTime

	if err := row.Scan(&idStr, &pageIDStr, &authorIDStr, &rev.Trashed, &rev.Title, &rev.Content, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("page revision %s not found", id)
		}

		return nil, apperr.Internal(err)
	}

	var err2 error

	if rev.ID, err2 = uuid.Parse(idStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	if rev.PageID, err2 = uuid.Parse(pageIDStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	if rev.AuthorID, err2 = uuid.Parse(authorIDStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	rev.CreatedAt = shared.NewDatetime(createdAt.Time)

	return rev, nil
}

// ByPage returns revision ids for pageID, newest first.
func (r *Repository) ByPage(ctx context.Context, pageID uuid.UUID) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id").
		From(r.tableName).
		Where(sqrl.Eq{"page_id": pageID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

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

// ReassignAuthor rewrites every revision authored by fromUserID to
// toUserID (spec §4.9 "Delete regular user").
func (r *Repository) ReassignAuthor(ctx context.Context, fromUserID, toUserID uuid.UUID) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.tableName).
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
