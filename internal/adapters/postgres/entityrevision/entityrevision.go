// Package entityrevision is the Postgres adapter for EntityRevision
// (spec §4.4).
package entityrevision

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/entityrevision"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Model is the row shape for the entity_revision table. Fields is stored
// as a single jsonb column rather than one column per possible field,
// since the set of fields varies per the owning entity's sub-type
// (spec §3).
type Model struct {
	ID        string
	EntityID  string
	AuthorID  string
	Trashed   bool
	Fields    []byte
	CreatedAt sql.NullTime
}

func (m *Model) toEntity() (*entityrevision.Revision, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	entityID, err := uuid.Parse(m.EntityID)
	if err != nil {
		return nil, err
	}

	authorID, err := uuid.Parse(m.AuthorID)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if len(m.Fields) > 0 {
		if err := json.Unmarshal(m.Fields, &fields); err != nil {
			return nil, err
		}
	}

	return &entityrevision.Revision{
		ID:        id,
		EntityID:  entityID,
		AuthorID:  authorID,
		Trashed:   m.Trashed,
		Fields:    fields,
		CreatedAt: shared.NewDatetime(m.CreatedAt.Time),
	}, nil
}

// Repository is a Postgres-specific implementation of
// entityrevision.Repository.
type Repository struct {
	pool      *dbtx.Pool
	tableName string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, tableName: "entity_revision"}
}

var _ entityrevision.Repository = (*Repository)(nil)

// Create inserts a new revision row (spec §4.4 "Add revision").
func (r *Repository) Create(ctx context.Context, rev *entityrevision.Revision) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	fields, err := json.Marshal(rev.Fields)
	if err != nil {
		return apperr.Internal(err)
	}

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "entity_id", "author_id", "trashed", "fields", "created_at").
		Values(rev.ID.String(), rev.EntityID.String(), rev.AuthorID.String(), rev.Trashed, fields, rev.CreatedAt.Time).
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

// Find retrieves a revision by id.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*entityrevision.Revision, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "entity_id", "author_id", "trashed", "fields", "created_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	m := &Model{}

	row := exec.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&m.ID, &m.EntityID, &m.AuthorID, &m.Trashed, &m.Fields, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("entity revision %s not found", id)
		}

		return nil, apperr.Internal(err)
	}

	return m.toEntity()
}

// ByEntity returns revision ids for entityID, newest first.
func (r *Repository) ByEntity(ctx context.Context, entityID uuid.UUID) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id").
		From(r.tableName).
		Where(sqrl.Eq{"entity_id": entityID}).
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

// SetTrashed flips the reject/restore flag for a revision (spec §4.4
// "Reject revision").
func (r *Repository) SetTrashed(ctx context.Context, id uuid.UUID, trashed bool) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.tableName).
		Set("trashed", trashed).
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
		return apperr.NotFound("entity revision %s not found", id)
	}

	return nil
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
