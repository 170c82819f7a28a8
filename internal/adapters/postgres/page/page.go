// Package page is the Postgres adapter for Page (spec §4.5).
package page

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/page"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Model is the row shape for the page table.
type Model struct {
	ID                string
	Instance          string
	ParentID          *string
	CurrentRevisionID *string
	Trashed           bool
	CreatedAt         sql.NullTime
}

func (m *Model) toEntity() (*page.Page, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	p := &page.Page{
		ID:        id,
		Instance:  shared.Instance(m.Instance),
		Trashed:   m.Trashed,
		CreatedAt: shared.NewDatetime(m.CreatedAt.Time),
	}

	if m.ParentID != nil {
		pid, err := uuid.Parse(*m.ParentID)
		if err != nil {
			return nil, err
		}

		p.ParentID = &pid
	}

	if m.CurrentRevisionID != nil {
		rid, err := uuid.Parse(*m.CurrentRevisionID)
		if err != nil {
			return nil, err
		}

		p.CurrentRevisionID = &rid
	}

	return p, nil
}

// Repository is a Postgres-specific implementation of page.Repository.
type Repository struct {
	pool      *dbtx.Pool
	tableName string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, tableName: "page"}
}

var _ page.Repository = (*Repository)(nil)

// Create inserts a new page row.
func (r *Repository) Create(ctx context.Context, p *page.Page) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	var parentID *string
	if p.ParentID != nil {
		s := p.ParentID.String()
		parentID = &s
	}

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "instance", "parent_id", "trashed", "created_at").
		Values(p.ID.String(), string(p.Instance), parentID, p.Trashed, p.CreatedAt.Time).
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

// Find retrieves a page by id.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*page.Page, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "instance", "parent_id", "current_revision_id", "trashed", "created_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	m := &Model{}

	row := exec.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&m.ID, &m.Instance, &m.ParentID, &m.CurrentRevisionID, &m.Trashed, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("page %s not found", id)
		}

		return nil, apperr.Internal(err)
	}

	return m.toEntity()
}

// SetCurrentRevision updates the page's pointer to its current revision.
func (r *Repository) SetCurrentRevision(ctx context.Context, id, revisionID uuid.UUID) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.tableName).
		Set("current_revision_id", revisionID.String()).
		Where(sqrl.Eq{"id": id}).
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

// Children returns ordered child page ids, or root pages when parentID
// is nil.
func (r *Repository) Children(ctx context.Context, parentID *uuid.UUID) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	sel := sqrl.Select("id").From(r.tableName).Where(sqrl.Eq{"trashed": false}).OrderBy("created_at ASC")
	if parentID == nil {
		sel = sel.Where(sqrl.Eq{"parent_id": nil})
	} else {
		sel = sel.Where(sqrl.Eq{"parent_id": parentID.String()})
	}

	query, args, err := sel.PlaceholderFormat(sqrl.Dollar).ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return r.queryIDs(ctx, exec, query, args...)
}

// ByInstance returns root page ids for instance.
func (r *Repository) ByInstance(ctx context.Context, instance shared.Instance) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id").
		From(r.tableName).
		Where(sqrl.Eq{"instance": string(instance), "parent_id": nil, "trashed": false}).
		OrderBy("created_at ASC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return r.queryIDs(ctx, exec, query, args...)
}

func (r *Repository) queryIDs(ctx context.Context, exec dbtx.Executor, query string, args ...any) ([]uuid.UUID, error) {
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
