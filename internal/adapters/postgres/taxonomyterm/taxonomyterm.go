// Package taxonomyterm is the Postgres adapter for TaxonomyTerm (spec §4.5).
package taxonomyterm

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/taxonomyterm"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Repository is a Postgres-specific implementation of taxonomyterm.Repository.
type Repository struct {
	pool      *dbtx.Pool
	tableName string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, tableName: "taxonomy_term"}
}

var _ taxonomyterm.Repository = (*Repository)(nil)

// Create inserts a new taxonomy term row.
func (r *Repository) Create(ctx context.Context, t *taxonomyterm.TaxonomyTerm) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	var parentID *string
	if t.ParentID != nil {
		s := t.ParentID.String()
		parentID = &s
	}

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "type", "instance", "name", "description", "parent_id", "trashed", "created_at").
		Values(t.ID.String(), string(t.Type), string(t.Instance), t.Name, t.Description, parentID, t.Trashed, t.CreatedAt.Time).
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

// Find retrieves a taxonomy term by id.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*taxonomyterm.TaxonomyTerm, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "type", "instance", "name", "description", "parent_id", "trashed", "created_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var idStr, typeStr, instanceStr string

	var parentID *string

	var createdAt sql.NullTime

	t := &taxonomyterm.TaxonomyTerm{}

	row := exec.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&idStr, &typeStr, &instanceStr, &t.Name, &t.Description, &parentID, &t.Trashed, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("taxonomy term %s not found", id)
		}

		return nil, apperr.Internal(err)
	}

	id2, err := uuid.Parse(idStr)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	t.ID = id2
	t.Type = taxonomyterm.TaxonomyType(typeStr)
	t.Instance = shared.Instance(instanceStr)
	t.CreatedAt = shared.NewDatetime(createdAt.Time)

	if parentID != nil {
		pid, err := uuid.Parse(*parentID)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		t.ParentID = &pid
	}

	return t, nil
}

// SetNameAndDescription renames a term and replaces its description.
func (r *Repository) SetNameAndDescription(ctx context.Context, id uuid.UUID, name, description string) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.tableName).
		Set("name", name).
		Set("description", description).
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
		return apperr.NotFound("taxonomy term %s not found", id)
	}

	return nil
}

// Reparent moves a term under a new parent (spec §4.5 "Move taxonomy term").
func (r *Repository) Reparent(ctx context.Context, id uuid.UUID, parentID uuid.UUID) error {
	return r.update(ctx, id, "parent_id", parentID.String())
}

func (r *Repository) update(ctx context.Context, id uuid.UUID, column string, value any) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.tableName).
		Set(column, value).
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
		return apperr.NotFound("taxonomy term %s not found", id)
	}

	return nil
}

// Children returns ordered child term ids.
func (r *Repository) Children(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id").
		From(r.tableName).
		Where(sqrl.Eq{"parent_id": parentID.String(), "trashed": false}).
		OrderBy("position ASC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return queryIDs(ctx, exec, query, args...)
}

// Reorder persists a new relative order for children under parentID.
func (r *Repository) Reorder(ctx context.Context, parentID uuid.UUID, orderedChildIDs []uuid.UUID) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	for position, childID := range orderedChildIDs {
		query, args, err := sqrl.Update(r.tableName).
			Set("position", position).
			Where(sqrl.Eq{"id": childID, "parent_id": parentID.String()}).
			PlaceholderFormat(sqrl.Dollar).
			ToSql()
		if err != nil {
			return apperr.Internal(err)
		}

		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return apperr.FromPGError(err)
		}
	}

	return nil
}

// EntityLinks returns entity ids linked directly under termID, in
// display order.
func (r *Repository) EntityLinks(ctx context.Context, termID uuid.UUID) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("entity_id").
		From("taxonomy_entity_link").
		Where(sqrl.Eq{"term_id": termID}).
		OrderBy("position ASC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return queryIDs(ctx, exec, query, args...)
}

// LinkEntity inserts a link row at position.
func (r *Repository) LinkEntity(ctx context.Context, termID, entityID uuid.UUID, position int) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Insert("taxonomy_entity_link").
		Columns("term_id", "entity_id", "position").
		Values(termID.String(), entityID.String(), position).
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

// UnlinkEntity removes a link row.
func (r *Repository) UnlinkEntity(ctx context.Context, termID, entityID uuid.UUID) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Delete("taxonomy_entity_link").
		Where(sqrl.Eq{"term_id": termID, "entity_id": entityID}).
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

// Subjects returns every non-trashed subject/topic term one level below
// an instance root (spec §6 SubjectsQuery, §4.5 "Canonical-subject
// resolution").
func (r *Repository) Subjects(ctx context.Context) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("subject.id").
		From(r.tableName + " AS subject").
		Join(r.tableName + " AS root ON root.id = subject.parent_id").
		Where(sqrl.Eq{"subject.trashed": false}).
		Where(sqrl.Eq{"root.parent_id": nil}).
		Where(sqrl.Or{
			sqrl.Eq{"subject.type": string(taxonomyterm.TypeSubject)},
			sqrl.Eq{"subject.type": string(taxonomyterm.TypeTopic)},
		}).
		OrderBy("subject.id").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return queryIDs(ctx, exec, query, args...)
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
