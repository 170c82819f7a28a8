// Package entity is the Postgres adapter for Entity (spec §4.4).
package entity

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/entity"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Model is the row shape for the entity table.
type Model struct {
	ID                string
	SubType           string
	Instance          string
	LicenseID         int64
	CurrentRevisionID *string
	ParentID          *string
	Trashed           bool
	CreatedAt         sql.NullTime
}

// ToEntity converts a Model into entity.Entity.
func (m *Model) ToEntity() (*entity.Entity, error) {
	e := &entity.Entity{
		SubType:   entity.SubType(m.SubType),
		Instance:  shared.Instance(m.Instance),
		LicenseID: m.LicenseID,
		Trashed:   m.Trashed,
		CreatedAt: shared.NewDatetime(m.CreatedAt.Time),
	}

	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	e.ID = id

	if m.CurrentRevisionID != nil {
		rid, err := uuid.Parse(*m.CurrentRevisionID)
		if err != nil {
			return nil, err
		}

		e.CurrentRevisionID = &rid
	}

	if m.ParentID != nil {
		pid, err := uuid.Parse(*m.ParentID)
		if err != nil {
			return nil, err
		}

		e.ParentID = &pid
	}

	return e, nil
}

// FromEntity populates m from e.
func (m *Model) FromEntity(e *entity.Entity) {
	*m = Model{
		ID:        e.ID.String(),
		SubType:   string(e.SubType),
		Instance:  string(e.Instance),
		LicenseID: e.LicenseID,
		Trashed:   e.Trashed,
		CreatedAt: sql.NullTime{Time: e.CreatedAt.Time, Valid: true},
	}

	if e.CurrentRevisionID != nil {
		s := e.CurrentRevisionID.String()
		m.CurrentRevisionID = &s
	}

	if e.ParentID != nil {
		s := e.ParentID.String()
		m.ParentID = &s
	}
}

// Repository is a Postgres-specific implementation of entity.Repository.
type Repository struct {
	pool      *dbtx.Pool
	tableName string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, tableName: "entity"}
}

var _ entity.Repository = (*Repository)(nil)

// Create inserts a new entity row. The caller is responsible for having
// already inserted the shared identifier row in the same transaction
// (spec §4.3, §4.4).
func (r *Repository) Create(ctx context.Context, e *entity.Entity) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	m := &Model{}
	m.FromEntity(e)

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "sub_type", "instance", "license_id", "current_revision_id", "parent_id", "trashed", "created_at").
		Values(m.ID, m.SubType, m.Instance, m.LicenseID, m.CurrentRevisionID, m.ParentID, m.Trashed, m.CreatedAt).
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

// Find retrieves an entity by id.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*entity.Entity, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "sub_type", "instance", "license_id", "current_revision_id", "parent_id", "trashed", "created_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	m := &Model{}

	row := exec.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&m.ID, &m.SubType, &m.Instance, &m.LicenseID, &m.CurrentRevisionID, &m.ParentID, &m.Trashed, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("entity %s not found", id)
		}

		return nil, apperr.Internal(err)
	}

	return m.ToEntity()
}

// SetCurrentRevision updates the entity's pointer to its current revision
// (spec §4.4 "Checkout revision").
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

// SetLicense updates the entity's license id.
func (r *Repository) SetLicense(ctx context.Context, id uuid.UUID, licenseID int64) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.tableName).
		Set("license_id", licenseID).
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

// TaxonomyParents returns the taxonomy term ids entityID is linked to.
func (r *Repository) TaxonomyParents(ctx context.Context, entityID uuid.UUID) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("term_id").
		From("taxonomy_entity_link").
		Where(sqrl.Eq{"entity_id": entityID}).
		OrderBy("position ASC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return queryUUIDColumn(ctx, exec, query, args...)
}

// LinkCount returns how many taxonomy terms an entity is linked to. A
// parent link (ParentID) is not counted.
func (r *Repository) LinkCount(ctx context.Context, entityID uuid.UUID) (int, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("COUNT(*)").
		From("taxonomy_entity_link").
		Where(sqrl.Eq{"entity_id": entityID}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return 0, apperr.Internal(err)
	}

	var count int
	if err := exec.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperr.Internal(err)
	}

	return count, nil
}

// ActiveSolutionCount counts non-trashed solutions parented under parentID.
func (r *Repository) ActiveSolutionCount(ctx context.Context, parentID uuid.UUID) (int, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("COUNT(*)").
		From(r.tableName).
		Where(sqrl.Eq{"parent_id": parentID.String(), "sub_type": string(entity.SubTypeSolution), "trashed": false}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return 0, apperr.Internal(err)
	}

	var count int
	if err := exec.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperr.Internal(err)
	}

	return count, nil
}

// UnrevisedIDs returns entity ids with a non-trashed revision whose id is
// greater than their current revision id (or with no current revision),
// ordered by the smallest qualifying revision id.
func (r *Repository) UnrevisedIDs(ctx context.Context) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	const query = `
		SELECT e.id
		FROM entity e
		JOIN entity_revision r ON r.entity_id = e.id AND r.trashed = false
		WHERE e.current_revision_id IS NULL OR r.id > e.current_revision_id
		GROUP BY e.id
		ORDER BY MIN(r.id) ASC`

	return queryUUIDColumn(ctx, exec, query)
}

// DeletedIDs returns up to first trashed entity ids.
func (r *Repository) DeletedIDs(ctx context.Context, first int) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id").
		From(r.tableName).
		Where(sqrl.Eq{"trashed": true}).
		OrderBy("created_at DESC").
		Limit(uint64(first)).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return queryUUIDColumn(ctx, exec, query, args...)
}

// AllIDs returns non-trashed entity ids, keyset-paginated by id ascending
// and optionally scoped to one instance (spec §6 EntitiesMetadataQuery).
func (r *Repository) AllIDs(ctx context.Context, instance *shared.Instance, after *uuid.UUID, first int) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	where := sqrl.Eq{"trashed": false}
	if instance != nil {
		where["instance"] = string(*instance)
	}

	builder := sqrl.Select("id").
		From(r.tableName).
		Where(where)

	if after != nil {
		builder = builder.Where(sqrl.Gt{"id": after.String()})
	}

	query, args, err := builder.
		OrderBy("id ASC").
		Limit(uint64(first)).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return queryUUIDColumn(ctx, exec, query, args...)
}

// Children returns the ordered children of parentID: entities linked
// under a taxonomy term, or sub-entities linked via parent_id, depending
// on which relation holds rows for it.
func (r *Repository) Children(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id").
		From(r.tableName).
		Where(sqrl.Eq{"parent_id": parentID.String(), "trashed": false}).
		OrderBy("created_at ASC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	children, err := queryUUIDColumn(ctx, exec, query, args...)
	if err != nil {
		return nil, err
	}

	if len(children) > 0 {
		return children, nil
	}

	query, args, err = sqrl.Select("entity_id").
		From("taxonomy_entity_link").
		Where(sqrl.Eq{"term_id": parentID}).
		OrderBy("position ASC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return queryUUIDColumn(ctx, exec, query, args...)
}

// Reorder persists a new relative order for orderedChildIDs under
// parentID, matching positions in the taxonomy_entity_link table (spec
// §4.4 "Sort children").
func (r *Repository) Reorder(ctx context.Context, parentID uuid.UUID, orderedChildIDs []uuid.UUID) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	for position, childID := range orderedChildIDs {
		query, args, err := sqrl.Update("taxonomy_entity_link").
			Set("position", position).
			Where(sqrl.Eq{"term_id": parentID, "entity_id": childID}).
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

func queryUUIDColumn(ctx context.Context, exec dbtx.Executor, query string, args ...any) ([]uuid.UUID, error) {
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

	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}

	return ids, nil
}
