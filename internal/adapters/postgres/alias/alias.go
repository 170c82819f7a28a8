// Package alias is the Postgres adapter for alias and legacy-route
// resolution (spec §4.10).
package alias

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/alias"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Repository is a Postgres-specific implementation of alias.Repository.
type Repository struct {
	pool        *dbtx.Pool
	aliasTable  string
	legacyTable string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, aliasTable: "alias", legacyTable: "legacy_route"}
}

// FindAlias resolves an explicit alias row.
func (r *Repository) FindAlias(ctx context.Context, instance shared.Instance, path string) (uuid.UUID, bool, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id").
		From(r.aliasTable).
		Where(sqrl.Eq{"instance": string(instance), "path": path}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return uuid.Nil, false, apperr.Internal(err)
	}

	var idStr string

	err = exec.QueryRowContext(ctx, query, args...).Scan(&idStr)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, false, nil
	}

	if err != nil {
		return uuid.Nil, false, apperr.Internal(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false, apperr.Internal(err)
	}

	return id, true, nil
}

// SetAlias upserts an explicit alias row.
func (r *Repository) SetAlias(ctx context.Context, instance shared.Instance, path string, id uuid.UUID) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	const query = `
		INSERT INTO alias (instance, path, id)
		VALUES ($1, $2, $3)
		ON CONFLICT (instance, path) DO UPDATE SET id = EXCLUDED.id`

	if _, err := exec.ExecContext(ctx, query, string(instance), path, id.String()); err != nil {
		return apperr.FromPGError(err)
	}

	return nil
}

// FindLegacyRoute resolves a historical redirect, returning the
// canonical target path it points to rather than an id directly
// (spec §4.10).
func (r *Repository) FindLegacyRoute(ctx context.Context, instance shared.Instance, path string) (string, bool, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("target").
		From(r.legacyTable).
		Where(sqrl.Eq{"instance": string(instance), "path": path}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return "", false, apperr.Internal(err)
	}

	var target string

	err = exec.QueryRowContext(ctx, query, args...).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, apperr.Internal(err)
	}

	return target, true, nil
}

var _ alias.Repository = (*Repository)(nil)
