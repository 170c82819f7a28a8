// Package license is the Postgres adapter for the license catalog
// (spec §6 LicenseQuery).
package license

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"

	"github.com/openlearn/coredata/internal/domain/license"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Repository is a Postgres-specific implementation of license.Repository.
type Repository struct {
	pool      *dbtx.Pool
	tableName string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, tableName: "license"}
}

var _ license.Repository = (*Repository)(nil)

// Find retrieves a license by id.
func (r *Repository) Find(ctx context.Context, id int64) (*license.License, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("instance", "is_default", "title", "url", "content", "agreement", "icon_href").
		From(r.tableName).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var instanceStr string

	l := &license.License{ID: id}

	row := exec.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&instanceStr, &l.Default, &l.Title, &l.URL, &l.Content, &l.Agreement, &l.IconHref); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("license %d not found", id)
		}

		return nil, apperr.Internal(err)
	}

	l.Instance = shared.Instance(instanceStr)

	return l, nil
}
