// Package uuidmodel is the Postgres adapter for the identifier table
// shared by every content object (spec §4.3).
package uuidmodel

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Repository is a Postgres-specific implementation of uuidmodel.Repository.
type Repository struct {
	pool      *dbtx.Pool
	tableName string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, tableName: "uuid"}
}

var _ uuidmodel.Repository = (*Repository)(nil)

// FindIdentifier retrieves the discriminator row for id.
func (r *Repository) FindIdentifier(ctx context.Context, id uuid.UUID) (*uuidmodel.Identifier, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "trashed", "discriminator").
		From(r.tableName).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	row := exec.QueryRowContext(ctx, query, args...)

	ident := &uuidmodel.Identifier{}

	if err := row.Scan(&ident.ID, &ident.Trashed, &ident.Discriminator); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no object exists with id %s", id)
		}

		return nil, apperr.Internal(err)
	}

	return ident, nil
}

// Exists reports whether id is present in the identifier table.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("1").
		From(r.tableName).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return false, apperr.Internal(err)
	}

	var dummy int

	err = exec.QueryRowContext(ctx, query, args...).Scan(&dummy)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, apperr.Internal(err)
	}

	return true, nil
}

// SetTrashed flips the trashed flag for id. It does not check the
// discriminator; callers such as SetUuidState reject Untrashable ids
// before calling it (spec §4.3 invariant).
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
		return apperr.NotFound("no object exists with id %s", id)
	}

	return nil
}

// Create inserts a new identifier row, used by every variant repository's
// Create as the first write in the same transaction (spec §4.3: "Creating
// any content object first inserts its identifier row, then its
// variant-specific row, in the same transaction").
func (r *Repository) Create(ctx context.Context, id uuid.UUID, discriminator uuidmodel.Discriminator) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "trashed", "discriminator").
		Values(id, false, discriminator).
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
