// Package user is the Postgres adapter for User (spec §4.9).
package user

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/user"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Repository is a Postgres-specific implementation of user.Repository.
// Roles are stored in a side table keyed by (user_id, instance) holding
// a text[] column, following the teacher's pq.Array usage for set-valued
// columns (ListByIDs/Metadata handling in organization.postgresql.go).
type Repository struct {
	pool      *dbtx.Pool
	tableName string
	roleTable string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, tableName: "user_account", roleTable: "user_role"}
}

var _ user.Repository = (*Repository)(nil)

// Create inserts a new user row.
func (r *Repository) Create(ctx context.Context, u *user.User) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "username", "email", "description", "trashed", "created_at").
		Values(u.ID.String(), u.Username, u.Email, u.Description, u.Trashed, u.CreatedAt.Time).
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

// Find retrieves a user and their roles by id.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*user.User, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "username", "email", "description", "trashed", "created_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u, err := r.scan(exec.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user %s not found", id)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	roles, err := r.findRoles(ctx, exec, id)
	if err != nil {
		return nil, err
	}

	u.Roles = roles

	return u, nil
}

// FindByUsername retrieves a user by their unique username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "username", "email", "description", "trashed", "created_at").
		From(r.tableName).
		Where(sqrl.Eq{"username": username}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u, err := r.scan(exec.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user %q not found", username)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	roles, err := r.findRoles(ctx, exec, u.ID)
	if err != nil {
		return nil, err
	}

	u.Roles = roles

	return u, nil
}

// SetDescription updates a user's profile description.
func (r *Repository) SetDescription(ctx context.Context, id uuid.UUID, description string) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.tableName).
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
		return apperr.NotFound("user %s not found", id)
	}

	return nil
}

// SetEmail updates a user's email address.
func (r *Repository) SetEmail(ctx context.Context, id uuid.UUID, email string) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.tableName).
		Set("email", email).
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
		return apperr.NotFound("user %s not found", id)
	}

	return nil
}

// Delete permanently removes a user row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Delete(r.tableName).
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

// ByRole returns user ids holding role within instance.
func (r *Repository) ByRole(ctx context.Context, instance shared.Instance, role user.Role) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	const query = `SELECT user_id FROM user_role WHERE instance = $1 AND $2 = ANY(roles)`

	rows, err := exec.QueryContext(ctx, query, string(instance), string(role))
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

// SetRoles replaces a user's role set for one instance.
func (r *Repository) SetRoles(ctx context.Context, id uuid.UUID, instance shared.Instance, roles []user.Role) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}

	const query = `
		INSERT INTO user_role (user_id, instance, roles)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, instance) DO UPDATE SET roles = EXCLUDED.roles`

	if _, err := exec.ExecContext(ctx, query, id.String(), string(instance), pq.Array(names)); err != nil {
		return apperr.FromPGError(err)
	}

	return nil
}

// PotentialSpamIDs returns non-trashed user ids whose description matches
// a link pattern (http://, https:// or [url), newest first (spec §4.9
// "Spam scan").
func (r *Repository) PotentialSpamIDs(ctx context.Context, first int) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id").
		From(r.tableName).
		Where("description ~* '(https?://|\\[url)'").
		Where(sqrl.Eq{"trashed": false}).
		OrderBy("created_at DESC").
		Limit(uint64(first)).
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

// ActivityCounters aggregates a user's authored rows across every
// module in a single round trip.
func (r *Repository) ActivityCounters(ctx context.Context, id uuid.UUID) (*user.ActivityCounters, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	const query = `
		SELECT
			(SELECT COUNT(*) FROM entity_revision WHERE author_id = $1 AND id IN (SELECT id FROM entity_revision WHERE entity_id NOT IN (SELECT entity_id FROM entity_revision WHERE author_id != $1))),
			(SELECT COUNT(*) FROM entity_revision WHERE author_id = $1),
			(SELECT COUNT(*) FROM comment WHERE author_id = $1),
			0`

	counters := &user.ActivityCounters{}

	if err := exec.QueryRowContext(ctx, query, id.String()).Scan(
		&counters.EntitiesCreated, &counters.RevisionsCreated, &counters.CommentsCreated, &counters.TaxonomyEdits,
	); err != nil {
		return nil, apperr.Internal(err)
	}

	return counters, nil
}

func (r *Repository) scan(row *sql.Row) (*user.User, error) {
	var idStr string

	var createdAt sql.NullTime

	u := &user.User{}

	if err := row.Scan(&idStr, &u.Username, &u.Email, &u.Description, &u.Trashed, &createdAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}

	u.ID = id
	u.CreatedAt = shared.NewDatetime(createdAt.Time)

	return u, nil
}

func (r *Repository) findRoles(ctx context.Context, exec dbtx.Executor, id uuid.UUID) (map[shared.Instance][]user.Role, error) {
	query, args, err := sqrl.Select("instance", "roles").
		From(r.roleTable).
		Where(sqrl.Eq{"user_id": id}).
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

	roles := map[shared.Instance][]user.Role{}

	for rows.Next() {
		var instanceStr string

		var names pq.StringArray

		if err := rows.Scan(&instanceStr, &names); err != nil {
			return nil, apperr.Internal(err)
		}

		list := make([]user.Role, len(names))
		for i, n := range names {
			list[i] = user.Role(n)
		}

		roles[shared.Instance(instanceStr)] = list
	}

	return roles, rows.Err()
}
