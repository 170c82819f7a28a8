// Package notification is the Postgres adapter for Notification (spec §4.8).
package notification

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/notification"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Repository is a Postgres-specific implementation of notification.Repository.
type Repository struct {
	pool      *dbtx.Pool
	tableName string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, tableName: "notification"}
}

var _ notification.Repository = (*Repository)(nil)

// CreateBatch inserts one row per recipient for eventID. Recipients are
// already deduplicated by the caller (subscription.Repository.Subscribers),
// so this issues one INSERT per row rather than reaching for an
// ON CONFLICT clause.
func (r *Repository) CreateBatch(ctx context.Context, eventID uuid.UUID, recipients []notification.Recipient) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	for _, recipient := range recipients {
		query, args, err := sqrl.Insert(r.tableName).
			Columns("id", "event_id", "user_id", "seen", "email", "created_at").
			Values(uuid.New().String(), eventID.String(), recipient.UserID.String(), false, recipient.Email, shared.Now().Time).
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

// ByUser returns up to first notification ids for userID, newest first,
// optionally restricted to unseen rows.
func (r *Repository) ByUser(ctx context.Context, userID uuid.UUID, unseenOnly bool, first int) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	sel := sqrl.Select("id").From(r.tableName).Where(sqrl.Eq{"user_id": userID}).OrderBy("created_at DESC")

	if unseenOnly {
		sel = sel.Where(sqrl.Eq{"seen": false})
	}

	if first > 0 {
		sel = sel.Limit(uint64(first))
	}

	query, args, err := sel.PlaceholderFormat(sqrl.Dollar).ToSql()
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

// Find retrieves a notification by id.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "event_id", "user_id", "seen", "email", "created_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var idStr, eventIDStr, userIDStr string

	var createdAt sql.NullTime

	n := &notification.Notification{}

	row := exec.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&idStr, &eventIDStr, &userIDStr, &n.Seen, &n.Email, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("notification %s not found", id)
		}

		return nil, apperr.Internal(err)
	}

	var err2 error

	if n.ID, err2 = uuid.Parse(idStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	if n.EventID, err2 = uuid.Parse(eventIDStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	if n.UserID, err2 = uuid.Parse(userIDStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	n.CreatedAt = shared.NewDatetime(createdAt.Time)

	return n, nil
}

// SetSeen flips a notification's seen flag.
func (r *Repository) SetSeen(ctx context.Context, id uuid.UUID, seen bool) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Update(r.tableName).
		Set("seen", seen).
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
		return apperr.NotFound("notification %s not found", id)
	}

	return nil
}

// UnseenCount returns how many unseen notifications userID has.
func (r *Repository) UnseenCount(ctx context.Context, userID uuid.UUID) (int, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("COUNT(*)").
		From(r.tableName).
		Where(sqrl.Eq{"user_id": userID, "seen": false}).
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
