// Package subscription is the Postgres adapter for Subscription (spec §4.8).
package subscription

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/openlearn/coredata/internal/domain/subscription"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Repository is a Postgres-specific implementation of subscription.Repository.
type Repository struct {
	pool      *dbtx.Pool
	tableName string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{pool: pool, tableName: "subscription"}
}

var _ subscription.Repository = (*Repository)(nil)

// Set upserts a subscription row (spec §4.8: setting twice updates
// rather than duplicating), mirroring the teacher's single-statement
// mutation shape but using ON CONFLICT in place of the teacher's
// plain INSERT, since the teacher repo never needed an upsert.
func (r *Repository) Set(ctx context.Context, s *subscription.Subscription) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	const query = `
		INSERT INTO subscription (object_id, user_id, send_email, include_thread)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (object_id, user_id)
		DO UPDATE SET send_email = EXCLUDED.send_email, include_thread = EXCLUDED.include_thread`

	if _, err := exec.ExecContext(ctx, query, s.ObjectID.String(), s.UserID.String(), s.SendEmail, s.IncludeThread); err != nil {
		return apperr.FromPGError(err)
	}

	return nil
}

// Unset deletes a subscription row.
func (r *Repository) Unset(ctx context.Context, objectID, userID uuid.UUID) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Delete(r.tableName).
		Where(sqrl.Eq{"object_id": objectID, "user_id": userID}).
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

// Find retrieves a single subscription row.
func (r *Repository) Find(ctx context.Context, objectID, userID uuid.UUID) (*subscription.Subscription, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("object_id", "user_id", "send_email", "include_thread").
		From(r.tableName).
		Where(sqrl.Eq{"object_id": objectID, "user_id": userID}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s, err := scanOne(exec.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("no subscription for user %s on object %s", userID, objectID)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	return s, nil
}

// BySubscriber returns every object id userID subscribes to.
func (r *Repository) BySubscriber(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("object_id").
		From(r.tableName).
		Where(sqrl.Eq{"user_id": userID}).
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

// Subscribers returns subscriptions watching objectID directly, plus
// those watching any id in ancestorIDs that opted into include_thread
// (spec §4.8 "Notify subscribers").
func (r *Repository) Subscribers(ctx context.Context, objectID uuid.UUID, ancestorIDs []uuid.UUID) ([]subscription.Subscription, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	watched := make([]string, 0, len(ancestorIDs)+1)
	watched = append(watched, objectID.String())

	for _, id := range ancestorIDs {
		watched = append(watched, id.String())
	}

	const query = `
		SELECT object_id, user_id, send_email, include_thread
		FROM subscription
		WHERE object_id = $1
		   OR (object_id = ANY($2) AND include_thread = true)`

	rows, err := exec.QueryContext(ctx, query, objectID.String(), pq.Array(watched[1:]))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	var subs []subscription.Subscription

	for rows.Next() {
		var objectIDStr, userIDStr string

		var s subscription.Subscription

		if err := rows.Scan(&objectIDStr, &userIDStr, &s.SendEmail, &s.IncludeThread); err != nil {
			return nil, apperr.Internal(err)
		}

		if s.ObjectID, err = uuid.Parse(objectIDStr); err != nil {
			return nil, apperr.Internal(err)
		}

		if s.UserID, err = uuid.Parse(userIDStr); err != nil {
			return nil, apperr.Internal(err)
		}

		subs = append(subs, s)
	}

	return dedupeByUser(subs), rows.Err()
}

// dedupeByUser keeps the first subscription seen per user, enforcing
// the spec §4.8 invariant that a user is notified at most once per
// event even when they subscribe through more than one watched object.
func dedupeByUser(subs []subscription.Subscription) []subscription.Subscription {
	seen := make(map[uuid.UUID]bool, len(subs))

	out := make([]subscription.Subscription, 0, len(subs))

	for _, s := range subs {
		if seen[s.UserID] {
			continue
		}

		seen[s.UserID] = true

		out = append(out, s)
	}

	return out
}

func scanOne(row *sql.Row) (*subscription.Subscription, error) {
	var objectIDStr, userIDStr string

	s := &subscription.Subscription{}

	if err := row.Scan(&objectIDStr, &userIDStr, &s.SendEmail, &s.IncludeThread); err != nil {
		return nil, err
	}

	var err error

	if s.ObjectID, err = uuid.Parse(objectIDStr); err != nil {
		return nil, err
	}

	if s.UserID, err = uuid.Parse(userIDStr); err != nil {
		return nil, err
	}

	return s, nil
}
