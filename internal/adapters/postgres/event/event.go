// Package event is the Postgres adapter for the append-only event log
// (spec §4.7).
package event

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// Repository is a Postgres-specific implementation of event.Repository.
type Repository struct {
	pool             *dbtx.Pool
	eventTable       string
	uuidParamTable   string
	stringParamTable string
}

// NewRepository returns a new Repository bound to pool.
func NewRepository(pool *dbtx.Pool) *Repository {
	return &Repository{
		pool:             pool,
		eventTable:       "event",
		uuidParamTable:   "event_parameter_uuid",
		stringParamTable: "event_parameter_string",
	}
}

var _ event.Repository = (*Repository)(nil)

// Append writes e and every parameter in one call; callers run it inside
// dbtx.RunInTransaction alongside the mutation that produced it so the
// event and its parameters never commit separately (spec §4.7).
func (r *Repository) Append(ctx context.Context, e *event.Event) error {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Insert(r.eventTable).
		Columns("id", "type", "actor_id", "object_id", "instance", "created_at").
		Values(e.ID.String(), string(e.Type), e.ActorID.String(), e.ObjectID.String(), string(e.Instance), e.CreatedAt.Time).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return apperr.Internal(err)
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return apperr.FromPGError(err)
	}

	for _, p := range e.Parameters {
		table := r.stringParamTable
		value := p.StringValue

		if p.Kind == event.ParameterKindUUID {
			table = r.uuidParamTable
			value = p.UUIDValue.String()
		}

		pq2, pargs, err := sqrl.Insert(table).
			Columns("event_id", "name", "value").
			Values(e.ID.String(), p.Name, value).
			PlaceholderFormat(sqrl.Dollar).
			ToSql()
		if err != nil {
			return apperr.Internal(err)
		}

		if _, err := exec.ExecContext(ctx, pq2, pargs...); err != nil {
			return apperr.FromPGError(err)
		}
	}

	return nil
}

// Find retrieves an event and its parameters by id.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("id", "type", "actor_id", "object_id", "instance", "created_at").
		From(r.eventTable).
		Where(sqrl.Eq{"id": id}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var idStr, typeStr, actorIDStr, objectIDStr, instanceStr string

	var createdAt sql.NullTime

	row := exec.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&idStr, &typeStr, &actorIDStr, &objectIDStr, &instanceStr, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("event %s not found", id)
		}

		return nil, apperr.Internal(err)
	}

	e := &event.Event{Type: event.EventType(typeStr), Instance: shared.Instance(instanceStr), CreatedAt: shared.NewDatetime(createdAt.Time)}

	var err2 error

	if e.ID, err2 = uuid.Parse(idStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	if e.ActorID, err2 = uuid.Parse(actorIDStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	if e.ObjectID, err2 = uuid.Parse(objectIDStr); err2 != nil {
		return nil, apperr.Internal(err2)
	}

	params, err := r.findParameters(ctx, exec, id)
	if err != nil {
		return nil, err
	}

	e.Parameters = params

	return e, nil
}

func (r *Repository) findParameters(ctx context.Context, exec dbtx.Executor, eventID uuid.UUID) ([]event.Parameter, error) {
	uuidParams, err := r.findUUIDParameters(ctx, exec, eventID)
	if err != nil {
		return nil, err
	}

	stringParams, err := r.findStringParameters(ctx, exec, eventID)
	if err != nil {
		return nil, err
	}

	return append(uuidParams, stringParams...), nil
}

func (r *Repository) findUUIDParameters(ctx context.Context, exec dbtx.Executor, eventID uuid.UUID) ([]event.Parameter, error) {
	query, args, err := sqrl.Select("name", "value").
		From(r.uuidParamTable).
		Where(sqrl.Eq{"event_id": eventID}).
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

	var params []event.Parameter

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, apperr.Internal(err)
		}

		valueID, err := uuid.Parse(value)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		params = append(params, event.UUIDParam(name, valueID))
	}

	return params, rows.Err()
}

func (r *Repository) findStringParameters(ctx context.Context, exec dbtx.Executor, eventID uuid.UUID) ([]event.Parameter, error) {
	query, args, err := sqrl.Select("name", "value").
		From(r.stringParamTable).
		Where(sqrl.Eq{"event_id": eventID}).
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

	var params []event.Parameter

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, apperr.Internal(err)
		}

		params = append(params, event.StringParam(name, value))
	}

	return params, rows.Err()
}

// Query returns event ids matching f in descending id order (spec §4.7 "Query
// events"), keyset-paginated via f.After like the teacher's id-cursor
// pagination (mirrors organization.postgresql.go's FindAll).
func (r *Repository) Query(ctx context.Context, f event.Filter) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	sel := sqrl.Select("id").From(r.eventTable).OrderBy("id DESC")

	if f.Instance != "" {
		sel = sel.Where(sqrl.Eq{"instance": string(f.Instance)})
	}

	if f.ObjectID != nil {
		sel = sel.Where(sqrl.Or{
			sqrl.Eq{"object_id": f.ObjectID.String()},
			sqrl.Expr(
				"EXISTS (SELECT 1 FROM "+r.uuidParamTable+" p WHERE p.event_id = "+r.eventTable+".id AND p.value = ?)",
				f.ObjectID.String(),
			),
		})
	}

	if f.ActorID != nil {
		sel = sel.Where(sqrl.Eq{"actor_id": f.ActorID.String()})
	}

	if len(f.Types) > 0 {
		types := make([]string, len(f.Types))
		for i, t := range f.Types {
			types[i] = string(t)
		}

		sel = sel.Where("type = ANY(?)", pq.Array(types))
	}

	if f.After != nil {
		sel = sel.Where(sqrl.Lt{"id": f.After.String()})
	}

	if f.First > 0 {
		sel = sel.Limit(uint64(f.First))
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

// DistinctActors returns distinct actor ids behind events of one of
// types in instance, ordered by the most recent matching event per
// actor (spec §6 ActiveAuthorsQuery / ActiveReviewersQuery).
func (r *Repository) DistinctActors(ctx context.Context, instance shared.Instance, types []event.EventType, first int) ([]uuid.UUID, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	typeStrs := make([]string, len(types))
	for i, t := range types {
		typeStrs[i] = string(t)
	}

	sel := sqrl.Select("actor_id").
		From(r.eventTable).
		Where(sqrl.Eq{"instance": string(instance)}).
		Where("type = ANY(?)", pq.Array(typeStrs)).
		GroupBy("actor_id").
		OrderBy("MAX(created_at) DESC")

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

// CountByActorAndType counts actorID's events of type t within instance.
func (r *Repository) CountByActorAndType(ctx context.Context, instance shared.Instance, actorID uuid.UUID, t event.EventType) (int, error) {
	exec := dbtx.GetExecutor(ctx, r.pool.Executor())

	query, args, err := sqrl.Select("COUNT(*)").
		From(r.eventTable).
		Where(sqrl.Eq{"instance": string(instance)}).
		Where(sqrl.Eq{"actor_id": actorID.String()}).
		Where(sqrl.Eq{"type": string(t)}).
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
