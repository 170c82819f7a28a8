// Package event implements the append-only activity log (spec §3
// "Event", §4.7) that every mutating operation writes a row to, and
// that notification fan-out reads from.
package event

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
)

// EventType is the closed catalog of event kinds a mutation can emit
// (spec §4.7). The string values are the exact wire names exchanged over
// JSON; ArchiveThread and RestoreThread both surface as SetThreadState.
type EventType string

const (
	TypeCheckoutRevision     EventType = "CheckoutRevision"
	TypeRejectRevision       EventType = "RejectRevision"
	TypeCreateEntity         EventType = "CreateEntity"
	TypeCreateEntityLink     EventType = "CreateEntityLink"
	TypeRemoveEntityLink     EventType = "RemoveEntityLink"
	TypeCreateEntityRevision EventType = "CreateEntityRevision"
	TypeCreateComment        EventType = "CreateComment"
	TypeCreateThread         EventType = "CreateThread"
	TypeCreateTaxonomyLink   EventType = "CreateTaxonomyLink"
	TypeRemoveTaxonomyLink   EventType = "RemoveTaxonomyLink"
	TypeCreateTaxonomyTerm   EventType = "CreateTaxonomyTerm"
	TypeSetTaxonomyTerm      EventType = "SetTaxonomyTerm"
	TypeSetTaxonomyParent    EventType = "SetTaxonomyParent"
	TypeSetLicense           EventType = "SetLicense"
	TypeSetUuidState         EventType = "SetUuidState"
	TypeSetThreadState       EventType = "SetThreadState"
)

// ParameterKind distinguishes which child table a Parameter's value lives
// in (spec §3: "each parameter is either a string or a uuid reference",
// §6 persistence layout: "two parameter-value children (string, uuid)").
type ParameterKind string

const (
	ParameterKindUUID   ParameterKind = "uuid"
	ParameterKindString ParameterKind = "string"
)

// Parameter is one named value describing an event's subject (spec §3:
// "Event parameters are a flexible key-to-value bag, since every event
// type names a different set of related objects or carries a reason").
// Exactly one of UUIDValue/StringValue is meaningful, selected by Kind.
type Parameter struct {
	Name        string
	Kind        ParameterKind
	UUIDValue   uuid.UUID
	StringValue string
}

// UUIDParam builds a uuid-valued Parameter, the common case: most event
// parameters point at another related object.
func UUIDParam(name string, value uuid.UUID) Parameter {
	return Parameter{Name: name, Kind: ParameterKindUUID, UUIDValue: value}
}

// StringParam builds a string-valued Parameter, used for free-text values
// like a checkout/reject reason (spec §4.4) or a flipped boolean flag
// rendered as text (spec §4.3's "trashed" on SetUuidState).
func StringParam(name, value string) Parameter {
	return Parameter{Name: name, Kind: ParameterKindString, StringValue: value}
}

// Event is one immutable, append-only log row.
type Event struct {
	ID         uuid.UUID
	Type       EventType
	ActorID    uuid.UUID
	ObjectID   uuid.UUID
	Instance   shared.Instance
	Parameters []Parameter
	CreatedAt  shared.Datetime
}

// Param returns the uuid-valued parameter named name, if present.
func (e *Event) Param(name string) (uuid.UUID, bool) {
	for _, p := range e.Parameters {
		if p.Name == name && p.Kind == ParameterKindUUID {
			return p.UUIDValue, true
		}
	}

	return uuid.Nil, false
}

// StringParam returns the string-valued parameter named name, if present.
func (e *Event) StringParam(name string) (string, bool) {
	for _, p := range e.Parameters {
		if p.Name == name && p.Kind == ParameterKindString {
			return p.StringValue, true
		}
	}

	return "", false
}

// Filter narrows an event query (spec §4.7 "Query events"). Zero values
// mean "no restriction" on that dimension.
type Filter struct {
	Instance shared.Instance
	ObjectID *uuid.UUID
	ActorID  *uuid.UUID
	Types    []EventType
	After    *uuid.UUID // keyset cursor: only ids less than After (ids are listed descending)
	First    int
}

// Repository is the persistence contract for the event log.
type Repository interface {
	// Append writes e and every one of its parameters in the same
	// transaction (spec §4.7 invariant: "an event and its parameters are
	// never written in separate transactions").
	Append(ctx context.Context, e *Event) error
	Find(ctx context.Context, id uuid.UUID) (*Event, error)
	Query(ctx context.Context, f Filter) ([]uuid.UUID, error)

	// DistinctActors returns distinct actor ids who produced an event of
	// one of types within instance, most recently active first (spec §6
	// ActiveAuthorsQuery / ActiveReviewersQuery).
	DistinctActors(ctx context.Context, instance shared.Instance, types []EventType, first int) ([]uuid.UUID, error)

	// CountByActorAndType counts actorID's events of type within instance
	// (spec §6 UserActivityByTypeQuery).
	CountByActorAndType(ctx context.Context, instance shared.Instance, actorID uuid.UUID, t EventType) (int, error)
}
