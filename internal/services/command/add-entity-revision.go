package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/entity"
	"github.com/openlearn/coredata/internal/domain/entityrevision"
	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/subscription"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// AddEntityRevisionInput is the payload of EntityAddRevisionMutation.
type AddEntityRevisionInput struct {
	EntityID             uuid.UUID `validate:"required"`
	AuthorID             uuid.UUID `validate:"required"`
	Fields               map[string]string
	NeedsReview          bool
	SubscribeThis        bool
	SubscribeThisByEmail bool
}

// AddEntityRevision inserts a new revision, skipping the write entirely
// if it would be field-for-field identical to the entity's current
// revision (spec §4.4 "Add revision"). When needsReview is false the new
// revision is checked out immediately; when subscribeThis is set the
// actor is subscribed to the entity.
func (uc *UseCase) AddEntityRevision(ctx context.Context, in *AddEntityRevisionInput) (uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.add_entity_revision")
	defer span.End()

	logger.Infof("adding revision to entity %s", in.EntityID)

	var revisionID uuid.UUID

	err := dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		e, err := uc.EntityRepo.Find(ctx, in.EntityID)
		if err != nil {
			return err
		}

		revisionID, err = uc.addEntityRevisionTx(ctx, e, in.AuthorID, in.Fields, in.NeedsReview, in.SubscribeThis, in.SubscribeThisByEmail)

		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	return revisionID, nil
}

// addEntityRevisionTx is the shared body of AddEntityRevision, also
// called by CreateEntity once the entity row and its parent link
// already exist, inside the same transaction (spec §4.4 "Create entity"
// step 3: "Delegate to add revision with the same fields").
func (uc *UseCase) addEntityRevisionTx(ctx context.Context, e *entity.Entity, authorID uuid.UUID, fields map[string]string, needsReview, subscribeThis, subscribeThisByEmail bool) (uuid.UUID, error) {
	if e.CurrentRevisionID != nil {
		current, err := uc.EntityRevisionRepo.Find(ctx, *e.CurrentRevisionID)
		if err != nil {
			return uuid.Nil, err
		}

		if fieldsEqual(e.SubType, current.Fields, fields) {
			return current.ID, nil
		}
	}

	revisionID := uuid.New()

	if err := uc.UUIDRepo.Create(ctx, revisionID, uuidmodel.DiscriminatorEntityRevision); err != nil {
		return uuid.Nil, err
	}

	rev := &entityrevision.Revision{
		ID:        revisionID,
		EntityID:  e.ID,
		AuthorID:  authorID,
		Fields:    fields,
		CreatedAt: shared.Now(),
	}

	if err := uc.EntityRevisionRepo.Create(ctx, rev); err != nil {
		return uuid.Nil, err
	}

	if err := uc.emit(ctx, &event.Event{
		ID:        uuid.New(),
		Type:      event.TypeCreateEntityRevision,
		ActorID:   authorID,
		ObjectID:  e.ID,
		Instance:  e.Instance,
		CreatedAt: shared.Now(),
		Parameters: []event.Parameter{
			event.UUIDParam("revisionId", revisionID),
		},
	}); err != nil {
		return uuid.Nil, err
	}

	if !needsReview {
		if err := uc.checkoutRevisionTx(ctx, e.ID, revisionID, authorID, e.Instance, ""); err != nil {
			return uuid.Nil, err
		}
	}

	if subscribeThis {
		if err := uc.SubscriptionRepo.Set(ctx, &subscription.Subscription{
			ObjectID:  e.ID,
			UserID:    authorID,
			SendEmail: subscribeThisByEmail,
		}); err != nil {
			return uuid.Nil, err
		}
	}

	return revisionID, nil
}

// fieldsEqual compares a candidate field set against a revision's
// current fields using the type-specific rules spec §4.4 calls out: an
// absent exerciseGroup "cohesive" field is treated as present with its
// existing value, and a coursePage's "icon" field is never compared.
func fieldsEqual(subType entity.SubType, current, candidate map[string]string) bool {
	ignore := map[string]bool{}

	if subType == entity.SubTypeCoursePage {
		ignore["icon"] = true
	}

	for name, value := range candidate {
		if ignore[name] {
			continue
		}

		if cur, ok := current[name]; ok && cur != value {
			return false
		}

		if _, ok := current[name]; !ok {
			if subType == entity.SubTypeExerciseGroup && name == "cohesive" {
				continue
			}

			return false
		}
	}

	for name := range current {
		if ignore[name] {
			continue
		}

		if _, ok := candidate[name]; !ok {
			if subType == entity.SubTypeExerciseGroup && name == "cohesive" {
				continue
			}

			return false
		}
	}

	return true
}
