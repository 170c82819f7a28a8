package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/notification"
	"github.com/openlearn/coredata/internal/platform/apperr"
)

// emit appends e to the event log and fans it out to subscribers (spec
// §4.7 step 4, §4.8). It must run inside the same transaction as the
// mutation that produced e — callers invoke it from inside their
// dbtx.RunInTransaction callback.
func (uc *UseCase) emit(ctx context.Context, e *event.Event) error {
	if err := uc.EventRepo.Append(ctx, e); err != nil {
		return err
	}

	subjects := map[uuid.UUID]bool{e.ObjectID: true}
	for _, p := range e.Parameters {
		if p.Kind == event.ParameterKindUUID {
			subjects[p.UUIDValue] = true
		}
	}

	recipients := map[uuid.UUID]notification.Recipient{}

	for subject := range subjects {
		subs, err := uc.SubscriptionRepo.Subscribers(ctx, subject, nil)
		if err != nil {
			return apperr.Internal(err)
		}

		for _, s := range subs {
			if s.UserID == e.ActorID {
				continue
			}

			if _, ok := recipients[s.UserID]; !ok {
				recipients[s.UserID] = notification.Recipient{UserID: s.UserID, Email: s.SendEmail}
			}
		}
	}

	if len(recipients) == 0 {
		return nil
	}

	list := make([]notification.Recipient, 0, len(recipients))
	for _, r := range recipients {
		list = append(list, r)
	}

	return uc.NotificationRepo.CreateBatch(ctx, e.ID, list)
}
