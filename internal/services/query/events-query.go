package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// Events lists event ids matching f in descending id order, silently dropping
// CheckoutRevision events whose object is a page revision — those are
// internal bookkeeping rows the legacy deployment never surfaced (spec
// §6 EventsQuery, "suppress checkout events on page-revisions").
func (uc *UseCase) Events(ctx context.Context, f event.Filter) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.events")
	defer span.End()

	logger.Infof("querying events in instance %s", f.Instance)

	want := f.First
	if want <= 0 {
		want = 100
	}

	out := make([]uuid.UUID, 0, want)

	cursor := f.After

	for len(out) < want {
		page := f
		page.After = cursor
		page.First = want - len(out) + 8 // overfetch to absorb suppressed rows

		ids, err := uc.EventRepo.Query(ctx, page)
		if err != nil {
			return nil, err
		}

		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			e, err := uc.EventRepo.Find(ctx, id)
			if err != nil {
				return nil, err
			}

			if e.Type == event.TypeCheckoutRevision {
				if ident, err := uc.UUIDRepo.FindIdentifier(ctx, e.ObjectID); err == nil &&
					ident.Discriminator == uuidmodel.DiscriminatorPageRevision {
					continue
				}
			}

			out = append(out, id)

			if len(out) == want {
				break
			}
		}

		last := ids[len(ids)-1]
		cursor = &last

		if len(ids) < page.First {
			break
		}
	}

	return out, nil
}
