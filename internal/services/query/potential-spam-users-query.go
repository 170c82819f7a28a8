package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// PotentialSpamUsers lists non-trashed users whose description contains
// a link, newest first (spec §6 UserPotentialSpamUsersQuery).
func (uc *UseCase) PotentialSpamUsers(ctx context.Context, first int) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.potential_spam_users")
	defer span.End()

	logger.Infof("scanning for potential spam users")

	return uc.UserRepo.PotentialSpamIDs(ctx, first)
}
