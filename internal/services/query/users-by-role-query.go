package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/domain/user"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// UsersByRole lists user ids holding role in instance (spec §6
// UsersByRoleQuery).
func (uc *UseCase) UsersByRole(ctx context.Context, instance shared.Instance, role user.Role) ([]uuid.UUID, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	_, span := tracer.Start(ctx, "query.users_by_role")
	defer span.End()

	logger.Infof("listing users with role %s in instance %s", role, instance)

	return uc.UserRepo.ByRole(ctx, instance, role)
}
