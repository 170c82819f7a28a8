package command

import (
	"context"
	"crypto/md5"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// DeleteBotsInput is the payload of UserDeleteBotsMutation.
type DeleteBotsInput struct {
	UserIDs []uuid.UUID
}

// DeleteBots permanently removes a batch of spam-bot accounts. Before
// deleting each row, it logs the md5 hash of the account's email (spec
// §4.9 "Delete bots": "captures md5 of email as a hash per deleted id")
// so abuse reports can still correlate the account after its row is
// gone, without this service retaining the real address anywhere.
func (uc *UseCase) DeleteBots(ctx context.Context, in *DeleteBotsInput) error {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_bots")
	defer span.End()

	logger.Infof("deleting %d bot accounts", len(in.UserIDs))

	return dbtx.RunInTransaction(ctx, uc.Pool, func(ctx context.Context) error {
		for _, id := range in.UserIDs {
			u, err := uc.UserRepo.Find(ctx, id)
			if err != nil {
				return err
			}

			hash := md5.Sum([]byte(u.Email))
			logger.Infof("deleting bot user %s, email hash %s", id, hex.EncodeToString(hash[:]))

			if err := uc.UserRepo.Delete(ctx, id); err != nil {
				return err
			}
		}

		return nil
	})
}
