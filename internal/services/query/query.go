// Package query holds every read-only operation in the catalog (§6):
// one method per operation, one file per method, mirroring the
// services/command package's layout.
package query

import (
	"github.com/openlearn/coredata/internal/domain/alias"
	"github.com/openlearn/coredata/internal/domain/entity"
	"github.com/openlearn/coredata/internal/domain/entityrevision"
	"github.com/openlearn/coredata/internal/domain/event"
	"github.com/openlearn/coredata/internal/domain/license"
	"github.com/openlearn/coredata/internal/domain/notification"
	"github.com/openlearn/coredata/internal/domain/page"
	"github.com/openlearn/coredata/internal/domain/pagerevision"
	"github.com/openlearn/coredata/internal/domain/subscription"
	"github.com/openlearn/coredata/internal/domain/taxonomyterm"
	"github.com/openlearn/coredata/internal/domain/thread"
	"github.com/openlearn/coredata/internal/domain/user"
	"github.com/openlearn/coredata/internal/domain/uuidmodel"
	"github.com/openlearn/coredata/internal/platform/dbtx"
)

// UseCase aggregates every repository a read operation might need, plus
// the pool.
type UseCase struct {
	// Pool is the database pool. No read operation opens a transaction
	// on it; each repository call runs on the transaction already in
	// the context, if any, or else directly on the pool.
	Pool *dbtx.Pool

	UUIDRepo           uuidmodel.Repository
	EntityRepo         entity.Repository
	EntityRevisionRepo entityrevision.Repository
	PageRepo           page.Repository
	PageRevisionRepo   pagerevision.Repository
	TaxonomyRepo       taxonomyterm.Repository
	ThreadRepo         thread.Repository
	EventRepo          event.Repository
	SubscriptionRepo   subscription.Repository
	NotificationRepo   notification.Repository
	UserRepo           user.Repository
	AliasRepo          alias.Repository
	LicenseRepo        license.Repository
}
