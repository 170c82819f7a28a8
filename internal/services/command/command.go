// Package command holds every mutating operation in the catalog (§6):
// one method per operation, one file per method, following the
// teacher's services/command convention.
package command

import (
	"github.com/openlearn/coredata/internal/domain/alias"
	"github.com/openlearn/coredata/internal/domain/entity"
	"github.com/openlearn/coredata/internal/domain/entityrevision"
	"github.com/openlearn/coredata/internal/domain/event"
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

// UseCase aggregates every repository a mutating operation might need,
// plus the pool used to open the operation's transaction.
type UseCase struct {
	// Pool opens the transaction every mutating operation runs inside
	// (spec §5 "Transactions").
	Pool *dbtx.Pool

	// UUIDRepo provides the shared identifier table.
	UUIDRepo uuidmodel.Repository

	// EntityRepo provides an abstraction on top of the entity data source.
	EntityRepo entity.Repository

	// EntityRevisionRepo provides an abstraction on top of entity revisions.
	EntityRevisionRepo entityrevision.Repository

	// PageRepo provides an abstraction on top of the page data source.
	PageRepo page.Repository

	// PageRevisionRepo provides an abstraction on top of page revisions.
	PageRevisionRepo pagerevision.Repository

	// TaxonomyRepo provides an abstraction on top of taxonomy terms.
	TaxonomyRepo taxonomyterm.Repository

	// ThreadRepo provides an abstraction on top of threads and comments.
	ThreadRepo thread.Repository

	// EventRepo provides an abstraction on top of the append-only event log.
	EventRepo event.Repository

	// SubscriptionRepo provides an abstraction on top of subscriptions.
	SubscriptionRepo subscription.Repository

	// NotificationRepo provides an abstraction on top of notifications.
	NotificationRepo notification.Repository

	// UserRepo provides an abstraction on top of the user data source.
	UserRepo user.Repository

	// AliasRepo provides an abstraction on top of aliases and legacy routes.
	AliasRepo alias.Repository
}
