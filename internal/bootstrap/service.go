package bootstrap

import (
	"fmt"

	aliaspg "github.com/openlearn/coredata/internal/adapters/postgres/alias"
	entitypg "github.com/openlearn/coredata/internal/adapters/postgres/entity"
	entityrevisionpg "github.com/openlearn/coredata/internal/adapters/postgres/entityrevision"
	eventpg "github.com/openlearn/coredata/internal/adapters/postgres/event"
	licensepg "github.com/openlearn/coredata/internal/adapters/postgres/license"
	notificationpg "github.com/openlearn/coredata/internal/adapters/postgres/notification"
	pagepg "github.com/openlearn/coredata/internal/adapters/postgres/page"
	pagerevisionpg "github.com/openlearn/coredata/internal/adapters/postgres/pagerevision"
	subscriptionpg "github.com/openlearn/coredata/internal/adapters/postgres/subscription"
	taxonomytermpg "github.com/openlearn/coredata/internal/adapters/postgres/taxonomyterm"
	threadpg "github.com/openlearn/coredata/internal/adapters/postgres/thread"
	userpg "github.com/openlearn/coredata/internal/adapters/postgres/user"
	uuidmodelpg "github.com/openlearn/coredata/internal/adapters/postgres/uuidmodel"
	"github.com/openlearn/coredata/internal/operation"
	"github.com/openlearn/coredata/internal/platform/dbtx"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/services/command"
	"github.com/openlearn/coredata/internal/services/query"
)

// Service is every long-lived object the running process holds: the
// connection pool, the aggregated command/query/operation UseCases, and
// the logger they were all built with.
type Service struct {
	Config    *Config
	Pool      *dbtx.Pool
	Logger    mlog.Logger
	Operation *operation.UseCase
}

// InitService builds the fully wired Service from cfg: opens the
// database pool, constructs one Postgres repository per domain package,
// and aggregates them into the command/query UseCases the operation
// registry dispatches into. Mirrors the teacher's InitServers — one
// function that owns the whole object graph.
func InitService(cfg *Config) (*Service, error) {
	logger, err := mlog.NewZapLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	pool := &dbtx.Pool{
		PrimaryDSN:   cfg.PrimaryDSN,
		ReplicaDSN:   cfg.ReplicaDSN,
		MaxOpenConns: cfg.MaxOpenConns,
	}

	if err := pool.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	uuidRepo := uuidmodelpg.NewRepository(pool)
	entityRepo := entitypg.NewRepository(pool)
	entityRevisionRepo := entityrevisionpg.NewRepository(pool)
	pageRepo := pagepg.NewRepository(pool)
	pageRevisionRepo := pagerevisionpg.NewRepository(pool)
	taxonomyRepo := taxonomytermpg.NewRepository(pool)
	threadRepo := threadpg.NewRepository(pool)
	eventRepo := eventpg.NewRepository(pool)
	subscriptionRepo := subscriptionpg.NewRepository(pool)
	notificationRepo := notificationpg.NewRepository(pool)
	userRepo := userpg.NewRepository(pool)
	aliasRepo := aliaspg.NewRepository(pool)
	licenseRepo := licensepg.NewRepository(pool)

	commandUC := &command.UseCase{
		Pool:               pool,
		UUIDRepo:           uuidRepo,
		EntityRepo:         entityRepo,
		EntityRevisionRepo: entityRevisionRepo,
		PageRepo:           pageRepo,
		PageRevisionRepo:   pageRevisionRepo,
		TaxonomyRepo:       taxonomyRepo,
		ThreadRepo:         threadRepo,
		EventRepo:          eventRepo,
		SubscriptionRepo:   subscriptionRepo,
		NotificationRepo:   notificationRepo,
		UserRepo:           userRepo,
		AliasRepo:          aliasRepo,
	}

	queryUC := &query.UseCase{
		Pool:               pool,
		UUIDRepo:           uuidRepo,
		EntityRepo:         entityRepo,
		EntityRevisionRepo: entityRevisionRepo,
		PageRepo:           pageRepo,
		PageRevisionRepo:   pageRevisionRepo,
		TaxonomyRepo:       taxonomyRepo,
		ThreadRepo:         threadRepo,
		EventRepo:          eventRepo,
		SubscriptionRepo:   subscriptionRepo,
		NotificationRepo:   notificationRepo,
		UserRepo:           userRepo,
		AliasRepo:          aliasRepo,
		LicenseRepo:        licenseRepo,
	}

	return &Service{
		Config: cfg,
		Pool:   pool,
		Logger: logger,
		Operation: &operation.UseCase{
			Command: commandUC,
			Query:   queryUC,
		},
	}, nil
}
