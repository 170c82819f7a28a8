// Package bootstrap wires the domain/adapters/services layers together
// into a runnable service, grounded on the teacher's
// internal/bootstrap/{config,service,server}.go split.
package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the top-level, environment-variable-driven configuration
// struct (spec SPEC_FULL §2 "Configuration"). The teacher loads this kind
// of struct via lib-commons' env-tag reflection; that library is not part
// of this repo's dependency surface, so this reads os.Getenv directly —
// the one ambient concern with no wired third-party equivalent in the
// retrieval pack (documented in DESIGN.md).
type Config struct {
	// ServerAddress is the address the HTTP listener binds to.
	ServerAddress string

	// PrimaryDSN is the Postgres connection string mutating operations
	// and the pool's primary connection use.
	PrimaryDSN string

	// ReplicaDSN is an optional read-replica connection string; empty
	// means reads also go to PrimaryDSN.
	ReplicaDSN string

	// MaxOpenConns bounds the pool's connection count.
	MaxOpenConns int

	// MetadataLastChangesDate is the frozen "last changes" cutoff date,
	// parsed and validated at startup (SPEC_FULL §10, spec §9 Open
	// Behaviors). No query reads it: EntitiesMetadata takes no
	// modifiedAfter filter to clamp.
	MetadataLastChangesDate time.Time
}

const defaultMetadataLastChangesDate = "2021-01-01"

// LoadConfig reads Config from the process environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: envOr("SERVER_ADDRESS", ":3003"),
		PrimaryDSN:    os.Getenv("DB_PRIMARY_DSN"),
		ReplicaDSN:    os.Getenv("DB_REPLICA_DSN"),
	}

	if cfg.PrimaryDSN == "" {
		return nil, fmt.Errorf("DB_PRIMARY_DSN is required")
	}

	maxConns, err := strconv.Atoi(envOr("DB_MAX_OPEN_CONNS", "20"))
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS: %w", err)
	}

	cfg.MaxOpenConns = maxConns

	lastChanges, err := time.Parse("2006-01-02", envOr("METADATA_LAST_CHANGES_DATE", defaultMetadataLastChangesDate))
	if err != nil {
		return nil, fmt.Errorf("METADATA_LAST_CHANGES_DATE: %w", err)
	}

	cfg.MetadataLastChangesDate = lastChanges

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
