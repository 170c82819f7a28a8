package bootstrap

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"SERVER_ADDRESS", "DB_PRIMARY_DSN", "DB_REPLICA_DSN",
		"DB_MAX_OPEN_CONNS", "METADATA_LAST_CHANGES_DATE",
	} {
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_RequiresPrimaryDSN(t *testing.T) {
	clearConfigEnv(t)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_PRIMARY_DSN", "postgres://localhost/coredata")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":3003", cfg.ServerAddress)
	assert.Equal(t, 20, cfg.MaxOpenConns)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), cfg.MetadataLastChangesDate)
	assert.Empty(t, cfg.ReplicaDSN)
}

func TestLoadConfig_OverridesFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_PRIMARY_DSN", "postgres://localhost/coredata")
	t.Setenv("SERVER_ADDRESS", ":9000")
	t.Setenv("DB_REPLICA_DSN", "postgres://replica/coredata")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")
	t.Setenv("METADATA_LAST_CHANGES_DATE", "2023-06-15")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerAddress)
	assert.Equal(t, "postgres://replica/coredata", cfg.ReplicaDSN)
	assert.Equal(t, 5, cfg.MaxOpenConns)
	assert.Equal(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), cfg.MetadataLastChangesDate)
}

func TestLoadConfig_InvalidMaxOpenConns(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_PRIMARY_DSN", "postgres://localhost/coredata")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_InvalidMetadataDate(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_PRIMARY_DSN", "postgres://localhost/coredata")
	t.Setenv("METADATA_LAST_CHANGES_DATE", "not-a-date")

	_, err := LoadConfig()
	assert.Error(t, err)
}
