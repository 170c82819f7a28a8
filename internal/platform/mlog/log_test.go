package mlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_NoneInstalledReturnsNoneLogger(t *testing.T) {
	logger := FromContext(context.Background())

	_, ok := logger.(*NoneLogger)
	assert.True(t, ok, "expected a NoneLogger fallback")
}

func TestContextWithLogger_RoundTrip(t *testing.T) {
	installed := &NoneLogger{}
	ctx := ContextWithLogger(context.Background(), installed)

	assert.Same(t, installed, FromContext(ctx))
}

func TestNoneLogger_WithFieldsReturnsSelf(t *testing.T) {
	logger := &NoneLogger{}

	assert.Equal(t, Logger(logger), logger.WithFields("key", "value"))
}

func TestNoneLogger_SyncIsNoop(t *testing.T) {
	assert.NoError(t, (&NoneLogger{}).Sync())
}
