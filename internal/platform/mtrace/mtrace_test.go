package mtrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
)

func TestFromContext_NoneInstalledReturnsDefaultTracer(t *testing.T) {
	tracer := FromContext(context.Background())

	assert.Equal(t, otel.Tracer("coredata"), tracer)
}

func TestContextWithTracer_RoundTrip(t *testing.T) {
	installed := otel.Tracer("custom")
	ctx := ContextWithTracer(context.Background(), installed)

	assert.Equal(t, installed, FromContext(ctx))
}
