// Package mtrace carries an otel tracer through context.Context, the same
// way the teacher's common/context.go threads a trace.Tracer alongside the
// logger. Every command/query method opens a span at entry with this
// tracer, named "<layer>.<operation>".
package mtrace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const tracerKey contextKey = "mtrace.tracer"

// ContextWithTracer returns a child context carrying tracer.
func ContextWithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// FromContext returns the tracer installed with ContextWithTracer, or the
// default otel tracer named "coredata" if none was installed.
func FromContext(ctx context.Context) trace.Tracer {
	if t, ok := ctx.Value(tracerKey).(trace.Tracer); ok && t != nil {
		return t
	}

	return otel.Tracer("coredata")
}
