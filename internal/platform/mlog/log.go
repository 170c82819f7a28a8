// Package mlog provides the structured logging abstraction used across
// coredata. It mirrors the teacher's common/mlog contract: a small
// interface the rest of the codebase depends on, with a zap-backed
// production implementation and a no-op implementation for contexts where
// no logger was ever installed.
package mlog

import "context"

// Logger is the common interface every part of coredata logs through.
type Logger interface {
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Debug(args ...any)
	Debugf(format string, args ...any)

	WithFields(fields ...any) Logger

	Sync() error
}

type contextKey string

const loggerKey contextKey = "mlog.logger"

// ContextWithLogger returns a child context carrying logger.
func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the Logger previously installed with
// ContextWithLogger, or a NoneLogger if none was installed.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok && l != nil {
		return l
	}

	return &NoneLogger{}
}
