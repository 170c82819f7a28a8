package mlog

// NoneLogger discards everything. Used when a caller forgot to install a
// logger into the context, or inside unit tests that don't care.
type NoneLogger struct{}

func (l *NoneLogger) Info(args ...any)                   {}
func (l *NoneLogger) Infof(format string, args ...any)   {}
func (l *NoneLogger) Warn(args ...any)                   {}
func (l *NoneLogger) Warnf(format string, args ...any)   {}
func (l *NoneLogger) Error(args ...any)                  {}
func (l *NoneLogger) Errorf(format string, args ...any)  {}
func (l *NoneLogger) Debug(args ...any)                  {}
func (l *NoneLogger) Debugf(format string, args ...any)  {}
func (l *NoneLogger) Sync() error                        { return nil }
func (l *NoneLogger) WithFields(fields ...any) Logger    { return l }
