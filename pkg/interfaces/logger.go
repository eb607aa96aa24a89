package interfaces

import "context"

// Logger is the leveled logger every builder package writes to. Messages are
// event names such as "session.save.start"; args are alternating key/value
// pairs. The method set matches github.com/goliatone/go-logger so its loggers
// can be passed in unchanged.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)

	// WithContext binds request scoped fields carried by ctx.
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out loggers by module name, e.g. "builder.session".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry persistent fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// SyncingProvider is implemented by providers that buffer entries and must be
// flushed before the process exits.
type SyncingProvider interface {
	LoggerProvider
	Sync() error
}
