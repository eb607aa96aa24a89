package logging

import (
	"maps"

	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// WithFields scopes logger to fields. Loggers without field support are
// returned as-is.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	scoped, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return scoped.WithFields(maps.Clone(fields))
}

// With is the key/value form of WithFields. A trailing key without a value
// and non-string keys are ignored.
func With(logger interfaces.Logger, kv ...any) interfaces.Logger {
	fields := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok && key != "" {
			fields[key] = kv[i+1]
		}
	}
	return WithFields(logger, fields)
}
