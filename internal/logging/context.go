package logging

import (
	"context"
	"maps"
	"strings"
)

type fieldsKey struct{}

// fieldSet is immutable once stored on a context.
type fieldSet map[string]any

func (s fieldSet) with(extra map[string]any) fieldSet {
	out := make(fieldSet, len(s)+len(extra))
	maps.Copy(out, s)
	maps.Copy(out, extra)
	return out
}

// ContextWithFields returns a context whose logging fields are the ones
// already on ctx overlaid with fields. Providers merge them into entries
// logged through WithContext.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	current, _ := ctx.Value(fieldsKey{}).(fieldSet)
	return context.WithValue(ctx, fieldsKey{}, current.with(fields))
}

// ContextWithDocument tags ctx with the wedding and project being edited.
// Blank identifiers are skipped.
func ContextWithDocument(ctx context.Context, weddingID, projectID string) context.Context {
	fields := map[string]any{}
	if id := strings.TrimSpace(weddingID); id != "" {
		fields[fieldWeddingID] = id
	}
	if id := strings.TrimSpace(projectID); id != "" {
		fields[fieldProjectID] = id
	}
	return ContextWithFields(ctx, fields)
}

// ContextFields returns a copy of the logging fields carried by ctx, or nil.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	current, _ := ctx.Value(fieldsKey{}).(fieldSet)
	if len(current) == 0 {
		return nil
	}
	return maps.Clone(map[string]any(current))
}
