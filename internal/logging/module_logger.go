package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

const (
	rootModule      = "builder"
	editorModule    = "builder.editor"
	sessionModule   = "builder.session"
	revisionsModule = "builder.revisions"
	layoutModule    = "builder.layout"
	mediaModule     = "builder.media"
)

const (
	fieldWeddingID = "wedding_id"
	fieldProjectID = "project_id"
	fieldPageID    = "page_id"
	fieldSectionID = "section_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

func SessionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sessionModule)
}

func RevisionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, revisionsModule)
}

func LayoutLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, layoutModule)
}

func MediaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mediaModule)
}

// WithDocumentContext enriches logger with the ids of the document being
// edited. Empty values are skipped.
func WithDocumentContext(logger interfaces.Logger, weddingID, projectID, pageID, sectionID string) interfaces.Logger {
	fields := map[string]any{}
	for key, value := range map[string]string{
		fieldWeddingID: weddingID,
		fieldProjectID: projectID,
		fieldPageID:    pageID,
		fieldSectionID: sectionID,
	} {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			fields[key] = trimmed
		}
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
