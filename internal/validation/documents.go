package validation

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// DocumentKind identifies one of the persisted document wire formats.
type DocumentKind string

const (
	DocumentLayoutConfig DocumentKind = "layout_config"
	DocumentProject      DocumentKind = "project"
)

var ErrUnknownDocumentKind = errors.New("validation: unknown document kind")

var sectionSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "type"},
	"properties": map[string]any{
		"id":             map[string]any{"type": "string", "minLength": 1},
		"type":           map[string]any{"type": "string", "minLength": 1},
		"variant":        map[string]any{"type": "string"},
		"enabled":        map[string]any{"type": "boolean"},
		"locked":         map[string]any{"type": "boolean"},
		"orderIndex":     map[string]any{"type": "integer"},
		"settings":       map[string]any{"type": []any{"object", "null"}},
		"overrides":      map[string]any{"type": []any{"object", "null"}},
		"styleOverrides": map[string]any{"type": []any{"object", "null"}},
		"bindings": map[string]any{
			"type": []any{"object", "null"},
			"properties": map[string]any{
				"venueIds":         stringList,
				"scheduleItemIds":  stringList,
				"linkIds":          stringList,
				"faqIds":           stringList,
				"mediaAssetIds":    stringList,
				"galleryAssetUrls": stringList,
				"heroImageUrl":     map[string]any{"type": "string"},
			},
		},
	},
}

var stringList = map[string]any{
	"type":  []any{"array", "null"},
	"items": map[string]any{"type": "string"},
}

func pageSchema(extra map[string]any) map[string]any {
	properties := map[string]any{
		"id":       map[string]any{"type": "string", "minLength": 1},
		"title":    map[string]any{"type": "string"},
		"sections": map[string]any{"type": []any{"array", "null"}, "items": sectionSchema},
	}
	for key, value := range extra {
		properties[key] = value
	}
	return map[string]any{
		"type":       "object",
		"required":   []any{"id"},
		"properties": properties,
	}
}

var documentSchemas = map[DocumentKind]map[string]any{
	DocumentLayoutConfig: {
		"type":     "object",
		"required": []any{"version", "pages"},
		"properties": map[string]any{
			"version":    map[string]any{"const": "1"},
			"templateId": map[string]any{"type": "string"},
			"pages":      map[string]any{"type": "array", "items": pageSchema(nil)},
		},
	},
	DocumentProject: {
		"type":     "object",
		"required": []any{"id", "pages"},
		"properties": map[string]any{
			"id":               map[string]any{"type": "string", "minLength": 1},
			"weddingId":        map[string]any{"type": "string"},
			"templateId":       map[string]any{"type": "string"},
			"themeId":          map[string]any{"type": "string"},
			"themeTokens":      map[string]any{"type": []any{"object", "null"}},
			"draftVersion":     map[string]any{"type": "integer", "minimum": 0},
			"publishedVersion": map[string]any{"type": []any{"integer", "null"}},
			"publishStatus":    map[string]any{"enum": []any{"", "draft", "publishing", "published", "failed"}},
			"pages": map[string]any{"type": "array", "items": pageSchema(map[string]any{
				"slug":       map[string]any{"type": "string"},
				"orderIndex": map[string]any{"type": "integer"},
				"meta": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"isHome":   map[string]any{"type": "boolean"},
						"isHidden": map[string]any{"type": "boolean"},
					},
				},
			})},
		},
	},
}

var (
	compiledMu      sync.Mutex
	compiledSchemas = map[DocumentKind]*jsonschema.Schema{}
)

func documentSchema(kind DocumentKind) (*jsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()
	if compiled, ok := compiledSchemas[kind]; ok {
		return compiled, nil
	}
	schema, ok := documentSchemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocumentKind, kind)
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiledSchemas[kind] = compiled
	return compiled, nil
}

// ValidateDocument checks raw JSON against the structural schema of kind.
// Malformed JSON and schema violations both surface as *PayloadValidationError.
func ValidateDocument(kind DocumentKind, raw []byte) error {
	compiled, err := documentSchema(kind)
	if err != nil {
		return err
	}
	decoded, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &PayloadValidationError{
			Issues: []ValidationIssue{{Message: "malformed JSON: " + err.Error()}},
			Cause:  err,
		}
	}
	if err := compiled.Validate(decoded); err != nil {
		return &PayloadValidationError{Issues: Issues(err), Cause: err}
	}
	return nil
}
