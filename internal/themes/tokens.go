package themes

import "github.com/goliatone/go-site-builder/document"

// tokenFields maps manifest token keys onto ThemeTokens fields. Keys match the
// JSON names of the fields.
var tokenFields = []struct {
	key   string
	field func(*document.ThemeTokens) *string
}{
	{"colorPrimary", func(t *document.ThemeTokens) *string { return &t.ColorPrimary }},
	{"colorPrimaryHover", func(t *document.ThemeTokens) *string { return &t.ColorPrimaryHover }},
	{"colorPrimaryLight", func(t *document.ThemeTokens) *string { return &t.ColorPrimaryLight }},
	{"colorAccent", func(t *document.ThemeTokens) *string { return &t.ColorAccent }},
	{"colorAccentHover", func(t *document.ThemeTokens) *string { return &t.ColorAccentHover }},
	{"colorAccentLight", func(t *document.ThemeTokens) *string { return &t.ColorAccentLight }},
	{"colorSecondary", func(t *document.ThemeTokens) *string { return &t.ColorSecondary }},
	{"colorBackground", func(t *document.ThemeTokens) *string { return &t.ColorBackground }},
	{"colorSurface", func(t *document.ThemeTokens) *string { return &t.ColorSurface }},
	{"colorSurfaceSubtle", func(t *document.ThemeTokens) *string { return &t.ColorSurfaceSubtle }},
	{"colorBorder", func(t *document.ThemeTokens) *string { return &t.ColorBorder }},
	{"colorTextPrimary", func(t *document.ThemeTokens) *string { return &t.ColorTextPrimary }},
	{"colorTextSecondary", func(t *document.ThemeTokens) *string { return &t.ColorTextSecondary }},
}

// tokenMap drops empty tokens so variants only override what they set.
func tokenMap(tokens document.ThemeTokens) map[string]string {
	out := make(map[string]string, len(tokenFields))
	for _, tf := range tokenFields {
		if value := *tf.field(&tokens); value != "" {
			out[tf.key] = value
		}
	}
	return out
}

func tokensFrom(values map[string]string) document.ThemeTokens {
	var tokens document.ThemeTokens
	for _, tf := range tokenFields {
		*tf.field(&tokens) = values[tf.key]
	}
	return tokens
}

func overlay(base, explicit document.ThemeTokens) document.ThemeTokens {
	for _, tf := range tokenFields {
		if value := *tf.field(&explicit); value != "" {
			*tf.field(&base) = value
		}
	}
	return base
}
