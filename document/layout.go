package document

import "github.com/goliatone/go-site-builder/internal/util"

// LayoutVersion is the only legacy layout format version.
const LayoutVersion = "1"

// LayoutConfig is the legacy single-template persisted layout document.
type LayoutConfig struct {
	Version    string       `json:"version"`
	TemplateID string       `json:"templateId"`
	Pages      []LayoutPage `json:"pages"`
	Meta       Timestamps   `json:"meta"`
}

// LayoutPage is a page in the legacy format.
type LayoutPage struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Sections []LayoutSection `json:"sections"`
}

// LayoutSection is the narrower legacy section shape. It has no lock flag or
// order index; ordering is array order.
type LayoutSection struct {
	ID        string         `json:"id"`
	Type      SectionType    `json:"type"`
	Variant   string         `json:"variant"`
	Enabled   bool           `json:"enabled"`
	Bindings  Bindings       `json:"bindings"`
	Settings  map[string]any `json:"settings"`
	Overrides map[string]any `json:"overrides,omitempty"`
}

// Clone returns a deep copy of the layout.
func (l LayoutConfig) Clone() LayoutConfig {
	cloned := l
	if l.Pages != nil {
		cloned.Pages = make([]LayoutPage, len(l.Pages))
		for i, page := range l.Pages {
			cp := page
			if page.Sections != nil {
				cp.Sections = make([]LayoutSection, len(page.Sections))
				for j, section := range page.Sections {
					cs := section
					cs.Bindings = section.Bindings.Clone()
					cs.Settings = util.CloneAnyMap(section.Settings)
					cs.Overrides = util.CloneAnyMap(section.Overrides)
					cp.Sections[j] = cs
				}
			}
			cloned.Pages[i] = cp
		}
	}
	return cloned
}
