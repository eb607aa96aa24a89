package layout

import (
	"strings"
	"time"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/identity"
)

const (
	DefaultTemplateID = "modern-luxe"
	DefaultThemeID    = "romantic"
	HomePageTitle     = "Home"
	HomePageSlug      = "home"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithIDGenerator overrides the section id generator.
func WithIDGenerator(fn identity.Generator) Option {
	return func(a *Adapter) {
		if fn != nil {
			a.newID = fn
		}
	}
}

// WithClock overrides the clock used for timestamps.
func WithClock(fn func() time.Time) Option {
	return func(a *Adapter) {
		if fn != nil {
			a.now = fn
		}
	}
}

// Adapter converts between the legacy layout config and the builder project
// and manufactures new sections and projects. Adapters never retain references
// to their inputs.
type Adapter struct {
	newID identity.Generator
	now   func() time.Time
}

// NewAdapter returns an adapter using random section ids and the wall clock.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		newID: identity.SectionID,
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

var defaultAdapter = NewAdapter()

func (a *Adapter) timestamp() string {
	return document.Timestamp(a.now())
}

// NewSectionID returns a fresh section id.
func (a *Adapter) NewSectionID() string {
	return a.newID()
}

// NewSectionFromLibrary manufactures an enabled section with a fresh id, empty
// settings, bindings and style overrides, and current timestamps. An empty
// variant falls back to the default variant.
func (a *Adapter) NewSectionFromLibrary(sectionType document.SectionType, variant string, orderIndex int) *document.Section {
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = document.DefaultVariant
	}
	now := a.timestamp()
	return &document.Section{
		ID:             a.newID(),
		Type:           sectionType,
		Variant:        variant,
		Enabled:        true,
		OrderIndex:     orderIndex,
		Settings:       document.NewSettings(sectionType),
		StyleOverrides: document.StyleOverrides{},
		Meta:           document.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

// NewSectionFromLibrary uses the default adapter.
func NewSectionFromLibrary(sectionType document.SectionType, variant string, orderIndex int) *document.Section {
	return defaultAdapter.NewSectionFromLibrary(sectionType, variant, orderIndex)
}

// NewEmptyProject seeds a draft project with a single empty home page. The
// project and home page ids are derived from the wedding id.
func (a *Adapter) NewEmptyProject(weddingID, templateID string) *document.Project {
	if strings.TrimSpace(templateID) == "" {
		templateID = DefaultTemplateID
	}
	now := a.timestamp()
	projectID := identity.ProjectID(weddingID)
	return &document.Project{
		ID:            projectID,
		WeddingID:     weddingID,
		TemplateID:    templateID,
		ThemeID:       DefaultThemeID,
		DraftVersion:  1,
		PublishStatus: document.PublishStatusDraft,
		Pages: []*document.Page{{
			ID:       identity.HomePageID(projectID),
			Title:    HomePageTitle,
			Slug:     HomePageSlug,
			Sections: []*document.Section{},
			Meta:     document.PageMeta{IsHome: true},
		}},
		Meta: document.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}
