package templates

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/sections"
)

var ErrTemplateNotFound = errors.New("templates: template not found")

// SectionFactory manufactures library sections; *layout.Adapter satisfies it.
type SectionFactory interface {
	NewSectionFromLibrary(sectionType document.SectionType, variant string, orderIndex int) *document.Section
}

// Slot is one section of a template composition. Settings are layered over
// the section manifest defaults.
type Slot struct {
	Type     document.SectionType `json:"type"`
	Variant  string               `json:"variant"`
	Enabled  bool                 `json:"enabled"`
	Locked   bool                 `json:"locked"`
	Settings map[string]any       `json:"settings,omitempty"`
}

// Template is a starter layout offered in the template gallery.
type Template struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	PreviewImage   string   `json:"previewImage"`
	StyleTags      []string `json:"styleTags"`
	SeasonTags     []string `json:"seasonTags"`
	ColorwayID     string   `json:"colorwayId"`
	DesignFamily   string   `json:"designFamily"`
	DefaultThemeID string   `json:"defaultThemeId"`
	Composition    []Slot   `json:"composition"`
}

func (t Template) clone() Template {
	out := t
	out.StyleTags = slices.Clone(t.StyleTags)
	out.SeasonTags = slices.Clone(t.SeasonTags)
	out.Composition = make([]Slot, len(t.Composition))
	for i, slot := range t.Composition {
		slot.Settings = maps.Clone(slot.Settings)
		out.Composition[i] = slot
	}
	return out
}

// Get returns a copy of the template with id.
func Get(id string) (Template, error) {
	id = strings.TrimSpace(id)
	for _, tpl := range catalog {
		if tpl.ID == id {
			return tpl.clone(), nil
		}
	}
	return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
}

// List returns every template in gallery order.
func List() []Template {
	out := make([]Template, len(catalog))
	for i, tpl := range catalog {
		out[i] = tpl.clone()
	}
	return out
}

// Filter returns templates tagged with style and season. Empty arguments
// match everything; comparison is case-insensitive.
func Filter(style, season string) []Template {
	var out []Template
	for _, tpl := range catalog {
		if hasTag(tpl.StyleTags, style) && hasTag(tpl.SeasonTags, season) {
			out = append(out, tpl.clone())
		}
	}
	return out
}

func hasTag(tags []string, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return slices.ContainsFunc(tags, func(tag string) bool { return strings.EqualFold(tag, want) })
}

// Instantiate builds fresh sections for the template's composition using
// factory. Every call yields new section ids.
func Instantiate(id string, factory SectionFactory) ([]*document.Section, error) {
	tpl, err := Get(id)
	if err != nil {
		return nil, err
	}
	return tpl.Instantiate(factory), nil
}

func (t Template) Instantiate(factory SectionFactory) []*document.Section {
	out := make([]*document.Section, 0, len(t.Composition))
	for i, slot := range t.Composition {
		variant := sections.NormalizeVariant(slot.Type, slot.Variant)
		section := factory.NewSectionFromLibrary(slot.Type, variant, i)
		section.Enabled = slot.Enabled
		section.Locked = slot.Locked

		values := map[string]any{}
		if manifest, err := sections.Get(slot.Type); err == nil {
			values = manifest.DefaultSettings().Values()
		}
		maps.Copy(values, slot.Settings)
		section.Settings = document.SettingsFromMap(slot.Type, values)
		out = append(out, section)
	}
	return out
}

func slot(sectionType document.SectionType, variant string) Slot {
	return Slot{Type: sectionType, Variant: variant, Enabled: true}
}

var catalog = []Template{
	{
		ID:             "modern-luxe",
		Name:           "Modern Luxe",
		Description:    "Editorial modern layout with clean spacing and soft serif accents.",
		PreviewImage:   "https://images.pexels.com/photos/1024993/pexels-photo-1024993.jpeg",
		StyleTags:      []string{"Modern", "Minimal"},
		SeasonTags:     []string{"Summer", "Fall"},
		ColorwayID:     "ivory-ink",
		DesignFamily:   "modern-luxe",
		DefaultThemeID: "elegant",
		Composition: []Slot{
			slot(document.SectionHero, "minimal"),
			slot(document.SectionStory, "split"),
			slot(document.SectionVenue, "card"),
			slot(document.SectionSchedule, "timeline"),
			slot(document.SectionTravel, "cards"),
			slot(document.SectionRegistry, "grid"),
			slot(document.SectionFAQ, "accordion"),
			slot(document.SectionRSVP, "inline"),
		},
	},
	{
		ID:             "garden-romance",
		Name:           "Garden Romance",
		Description:    "Soft floral-forward design with warm romantic typography.",
		PreviewImage:   "https://images.pexels.com/photos/169193/pexels-photo-169193.jpeg",
		StyleTags:      []string{"Floral", "Romantic"},
		SeasonTags:     []string{"Spring", "Summer"},
		ColorwayID:     "blush-sage",
		DesignFamily:   "garden-romance",
		DefaultThemeID: "garden",
		Composition: []Slot{
			slot(document.SectionHero, "fullbleed"),
			slot(document.SectionStory, "centered"),
			slot(document.SectionGallery, "masonry"),
			slot(document.SectionVenue, "default"),
			slot(document.SectionSchedule, "default"),
			slot(document.SectionRegistry, "default"),
			slot(document.SectionFAQ, "default"),
			slot(document.SectionRSVP, "default"),
		},
	},
	{
		ID:             "coastal-breeze",
		Name:           "Coastal Breeze",
		Description:    "Airy destination aesthetic with clean sections and map-friendly blocks.",
		PreviewImage:   "https://images.pexels.com/photos/1468379/pexels-photo-1468379.jpeg",
		StyleTags:      []string{"Destination", "Minimal"},
		SeasonTags:     []string{"Summer"},
		ColorwayID:     "seafoam-sand",
		DesignFamily:   "coastal-breeze",
		DefaultThemeID: "ocean",
		Composition: []Slot{
			slot(document.SectionHero, "fullbleed"),
			slot(document.SectionVenue, "card"),
			slot(document.SectionTravel, "cards"),
			slot(document.SectionSchedule, "timeline"),
			slot(document.SectionFAQ, "accordion"),
			slot(document.SectionRSVP, "default"),
		},
	},
	{
		ID:             "classic-elegance",
		Name:           "Classic Elegance",
		Description:    "Timeless wedding style with formal typography and structured flow.",
		PreviewImage:   "https://images.pexels.com/photos/3171837/pexels-photo-3171837.jpeg",
		StyleTags:      []string{"Classic", "Formal"},
		SeasonTags:     []string{"Fall", "Winter"},
		ColorwayID:     "ivory-black-gold",
		DesignFamily:   "classic-elegance",
		DefaultThemeID: "classic",
		Composition: []Slot{
			slot(document.SectionHero, "default"),
			slot(document.SectionStory, "default"),
			slot(document.SectionSchedule, "default"),
			slot(document.SectionVenue, "default"),
			slot(document.SectionRegistry, "default"),
			slot(document.SectionRSVP, "default"),
			{Type: document.SectionGallery, Variant: "default"},
		},
	},
	{
		ID:             "rustic-warmth",
		Name:           "Rustic Warmth",
		Description:    "Organic textures and warm tones for barn, vineyard, and outdoors weddings.",
		PreviewImage:   "https://images.pexels.com/photos/265947/pexels-photo-265947.jpeg",
		StyleTags:      []string{"Rustic", "Boho"},
		SeasonTags:     []string{"Fall"},
		ColorwayID:     "terracotta-cream",
		DesignFamily:   "rustic-warmth",
		DefaultThemeID: "sunset",
		Composition: []Slot{
			slot(document.SectionHero, "fullbleed"),
			slot(document.SectionStory, "split"),
			slot(document.SectionGallery, "default"),
			slot(document.SectionSchedule, "timeline"),
			slot(document.SectionTravel, "default"),
			slot(document.SectionFAQ, "default"),
			slot(document.SectionRSVP, "default"),
		},
	},
	{
		ID:             "bold-minimal",
		Name:           "Bold Minimal",
		Description:    "High-contrast layout with statement headlines and sharp section breaks.",
		PreviewImage:   "https://images.pexels.com/photos/2253842/pexels-photo-2253842.jpeg",
		StyleTags:      []string{"Bold", "Modern"},
		SeasonTags:     []string{"Spring", "Winter"},
		ColorwayID:     "mono-contrast",
		DesignFamily:   "bold-minimal",
		DefaultThemeID: "editorial",
		Composition: []Slot{
			{Type: document.SectionHero, Variant: "minimal", Enabled: true, Settings: map[string]any{"overlayOpacity": float64(60)}},
			slot(document.SectionSchedule, "timeline"),
			slot(document.SectionVenue, "card"),
			slot(document.SectionRegistry, "grid"),
			slot(document.SectionRSVP, "inline"),
		},
	},
}
