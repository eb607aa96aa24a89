package sections

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-site-builder/document"
)

// ErrUnknownSectionType is returned for types without a manifest.
var ErrUnknownSectionType = errors.New("sections: unknown section type")

// FieldType enumerates the inspector controls a settings field renders as.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldToggle   FieldType = "toggle"
	FieldSelect   FieldType = "select"
	FieldColor    FieldType = "color"
	FieldImage    FieldType = "image"
	FieldNumber   FieldType = "number"
)

type FieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SettingsField describes one key of a section's settings payload.
type SettingsField struct {
	Key          string        `json:"key"`
	Label        string        `json:"label"`
	Type         FieldType     `json:"type"`
	DefaultValue any           `json:"defaultValue,omitempty"`
	Options      []FieldOption `json:"options,omitempty"`
	Placeholder  string        `json:"placeholder,omitempty"`
}

// DataSource names the wedding data list a binding slot draws ids from.
type DataSource string

const (
	SourceVenues   DataSource = "venues"
	SourceSchedule DataSource = "schedule"
	SourceRegistry DataSource = "registry"
	SourceFAQ      DataSource = "faq"
	SourceMedia    DataSource = "media"
)

type BindingSlot struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	DataSource DataSource `json:"dataSource"`
	Multiple   bool       `json:"multiple"`
}

// Capabilities gate editor affordances for a section type.
type Capabilities struct {
	Draggable   bool `json:"draggable"`
	Duplicable  bool `json:"duplicable"`
	Deletable   bool `json:"deletable"`
	MediaAware  bool `json:"mediaAware"`
	HasSettings bool `json:"hasSettings"`
	HasBindings bool `json:"hasBindings"`
	Locked      bool `json:"locked"`
}

// DefaultCapabilities applies to every type unless its manifest says otherwise.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Draggable:   true,
		Duplicable:  true,
		Deletable:   true,
		HasSettings: true,
	}
}

// Manifest is the library definition of a section type.
type Manifest struct {
	Type              document.SectionType `json:"type"`
	Label             string               `json:"label"`
	Icon              string               `json:"icon"`
	DefaultVariant    string               `json:"defaultVariant"`
	SupportedVariants []string             `json:"supportedVariants"`
	Capabilities      Capabilities         `json:"capabilities"`
	Fields            []SettingsField      `json:"fields"`
	Slots             []BindingSlot        `json:"slots"`
	PreviewImagePath  string               `json:"previewImagePath,omitempty"`
}

// SupportsVariant reports whether variant is one of the manifest's variants.
func (m Manifest) SupportsVariant(variant string) bool {
	return slices.Contains(m.SupportedVariants, strings.TrimSpace(variant))
}

// DefaultSettings returns a settings payload seeded with the field defaults.
func (m Manifest) DefaultSettings() document.Settings {
	values := make(map[string]any, len(m.Fields))
	for _, field := range m.Fields {
		if field.DefaultValue != nil {
			values[field.Key] = field.DefaultValue
		}
	}
	return document.SettingsFromMap(m.Type, values)
}

func (m Manifest) clone() Manifest {
	out := m
	out.SupportedVariants = slices.Clone(m.SupportedVariants)
	out.Fields = make([]SettingsField, len(m.Fields))
	for i, field := range m.Fields {
		field.Options = slices.Clone(field.Options)
		out.Fields[i] = field
	}
	out.Slots = slices.Clone(m.Slots)
	return out
}

// Get returns a copy of the manifest registered for sectionType.
func Get(sectionType document.SectionType) (Manifest, error) {
	manifest, ok := builtin[sectionType]
	if !ok {
		return Manifest{}, fmt.Errorf("%w: %s", ErrUnknownSectionType, sectionType)
	}
	return manifest.clone(), nil
}

// All lists the manifests in library order.
func All() []Manifest {
	out := make([]Manifest, 0, len(libraryOrder))
	for _, sectionType := range libraryOrder {
		out = append(out, builtin[sectionType].clone())
	}
	return out
}

// CapabilitiesFor returns the capabilities of sectionType, falling back to
// DefaultCapabilities for types without a manifest.
func CapabilitiesFor(sectionType document.SectionType) Capabilities {
	if manifest, ok := builtin[sectionType]; ok {
		return manifest.Capabilities
	}
	return DefaultCapabilities()
}

// CanDelete reports whether the editor may remove section.
func CanDelete(section *document.Section) bool {
	if section == nil || section.Locked {
		return false
	}
	return CapabilitiesFor(section.Type).Deletable
}

// NormalizeVariant returns variant when the type supports it and the type's
// default variant otherwise.
func NormalizeVariant(sectionType document.SectionType, variant string) string {
	manifest, ok := builtin[sectionType]
	if !ok {
		if v := strings.TrimSpace(variant); v != "" {
			return v
		}
		return document.DefaultVariant
	}
	if manifest.SupportsVariant(variant) {
		return strings.TrimSpace(variant)
	}
	return manifest.DefaultVariant
}

var libraryOrder = []document.SectionType{
	document.SectionHero,
	document.SectionStory,
	document.SectionVenue,
	document.SectionSchedule,
	document.SectionTravel,
	document.SectionRegistry,
	document.SectionFAQ,
	document.SectionRSVP,
	document.SectionGallery,
}

func showTitle() SettingsField {
	return SettingsField{Key: document.SettingShowTitle, Label: "Show Title", Type: FieldToggle, DefaultValue: true}
}

func sectionTitle(defaultValue string) SettingsField {
	return SettingsField{Key: document.SettingTitle, Label: "Section Title", Type: FieldText, DefaultValue: defaultValue}
}

func withCaps(mutate func(*Capabilities)) Capabilities {
	caps := DefaultCapabilities()
	mutate(&caps)
	return caps
}

var builtin = map[document.SectionType]Manifest{
	document.SectionHero: {
		Type:              document.SectionHero,
		Label:             "Hero",
		Icon:              "Image",
		DefaultVariant:    "default",
		SupportedVariants: []string{"default", "minimal", "fullbleed"},
		Capabilities: withCaps(func(c *Capabilities) {
			c.MediaAware = true
			c.Deletable = false
		}),
		Fields: []SettingsField{
			{Key: document.SettingTitle, Label: "Headline", Type: FieldText, Placeholder: "Your names"},
			{Key: document.SettingSubtitle, Label: "Subheadline", Type: FieldText, Placeholder: "Wedding date & location"},
			{Key: "backgroundImage", Label: "Background Image", Type: FieldImage},
			{Key: "overlayOpacity", Label: "Overlay Opacity", Type: FieldNumber, DefaultValue: float64(40)},
			{Key: "showCountdown", Label: "Show Countdown", Type: FieldToggle, DefaultValue: true},
		},
		PreviewImagePath: "/previews/hero.jpg",
	},
	document.SectionStory: {
		Type:              document.SectionStory,
		Label:             "Our Story",
		Icon:              "Heart",
		DefaultVariant:    "default",
		SupportedVariants: []string{"default", "centered", "split"},
		Capabilities:      withCaps(func(c *Capabilities) { c.MediaAware = true }),
		Fields: []SettingsField{
			showTitle(),
			sectionTitle("Our Story"),
			{Key: "storyText", Label: "Story Text", Type: FieldTextarea},
			{Key: "photo", Label: "Couple Photo", Type: FieldImage},
		},
		PreviewImagePath: "/previews/story.jpg",
	},
	document.SectionVenue: {
		Type:              document.SectionVenue,
		Label:             "Venue",
		Icon:              "MapPin",
		DefaultVariant:    "default",
		SupportedVariants: []string{"default", "card"},
		Capabilities: withCaps(func(c *Capabilities) {
			c.HasBindings = true
			c.MediaAware = true
		}),
		Fields: []SettingsField{
			showTitle(),
			sectionTitle("Venue"),
			{Key: "showMap", Label: "Show Map", Type: FieldToggle, DefaultValue: true},
		},
		Slots:            []BindingSlot{{Key: "venueIds", Label: "Venues", DataSource: SourceVenues, Multiple: true}},
		PreviewImagePath: "/previews/venue.jpg",
	},
	document.SectionSchedule: {
		Type:              document.SectionSchedule,
		Label:             "Schedule",
		Icon:              "Clock",
		DefaultVariant:    "default",
		SupportedVariants: []string{"default", "timeline"},
		Capabilities:      withCaps(func(c *Capabilities) { c.HasBindings = true }),
		Fields: []SettingsField{
			showTitle(),
			sectionTitle("Schedule"),
			{Key: "showIcons", Label: "Show Icons", Type: FieldToggle, DefaultValue: true},
		},
		Slots:            []BindingSlot{{Key: "scheduleItemIds", Label: "Schedule Items", DataSource: SourceSchedule, Multiple: true}},
		PreviewImagePath: "/previews/schedule.jpg",
	},
	document.SectionTravel: {
		Type:              document.SectionTravel,
		Label:             "Travel & Hotels",
		Icon:              "Plane",
		DefaultVariant:    "default",
		SupportedVariants: []string{"default", "cards"},
		Capabilities:      DefaultCapabilities(),
		Fields: []SettingsField{
			showTitle(),
			sectionTitle("Travel"),
			{Key: "showParking", Label: "Show Parking Info", Type: FieldToggle, DefaultValue: true},
		},
		PreviewImagePath: "/previews/travel.jpg",
	},
	document.SectionRegistry: {
		Type:              document.SectionRegistry,
		Label:             "Registry",
		Icon:              "Gift",
		DefaultVariant:    "default",
		SupportedVariants: []string{"default", "grid"},
		Capabilities:      withCaps(func(c *Capabilities) { c.HasBindings = true }),
		Fields: []SettingsField{
			showTitle(),
			sectionTitle("Registry"),
			{Key: "message", Label: "Custom Message", Type: FieldTextarea},
		},
		Slots:            []BindingSlot{{Key: "linkIds", Label: "Registry Links", DataSource: SourceRegistry, Multiple: true}},
		PreviewImagePath: "/previews/registry.jpg",
	},
	document.SectionFAQ: {
		Type:              document.SectionFAQ,
		Label:             "FAQ",
		Icon:              "HelpCircle",
		DefaultVariant:    "default",
		SupportedVariants: []string{"default", "accordion"},
		Capabilities:      withCaps(func(c *Capabilities) { c.HasBindings = true }),
		Fields: []SettingsField{
			showTitle(),
			sectionTitle("FAQ"),
			{Key: "expandAll", Label: "Expand All by Default", Type: FieldToggle, DefaultValue: false},
		},
		Slots:            []BindingSlot{{Key: "faqIds", Label: "FAQ Items", DataSource: SourceFAQ, Multiple: true}},
		PreviewImagePath: "/previews/faq.jpg",
	},
	document.SectionRSVP: {
		Type:              document.SectionRSVP,
		Label:             "RSVP",
		Icon:              "Mail",
		DefaultVariant:    "default",
		SupportedVariants: []string{"default", "inline"},
		Capabilities:      withCaps(func(c *Capabilities) { c.Deletable = false }),
		Fields: []SettingsField{
			showTitle(),
			sectionTitle("RSVP"),
			{Key: "deadlineText", Label: "Deadline Text", Type: FieldText},
			{Key: "confirmationMessage", Label: "Confirmation Message", Type: FieldTextarea},
		},
		PreviewImagePath: "/previews/rsvp.jpg",
	},
	document.SectionGallery: {
		Type:              document.SectionGallery,
		Label:             "Photo Gallery",
		Icon:              "Images",
		DefaultVariant:    "default",
		SupportedVariants: []string{"default", "masonry"},
		Capabilities:      withCaps(func(c *Capabilities) { c.MediaAware = true }),
		Fields: []SettingsField{
			showTitle(),
			sectionTitle("Gallery"),
			{Key: "columns", Label: "Columns", Type: FieldSelect, DefaultValue: "3", Options: []FieldOption{
				{Label: "2 Columns", Value: "2"},
				{Label: "3 Columns", Value: "3"},
				{Label: "4 Columns", Value: "4"},
			}},
		},
		Slots:            []BindingSlot{{Key: "mediaAssetIds", Label: "Gallery Photos", DataSource: SourceMedia, Multiple: true}},
		PreviewImagePath: "/previews/gallery.jpg",
	},
}
