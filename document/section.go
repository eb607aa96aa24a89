package document

import (
	"encoding/json"

	"github.com/goliatone/go-site-builder/internal/util"
)

// SectionType enumerates the section kinds the builder understands.
type SectionType string

const (
	SectionHero           SectionType = "hero"
	SectionStory          SectionType = "story"
	SectionVenue          SectionType = "venue"
	SectionSchedule       SectionType = "schedule"
	SectionTravel         SectionType = "travel"
	SectionRegistry       SectionType = "registry"
	SectionFAQ            SectionType = "faq"
	SectionRSVP           SectionType = "rsvp"
	SectionGallery        SectionType = "gallery"
	SectionCountdown      SectionType = "countdown"
	SectionWeddingParty   SectionType = "wedding-party"
	SectionDressCode      SectionType = "dress-code"
	SectionAccommodations SectionType = "accommodations"
	SectionContact        SectionType = "contact"
	SectionFooterCTA      SectionType = "footer-cta"
)

// DefaultVariant is used whenever a section is created without an explicit variant.
const DefaultVariant = "default"

var knownSectionTypes = []SectionType{
	SectionHero,
	SectionStory,
	SectionVenue,
	SectionSchedule,
	SectionTravel,
	SectionRegistry,
	SectionFAQ,
	SectionRSVP,
	SectionGallery,
	SectionCountdown,
	SectionWeddingParty,
	SectionDressCode,
	SectionAccommodations,
	SectionContact,
	SectionFooterCTA,
}

// KnownSectionTypes returns every section type in catalog order.
func KnownSectionTypes() []SectionType {
	out := make([]SectionType, len(knownSectionTypes))
	copy(out, knownSectionTypes)
	return out
}

// Valid reports whether t is one of the known section types.
func (t SectionType) Valid() bool {
	for _, known := range knownSectionTypes {
		if known == t {
			return true
		}
	}
	return false
}

// Bindings references ids owned by the external content record. Bindings are a
// view onto the content record, never a copy of its content.
type Bindings struct {
	VenueIDs         []string `json:"venueIds"`
	ScheduleItemIDs  []string `json:"scheduleItemIds"`
	LinkIDs          []string `json:"linkIds"`
	FAQIDs           []string `json:"faqIds"`
	MediaAssetIDs    []string `json:"mediaAssetIds"`
	HeroImageURL     string   `json:"heroImageUrl,omitempty"`
	GalleryAssetURLs []string `json:"galleryAssetUrls"`
}

// Clone returns an independent copy of the bindings.
func (b Bindings) Clone() Bindings {
	return Bindings{
		VenueIDs:         util.CloneStrings(b.VenueIDs),
		ScheduleItemIDs:  util.CloneStrings(b.ScheduleItemIDs),
		LinkIDs:          util.CloneStrings(b.LinkIDs),
		FAQIDs:           util.CloneStrings(b.FAQIDs),
		MediaAssetIDs:    util.CloneStrings(b.MediaAssetIDs),
		HeroImageURL:     b.HeroImageURL,
		GalleryAssetURLs: util.CloneStrings(b.GalleryAssetURLs),
	}
}

// StyleOverrides is an open map of CSS-like overrides applied to a section.
type StyleOverrides map[string]any

// Well known style override keys.
const (
	StyleBackgroundColor   = "backgroundColor"
	StyleTextColor         = "textColor"
	StylePaddingTop        = "paddingTop"
	StylePaddingBottom     = "paddingBottom"
	StyleFontFamily        = "fontFamily"
	StyleCustomCSS         = "customCss"
	StyleSideImage         = "sideImage"
	StyleSideImagePosition = "sideImagePosition"
	StyleSideImageSize     = "sideImageSize"
	StyleSideImageFit      = "sideImageFit"
)

// Clone returns a deep copy, preserving nil.
func (s StyleOverrides) Clone() StyleOverrides {
	if s == nil {
		return nil
	}
	return StyleOverrides(util.CloneAnyMap(map[string]any(s)))
}

// Timestamps records creation and last update instants as ISO-8601 strings.
type Timestamps struct {
	CreatedAt string `json:"createdAtISO"`
	UpdatedAt string `json:"updatedAtISO"`
}

// Section is one editable content block on a page.
type Section struct {
	ID             string
	Type           SectionType
	Variant        string
	Enabled        bool
	Locked         bool
	OrderIndex     int
	Settings       Settings
	Bindings       Bindings
	StyleOverrides StyleOverrides
	Meta           Timestamps
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	if s == nil {
		return nil
	}
	cloned := *s
	if s.Settings != nil {
		cloned.Settings = s.Settings.Clone()
	}
	cloned.Bindings = s.Bindings.Clone()
	cloned.StyleOverrides = s.StyleOverrides.Clone()
	return &cloned
}

// SettingsOrEmpty returns the section settings, materialising an empty
// payload of the section's type when none is set.
func (s *Section) SettingsOrEmpty() Settings {
	if s == nil {
		return nil
	}
	if s.Settings == nil {
		return NewSettings(s.Type)
	}
	return s.Settings
}

type sectionJSON struct {
	ID             string         `json:"id"`
	Type           SectionType    `json:"type"`
	Variant        string         `json:"variant"`
	Enabled        bool           `json:"enabled"`
	Locked         bool           `json:"locked"`
	OrderIndex     int            `json:"orderIndex"`
	Settings       map[string]any `json:"settings"`
	Bindings       Bindings       `json:"bindings"`
	StyleOverrides StyleOverrides `json:"styleOverrides"`
	Meta           Timestamps     `json:"meta"`
}

// MarshalJSON flattens the settings union into its open map form.
func (s Section) MarshalJSON() ([]byte, error) {
	payload := sectionJSON{
		ID:             s.ID,
		Type:           s.Type,
		Variant:        s.Variant,
		Enabled:        s.Enabled,
		Locked:         s.Locked,
		OrderIndex:     s.OrderIndex,
		Bindings:       s.Bindings,
		StyleOverrides: s.StyleOverrides,
		Meta:           s.Meta,
	}
	if s.Settings != nil {
		payload.Settings = s.Settings.Values()
	} else {
		payload.Settings = map[string]any{}
	}
	return json.Marshal(payload)
}

// UnmarshalJSON restores the typed settings payload for the section's type.
func (s *Section) UnmarshalJSON(data []byte) error {
	var payload sectionJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	*s = Section{
		ID:             payload.ID,
		Type:           payload.Type,
		Variant:        payload.Variant,
		Enabled:        payload.Enabled,
		Locked:         payload.Locked,
		OrderIndex:     payload.OrderIndex,
		Settings:       SettingsFromMap(payload.Type, payload.Settings),
		Bindings:       payload.Bindings,
		StyleOverrides: payload.StyleOverrides,
		Meta:           payload.Meta,
	}
	return nil
}

// SectionPatch carries a shallow, top-level update for a section. Nil fields
// are left untouched; nested values (settings, bindings, style overrides)
// replace the current value wholesale.
type SectionPatch struct {
	Variant        *string
	Enabled        *bool
	Locked         *bool
	Settings       Settings
	Bindings       *Bindings
	StyleOverrides StyleOverrides
}

// Empty reports whether the patch changes nothing.
func (p SectionPatch) Empty() bool {
	return p.Variant == nil && p.Enabled == nil && p.Locked == nil &&
		p.Settings == nil && p.Bindings == nil && p.StyleOverrides == nil
}

// ApplyTo merges the patch into a copy of section and returns it.
func (p SectionPatch) ApplyTo(section *Section) *Section {
	out := section.Clone()
	if out == nil {
		return nil
	}
	if p.Variant != nil {
		out.Variant = *p.Variant
	}
	if p.Enabled != nil {
		out.Enabled = *p.Enabled
	}
	if p.Locked != nil {
		out.Locked = *p.Locked
	}
	if p.Settings != nil {
		if p.Settings.SectionType() == out.Type {
			out.Settings = p.Settings.Clone()
		} else {
			out.Settings = SettingsFromMap(out.Type, p.Settings.Values())
		}
	}
	if p.Bindings != nil {
		out.Bindings = p.Bindings.Clone()
	}
	if p.StyleOverrides != nil {
		out.StyleOverrides = p.StyleOverrides.Clone()
	}
	return out
}
