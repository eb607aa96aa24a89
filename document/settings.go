package document

import "github.com/goliatone/go-site-builder/internal/util"

// Settings is the per-type display options payload of a section. Well known
// section types carry a typed payload; every other type uses CustomSettings.
// All payloads convert losslessly to and from the open map persisted in
// documents: keys that are unknown, or whose value does not have the expected
// type, are kept verbatim in Extra.
type Settings interface {
	SectionType() SectionType
	Values() map[string]any
	Clone() Settings
}

// Setting keys shared by every typed payload.
const (
	SettingShowTitle = "showTitle"
	SettingTitle     = "title"
	SettingSubtitle  = "subtitle"
)

// BaseSettings holds the fields common to all typed payloads.
type BaseSettings struct {
	ShowTitle *bool
	Title     string
	Subtitle  string
	Extra     map[string]any
}

func (b BaseSettings) clone() BaseSettings {
	return BaseSettings{
		ShowTitle: cloneBool(b.ShowTitle),
		Title:     b.Title,
		Subtitle:  b.Subtitle,
		Extra:     util.CloneAnyMap(b.Extra),
	}
}

func (b *BaseSettings) read(r *settingsReader) {
	b.ShowTitle = r.boolean(SettingShowTitle)
	b.Title = r.str(SettingTitle)
	b.Subtitle = r.str(SettingSubtitle)
}

func (b BaseSettings) write(w settingsWriter) {
	w.boolean(SettingShowTitle, b.ShowTitle)
	w.str(SettingTitle, b.Title)
	w.str(SettingSubtitle, b.Subtitle)
}

// HeroSettings configures the hero section.
type HeroSettings struct {
	BaseSettings
	BackgroundImage string
	OverlayOpacity  *float64
	ShowCountdown   *bool
}

func (*HeroSettings) SectionType() SectionType { return SectionHero }

func (s *HeroSettings) Values() map[string]any {
	w := newSettingsWriter(s.Extra)
	s.write(w)
	w.str("backgroundImage", s.BackgroundImage)
	w.number("overlayOpacity", s.OverlayOpacity)
	w.boolean("showCountdown", s.ShowCountdown)
	return w
}

func (s *HeroSettings) Clone() Settings {
	return &HeroSettings{
		BaseSettings:    s.clone(),
		BackgroundImage: s.BackgroundImage,
		OverlayOpacity:  cloneFloat(s.OverlayOpacity),
		ShowCountdown:   cloneBool(s.ShowCountdown),
	}
}

// StorySettings configures the couple story section.
type StorySettings struct {
	BaseSettings
	StoryText string
	Photo     string
}

func (*StorySettings) SectionType() SectionType { return SectionStory }

func (s *StorySettings) Values() map[string]any {
	w := newSettingsWriter(s.Extra)
	s.write(w)
	w.str("storyText", s.StoryText)
	w.str("photo", s.Photo)
	return w
}

func (s *StorySettings) Clone() Settings {
	return &StorySettings{BaseSettings: s.clone(), StoryText: s.StoryText, Photo: s.Photo}
}

// VenueSettings configures the venue section.
type VenueSettings struct {
	BaseSettings
	ShowMap *bool
}

func (*VenueSettings) SectionType() SectionType { return SectionVenue }

func (s *VenueSettings) Values() map[string]any {
	w := newSettingsWriter(s.Extra)
	s.write(w)
	w.boolean("showMap", s.ShowMap)
	return w
}

func (s *VenueSettings) Clone() Settings {
	return &VenueSettings{BaseSettings: s.clone(), ShowMap: cloneBool(s.ShowMap)}
}

// ScheduleSettings configures the schedule section.
type ScheduleSettings struct {
	BaseSettings
	ShowIcons *bool
}

func (*ScheduleSettings) SectionType() SectionType { return SectionSchedule }

func (s *ScheduleSettings) Values() map[string]any {
	w := newSettingsWriter(s.Extra)
	s.write(w)
	w.boolean("showIcons", s.ShowIcons)
	return w
}

func (s *ScheduleSettings) Clone() Settings {
	return &ScheduleSettings{BaseSettings: s.clone(), ShowIcons: cloneBool(s.ShowIcons)}
}

// TravelSettings configures the travel section.
type TravelSettings struct {
	BaseSettings
	ShowParking *bool
}

func (*TravelSettings) SectionType() SectionType { return SectionTravel }

func (s *TravelSettings) Values() map[string]any {
	w := newSettingsWriter(s.Extra)
	s.write(w)
	w.boolean("showParking", s.ShowParking)
	return w
}

func (s *TravelSettings) Clone() Settings {
	return &TravelSettings{BaseSettings: s.clone(), ShowParking: cloneBool(s.ShowParking)}
}

// RegistrySettings configures the registry section.
type RegistrySettings struct {
	BaseSettings
	Message string
}

func (*RegistrySettings) SectionType() SectionType { return SectionRegistry }

func (s *RegistrySettings) Values() map[string]any {
	w := newSettingsWriter(s.Extra)
	s.write(w)
	w.str("message", s.Message)
	return w
}

func (s *RegistrySettings) Clone() Settings {
	return &RegistrySettings{BaseSettings: s.clone(), Message: s.Message}
}

// FAQSettings configures the FAQ section.
type FAQSettings struct {
	BaseSettings
	ExpandAll *bool
}

func (*FAQSettings) SectionType() SectionType { return SectionFAQ }

func (s *FAQSettings) Values() map[string]any {
	w := newSettingsWriter(s.Extra)
	s.write(w)
	w.boolean("expandAll", s.ExpandAll)
	return w
}

func (s *FAQSettings) Clone() Settings {
	return &FAQSettings{BaseSettings: s.clone(), ExpandAll: cloneBool(s.ExpandAll)}
}

// RSVPSettings configures the RSVP section.
type RSVPSettings struct {
	BaseSettings
	DeadlineText        string
	ConfirmationMessage string
}

func (*RSVPSettings) SectionType() SectionType { return SectionRSVP }

func (s *RSVPSettings) Values() map[string]any {
	w := newSettingsWriter(s.Extra)
	s.write(w)
	w.str("deadlineText", s.DeadlineText)
	w.str("confirmationMessage", s.ConfirmationMessage)
	return w
}

func (s *RSVPSettings) Clone() Settings {
	return &RSVPSettings{
		BaseSettings:        s.clone(),
		DeadlineText:        s.DeadlineText,
		ConfirmationMessage: s.ConfirmationMessage,
	}
}

// GallerySettings configures the gallery section.
type GallerySettings struct {
	BaseSettings
	Columns string
}

func (*GallerySettings) SectionType() SectionType { return SectionGallery }

func (s *GallerySettings) Values() map[string]any {
	w := newSettingsWriter(s.Extra)
	s.write(w)
	w.str("columns", s.Columns)
	return w
}

func (s *GallerySettings) Clone() Settings {
	return &GallerySettings{BaseSettings: s.clone(), Columns: s.Columns}
}

// CustomSettings carries an opaque key/value map for section types without a
// typed payload.
type CustomSettings struct {
	Type   SectionType
	Fields map[string]any
}

func (s *CustomSettings) SectionType() SectionType { return s.Type }

func (s *CustomSettings) Values() map[string]any {
	out := util.CloneAnyMap(s.Fields)
	if out == nil {
		out = map[string]any{}
	}
	return out
}

func (s *CustomSettings) Clone() Settings {
	return &CustomSettings{Type: s.Type, Fields: util.CloneAnyMap(s.Fields)}
}

// NewSettings returns an empty payload for the section type.
func NewSettings(sectionType SectionType) Settings {
	return SettingsFromMap(sectionType, nil)
}

// SettingsFromMap decodes an open settings map into the typed payload for the
// section type. The input map is never retained.
func SettingsFromMap(sectionType SectionType, values map[string]any) Settings {
	r := newSettingsReader(values)
	switch sectionType {
	case SectionHero:
		s := &HeroSettings{}
		s.read(r)
		s.BackgroundImage = r.str("backgroundImage")
		s.OverlayOpacity = r.number("overlayOpacity")
		s.ShowCountdown = r.boolean("showCountdown")
		s.Extra = r.rest()
		return s
	case SectionStory:
		s := &StorySettings{}
		s.read(r)
		s.StoryText = r.str("storyText")
		s.Photo = r.str("photo")
		s.Extra = r.rest()
		return s
	case SectionVenue:
		s := &VenueSettings{}
		s.read(r)
		s.ShowMap = r.boolean("showMap")
		s.Extra = r.rest()
		return s
	case SectionSchedule:
		s := &ScheduleSettings{}
		s.read(r)
		s.ShowIcons = r.boolean("showIcons")
		s.Extra = r.rest()
		return s
	case SectionTravel:
		s := &TravelSettings{}
		s.read(r)
		s.ShowParking = r.boolean("showParking")
		s.Extra = r.rest()
		return s
	case SectionRegistry:
		s := &RegistrySettings{}
		s.read(r)
		s.Message = r.str("message")
		s.Extra = r.rest()
		return s
	case SectionFAQ:
		s := &FAQSettings{}
		s.read(r)
		s.ExpandAll = r.boolean("expandAll")
		s.Extra = r.rest()
		return s
	case SectionRSVP:
		s := &RSVPSettings{}
		s.read(r)
		s.DeadlineText = r.str("deadlineText")
		s.ConfirmationMessage = r.str("confirmationMessage")
		s.Extra = r.rest()
		return s
	case SectionGallery:
		s := &GallerySettings{}
		s.read(r)
		s.Columns = r.str("columns")
		s.Extra = r.rest()
		return s
	default:
		return &CustomSettings{Type: sectionType, Fields: r.rest()}
	}
}

type settingsReader struct {
	values map[string]any
	used   map[string]bool
}

func newSettingsReader(values map[string]any) *settingsReader {
	return &settingsReader{values: values, used: map[string]bool{}}
}

func (r *settingsReader) str(key string) string {
	value, ok := r.values[key].(string)
	if !ok || value == "" {
		return ""
	}
	r.used[key] = true
	return value
}

func (r *settingsReader) boolean(key string) *bool {
	value, ok := r.values[key].(bool)
	if !ok {
		return nil
	}
	r.used[key] = true
	return &value
}

func (r *settingsReader) number(key string) *float64 {
	value, ok := r.values[key].(float64)
	if !ok {
		return nil
	}
	r.used[key] = true
	return &value
}

// rest returns the keys not claimed by a typed field, or nil when none remain.
func (r *settingsReader) rest() map[string]any {
	var out map[string]any
	for key, value := range r.values {
		if r.used[key] {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[key] = util.CloneValue(value)
	}
	return out
}

type settingsWriter map[string]any

func newSettingsWriter(extra map[string]any) settingsWriter {
	w := settingsWriter{}
	for key, value := range extra {
		w[key] = util.CloneValue(value)
	}
	return w
}

func (w settingsWriter) str(key, value string) {
	if value != "" {
		w[key] = value
	}
}

func (w settingsWriter) boolean(key string, value *bool) {
	if value != nil {
		w[key] = *value
	}
}

func (w settingsWriter) number(key string, value *float64) {
	if value != nil {
		w[key] = *value
	}
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

// Bool returns a pointer to value, for populating optional settings.
func Bool(value bool) *bool { return &value }

// Float returns a pointer to value, for populating optional settings.
func Float(value float64) *float64 { return &value }
