package bindings

import (
	"html"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-site-builder/document"
)

// ContentUpdate describes the changes section edits imply for the content
// record. Order fields are nil when the document expresses no ordering for the
// category; text fields are nil when no bound section carries a value.
type ContentUpdate struct {
	VenueOrder    []string
	ScheduleOrder []string
	LinkOrder     []string
	FAQOrder      []string
	GalleryOrder  []string
	Story         *string
	RegistryNotes *string
}

// Empty reports whether the update changes nothing.
func (u ContentUpdate) Empty() bool {
	return u.VenueOrder == nil && u.ScheduleOrder == nil && u.LinkOrder == nil &&
		u.FAQOrder == nil && u.GalleryOrder == nil && u.Story == nil && u.RegistryNotes == nil
}

var textPolicy = bluemonday.StrictPolicy()

// ExtractContentUpdates reads section edits back into content record changes.
// The first enabled section of each bound type drives the order of the
// matching content list. Story text and registry message are written back as
// sanitised plain text. Other settings never flow back into the record.
func ExtractContentUpdates(sections []*document.Section, data *document.WeddingData) ContentUpdate {
	var update ContentUpdate
	if data == nil {
		return update
	}
	seen := map[document.SectionType]bool{}
	for _, section := range sections {
		if section == nil || !section.Enabled || seen[section.Type] {
			continue
		}
		seen[section.Type] = true
		switch section.Type {
		case document.SectionVenue:
			update.VenueOrder = orderFrom(section.Bindings.VenueIDs)
		case document.SectionSchedule:
			update.ScheduleOrder = orderFrom(section.Bindings.ScheduleItemIDs)
		case document.SectionRegistry:
			update.LinkOrder = orderFrom(section.Bindings.LinkIDs)
			if settings, ok := section.Settings.(*document.RegistrySettings); ok && settings.Message != "" {
				notes := sanitizeText(settings.Message)
				if notes != data.Registry.Notes {
					update.RegistryNotes = &notes
				}
			}
		case document.SectionFAQ:
			update.FAQOrder = orderFrom(section.Bindings.FAQIDs)
		case document.SectionGallery:
			update.GalleryOrder = orderFrom(section.Bindings.GalleryAssetURLs)
		case document.SectionStory:
			if settings, ok := section.Settings.(*document.StorySettings); ok && settings.StoryText != "" {
				story := sanitizeText(settings.StoryText)
				if story != data.Couple.Story {
					update.Story = &story
				}
			}
		}
	}
	return update
}

func orderFrom(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return slices.Clone(ids)
}

func sanitizeText(value string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(value)))
}

// ApplyTo returns a copy of data with the update applied.
func (u ContentUpdate) ApplyTo(data *document.WeddingData) *document.WeddingData {
	if data == nil {
		return nil
	}
	out := data.Clone()
	out.Venues = reorder(out.Venues, u.VenueOrder, func(v document.Venue) string { return v.ID })
	out.Schedule = reorder(out.Schedule, u.ScheduleOrder, func(s document.ScheduleItem) string { return s.ID })
	out.Registry.Links = reorder(out.Registry.Links, u.LinkOrder, func(l document.RegistryLink) string { return l.ID })
	out.FAQ = reorder(out.FAQ, u.FAQOrder, func(f document.FAQItem) string { return f.ID })
	out.Media.Gallery = reorder(out.Media.Gallery, u.GalleryOrder, func(g document.GalleryImage) string { return g.URL })
	if u.Story != nil {
		out.Couple.Story = *u.Story
	}
	if u.RegistryNotes != nil {
		out.Registry.Notes = *u.RegistryNotes
	}
	return out
}

// reorder moves the items named in order to the front, in that order. Items
// not named keep their relative order at the end; unknown ids are ignored.
func reorder[T any](items []T, order []string, key func(T) string) []T {
	if len(order) == 0 || len(items) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	placed := make([]bool, len(items))
	for _, id := range order {
		for i, item := range items {
			if !placed[i] && key(item) == id {
				out = append(out, item)
				placed[i] = true
				break
			}
		}
	}
	for i, item := range items {
		if !placed[i] {
			out = append(out, item)
		}
	}
	return out
}
