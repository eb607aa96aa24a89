package bindings

import (
	"slices"

	"github.com/goliatone/go-site-builder/document"
)

// Category names the slice of the content record a section type is bound to.
type Category string

const (
	CategoryVenues   Category = "venues"
	CategorySchedule Category = "schedule"
	CategoryRegistry Category = "registry"
	CategoryFAQ      Category = "faq"
	CategoryHero     Category = "hero"
	CategoryGallery  Category = "gallery"
)

var categories = map[document.SectionType]Category{
	document.SectionVenue:    CategoryVenues,
	document.SectionSchedule: CategorySchedule,
	document.SectionRegistry: CategoryRegistry,
	document.SectionFAQ:      CategoryFAQ,
	document.SectionHero:     CategoryHero,
	document.SectionGallery:  CategoryGallery,
}

// CategoryFor reports the binding category of a section type.
func CategoryFor(sectionType document.SectionType) (Category, bool) {
	category, ok := categories[sectionType]
	return category, ok
}

// BindingSet is the projection of a content record onto bindable ids.
type BindingSet struct {
	VenueIDs         []string
	ScheduleItemIDs  []string
	LinkIDs          []string
	FAQIDs           []string
	HeroImageURL     string
	GalleryAssetURLs []string
}

// Derive projects the content record into its bindable ids. Empty categories
// yield empty, non-nil slices.
func Derive(data *document.WeddingData) BindingSet {
	set := BindingSet{
		VenueIDs:         []string{},
		ScheduleItemIDs:  []string{},
		LinkIDs:          []string{},
		FAQIDs:           []string{},
		GalleryAssetURLs: []string{},
	}
	if data == nil {
		return set
	}
	for _, venue := range data.Venues {
		set.VenueIDs = append(set.VenueIDs, venue.ID)
	}
	for _, item := range data.Schedule {
		set.ScheduleItemIDs = append(set.ScheduleItemIDs, item.ID)
	}
	for _, link := range data.Registry.Links {
		set.LinkIDs = append(set.LinkIDs, link.ID)
	}
	for _, item := range data.FAQ {
		set.FAQIDs = append(set.FAQIDs, item.ID)
	}
	set.HeroImageURL = data.Media.HeroImageURL
	for _, image := range data.Media.Gallery {
		set.GalleryAssetURLs = append(set.GalleryAssetURLs, image.URL)
	}
	return set
}

// Apply refreshes the bound category of every section from the content record.
// Only the category field is replaced; settings, style overrides, and other
// binding fields are untouched. Sections without a category, or whose bound
// field already matches, are returned as the same pointer. Dangling ids are not
// pruned. Apply is idempotent. Without a content record the sections are
// returned as given.
func Apply(sections []*document.Section, data *document.WeddingData) []*document.Section {
	if sections == nil || data == nil {
		return sections
	}
	set := Derive(data)
	out := make([]*document.Section, len(sections))
	for i, section := range sections {
		out[i] = applyOne(section, set)
	}
	return out
}

// ApplyProject refreshes bindings on every page of a copy of project. A nil
// content record returns project unchanged.
func ApplyProject(project *document.Project, data *document.WeddingData) *document.Project {
	if project == nil || data == nil {
		return project
	}
	cloned := *project
	cloned.Pages = make([]*document.Page, len(project.Pages))
	for i, page := range project.Pages {
		if page == nil {
			continue
		}
		copied := *page
		copied.Sections = Apply(page.Sections, data)
		cloned.Pages[i] = &copied
	}
	return &cloned
}

func applyOne(section *document.Section, set BindingSet) *document.Section {
	if section == nil {
		return nil
	}
	category, ok := categories[section.Type]
	if !ok {
		return section
	}

	current := section.Bindings
	switch category {
	case CategoryVenues:
		if sameIDs(current.VenueIDs, set.VenueIDs) {
			return section
		}
		return withBindings(section, func(b *document.Bindings) { b.VenueIDs = slices.Clone(set.VenueIDs) })
	case CategorySchedule:
		if sameIDs(current.ScheduleItemIDs, set.ScheduleItemIDs) {
			return section
		}
		return withBindings(section, func(b *document.Bindings) { b.ScheduleItemIDs = slices.Clone(set.ScheduleItemIDs) })
	case CategoryRegistry:
		if sameIDs(current.LinkIDs, set.LinkIDs) {
			return section
		}
		return withBindings(section, func(b *document.Bindings) { b.LinkIDs = slices.Clone(set.LinkIDs) })
	case CategoryFAQ:
		if sameIDs(current.FAQIDs, set.FAQIDs) {
			return section
		}
		return withBindings(section, func(b *document.Bindings) { b.FAQIDs = slices.Clone(set.FAQIDs) })
	case CategoryHero:
		if current.HeroImageURL == set.HeroImageURL {
			return section
		}
		return withBindings(section, func(b *document.Bindings) { b.HeroImageURL = set.HeroImageURL })
	case CategoryGallery:
		if sameIDs(current.GalleryAssetURLs, set.GalleryAssetURLs) {
			return section
		}
		return withBindings(section, func(b *document.Bindings) { b.GalleryAssetURLs = slices.Clone(set.GalleryAssetURLs) })
	}
	return section
}

// sameIDs treats a nil list as different from an empty one so the first
// application always materialises the category.
func sameIDs(current, derived []string) bool {
	if current == nil {
		return false
	}
	return slices.Equal(current, derived)
}

func withBindings(section *document.Section, mutate func(*document.Bindings)) *document.Section {
	cloned := section.Clone()
	mutate(&cloned.Bindings)
	return cloned
}

// Stale returns the ids in the section's bound category that no longer exist
// in the content record, in binding order.
func Stale(section *document.Section, data *document.WeddingData) []string {
	if section == nil {
		return nil
	}
	category, ok := categories[section.Type]
	if !ok {
		return nil
	}
	set := Derive(data)
	var bound, known []string
	switch category {
	case CategoryVenues:
		bound, known = section.Bindings.VenueIDs, set.VenueIDs
	case CategorySchedule:
		bound, known = section.Bindings.ScheduleItemIDs, set.ScheduleItemIDs
	case CategoryRegistry:
		bound, known = section.Bindings.LinkIDs, set.LinkIDs
	case CategoryFAQ:
		bound, known = section.Bindings.FAQIDs, set.FAQIDs
	case CategoryGallery:
		bound, known = section.Bindings.GalleryAssetURLs, set.GalleryAssetURLs
	default:
		return nil
	}
	var stale []string
	for _, id := range bound {
		if !slices.Contains(known, id) {
			stale = append(stale, id)
		}
	}
	return stale
}
