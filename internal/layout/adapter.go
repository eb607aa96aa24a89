package layout

import (
	"maps"
	"strings"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/identity"
	"github.com/goliatone/go-site-builder/internal/util"
)

// Upgrade converts a legacy layout config into a builder project. The first
// page becomes home, sections are unlocked and order indices follow array
// position.
func (a *Adapter) Upgrade(weddingID string, cfg document.LayoutConfig) *document.Project {
	project := &document.Project{
		ID:            identity.ProjectID(weddingID),
		WeddingID:     weddingID,
		TemplateID:    cfg.TemplateID,
		ThemeID:       DefaultThemeID,
		DraftVersion:  1,
		PublishStatus: document.PublishStatusDraft,
		Pages:         make([]*document.Page, 0, len(cfg.Pages)),
		Meta:          cfg.Meta,
	}
	pageIDs := map[string]struct{}{}
	sectionIDs := map[string]struct{}{}
	for i, page := range cfg.Pages {
		pageID := claimID(pageIDs, page.ID, identity.PageID)
		upgraded := &document.Page{
			ID:         pageID,
			Title:      page.Title,
			Slug:       pageID,
			OrderIndex: i,
			Meta:       document.PageMeta{IsHome: i == 0},
		}
		if page.Sections != nil {
			upgraded.Sections = make([]*document.Section, len(page.Sections))
		}
		for j, section := range page.Sections {
			upgraded.Sections[j] = &document.Section{
				ID:             claimID(sectionIDs, section.ID, a.newID),
				Type:           section.Type,
				Variant:        util.FirstNonEmpty(section.Variant, document.DefaultVariant),
				Enabled:        section.Enabled,
				OrderIndex:     j,
				Settings:       document.SettingsFromMap(section.Type, section.Settings),
				Bindings:       section.Bindings.Clone(),
				StyleOverrides: document.StyleOverrides(util.CloneAnyMap(section.Overrides)),
				Meta:           cfg.Meta,
			}
		}
		project.Pages = append(project.Pages, upgraded)
	}
	return project
}

// claimID records id in seen and returns it. Blank ids and ids already seen
// are replaced with fresh ones from next.
func claimID(seen map[string]struct{}, id string, next identity.Generator) string {
	id = strings.TrimSpace(id)
	for {
		if _, taken := seen[id]; id != "" && !taken {
			seen[id] = struct{}{}
			return id
		}
		id = next()
	}
}

// Upgrade uses the default adapter.
func Upgrade(weddingID string, cfg document.LayoutConfig) *document.Project {
	return defaultAdapter.Upgrade(weddingID, cfg)
}

// Downgrade converts a builder project into the legacy layout config. Array
// order is authoritative; locked and order index are dropped.
func (a *Adapter) Downgrade(project *document.Project) document.LayoutConfig {
	cfg := document.LayoutConfig{Version: document.LayoutVersion}
	if project == nil {
		cfg.Pages = []document.LayoutPage{}
		return cfg
	}
	cfg.TemplateID = project.TemplateID
	cfg.Meta = document.Timestamps{
		CreatedAt: project.Meta.CreatedAt,
		UpdatedAt: a.timestamp(),
	}
	cfg.Pages = make([]document.LayoutPage, 0, len(project.Pages))
	for _, page := range project.Pages {
		if page == nil {
			continue
		}
		downgraded := document.LayoutPage{ID: page.ID, Title: page.Title}
		if page.Sections != nil {
			downgraded.Sections = make([]document.LayoutSection, 0, len(page.Sections))
		}
		for _, section := range page.Sections {
			if section == nil {
				continue
			}
			downgraded.Sections = append(downgraded.Sections, document.LayoutSection{
				ID:        section.ID,
				Type:      section.Type,
				Variant:   section.Variant,
				Enabled:   section.Enabled,
				Bindings:  section.Bindings.Clone(),
				Settings:  section.SettingsOrEmpty().Values(),
				Overrides: util.CloneAnyMap(map[string]any(section.StyleOverrides)),
			})
		}
		cfg.Pages = append(cfg.Pages, downgraded)
	}
	return cfg
}

// Downgrade uses the default adapter.
func Downgrade(project *document.Project) document.LayoutConfig {
	return defaultAdapter.Downgrade(project)
}

// Merge downgrades project and folds it into an existing layout. Sections that
// already existed keep settings keys the project no longer carries and binding
// categories the project leaves unset; the original creation time is kept.
func (a *Adapter) Merge(project *document.Project, existing document.LayoutConfig) document.LayoutConfig {
	merged := a.Downgrade(project)
	if existing.Meta.CreatedAt != "" {
		merged.Meta.CreatedAt = existing.Meta.CreatedAt
	}

	previous := map[string]document.LayoutSection{}
	for _, page := range existing.Pages {
		for _, section := range page.Sections {
			previous[section.ID] = section
		}
	}
	for i := range merged.Pages {
		for j := range merged.Pages[i].Sections {
			current := &merged.Pages[i].Sections[j]
			old, ok := previous[current.ID]
			if !ok || old.Type != current.Type {
				continue
			}
			settings := util.CloneAnyMap(old.Settings)
			if settings == nil {
				settings = map[string]any{}
			}
			maps.Copy(settings, current.Settings)
			current.Settings = settings
			current.Bindings = mergeBindings(current.Bindings, old.Bindings)
		}
	}
	return merged
}

func mergeBindings(current, old document.Bindings) document.Bindings {
	out := current.Clone()
	if out.VenueIDs == nil {
		out.VenueIDs = util.CloneStrings(old.VenueIDs)
	}
	if out.ScheduleItemIDs == nil {
		out.ScheduleItemIDs = util.CloneStrings(old.ScheduleItemIDs)
	}
	if out.LinkIDs == nil {
		out.LinkIDs = util.CloneStrings(old.LinkIDs)
	}
	if out.FAQIDs == nil {
		out.FAQIDs = util.CloneStrings(old.FAQIDs)
	}
	if out.MediaAssetIDs == nil {
		out.MediaAssetIDs = util.CloneStrings(old.MediaAssetIDs)
	}
	if out.GalleryAssetURLs == nil {
		out.GalleryAssetURLs = util.CloneStrings(old.GalleryAssetURLs)
	}
	if out.HeroImageURL == "" {
		out.HeroImageURL = old.HeroImageURL
	}
	return out
}
