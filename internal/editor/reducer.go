package editor

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/bindings"
	"github.com/goliatone/go-site-builder/internal/layout"
	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/internal/sections"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// DefaultMaxSectionsPerPage bounds page length when no limit is configured.
const DefaultMaxSectionsPerPage = 20

// SectionFactory manufactures library sections and fresh section ids.
type SectionFactory interface {
	NewSectionFromLibrary(sectionType document.SectionType, variant string, orderIndex int) *document.Section
	NewSectionID() string
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithSectionFactory overrides how new sections and ids are produced.
func WithSectionFactory(factory SectionFactory) Option {
	return func(r *Reducer) {
		if factory != nil {
			r.factory = factory
		}
	}
}

// WithClock overrides the clock used for section and project timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Reducer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithMaxHistory bounds the undo stack.
func WithMaxHistory(n int) Option {
	return func(r *Reducer) {
		if n > 0 {
			r.maxHistory = n
		}
	}
}

// WithMaxSectionsPerPage bounds the number of sections on a page.
func WithMaxSectionsPerPage(n int) Option {
	return func(r *Reducer) {
		if n > 0 {
			r.maxSections = n
		}
	}
}

// WithLogger records ignored intents at debug level.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Reducer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Reducer applies intents to editor state. Reduce never mutates its input;
// unknown pages or sections leave the state unchanged.
type Reducer struct {
	factory     SectionFactory
	now         func() time.Time
	maxHistory  int
	maxSections int
	logger      interfaces.Logger
}

// NewReducer constructs a reducer with default limits.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		now:         time.Now,
		maxHistory:  DefaultMaxHistory,
		maxSections: DefaultMaxSectionsPerPage,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.factory == nil {
		r.factory = layout.NewAdapter(layout.WithClock(r.now))
	}
	return r
}

// MaxSectionsPerPage returns the configured page limit.
func (r *Reducer) MaxSectionsPerPage() int {
	return r.maxSections
}

// Reduce returns the state produced by applying intent to state.
func (r *Reducer) Reduce(state State, intent Intent) State {
	switch in := intent.(type) {
	case LoadProject:
		return r.loadProject(state, in)
	case SetWeddingData:
		state.WeddingData = in.Data.Clone()
		return state
	case SetActivePage:
		if state.Project.Page(in.PageID) == nil {
			return r.ignore(state, in, "unknown page")
		}
		state.Selection = Selection{ActivePageID: in.PageID}
		return state
	case SelectSection:
		return r.selectSection(state, in)
	case HoverSection:
		if in.SectionID != "" && ActivePage(state).Section(in.SectionID) == nil {
			return r.ignore(state, in, "unknown section")
		}
		state.Selection.HoveredSectionID = in.SectionID
		return state
	case SetMode:
		if in.Mode != ModeEdit && in.Mode != ModePreview {
			return r.ignore(state, in, "unknown mode")
		}
		state.Mode = in.Mode
		state.Selection.SelectedSectionID = ""
		state.Selection.HoveredSectionID = ""
		return state
	case SetViewport:
		switch in.Viewport {
		case ViewportDesktop, ViewportTablet, ViewportMobile:
			state.Viewport = in.Viewport
			return state
		}
		return r.ignore(state, in, "unknown viewport")

	case AddSection:
		return r.addSection(state, in)
	case AddSectionByType:
		return r.addSectionByType(state, in)
	case RemoveSection:
		return r.removeSection(state, in)
	case DuplicateSection:
		return r.duplicateSection(state, in)
	case ReorderSections:
		return r.reorderSections(state, in)
	case UpdateSection:
		return r.updateSection(state, in)
	case ToggleSectionVisibility:
		return r.toggleSection(state, in)
	case ApplyTemplate:
		return r.applyTemplate(state, in)
	case ApplyTheme:
		return r.applyTheme(state, in)
	case ApplyThemeTokens:
		return r.applyThemeTokens(state, in)
	case ApplyBindings:
		return r.applyBindings(state, in)
	case RestoreRevision:
		return r.restoreRevision(state, in)
	case Undo:
		return r.undo(state)
	case Redo:
		return r.redo(state)

	case SetSaving:
		switch {
		case in.Saving:
			state.SaveStatus = SaveSaving
		case state.SaveStatus == SaveSaving:
			state.SaveStatus = SaveIdle
		}
		return state
	case SetPublishing:
		switch {
		case in.Publishing:
			state.PublishStatus = PublishPublishing
		case state.PublishStatus == PublishPublishing:
			state.PublishStatus = PublishIdle
		}
		return state
	case SaveFailed:
		state.SaveStatus = SaveError
		state.Error = in.Message
		return state
	case PublishFailed:
		state.PublishStatus = PublishError
		state.Error = in.Message
		return state
	case MarkSaved:
		state.SaveStatus = SaveIdle
		state.LastSavedAt = in.SavedAt
		if in.ChangeSeq == state.ChangeSeq {
			state.Dirty = false
		}
		return state
	case MarkPublished:
		return r.markPublished(state, in)
	case SetError:
		state.Error = in.Message
		return state

	case SetMediaAssets:
		state.MediaAssets = cloneAssets(in.Assets)
		return state
	case AddMediaAsset:
		assets := make([]document.MediaAsset, 0, len(state.MediaAssets)+1)
		assets = append(assets, in.Asset.Clone())
		for _, asset := range state.MediaAssets {
			if asset.ID != in.Asset.ID {
				assets = append(assets, asset)
			}
		}
		state.MediaAssets = assets
		return state
	case RemoveMediaAsset:
		state.MediaAssets = slices.DeleteFunc(slices.Clone(state.MediaAssets), func(asset document.MediaAsset) bool {
			return asset.ID == in.AssetID
		})
		return state
	case UpdateUploadQueue:
		queue := slices.Clone(state.UploadQueue)
		if idx := slices.IndexFunc(queue, func(p document.UploadProgress) bool { return p.AssetID == in.Progress.AssetID }); idx >= 0 {
			queue[idx] = in.Progress
		} else {
			queue = append(queue, in.Progress)
		}
		state.UploadQueue = queue
		return state
	case RemoveFromUploadQueue:
		state.UploadQueue = slices.DeleteFunc(slices.Clone(state.UploadQueue), func(p document.UploadProgress) bool {
			return p.AssetID == in.AssetID
		})
		return state

	case OpenTemplateGallery:
		state.Panels.TemplateGallery = true
		return state
	case CloseTemplateGallery:
		state.Panels.TemplateGallery = false
		return state
	case OpenMediaLibrary:
		state.Panels.MediaLibrary = true
		state.Panels.MediaPickerTargetSectionID = in.TargetSectionID
		return state
	case CloseMediaLibrary:
		state.Panels.MediaLibrary = false
		state.Panels.MediaPickerTargetSectionID = ""
		return state
	case OpenThemePanel:
		state.Panels.ThemePalette = true
		return state
	case CloseThemePanel:
		state.Panels.ThemePalette = false
		return state
	}

	if intent == nil {
		return state
	}
	return r.ignore(state, intent, "unsupported intent")
}

func (r *Reducer) ignore(state State, intent Intent, reason string) State {
	r.logger.Debug("editor.intent.ignored", "intent", intent.Kind(), "reason", reason)
	return state
}

func (r *Reducer) timestamp() string {
	return document.Timestamp(r.now())
}

func (r *Reducer) loadProject(state State, in LoadProject) State {
	if in.Project == nil {
		return r.ignore(state, in, "nil project")
	}
	state.Project = in.Project.Clone()
	if in.WeddingData != nil {
		state.WeddingData = in.WeddingData.Clone()
		state.Project = bindings.ApplyProject(state.Project, state.WeddingData)
	}
	state.Selection = normalizeSelection(state.Project, Selection{})
	state.History = History{}
	state.Dirty = false
	state.Error = ""
	state.SaveStatus = SaveIdle
	state.PublishStatus = PublishIdle
	state.ChangeSeq++
	return state
}

func (r *Reducer) selectSection(state State, in SelectSection) State {
	if in.SectionID == "" {
		state.Selection.SelectedSectionID = ""
		return state
	}
	page, section := state.Project.FindSection(in.SectionID)
	if section == nil {
		return r.ignore(state, in, "unknown section")
	}
	state.Selection.ActivePageID = page.ID
	state.Selection.SelectedSectionID = section.ID
	return state
}

// mutation edits next in place and reports the history label. Returning
// false discards next and leaves the state untouched.
type mutation func(next *document.Project, sel *Selection) (string, bool)

func (r *Reducer) edit(state State, intent Intent, mutate mutation) State {
	if state.Project == nil {
		return r.ignore(state, intent, "no project loaded")
	}
	next := state.Project.Clone()
	sel := state.Selection
	label, ok := mutate(next, &sel)
	if !ok {
		return state
	}
	next.Meta.UpdatedAt = r.timestamp()

	state.History = state.History.push(Snapshot{Label: label, Project: state.Project.Clone()}, r.maxHistory)
	state.Project = next
	state.Selection = normalizeSelection(next, sel)
	state.Dirty = true
	state.ChangeSeq++
	return state
}

func (r *Reducer) pageFull(state State, intent Intent, pageID string) (State, bool) {
	page := state.Project.Page(pageID)
	if page == nil || len(page.Sections) < r.maxSections {
		return state, false
	}
	state.Error = fmt.Sprintf("A page can hold at most %d sections.", r.maxSections)
	return r.ignore(state, intent, "page is full"), true
}

func (r *Reducer) addSection(state State, in AddSection) State {
	if in.Section == nil {
		return r.ignore(state, in, "nil section")
	}
	if full, ok := r.pageFull(state, in, in.PageID); ok {
		return full
	}
	return r.edit(state, in, func(next *document.Project, _ *Selection) (string, bool) {
		page := next.Page(in.PageID)
		if page == nil {
			r.ignore(state, in, "unknown page")
			return "", false
		}
		section := in.Section.Clone()
		if section.ID == "" || slices.Contains(next.SectionIDs(), section.ID) {
			section.ID = r.factory.NewSectionID()
		}
		insertSection(page, section, in.InsertAfterIndex)
		return "Added " + sectionLabel(section.Type) + " section", true
	})
}

func (r *Reducer) addSectionByType(state State, in AddSectionByType) State {
	manifest, err := sections.Get(in.Type)
	if err != nil {
		return r.ignore(state, in, "unknown section type")
	}
	if full, ok := r.pageFull(state, in, in.PageID); ok {
		return full
	}
	return r.edit(state, in, func(next *document.Project, _ *Selection) (string, bool) {
		page := next.Page(in.PageID)
		if page == nil {
			r.ignore(state, in, "unknown page")
			return "", false
		}
		idx := insertionIndex(in.InsertAfterIndex, len(page.Sections))
		section := r.factory.NewSectionFromLibrary(in.Type, sections.NormalizeVariant(in.Type, in.Variant), idx)
		section.Settings = manifest.DefaultSettings()
		insertSection(page, section, in.InsertAfterIndex)
		return "Added " + manifest.Label + " section", true
	})
}

func (r *Reducer) removeSection(state State, in RemoveSection) State {
	return r.edit(state, in, func(next *document.Project, sel *Selection) (string, bool) {
		page := next.Page(in.PageID)
		idx := page.SectionIndex(in.SectionID)
		if idx < 0 {
			r.ignore(state, in, "unknown section")
			return "", false
		}
		removed := page.Sections[idx]
		if removed.Locked {
			r.ignore(state, in, "section is locked")
			return "", false
		}
		page.Sections = slices.Delete(page.Sections, idx, idx+1)
		renumber(page.Sections)

		if sel.SelectedSectionID == removed.ID {
			sel.SelectedSectionID = neighbour(page.Sections, idx)
		}
		if sel.HoveredSectionID == removed.ID {
			sel.HoveredSectionID = ""
		}
		return "Removed " + sectionLabel(removed.Type) + " section", true
	})
}

// neighbour returns the id of the section that took the removed slot, or the
// one before it when the last section was removed.
func neighbour(list []*document.Section, removedIdx int) string {
	switch {
	case removedIdx < len(list):
		return list[removedIdx].ID
	case len(list) > 0:
		return list[len(list)-1].ID
	}
	return ""
}

func (r *Reducer) duplicateSection(state State, in DuplicateSection) State {
	if full, ok := r.pageFull(state, in, in.PageID); ok {
		return full
	}
	return r.edit(state, in, func(next *document.Project, sel *Selection) (string, bool) {
		page := next.Page(in.PageID)
		idx := page.SectionIndex(in.SectionID)
		if idx < 0 {
			r.ignore(state, in, "unknown section")
			return "", false
		}
		source := page.Sections[idx]
		if !sections.CapabilitiesFor(source.Type).Duplicable {
			r.ignore(state, in, "section type cannot be duplicated")
			return "", false
		}
		copied := source.Clone()
		copied.ID = r.factory.NewSectionID()
		now := r.timestamp()
		copied.Meta = document.Timestamps{CreatedAt: now, UpdatedAt: now}
		insertSection(page, copied, &idx)
		sel.SelectedSectionID = copied.ID
		return "Duplicated " + sectionLabel(source.Type) + " section", true
	})
}

func (r *Reducer) reorderSections(state State, in ReorderSections) State {
	return r.edit(state, in, func(next *document.Project, _ *Selection) (string, bool) {
		page := next.Page(in.PageID)
		if page == nil {
			r.ignore(state, in, "unknown page")
			return "", false
		}
		if len(in.OrderedIDs) != len(page.Sections) {
			r.ignore(state, in, "ordered ids do not match page sections")
			return "", false
		}
		byID := make(map[string]*document.Section, len(page.Sections))
		for _, section := range page.Sections {
			byID[section.ID] = section
		}
		reordered := make([]*document.Section, 0, len(in.OrderedIDs))
		for _, id := range in.OrderedIDs {
			section, ok := byID[id]
			if !ok {
				r.ignore(state, in, "ordered ids do not match page sections")
				return "", false
			}
			delete(byID, id)
			reordered = append(reordered, section)
		}
		if slices.EqualFunc(reordered, page.Sections, func(a, b *document.Section) bool { return a.ID == b.ID }) {
			return "", false
		}
		page.Sections = reordered
		renumber(page.Sections)
		return "Reordered sections", true
	})
}

func (r *Reducer) updateSection(state State, in UpdateSection) State {
	if in.Patch.Empty() {
		return r.ignore(state, in, "empty patch")
	}
	return r.edit(state, in, func(next *document.Project, _ *Selection) (string, bool) {
		page := next.Page(in.PageID)
		idx := page.SectionIndex(in.SectionID)
		if idx < 0 {
			r.ignore(state, in, "unknown section")
			return "", false
		}
		updated := in.Patch.ApplyTo(page.Sections[idx])
		updated.Meta.UpdatedAt = r.timestamp()
		page.Sections[idx] = updated
		return "Updated " + sectionLabel(updated.Type) + " section", true
	})
}

func (r *Reducer) toggleSection(state State, in ToggleSectionVisibility) State {
	return r.edit(state, in, func(next *document.Project, _ *Selection) (string, bool) {
		section := next.Page(in.PageID).Section(in.SectionID)
		if section == nil {
			r.ignore(state, in, "unknown section")
			return "", false
		}
		section.Enabled = !section.Enabled
		section.Meta.UpdatedAt = r.timestamp()
		if section.Enabled {
			return "Showed " + sectionLabel(section.Type) + " section", true
		}
		return "Hid " + sectionLabel(section.Type) + " section", true
	})
}

func (r *Reducer) applyTemplate(state State, in ApplyTemplate) State {
	if len(in.Sections) > r.maxSections {
		state.Error = fmt.Sprintf("A page can hold at most %d sections.", r.maxSections)
		return r.ignore(state, in, "template exceeds section limit")
	}
	return r.edit(state, in, func(next *document.Project, sel *Selection) (string, bool) {
		page := next.Page(sel.ActivePageID)
		if page == nil {
			page = next.HomePage()
		}
		if page == nil {
			r.ignore(state, in, "no page to apply template to")
			return "", false
		}
		taken := map[string]bool{}
		for _, other := range next.Pages {
			if other == nil || other.ID == page.ID {
				continue
			}
			for _, section := range other.Sections {
				if section != nil {
					taken[section.ID] = true
				}
			}
		}
		replaced := make([]*document.Section, 0, len(in.Sections))
		for _, section := range in.Sections {
			if section == nil {
				continue
			}
			copied := section.Clone()
			if copied.ID == "" || taken[copied.ID] {
				copied.ID = r.factory.NewSectionID()
			}
			taken[copied.ID] = true
			replaced = append(replaced, copied)
		}
		renumber(replaced)
		page.Sections = replaced

		if id := strings.TrimSpace(in.TemplateID); id != "" {
			next.TemplateID = id
		}
		if id := strings.TrimSpace(in.ThemeID); id != "" {
			next.ThemeID = id
			next.ThemeTokens = nil
		}
		sel.ActivePageID = page.ID
		return "Applied " + templateLabel(next.TemplateID) + " template", true
	})
}

func (r *Reducer) applyTheme(state State, in ApplyTheme) State {
	id := strings.TrimSpace(in.ThemeID)
	if id == "" {
		return r.ignore(state, in, "empty theme id")
	}
	return r.edit(state, in, func(next *document.Project, _ *Selection) (string, bool) {
		if next.ThemeID == id && next.ThemeTokens == nil {
			return "", false
		}
		next.ThemeID = id
		next.ThemeTokens = nil
		return "Applied " + id + " theme", true
	})
}

func (r *Reducer) applyThemeTokens(state State, in ApplyThemeTokens) State {
	return r.edit(state, in, func(next *document.Project, _ *Selection) (string, bool) {
		if id := strings.TrimSpace(in.ThemeID); id != "" {
			next.ThemeID = id
		}
		if in.Tokens == nil {
			if next.ThemeTokens == nil {
				return "", false
			}
			next.ThemeTokens = nil
			return "Reset theme colours", true
		}
		tokens := *in.Tokens
		next.ThemeTokens = &tokens
		return "Updated theme colours", true
	})
}

func (r *Reducer) applyBindings(state State, in ApplyBindings) State {
	if in.Data != nil {
		state.WeddingData = in.Data.Clone()
	}
	if state.WeddingData == nil {
		return r.ignore(state, in, "no wedding data")
	}
	data := state.WeddingData
	return r.edit(state, in, func(next *document.Project, _ *Selection) (string, bool) {
		changed := false
		for _, page := range next.Pages {
			if page == nil {
				continue
			}
			synced := bindings.Apply(page.Sections, data)
			for i := range synced {
				if synced[i] != page.Sections[i] {
					changed = true
				}
			}
			page.Sections = synced
		}
		return "Synced content bindings", changed
	})
}

func (r *Reducer) restoreRevision(state State, in RestoreRevision) State {
	if in.Project == nil {
		return r.ignore(state, in, "nil revision project")
	}
	return r.edit(state, in, func(next *document.Project, _ *Selection) (string, bool) {
		*next = *in.Project.Clone()
		if in.RevisionID == "" {
			return "Restored revision", true
		}
		return "Restored revision " + in.RevisionID, true
	})
}

func (r *Reducer) undo(state State) State {
	if state.Project == nil {
		return state
	}
	history, entry, ok := state.History.undo(state.Project)
	if !ok {
		return state
	}
	return r.travel(state, history, entry)
}

func (r *Reducer) redo(state State) State {
	if state.Project == nil {
		return state
	}
	history, entry, ok := state.History.redo(state.Project)
	if !ok {
		return state
	}
	return r.travel(state, history, entry)
}

// travel restores a history entry. Publish metadata describes the live site,
// not the document, so the current values carry over onto the restored copy.
func (r *Reducer) travel(state State, history History, entry Snapshot) State {
	restored := entry.Project.Clone()
	if current := state.Project; current != nil && restored != nil {
		restored.PublishStatus = current.PublishStatus
		restored.LastPublishedAt = current.LastPublishedAt
		restored.PublishedVersion = nil
		if current.PublishedVersion != nil {
			version := *current.PublishedVersion
			restored.PublishedVersion = &version
		}
	}
	state.History = history
	state.Project = restored
	state.Selection = normalizeSelection(state.Project, state.Selection)
	state.Dirty = true
	state.ChangeSeq++
	return state
}

func (r *Reducer) markPublished(state State, in MarkPublished) State {
	state.PublishStatus = PublishPublished
	if state.Project == nil {
		return state
	}
	// Publish metadata is not part of the undoable document.
	project := *state.Project
	version := in.Version
	project.PublishedVersion = &version
	project.PublishStatus = document.PublishStatusPublished
	project.LastPublishedAt = in.PublishedAt
	state.Project = &project
	return state
}

func insertionIndex(after *int, length int) int {
	if after == nil {
		return length
	}
	return max(0, min(*after+1, length))
}

func insertSection(page *document.Page, section *document.Section, after *int) {
	idx := insertionIndex(after, len(page.Sections))
	page.Sections = slices.Insert(page.Sections, idx, section)
	renumber(page.Sections)
}

func renumber(list []*document.Section) {
	for i, section := range list {
		if section != nil {
			section.OrderIndex = i
		}
	}
}

// normalizeSelection keeps the selection pointing at existing ids: the active
// page falls back to the first page and section ids outside it are cleared.
func normalizeSelection(project *document.Project, sel Selection) Selection {
	if project == nil || len(project.Pages) == 0 {
		return Selection{}
	}
	page := project.Page(sel.ActivePageID)
	if page == nil {
		page = project.Pages[0]
		sel.ActivePageID = ""
		if page != nil {
			sel.ActivePageID = page.ID
		}
	}
	if page.Section(sel.SelectedSectionID) == nil {
		sel.SelectedSectionID = ""
	}
	if page.Section(sel.HoveredSectionID) == nil {
		sel.HoveredSectionID = ""
	}
	return sel
}

func sectionLabel(sectionType document.SectionType) string {
	if manifest, err := sections.Get(sectionType); err == nil {
		return manifest.Label
	}
	return string(sectionType)
}

func templateLabel(id string) string {
	if id == "" {
		return "blank"
	}
	return id
}

func cloneAssets(assets []document.MediaAsset) []document.MediaAsset {
	out := make([]document.MediaAsset, len(assets))
	for i, asset := range assets {
		out[i] = asset.Clone()
	}
	return out
}
