package editor

import "github.com/goliatone/go-site-builder/document"

// Intent is a request to change editor state. Intents are plain values and
// carry no behaviour; Reducer.Reduce interprets them.
type Intent interface {
	Kind() string
}

// After returns an insertion position placing a new section after index.
// Use -1 to insert at the top of the page.
func After(index int) *int {
	return &index
}

// LoadProject replaces the document and resets history and dirtiness. When
// WeddingData is set, section bindings are refreshed from it.
type LoadProject struct {
	Project     *document.Project
	WeddingData *document.WeddingData
}

// SetWeddingData replaces the external content record.
type SetWeddingData struct {
	Data *document.WeddingData
}

type SetActivePage struct {
	PageID string
}

// SelectSection selects a section anywhere in the project, switching the
// active page when needed. An empty id clears the selection.
type SelectSection struct {
	SectionID string
}

type HoverSection struct {
	SectionID string
}

type SetMode struct {
	Mode Mode
}

type SetViewport struct {
	Viewport Viewport
}

// AddSection inserts Section into PageID after InsertAfterIndex, or at the
// end of the page when nil.
type AddSection struct {
	PageID           string
	Section          *document.Section
	InsertAfterIndex *int
}

// AddSectionByType manufactures a library section and inserts it.
type AddSectionByType struct {
	PageID           string
	Type             document.SectionType
	Variant          string
	InsertAfterIndex *int
}

type RemoveSection struct {
	PageID    string
	SectionID string
}

type DuplicateSection struct {
	PageID    string
	SectionID string
}

// ReorderSections re-sequences a page to match OrderedIDs exactly.
type ReorderSections struct {
	PageID     string
	OrderedIDs []string
}

type UpdateSection struct {
	PageID    string
	SectionID string
	Patch     document.SectionPatch
}

type ToggleSectionVisibility struct {
	PageID    string
	SectionID string
}

// ApplyTemplate replaces the active page's sections. A non-empty ThemeID is
// applied alongside the template.
type ApplyTemplate struct {
	TemplateID string
	ThemeID    string
	Sections   []*document.Section
}

type ApplyTheme struct {
	ThemeID string
}

// ApplyThemeTokens stores an explicit token override. Nil tokens clear it.
type ApplyThemeTokens struct {
	ThemeID string
	Tokens  *document.ThemeTokens
}

// ApplyBindings refreshes section bindings from the content record. When Data
// is nil the state's current wedding data is used.
type ApplyBindings struct {
	Data *document.WeddingData
}

// RestoreRevision replaces the document with a stored revision as an
// undoable edit.
type RestoreRevision struct {
	RevisionID string
	Project    *document.Project
}

type SetSaving struct {
	Saving bool
}

type SetPublishing struct {
	Publishing bool
}

// SaveFailed ends an in-flight save with an error message.
type SaveFailed struct {
	Message string
}

// PublishFailed ends an in-flight publish with an error message.
type PublishFailed struct {
	Message string
}

// MarkSaved acknowledges a successful save of the document at ChangeSeq.
type MarkSaved struct {
	SavedAt   string
	ChangeSeq uint64
}

type MarkPublished struct {
	Version     int
	PublishedAt string
}

// SetError sets or, with an empty message, clears the error banner.
type SetError struct {
	Message string
}

type SetMediaAssets struct {
	Assets []document.MediaAsset
}

type AddMediaAsset struct {
	Asset document.MediaAsset
}

type RemoveMediaAsset struct {
	AssetID string
}

// UpdateUploadQueue inserts or replaces the entry for Progress.AssetID.
type UpdateUploadQueue struct {
	Progress document.UploadProgress
}

type RemoveFromUploadQueue struct {
	AssetID string
}

type OpenTemplateGallery struct{}

type CloseTemplateGallery struct{}

// OpenMediaLibrary opens the media picker, optionally targeting a section.
type OpenMediaLibrary struct {
	TargetSectionID string
}

type CloseMediaLibrary struct{}

type OpenThemePanel struct{}

type CloseThemePanel struct{}

type Undo struct{}

type Redo struct{}

func (LoadProject) Kind() string             { return "load_project" }
func (SetWeddingData) Kind() string          { return "set_wedding_data" }
func (SetActivePage) Kind() string           { return "set_active_page" }
func (SelectSection) Kind() string           { return "select_section" }
func (HoverSection) Kind() string            { return "hover_section" }
func (SetMode) Kind() string                 { return "set_mode" }
func (SetViewport) Kind() string             { return "set_viewport" }
func (AddSection) Kind() string              { return "add_section" }
func (AddSectionByType) Kind() string        { return "add_section_by_type" }
func (RemoveSection) Kind() string           { return "remove_section" }
func (DuplicateSection) Kind() string        { return "duplicate_section" }
func (ReorderSections) Kind() string         { return "reorder_sections" }
func (UpdateSection) Kind() string           { return "update_section" }
func (ToggleSectionVisibility) Kind() string { return "toggle_section_visibility" }
func (ApplyTemplate) Kind() string           { return "apply_template" }
func (ApplyTheme) Kind() string              { return "apply_theme" }
func (ApplyThemeTokens) Kind() string        { return "apply_theme_tokens" }
func (ApplyBindings) Kind() string           { return "apply_bindings" }
func (RestoreRevision) Kind() string         { return "restore_revision" }
func (SetSaving) Kind() string               { return "set_saving" }
func (SetPublishing) Kind() string           { return "set_publishing" }
func (SaveFailed) Kind() string              { return "save_failed" }
func (PublishFailed) Kind() string           { return "publish_failed" }
func (MarkSaved) Kind() string               { return "mark_saved" }
func (MarkPublished) Kind() string           { return "mark_published" }
func (SetError) Kind() string                { return "set_error" }
func (SetMediaAssets) Kind() string          { return "set_media_assets" }
func (AddMediaAsset) Kind() string           { return "add_media_asset" }
func (RemoveMediaAsset) Kind() string        { return "remove_media_asset" }
func (UpdateUploadQueue) Kind() string       { return "update_upload_queue" }
func (RemoveFromUploadQueue) Kind() string   { return "remove_from_upload_queue" }
func (OpenTemplateGallery) Kind() string     { return "open_template_gallery" }
func (CloseTemplateGallery) Kind() string    { return "close_template_gallery" }
func (OpenMediaLibrary) Kind() string        { return "open_media_library" }
func (CloseMediaLibrary) Kind() string       { return "close_media_library" }
func (OpenThemePanel) Kind() string          { return "open_theme_panel" }
func (CloseThemePanel) Kind() string         { return "close_theme_panel" }
func (Undo) Kind() string                    { return "undo" }
func (Redo) Kind() string                    { return "redo" }

// Mutates reports whether intent changes the document and therefore
// participates in history and dirtiness.
func Mutates(intent Intent) bool {
	switch intent.(type) {
	case AddSection, AddSectionByType, RemoveSection, DuplicateSection,
		ReorderSections, UpdateSection, ToggleSectionVisibility,
		ApplyTemplate, ApplyTheme, ApplyThemeTokens, ApplyBindings,
		RestoreRevision, Undo, Redo:
		return true
	}
	return false
}
