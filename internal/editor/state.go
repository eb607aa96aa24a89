package editor

import "github.com/goliatone/go-site-builder/document"

// Mode toggles between editing and previewing the document.
type Mode string

const (
	ModeEdit    Mode = "edit"
	ModePreview Mode = "preview"
)

// Viewport is the preview device width.
type Viewport string

const (
	ViewportDesktop Viewport = "desktop"
	ViewportTablet  Viewport = "tablet"
	ViewportMobile  Viewport = "mobile"
)

// SaveStatus moves idle -> saving -> idle|error.
type SaveStatus string

const (
	SaveIdle   SaveStatus = "idle"
	SaveSaving SaveStatus = "saving"
	SaveError  SaveStatus = "error"
)

// PublishStatus moves idle -> publishing -> published|error.
type PublishStatus string

const (
	PublishIdle       PublishStatus = "idle"
	PublishPublishing PublishStatus = "publishing"
	PublishError      PublishStatus = "error"
	PublishPublished  PublishStatus = "published"
)

// Selection tracks the page and sections the user is pointing at.
type Selection struct {
	ActivePageID      string
	SelectedSectionID string
	HoveredSectionID  string
}

// Panels records which editor side panels are open.
type Panels struct {
	TemplateGallery            bool
	MediaLibrary               bool
	ThemePalette               bool
	MediaPickerTargetSectionID string
}

// State is the full editor state. Values are treated as immutable: Reduce
// never writes through the slices or pointers of the state it receives.
type State struct {
	Project       *document.Project
	WeddingData   *document.WeddingData
	Mode          Mode
	Viewport      Viewport
	Selection     Selection
	History       History
	Dirty         bool
	SaveStatus    SaveStatus
	PublishStatus PublishStatus
	Error         string
	LastSavedAt   string
	Panels        Panels
	MediaAssets   []document.MediaAsset
	UploadQueue   []document.UploadProgress

	// ChangeSeq increases on every document change. MarkSaved only clears
	// Dirty when it acknowledges the current sequence.
	ChangeSeq uint64
}

// NewState returns the initial state with no project loaded.
func NewState() State {
	return State{
		Mode:          ModeEdit,
		Viewport:      ViewportDesktop,
		SaveStatus:    SaveIdle,
		PublishStatus: PublishIdle,
		MediaAssets:   []document.MediaAsset{},
		UploadQueue:   []document.UploadProgress{},
	}
}

// Loaded reports whether a project is present.
func (s State) Loaded() bool {
	return s.Project != nil
}
