package editor

import "github.com/goliatone/go-site-builder/document"

// UndoRedoState describes what the undo and redo controls should offer.
type UndoRedoState struct {
	CanUndo   bool
	CanRedo   bool
	UndoLabel string
	RedoLabel string
}

// ActivePage returns the page being edited, or nil.
func ActivePage(state State) *document.Page {
	return state.Project.Page(state.Selection.ActivePageID)
}

// SelectedSection returns the selected section on the active page, or nil.
func SelectedSection(state State) *document.Section {
	if state.Selection.SelectedSectionID == "" {
		return nil
	}
	return ActivePage(state).Section(state.Selection.SelectedSectionID)
}

// ActivePageSections returns the active page's sections in paint order.
func ActivePageSections(state State) []*document.Section {
	page := ActivePage(state)
	if page == nil {
		return nil
	}
	return page.Sections
}

// EnabledSections returns the enabled sections of the active page.
func EnabledSections(state State) []*document.Section {
	var out []*document.Section
	for _, section := range ActivePageSections(state) {
		if section != nil && section.Enabled {
			out = append(out, section)
		}
	}
	return out
}

func UndoRedo(state State) UndoRedoState {
	var out UndoRedoState
	if n := len(state.History.Past); n > 0 {
		out.CanUndo = true
		out.UndoLabel = state.History.Past[n-1].Label
	}
	if n := len(state.History.Future); n > 0 {
		out.CanRedo = true
		out.RedoLabel = state.History.Future[n-1].Label
	}
	return out
}

func IsPreview(state State) bool {
	return state.Mode == ModePreview
}

// Busy reports whether a save or publish is in flight.
func Busy(state State) bool {
	return state.SaveStatus == SaveSaving || state.PublishStatus == PublishPublishing
}
