package session

import (
	"context"
	"strings"

	"github.com/goliatone/go-site-builder/internal/editor"
	"github.com/goliatone/go-site-builder/internal/sections"
)

// ShortcutID names an editor keyboard action.
type ShortcutID string

const (
	ShortcutSave     ShortcutID = "save"
	ShortcutUndo     ShortcutID = "undo"
	ShortcutRedo     ShortcutID = "redo"
	ShortcutPreview  ShortcutID = "preview"
	ShortcutDeselect ShortcutID = "deselect"
	ShortcutDelete   ShortcutID = "delete"
)

// Shortcut binds an action to its key combinations.
type Shortcut struct {
	ID    ShortcutID
	Label string
	Keys  []string
}

var shortcuts = []Shortcut{
	{ID: ShortcutSave, Label: "Save Draft", Keys: []string{"Meta+s", "Ctrl+s"}},
	{ID: ShortcutUndo, Label: "Undo", Keys: []string{"Meta+z", "Ctrl+z"}},
	{ID: ShortcutRedo, Label: "Redo", Keys: []string{"Meta+Shift+z", "Ctrl+Shift+z"}},
	{ID: ShortcutPreview, Label: "Toggle Preview", Keys: []string{"Meta+p", "Ctrl+p"}},
	{ID: ShortcutDeselect, Label: "Deselect Section", Keys: []string{"Escape"}},
	{ID: ShortcutDelete, Label: "Delete Section", Keys: []string{"Backspace", "Delete"}},
}

var shortcutKeys = func() map[string]ShortcutID {
	out := map[string]ShortcutID{}
	for _, shortcut := range shortcuts {
		for _, key := range shortcut.Keys {
			out[normalizeKey(key)] = shortcut.ID
		}
	}
	return out
}()

// Shortcuts returns the editor key bindings.
func Shortcuts() []Shortcut {
	out := make([]Shortcut, len(shortcuts))
	for i, shortcut := range shortcuts {
		out[i] = shortcut
		out[i].Keys = append([]string(nil), shortcut.Keys...)
	}
	return out
}

// ShortcutFor resolves a key combination such as "ctrl+shift+Z".
func ShortcutFor(key string) (ShortcutID, bool) {
	id, ok := shortcutKeys[normalizeKey(key)]
	return id, ok
}

var modifierOrder = []string{"Meta", "Ctrl", "Alt", "Shift"}

// normalizeKey orders modifiers canonically and lower-cases single
// character keys.
func normalizeKey(key string) string {
	parts := strings.Split(strings.TrimSpace(key), "+")
	if len(parts) == 0 {
		return ""
	}
	mods := map[string]bool{}
	for _, part := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "meta", "cmd", "command":
			mods["Meta"] = true
		case "ctrl", "control":
			mods["Ctrl"] = true
		case "alt", "option":
			mods["Alt"] = true
		case "shift":
			mods["Shift"] = true
		}
	}
	name := strings.TrimSpace(parts[len(parts)-1])
	if len([]rune(name)) == 1 {
		name = strings.ToLower(name)
	}
	var b strings.Builder
	for _, mod := range modifierOrder {
		if mods[mod] {
			b.WriteString(mod)
			b.WriteByte('+')
		}
	}
	b.WriteString(name)
	return b.String()
}

// HandleShortcut runs the action bound to key. It reports whether the key is
// bound and acted on; deleting is skipped in preview mode, without a selection,
// or when the selected section cannot be deleted.
func (c *Controller) HandleShortcut(ctx context.Context, key string) (bool, error) {
	id, ok := ShortcutFor(key)
	if !ok {
		return false, nil
	}
	switch id {
	case ShortcutSave:
		return true, c.Save(ctx)
	case ShortcutUndo:
		c.Dispatch(editor.Undo{})
	case ShortcutRedo:
		c.Dispatch(editor.Redo{})
	case ShortcutPreview:
		c.mu.Lock()
		mode := editor.ModePreview
		if c.state.Mode == editor.ModePreview {
			mode = editor.ModeEdit
		}
		c.apply(editor.SetMode{Mode: mode})
		c.mu.Unlock()
	case ShortcutDeselect:
		c.Dispatch(editor.SelectSection{})
	case ShortcutDelete:
		c.mu.Lock()
		defer c.mu.Unlock()
		if editor.IsPreview(c.state) {
			return false, nil
		}
		section := editor.SelectedSection(c.state)
		if section == nil || !sections.CanDelete(section) {
			return false, nil
		}
		c.apply(editor.RemoveSection{PageID: c.state.Selection.ActivePageID, SectionID: section.ID})
	}
	return true, nil
}
