package editor

import (
	"slices"

	"github.com/goliatone/go-site-builder/document"
)

// DefaultMaxHistory bounds the undo stack when no limit is configured.
const DefaultMaxHistory = 50

// Snapshot is an independent copy of the project taken around an edit,
// labelled with the edit that produced the transition.
type Snapshot struct {
	Label   string
	Project *document.Project
}

// History holds the linear undo and redo stacks. The last element of each
// slice is the next entry to pop.
type History struct {
	Past   []Snapshot
	Future []Snapshot
}

// push records a pre-edit snapshot, evicting the oldest entries beyond
// capacity. Any redo entries are discarded.
func (h History) push(entry Snapshot, capacity int) History {
	if capacity <= 0 {
		capacity = DefaultMaxHistory
	}
	past := append(slices.Clone(h.Past), entry)
	if over := len(past) - capacity; over > 0 {
		past = slices.Clone(past[over:])
	}
	return History{Past: past}
}

// undo pops the most recent past entry and stores current on the redo stack.
func (h History) undo(current *document.Project) (History, Snapshot, bool) {
	if len(h.Past) == 0 {
		return h, Snapshot{}, false
	}
	last := h.Past[len(h.Past)-1]
	next := History{
		Past:   slices.Clone(h.Past[:len(h.Past)-1]),
		Future: append(slices.Clone(h.Future), Snapshot{Label: last.Label, Project: current.Clone()}),
	}
	return next, last, true
}

// redo pops the most recent future entry and stores current on the undo stack.
func (h History) redo(current *document.Project) (History, Snapshot, bool) {
	if len(h.Future) == 0 {
		return h, Snapshot{}, false
	}
	last := h.Future[len(h.Future)-1]
	next := History{
		Past:   append(slices.Clone(h.Past), Snapshot{Label: last.Label, Project: current.Clone()}),
		Future: slices.Clone(h.Future[:len(h.Future)-1]),
	}
	return next, last, true
}
