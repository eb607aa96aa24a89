package revisions

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-site-builder/document"
)

var (
	ErrKeyNotFound        = errors.New("revisions: key not found")
	ErrRevisionNotFound   = errors.New("revisions: revision not found")
	ErrWeddingIDRequired  = errors.New("revisions: wedding id required")
	ErrProjectRequired    = errors.New("revisions: project required")
	ErrInvalidAction      = errors.New("revisions: invalid action")
	ErrStoreUnavailable   = errors.New("revisions: store unavailable")
	ErrUnsupportedBackend = errors.New("revisions: unsupported store backend")
)

// Action labels why a revision was recorded.
type Action string

const (
	ActionSave     Action = "save"
	ActionPublish  Action = "publish"
	ActionRollback Action = "rollback"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionSave, ActionPublish, ActionRollback:
		return true
	}
	return false
}

// DefaultActor is recorded when no actor is supplied.
const DefaultActor = "system"

// Revision is a persisted, point-in-time snapshot of a project.
type Revision struct {
	ID          string                `json:"id"`
	WeddingID   string                `json:"weddingId"`
	Action      Action                `json:"action"`
	Actor       string                `json:"actor"`
	CreatedAt   string                `json:"createdAtISO"`
	Project     *document.Project     `json:"project"`
	WeddingData *document.WeddingData `json:"weddingData,omitempty"`
}

// Clone returns a deep copy of the revision.
func (r Revision) Clone() Revision {
	cloned := r
	cloned.Project = r.Project.Clone()
	cloned.WeddingData = r.WeddingData.Clone()
	return cloned
}

// RecordInput carries the data captured by Log.Record.
type RecordInput struct {
	WeddingID   string
	Project     *document.Project
	WeddingData *document.WeddingData
	Action      Action
	Actor       string
}

// Store is the byte-oriented persistence port behind the revision log. Read
// returns ErrKeyNotFound when nothing has been written under key.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}

// NotFoundError reports a missing revision.
type NotFoundError struct {
	WeddingID  string
	RevisionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("revision %q not found for %q", e.RevisionID, e.WeddingID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRevisionNotFound
}

func logKey(weddingID string) string {
	return "builder:revisions:" + weddingID
}
