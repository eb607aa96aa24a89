package drafts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// ErrDraftNotFound indicates that no draft has been saved for a project.
var ErrDraftNotFound = errors.New("drafts: draft not found")

// ErrProjectIDRequired indicates that operations require a project id.
var ErrProjectIDRequired = errors.New("drafts: project id is required")

// Draft is the saved working copy of a project together with its last
// published snapshot.
type Draft struct {
	ProjectID        string
	WeddingID        string
	Project          *document.Project
	WeddingData      *document.WeddingData
	Published        *document.Project
	PublishedVersion int
	PublishedAt      string
	UpdatedAt        time.Time
}

// Repository stores drafts and acts as the persistence and publish
// collaborator of an editing session.
type Repository interface {
	interfaces.ProjectPersister
	interfaces.Publisher
	List(ctx context.Context) ([]Draft, error)
	Get(ctx context.Context, projectID string) (*Draft, error)
	Delete(ctx context.Context, projectID string) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates draft change events.
type ChangeType string

const (
	// ChangeSaved indicates the working copy was written.
	ChangeSaved ChangeType = "saved"
	// ChangePublished indicates a new published snapshot.
	ChangePublished ChangeType = "published"
	// ChangeDeleted indicates a draft was removed.
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports draft mutations to interested subscribers.
type ChangeEvent struct {
	Type  ChangeType
	Draft Draft
}

// Option configures a repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for update and publish timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func cloneDraft(draft Draft) Draft {
	cloned := draft
	cloned.Project = draft.Project.Clone()
	cloned.WeddingData = draft.WeddingData.Clone()
	cloned.Published = draft.Published.Clone()
	return cloned
}

func newChangeEvent(changeType ChangeType, draft Draft) ChangeEvent {
	return ChangeEvent{
		Type:  changeType,
		Draft: cloneDraft(draft),
	}
}

func projectKey(project *document.Project) (string, error) {
	if project == nil {
		return "", ErrProjectIDRequired
	}
	id := strings.TrimSpace(project.ID)
	if id == "" {
		return "", ErrProjectIDRequired
	}
	return id, nil
}

// publishSnapshot returns the published copy of draft's project at version.
func publishSnapshot(draft Draft, version int, publishedAt string) *document.Project {
	snapshot := draft.Project.Clone()
	snapshot.PublishedVersion = &version
	snapshot.PublishStatus = document.PublishStatusPublished
	snapshot.LastPublishedAt = publishedAt
	return snapshot
}
