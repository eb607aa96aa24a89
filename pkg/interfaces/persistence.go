package interfaces

import (
	"context"

	"github.com/goliatone/go-site-builder/document"
)

// ProjectPersister stores the project and, optionally, the content record.
// Any returned error is treated as a failed save and its message is surfaced
// to the user.
type ProjectPersister interface {
	Save(ctx context.Context, project *document.Project, data *document.WeddingData) error
}

// ProjectPersisterFunc adapts a function to ProjectPersister.
type ProjectPersisterFunc func(ctx context.Context, project *document.Project, data *document.WeddingData) error

func (f ProjectPersisterFunc) Save(ctx context.Context, project *document.Project, data *document.WeddingData) error {
	return f(ctx, project, data)
}

// PublishResult reports the outcome of a successful publish.
type PublishResult struct {
	Version     int    `json:"version"`
	PublishedAt string `json:"publishedAt"`
}

// Publisher makes the saved project publicly visible.
type Publisher interface {
	Publish(ctx context.Context, projectID string) (PublishResult, error)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, projectID string) (PublishResult, error)

func (f PublisherFunc) Publish(ctx context.Context, projectID string) (PublishResult, error) {
	return f(ctx, projectID)
}
