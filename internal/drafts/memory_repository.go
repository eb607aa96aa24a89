package drafts

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// MemoryRepository stores drafts in-memory for tests and previews.
type MemoryRepository struct {
	mu          sync.RWMutex
	drafts      map[string]Draft
	opts        options
	broadcaster *changeBroadcaster
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository(opts ...Option) *MemoryRepository {
	return &MemoryRepository{
		drafts:      make(map[string]Draft),
		opts:        buildOptions(opts),
		broadcaster: newChangeBroadcaster(),
	}
}

// List returns the stored drafts ordered by project id.
func (r *MemoryRepository) List(context.Context) ([]Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Draft, 0, len(r.drafts))
	for _, draft := range r.drafts {
		out = append(out, cloneDraft(draft))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ProjectID < out[j].ProjectID
	})
	return out, nil
}

// Get retrieves the draft of a project.
func (r *MemoryRepository) Get(_ context.Context, projectID string) (*Draft, error) {
	trimmed := strings.TrimSpace(projectID)
	if trimmed == "" {
		return nil, ErrProjectIDRequired
	}

	r.mu.RLock()
	draft, ok := r.drafts[trimmed]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrDraftNotFound
	}
	cloned := cloneDraft(draft)
	return &cloned, nil
}

// Save writes the working copy, keeping any published snapshot.
func (r *MemoryRepository) Save(_ context.Context, project *document.Project, data *document.WeddingData) error {
	id, err := projectKey(project)
	if err != nil {
		return err
	}

	r.mu.Lock()
	draft := r.drafts[id]
	draft.ProjectID = id
	draft.WeddingID = project.WeddingID
	draft.Project = project.Clone()
	draft.WeddingData = data.Clone()
	draft.UpdatedAt = r.opts.now().UTC()
	r.drafts[id] = draft
	r.mu.Unlock()

	r.broadcaster.Broadcast(newChangeEvent(ChangeSaved, draft))
	return nil
}

// Publish snapshots the saved working copy as the next published version.
func (r *MemoryRepository) Publish(_ context.Context, projectID string) (interfaces.PublishResult, error) {
	trimmed := strings.TrimSpace(projectID)
	if trimmed == "" {
		return interfaces.PublishResult{}, ErrProjectIDRequired
	}

	r.mu.Lock()
	draft, ok := r.drafts[trimmed]
	if !ok {
		r.mu.Unlock()
		return interfaces.PublishResult{}, ErrDraftNotFound
	}
	now := r.opts.now()
	version := draft.PublishedVersion + 1
	publishedAt := document.Timestamp(now)
	draft.Published = publishSnapshot(draft, version, publishedAt)
	draft.PublishedVersion = version
	draft.PublishedAt = publishedAt
	draft.UpdatedAt = now.UTC()
	r.drafts[trimmed] = draft
	r.mu.Unlock()

	r.broadcaster.Broadcast(newChangeEvent(ChangePublished, draft))
	return interfaces.PublishResult{Version: version, PublishedAt: publishedAt}, nil
}

// Delete removes a draft.
func (r *MemoryRepository) Delete(_ context.Context, projectID string) error {
	trimmed := strings.TrimSpace(projectID)
	if trimmed == "" {
		return ErrProjectIDRequired
	}

	r.mu.Lock()
	draft, ok := r.drafts[trimmed]
	if !ok {
		r.mu.Unlock()
		return ErrDraftNotFound
	}
	delete(r.drafts, trimmed)
	r.mu.Unlock()

	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, draft))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}
