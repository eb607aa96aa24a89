package sitebuilder

import (
	"context"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/bindings"
	"github.com/goliatone/go-site-builder/internal/di"
	"github.com/goliatone/go-site-builder/internal/drafts"
	"github.com/goliatone/go-site-builder/internal/editor"
	"github.com/goliatone/go-site-builder/internal/layout"
	"github.com/goliatone/go-site-builder/internal/markdown"
	"github.com/goliatone/go-site-builder/internal/media"
	"github.com/goliatone/go-site-builder/internal/revisions"
	"github.com/goliatone/go-site-builder/internal/session"
	"github.com/goliatone/go-site-builder/internal/themes"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// Session exports the editing session controller.
type Session = session.Controller

// SessionOption exports session overrides accepted by OpenSession.
type SessionOption = session.Option

// SessionEvent exports session status notifications.
type SessionEvent = session.Event

// EditorState exports the editor state returned by sessions.
type EditorState = editor.State

// Intent exports the editor intent contract.
type Intent = editor.Intent

// DraftRepository exports the draft store contract.
type DraftRepository = drafts.Repository

// Revision exports a recorded project revision.
type Revision = revisions.Revision

// Story exports a parsed couple story document.
type Story = markdown.Story

// MediaService exports the media library service.
type MediaService = *media.Service

// PublishIssue exports the publish readiness issue.
type PublishIssue = session.Issue

// Option exports container overrides.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithBunDB          = di.WithBunDB
	WithCache          = di.WithCache
	WithPersister      = di.WithPersister
	WithPublisher      = di.WithPublisher
	WithMediaProvider  = di.WithMediaProvider
	WithDrafts         = di.WithDrafts
	WithRevisionStore  = di.WithRevisionStore
	WithRenderers      = di.WithRenderers
	WithClock          = di.WithClock
)

// Module represents the top level site builder runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a builder module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// NewSession builds a session without loading a document.
func (m *Module) NewSession(weddingID string, opts ...SessionOption) (*Session, error) {
	return m.container.NewSession(weddingID, opts...)
}

// OpenSession resumes the stored draft of weddingID, or starts an empty
// project when none exists.
func (m *Module) OpenSession(ctx context.Context, weddingID string, data *document.WeddingData, opts ...SessionOption) (*Session, error) {
	return m.container.OpenSession(ctx, weddingID, data, opts...)
}

func (m *Module) Drafts() DraftRepository {
	return m.container.Drafts()
}

// Revisions lists the retained revisions of weddingID, newest first.
func (m *Module) Revisions(ctx context.Context, weddingID string) ([]Revision, error) {
	return m.container.RevisionLog().List(ctx, weddingID)
}

func (m *Module) Media() MediaService {
	return m.container.MediaService()
}

// Renderers exposes the section component registry used for previews.
func (m *Module) Renderers() interfaces.ComponentResolver {
	return m.container.Renderers()
}

func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Close releases resources opened from configuration.
func (m *Module) Close() error {
	return m.container.Close()
}

// Upgrade converts a legacy layout configuration into a project.
func Upgrade(weddingID string, cfg document.LayoutConfig) *document.Project {
	return layout.Upgrade(weddingID, cfg)
}

// Downgrade converts a project into the legacy layout configuration.
func Downgrade(project *document.Project) document.LayoutConfig {
	return layout.Downgrade(project)
}

// Serialize normalises a project for persistence.
func Serialize(project *document.Project) *document.Project {
	return layout.Serialize(project)
}

// ApplyBindings refreshes every section binding of project from data. A nil
// data returns project unchanged.
func ApplyBindings(project *document.Project, data *document.WeddingData) *document.Project {
	return bindings.ApplyProject(project, data)
}

// CheckPublish reports the first problem that blocks publishing, or nil.
func CheckPublish(project *document.Project) *PublishIssue {
	return session.PublishIssue(project)
}

// ParseStory reads a couple story document with YAML front matter.
func ParseStory(source []byte) (markdown.Story, error) {
	return markdown.ParseStory(source)
}

// PublishHints returns remediation hints for a publish error message.
func PublishHints(message string) []string {
	return session.PublishHints(message)
}

// ResolveTheme returns the theme tokens project renders with.
func ResolveTheme(project *document.Project) document.ThemeTokens {
	return themes.Resolve(project)
}
