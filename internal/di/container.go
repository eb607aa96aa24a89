package di

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-site-builder/document"
	projectcmd "github.com/goliatone/go-site-builder/internal/commands/project"
	"github.com/goliatone/go-site-builder/internal/drafts"
	"github.com/goliatone/go-site-builder/internal/editor"
	"github.com/goliatone/go-site-builder/internal/identity"
	"github.com/goliatone/go-site-builder/internal/layout"
	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/internal/logging/console"
	"github.com/goliatone/go-site-builder/internal/logging/gologger"
	"github.com/goliatone/go-site-builder/internal/logging/zaplogger"
	"github.com/goliatone/go-site-builder/internal/media"
	"github.com/goliatone/go-site-builder/internal/revisions"
	"github.com/goliatone/go-site-builder/internal/runtimeconfig"
	"github.com/goliatone/go-site-builder/internal/sections"
	"github.com/goliatone/go-site-builder/internal/session"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// Container wires the builder collaborators from runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	bunDB          *bun.DB
	now            func() time.Time

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	persister     interfaces.ProjectPersister
	publisher     interfaces.Publisher
	mediaProvider interfaces.MediaProvider

	drafts           drafts.Repository
	revisionStore    revisions.Store
	ownsStore        bool
	durableRevisions bool
	revisionLog      *revisions.Log

	adapter   *layout.Adapter
	mediaSvc  *media.Service
	renderers *sections.Registry
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB stores drafts, and revisions unless another backend is
// configured, in the supplied database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache fronts the Bun revision store with a repository cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithPersister overrides the draft repository as the save collaborator.
func WithPersister(persister interfaces.ProjectPersister) Option {
	return func(c *Container) {
		if persister != nil {
			c.persister = persister
		}
	}
}

// WithPublisher overrides the draft repository as the publish collaborator.
func WithPublisher(publisher interfaces.Publisher) Option {
	return func(c *Container) {
		if publisher != nil {
			c.publisher = publisher
		}
	}
}

// WithMediaProvider enables the media library.
func WithMediaProvider(provider interfaces.MediaProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.mediaProvider = provider
		}
	}
}

// WithDrafts overrides the draft repository.
func WithDrafts(repo drafts.Repository) Option {
	return func(c *Container) {
		if repo != nil {
			c.drafts = repo
		}
	}
}

// WithRevisionStore bypasses Config.Revisions store selection.
func WithRevisionStore(store revisions.Store) Option {
	return func(c *Container) {
		if store != nil {
			c.revisionStore = store
		}
	}
}

// WithRenderers replaces the built-in section component registry.
func WithRenderers(registry *sections.Registry) Option {
	return func(c *Container) {
		if registry != nil {
			c.renderers = registry
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer validates cfg and builds the collaborators it describes.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.adapter = layout.NewAdapter(layout.WithClock(c.now))
	if c.renderers == nil {
		c.renderers = sections.NewDefaultRegistry()
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	if err := c.configureDrafts(ctx); err != nil {
		return nil, err
	}
	if err := c.configureRevisions(ctx); err != nil {
		return nil, err
	}
	c.configureMedia()
	return c, nil
}

const setupTimeout = 10 * time.Second

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	case "zap":
		provider, err := zaplogger.NewProvider(zaplogger.Config{
			Level:    cfg.Level,
			Encoding: cfg.Format,
		})
		if err != nil {
			return fmt.Errorf("di: configure zap: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{TimeFunc: c.now}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureDrafts(ctx context.Context) error {
	if c.drafts == nil {
		if c.bunDB != nil {
			repo := drafts.NewBunRepository(c.bunDB, drafts.WithClock(c.now))
			if err := repo.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("di: ensure drafts schema: %w", err)
			}
			c.drafts = repo
		} else {
			c.drafts = drafts.NewMemoryRepository(drafts.WithClock(c.now))
		}
	}
	if c.persister == nil {
		c.persister = c.drafts
	}
	if c.publisher == nil {
		c.publisher = c.drafts
	}
	return nil
}

func (c *Container) configureRevisions(ctx context.Context) error {
	logger := logging.RevisionsLogger(c.loggerProvider)
	cfg := c.Config.Revisions
	backend := strings.ToLower(strings.TrimSpace(cfg.Store))

	switch {
	case c.revisionStore != nil:
	case c.bunDB != nil && (backend == "" || backend == revisions.BackendMemory):
		c.configureCacheDefaults()
		store := revisions.NewSQLStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("di: ensure revisions schema: %w", err)
		}
		c.revisionStore = store
		c.durableRevisions = true
	default:
		c.revisionStore, c.durableRevisions = revisions.OpenStore(ctx, revisions.StoreConfig{
			Backend:  cfg.Store,
			RedisURL: cfg.RedisURL,
			DSN:      cfg.DSN,
			CacheTTL: cfg.CacheTTL,
		}, logger)
		c.ownsStore = true
	}

	c.revisionLog = revisions.NewLog(c.revisionStore,
		revisions.WithMaxRetained(cfg.MaxRetained),
		revisions.WithListLimit(cfg.ListLimit),
		revisions.WithLogger(logger),
		revisions.WithNow(c.now),
	)
	logger.Debug("revisions.configured", "durable", c.durableRevisions)
	return nil
}

func (c *Container) configureCacheDefaults() {
	if c.Config.Revisions.CacheTTL <= 0 {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		cfg.TTL = c.Config.Revisions.CacheTTL
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureMedia() {
	if c.mediaProvider == nil {
		return
	}
	limits := media.DefaultLimits()
	limits.MaxAssets = c.Config.Media.MaxAssets
	limits.MaxFileSizeBytes = c.Config.Media.MaxFileSizeBytes()
	if len(c.Config.Media.SupportedImageTypes) > 0 {
		limits.SupportedTypes = append([]string(nil), c.Config.Media.SupportedImageTypes...)
	}
	c.mediaSvc = media.NewService(c.mediaProvider,
		media.WithLimits(limits),
		media.WithLogger(logging.MediaLogger(c.loggerProvider)),
	)
}

// NewSession builds an editing session wired to the container collaborators.
// Options supplied by the caller take precedence.
func (c *Container) NewSession(weddingID string, opts ...session.Option) (*session.Controller, error) {
	reducer := editor.NewReducer(
		editor.WithSectionFactory(c.adapter),
		editor.WithClock(c.now),
		editor.WithMaxHistory(c.Config.Editor.MaxHistoryEntries),
		editor.WithMaxSectionsPerPage(c.Config.Editor.MaxSectionsPerPage),
		editor.WithLogger(logging.EditorLogger(c.loggerProvider)),
	)

	autosave := time.Duration(0)
	if c.Config.Autosave.Enabled {
		autosave = c.Config.Autosave.Interval
	}
	revisionsEnabled := c.Config.Features.Revisions

	base := []session.Option{
		session.WithLogger(logging.SessionLogger(c.loggerProvider)),
		session.WithClock(c.now),
		session.WithAdapter(c.adapter),
		session.WithReducer(reducer),
		session.WithPersister(c.persister),
		session.WithPublisher(c.publisher),
		session.WithRevisionLog(c.revisionLog),
		session.WithAutosaveInterval(autosave),
		session.WithCommandTimeout(c.Config.Commands.Timeout),
		session.WithAutoPublish(c.Config.Features.AutoPublish),
		session.WithFeatureGates(projectcmd.FeatureGates{
			RevisionsEnabled: func() bool { return revisionsEnabled },
		}),
	}
	if c.mediaSvc != nil {
		base = append(base, session.WithMediaService(c.mediaSvc))
	}
	return session.New(weddingID, append(base, opts...)...)
}

// OpenSession starts a session on the stored draft of weddingID, or on an
// empty project when nothing has been saved yet. data replaces the stored
// content record when supplied.
func (c *Container) OpenSession(ctx context.Context, weddingID string, data *document.WeddingData, opts ...session.Option) (*session.Controller, error) {
	ctrl, err := c.NewSession(weddingID, opts...)
	if err != nil {
		return nil, err
	}

	var project *document.Project
	draft, err := c.drafts.Get(ctx, identity.ProjectID(ctrl.WeddingID()))
	switch {
	case err == nil:
		project = draft.Project
		if data == nil {
			data = draft.WeddingData
		}
	case errors.Is(err, drafts.ErrDraftNotFound):
		project = c.adapter.NewEmptyProject(ctrl.WeddingID(), "")
	default:
		return nil, fmt.Errorf("di: load draft: %w", err)
	}

	ctrl.Load(project, data)
	return ctrl, nil
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) Drafts() drafts.Repository {
	return c.drafts
}

func (c *Container) RevisionLog() *revisions.Log {
	return c.revisionLog
}

// DurableRevisions reports whether revisions survive a restart.
func (c *Container) DurableRevisions() bool {
	return c.durableRevisions
}

func (c *Container) MediaService() *media.Service {
	return c.mediaSvc
}

func (c *Container) Adapter() *layout.Adapter {
	return c.adapter
}

// Renderers resolves section components for previews.
func (c *Container) Renderers() *sections.Registry {
	return c.renderers
}

// Close releases the revision store opened from configuration and flushes
// buffered log output. Host supplied databases are left open.
func (c *Container) Close() error {
	var errs []error
	if c.ownsStore {
		store := c.revisionStore
		if cached, ok := store.(*revisions.CachedStore); ok {
			store = cached.Unwrap()
		}
		if closer, ok := store.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	}
	if syncer, ok := c.loggerProvider.(interfaces.SyncingProvider); ok {
		// stdout sync fails on some platforms
		_ = syncer.Sync()
	}
	return errors.Join(errs...)
}
