package session

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/commands"
	projectcmd "github.com/goliatone/go-site-builder/internal/commands/project"
	"github.com/goliatone/go-site-builder/internal/editor"
	"github.com/goliatone/go-site-builder/internal/layout"
	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/internal/media"
	"github.com/goliatone/go-site-builder/internal/revisions"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

var (
	// ErrWeddingIDRequired indicates a controller was created without a wedding.
	ErrWeddingIDRequired = errors.New("session: wedding id is required")
	// ErrNoProject indicates an operation that needs a loaded document.
	ErrNoProject = errors.New("session: no project loaded")
	// ErrMediaUnavailable indicates no media service is configured.
	ErrMediaUnavailable = errors.New("session: media service unavailable")
)

// RevisionLog is the revision history the controller records into and lists.
type RevisionLog interface {
	projectcmd.RevisionLog
	List(ctx context.Context, weddingID string) ([]revisions.Revision, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the session logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithReducer replaces the default reducer.
func WithReducer(reducer *editor.Reducer) Option {
	return func(c *Controller) {
		if reducer != nil {
			c.reducer = reducer
		}
	}
}

// WithAdapter replaces the layout adapter used to serialise documents.
func WithAdapter(adapter *layout.Adapter) Option {
	return func(c *Controller) {
		if adapter != nil {
			c.adapter = adapter
		}
	}
}

// WithClock overrides the clock used for save timestamps and events.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithActor names the user recorded on revisions.
func WithActor(actor string) Option {
	return func(c *Controller) {
		c.actor = strings.TrimSpace(actor)
	}
}

// WithPersister sets the persistence collaborator.
func WithPersister(persister interfaces.ProjectPersister) Option {
	return func(c *Controller) {
		c.persister = persister
	}
}

// WithPublisher sets the publish collaborator.
func WithPublisher(publisher interfaces.Publisher) Option {
	return func(c *Controller) {
		c.publisher = publisher
	}
}

// WithRevisionLog enables revision recording, listing and rollback.
func WithRevisionLog(log RevisionLog) Option {
	return func(c *Controller) {
		c.revisions = log
	}
}

// WithMediaService sets the media service used by the media operations.
func WithMediaService(service *media.Service) Option {
	return func(c *Controller) {
		c.media = service
	}
}

// WithAutosaveInterval sets the autosave period. Zero disables Run.
func WithAutosaveInterval(interval time.Duration) Option {
	return func(c *Controller) {
		if interval >= 0 {
			c.autosaveInterval = interval
		}
	}
}

// WithCommandTimeout bounds each save, publish and rollback command.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		if timeout > 0 {
			c.commandTimeout = timeout
		}
	}
}

// WithFeatureGates forwards revision gates to the command handlers.
func WithFeatureGates(gates projectcmd.FeatureGates) Option {
	return func(c *Controller) {
		c.gates = gates
	}
}

// WithAutoPublish toggles the publish-on-load flow.
func WithAutoPublish(enabled bool) Option {
	return func(c *Controller) {
		c.autoPublish = enabled
	}
}

// WithPublishNow marks the session as opened with a publish-now request.
func WithPublishNow(requested bool) Option {
	return func(c *Controller) {
		c.publishNowPending = requested
	}
}

// Controller owns the editor state of one wedding and coordinates save,
// publish, rollback and media side effects around it. All methods are safe
// for concurrent use.
type Controller struct {
	mu      sync.Mutex
	state   editor.State
	reducer *editor.Reducer
	adapter *layout.Adapter

	weddingID string
	actor     string
	logger    interfaces.Logger
	now       func() time.Time
	events    *broadcaster

	persister      interfaces.ProjectPersister
	publisher      interfaces.Publisher
	revisions      RevisionLog
	media          *media.Service
	gates          projectcmd.FeatureGates
	commandTimeout time.Duration

	saveHandler     command.Commander[projectcmd.SaveProjectCommand]
	publishHandler  command.Commander[projectcmd.PublishProjectCommand]
	rollbackHandler command.Commander[projectcmd.RollbackProjectCommand]

	autosaveInterval  time.Duration
	autoPublish       bool
	publishNowPending bool

	saving     *flight
	publishing *flight
}

// New constructs a controller for weddingID.
func New(weddingID string, opts ...Option) (*Controller, error) {
	weddingID = strings.TrimSpace(weddingID)
	if weddingID == "" {
		return nil, ErrWeddingIDRequired
	}
	c := &Controller{
		state:          editor.NewState(),
		weddingID:      weddingID,
		logger:         logging.NoOp(),
		now:            time.Now,
		events:         newBroadcaster(),
		autoPublish:    true,
		commandTimeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.adapter == nil {
		c.adapter = layout.NewAdapter(layout.WithClock(c.now))
	}
	if c.reducer == nil {
		c.reducer = editor.NewReducer(editor.WithSectionFactory(c.adapter), editor.WithClock(c.now), editor.WithLogger(c.logger))
	}
	c.logger = logging.WithFields(c.logger, map[string]any{"wedding_id": weddingID})

	// a nil RevisionLog must reach the handlers as an untyped nil
	var log projectcmd.RevisionLog
	if c.revisions != nil {
		log = c.revisions
	}
	c.saveHandler = projectcmd.NewSaveProjectHandler(c.persister, log, c.logger, c.gates,
		commands.WithTimeout[projectcmd.SaveProjectCommand](c.commandTimeout))
	c.publishHandler = projectcmd.NewPublishProjectHandler(c.publisher, log, c.logger, c.gates,
		commands.WithTimeout[projectcmd.PublishProjectCommand](c.commandTimeout))
	c.rollbackHandler = projectcmd.NewRollbackProjectHandler(log, c.logger, c.gates,
		commands.WithTimeout[projectcmd.RollbackProjectCommand](c.commandTimeout))
	return c, nil
}

// WeddingID returns the wedding this session edits.
func (c *Controller) WeddingID() string {
	return c.weddingID
}

// Load replaces the document and content record and applies bindings.
func (c *Controller) Load(project *document.Project, data *document.WeddingData) editor.State {
	return c.Dispatch(editor.LoadProject{Project: project, WeddingData: data})
}

// Dispatch applies intent and returns the resulting state. The returned value
// shares structure with the controller and must be treated as read-only; use
// State for an independent copy.
func (c *Controller) Dispatch(intent editor.Intent) editor.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apply(intent)
}

// State returns a deep copy of the current editor state.
func (c *Controller) State() editor.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneState(c.state)
}

// Subscribe streams status events until ctx is done.
func (c *Controller) Subscribe(ctx context.Context) <-chan Event {
	return c.events.subscribe(ctx)
}

// apply must be called with mu held.
func (c *Controller) apply(intent editor.Intent) editor.State {
	c.state = c.reducer.Reduce(c.state, intent)
	return c.state
}

func (c *Controller) emit(kind EventKind, mutate func(*Event)) {
	evt := Event{Kind: kind, WeddingID: c.weddingID, At: c.now()}
	if mutate != nil {
		mutate(&evt)
	}
	c.events.broadcast(evt)
}

func cloneState(state editor.State) editor.State {
	out := state
	out.Project = state.Project.Clone()
	out.WeddingData = state.WeddingData.Clone()
	out.History = editor.History{
		Past:   cloneSnapshots(state.History.Past),
		Future: cloneSnapshots(state.History.Future),
	}
	out.MediaAssets = make([]document.MediaAsset, len(state.MediaAssets))
	for i, asset := range state.MediaAssets {
		out.MediaAssets[i] = asset.Clone()
	}
	out.UploadQueue = slices.Clone(state.UploadQueue)
	return out
}

func cloneSnapshots(entries []editor.Snapshot) []editor.Snapshot {
	if entries == nil {
		return nil
	}
	out := make([]editor.Snapshot, len(entries))
	for i, entry := range entries {
		out[i] = editor.Snapshot{Label: entry.Label, Project: entry.Project.Clone()}
	}
	return out
}

// flight lets concurrent callers share one in-progress operation.
type flight struct {
	done chan struct{}
	err  error
}

func newFlight() *flight {
	return &flight{done: make(chan struct{})}
}

func (f *flight) finish(err error) {
	f.err = err
	close(f.done)
}

func (f *flight) wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// failureMessage returns the collaborator's own message for err.
func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	return commands.Cause(err).Error()
}
