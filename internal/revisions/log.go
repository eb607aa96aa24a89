package revisions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/identity"
	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

const (
	DefaultMaxRetained = 10
	DefaultListLimit   = 5
)

// LogOption configures a Log.
type LogOption func(*Log)

// WithMaxRetained caps the number of stored revisions per wedding.
func WithMaxRetained(limit int) LogOption {
	return func(l *Log) {
		if limit > 0 {
			l.maxRetained = limit
		}
	}
}

// WithListLimit bounds the slice returned by List.
func WithListLimit(limit int) LogOption {
	return func(l *Log) {
		if limit > 0 {
			l.listLimit = limit
		}
	}
}

// WithLogger sets the logger used for degraded reads.
func WithLogger(logger interfaces.Logger) LogOption {
	return func(l *Log) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithIDGenerator overrides revision id generation.
func WithIDGenerator(fn identity.Generator) LogOption {
	return func(l *Log) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// WithNow overrides the clock.
func WithNow(fn func() time.Time) LogOption {
	return func(l *Log) {
		if fn != nil {
			l.now = fn
		}
	}
}

// Log is the capped, per-wedding revision history. Entries are serialised on
// write and decoded on read, so stored revisions never alias caller values.
type Log struct {
	store       Store
	maxRetained int
	listLimit   int
	newID       identity.Generator
	now         func() time.Time
	logger      interfaces.Logger

	mu sync.Mutex
}

// NewLog builds a log over store, defaulting to a MemoryStore.
func NewLog(store Store, opts ...LogOption) *Log {
	if store == nil {
		store = NewMemoryStore()
	}
	l := &Log{
		store:       store,
		maxRetained: DefaultMaxRetained,
		listLimit:   DefaultListLimit,
		newID:       identity.RevisionID,
		now:         time.Now,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Record snapshots the input, prepends it to the wedding's log and truncates
// the log to the retention cap. The returned revision is the decoded form of
// what was stored.
func (l *Log) Record(ctx context.Context, input RecordInput) (Revision, error) {
	weddingID := strings.TrimSpace(input.WeddingID)
	if weddingID == "" {
		return Revision{}, ErrWeddingIDRequired
	}
	if input.Project == nil {
		return Revision{}, ErrProjectRequired
	}
	if !input.Action.Valid() {
		return Revision{}, fmt.Errorf("%w: %q", ErrInvalidAction, input.Action)
	}
	actor := strings.TrimSpace(input.Actor)
	if actor == "" {
		actor = DefaultActor
	}

	revision := Revision{
		ID:          l.newID(),
		WeddingID:   weddingID,
		Action:      input.Action,
		Actor:       actor,
		CreatedAt:   document.Timestamp(l.now()),
		Project:     input.Project,
		WeddingData: input.WeddingData,
	}
	revision, err := normalize(revision)
	if err != nil {
		return Revision{}, fmt.Errorf("revisions: encode revision: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.load(ctx, weddingID)
	entries = append([]Revision{revision}, entries...)
	if len(entries) > l.maxRetained {
		entries = entries[:l.maxRetained]
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return Revision{}, fmt.Errorf("revisions: encode log: %w", err)
	}
	if err := l.store.Write(ctx, logKey(weddingID), payload); err != nil {
		return Revision{}, fmt.Errorf("revisions: write log: %w", err)
	}

	l.logger.Debug("revisions.recorded",
		"wedding_id", weddingID,
		"revision_id", revision.ID,
		"action", string(revision.Action),
		"retained", len(entries),
	)
	return revision, nil
}

// normalize passes revision through the storage codec so the value handed back
// by Record matches what Get later decodes, open settings maps included.
func normalize(revision Revision) (Revision, error) {
	raw, err := json.Marshal(revision)
	if err != nil {
		return Revision{}, err
	}
	var out Revision
	if err := json.Unmarshal(raw, &out); err != nil {
		return Revision{}, err
	}
	return out, nil
}

// List returns the most recent revisions first, bounded by the list limit.
func (l *Log) List(ctx context.Context, weddingID string) ([]Revision, error) {
	l.mu.Lock()
	entries := l.load(ctx, strings.TrimSpace(weddingID))
	l.mu.Unlock()

	if len(entries) > l.listLimit {
		entries = entries[:l.listLimit]
	}
	return entries, nil
}

// Get returns a copy of one stored revision.
func (l *Log) Get(ctx context.Context, weddingID, revisionID string) (Revision, error) {
	weddingID = strings.TrimSpace(weddingID)
	l.mu.Lock()
	entries := l.load(ctx, weddingID)
	l.mu.Unlock()

	for _, entry := range entries {
		if entry.ID == revisionID {
			return entry, nil
		}
	}
	return Revision{}, &NotFoundError{WeddingID: weddingID, RevisionID: revisionID}
}

// load reads and decodes the stored log. Missing, unreadable, or corrupt data
// yields an empty log.
func (l *Log) load(ctx context.Context, weddingID string) []Revision {
	if weddingID == "" {
		return []Revision{}
	}
	raw, err := l.store.Read(ctx, logKey(weddingID))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			l.logger.Warn("revisions.read.failed", "wedding_id", weddingID, "error", err)
		}
		return []Revision{}
	}
	var entries []Revision
	if err := json.Unmarshal(raw, &entries); err != nil {
		l.logger.Warn("revisions.decode.failed", "wedding_id", weddingID, "error", err)
		return []Revision{}
	}
	valid := make([]Revision, 0, len(entries))
	for _, entry := range entries {
		if entry.ID != "" && entry.Project != nil {
			valid = append(valid, entry)
		}
	}
	return valid
}
