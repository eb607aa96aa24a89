package session

import (
	"context"
	"sync"
	"time"
)

// EventKind names a session status change.
type EventKind string

const (
	EventSaveStarted       EventKind = "save_started"
	EventSaveSucceeded     EventKind = "save_succeeded"
	EventSaveFailed        EventKind = "save_failed"
	EventPublishStarted    EventKind = "publish_started"
	EventPublishSucceeded  EventKind = "publish_succeeded"
	EventPublishFailed     EventKind = "publish_failed"
	EventPublishBlocked    EventKind = "publish_blocked"
	EventRollbackSucceeded EventKind = "rollback_succeeded"
	EventAutosaveTick      EventKind = "autosave_tick"
)

// Event describes a status change broadcast to subscribers.
type Event struct {
	Kind       EventKind
	WeddingID  string
	Message    string
	Version    int
	RevisionID string
	At         time.Time
}

const subscriberBuffer = 16

type broadcaster struct {
	mu       sync.Mutex
	watchers map[uint64]chan Event
	nextID   uint64
}

func newBroadcaster() *broadcaster {
	return &broadcaster{watchers: make(map[uint64]chan Event)}
}

func (b *broadcaster) subscribe(ctx context.Context) <-chan Event {
	if ctx == nil {
		ctx = context.Background()
	}
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		if existing, ok := b.watchers[id]; ok {
			delete(b.watchers, id)
			close(existing)
		}
		b.mu.Unlock()
	}()

	return ch
}

// broadcast never blocks; slow subscribers miss events.
func (b *broadcaster) broadcast(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.watchers {
		select {
		case ch <- evt:
		default:
		}
	}
}
