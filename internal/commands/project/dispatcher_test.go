package projectcmd

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/logging"
)

// flakyPersister fails the first failures calls.
type flakyPersister struct {
	mu       sync.Mutex
	failures int
	attempts int
}

func (p *flakyPersister) Save(context.Context, *document.Project, *document.WeddingData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts++
	if p.attempts <= p.failures {
		return errors.New("storage unavailable")
	}
	return nil
}

func (p *flakyPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}

// Both cases subscribe to the same message type, so they run sequentially.
func TestDispatchedSave(t *testing.T) {
	t.Run("retries until success", func(t *testing.T) {
		persister := &flakyPersister{failures: 1}
		handler := NewSaveProjectHandler(persister, newLog(), logging.NoOp(), FeatureGates{})
		sub := dispatcher.SubscribeCommand[SaveProjectCommand](handler, runner.WithMaxRetries(1))
		defer sub.Unsubscribe()

		result := &SaveResult{}
		msg := SaveProjectCommand{WeddingID: "w1", Project: newProject(), Result: result}
		if err := dispatcher.Dispatch(context.Background(), msg); err != nil {
			t.Fatalf("dispatch: expected success after retry, got %v", err)
		}
		if got := persister.count(); got != 2 {
			t.Fatalf("expected 2 attempts (initial + retry), got %d", got)
		}
		if result.Revision == nil {
			t.Fatal("expected the successful attempt to record a revision")
		}
	})

	t.Run("exhausted retries surface the error", func(t *testing.T) {
		persister := &flakyPersister{failures: 10}
		handler := NewSaveProjectHandler(persister, nil, logging.NoOp(), FeatureGates{})
		sub := dispatcher.SubscribeCommand[SaveProjectCommand](handler, runner.WithMaxRetries(2))
		defer sub.Unsubscribe()

		err := dispatcher.Dispatch(context.Background(), SaveProjectCommand{WeddingID: "w1", Project: newProject()})
		if err == nil {
			t.Fatal("expected dispatcher to return error after exhausting retries")
		}
		if got := persister.count(); got != 3 {
			t.Fatalf("expected 3 attempts (initial + 2 retries), got %d", got)
		}
	})
}
