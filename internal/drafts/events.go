package drafts

import (
	"context"
	"sync"
)

// subscriberBuffer is how many events a slow subscriber may lag before
// further events are dropped for it.
const subscriberBuffer = 8

// changeBroadcaster fans draft changes out to subscribers. Delivery is best
// effort.
type changeBroadcaster struct {
	mu   sync.Mutex
	subs map[*chan ChangeEvent]struct{}
}

func newChangeBroadcaster() *changeBroadcaster {
	return &changeBroadcaster{subs: map[*chan ChangeEvent]struct{}{}}
}

func (b *changeBroadcaster) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ch := make(chan ChangeEvent, subscriberBuffer)
	if ctx.Err() != nil {
		close(ch)
		return ch, nil
	}

	b.mu.Lock()
	b.subs[&ch] = struct{}{}
	b.mu.Unlock()

	context.AfterFunc(ctx, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, &ch)
		close(ch)
	})
	return ch, nil
}

// Broadcast holds the lock while sending so a subscriber cannot be closed
// mid-send.
func (b *changeBroadcaster) Broadcast(evt ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case *sub <- evt:
		default:
		}
	}
}
