package catalog

import "sync"

// EventKind identifies a fetch-state transition.
type EventKind string

const (
	EventFetchStarted    EventKind = "fetch_started"
	EventFetchSucceeded  EventKind = "fetch_succeeded"
	EventFetchFailed     EventKind = "fetch_failed"
	EventValidationError EventKind = "validation_error"
)

// Event is one state transition, keyed by provider identity or draft
// session (see ProviderKey and DraftKey).
type Event struct {
	Key  string    `json:"key"`
	Kind EventKind `json:"kind"`
}

// ProviderKey returns the event key for a persisted provider.
func ProviderKey(name string) string { return "provider/" + name }

// DraftKey returns the event key for a draft session.
func DraftKey(sessionID string) string { return "draft/" + sessionID }

// eventBus fans events out to subscribers. Publishing never blocks: a
// subscriber whose buffer is full misses the event and must re-read state.
type eventBus struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
}

func newEventBus() *eventBus {
	return &eventBus{subs: make(map[int]chan Event)}
}

func (b *eventBus) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if existing, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(existing)
		}
	}
	return ch, cancel
}

func (b *eventBus) publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
