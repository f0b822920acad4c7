package flappy

import "sync"

// EventKind identifies a simulation cue. Presentation layers map these to
// sounds or visual effects.
type EventKind int

const (
	EventJump EventKind = iota
	EventScore
	EventCoin
	EventDeath
	EventMenu
	EventNewBest
	EventRunStart
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventScore:
		return "score"
	case EventCoin:
		return "coin"
	case EventDeath:
		return "death"
	case EventMenu:
		return "menu"
	case EventNewBest:
		return "new_best"
	case EventRunStart:
		return "run_start"
	default:
		return "unknown"
	}
}

// Event is one cue emitted by a Session.
type Event struct {
	Kind  EventKind
	Tick  int
	Score int
	Coins int
	Cause Collision // Set for EventDeath
}

// Handler receives events synchronously on the goroutine driving the session.
type Handler func(Event)

// Bus fans events out to subscribers in subscription order.
type Bus struct {
	mu       sync.Mutex
	next     int
	handlers []subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.handlers = append(b.handlers, subscription{id: id, fn: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers e to every subscriber. Handlers may subscribe or
// unsubscribe while being called.
func (b *Bus) Emit(e Event) {
	b.mu.Lock()
	handlers := make([]subscription, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, s := range handlers {
		s.fn(e)
	}
}
