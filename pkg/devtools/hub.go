package devtools

import (
	"sync"

	"github.com/delaneyj/proxyparty/reactivity"
)

const defaultSubscriberBuffer = 100

// Hub fans engine events out to subscribers. Slow subscribers miss events
// instead of blocking the loop.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]chan reactivity.Event
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]chan reactivity.Event),
	}
}

func (h *Hub) Subscribe(buffer int) (<-chan reactivity.Event, func()) {
	if h == nil {
		return nil, func() {}
	}
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		ch := make(chan reactivity.Event)
		close(ch)
		return ch, func() {}
	}
	h.nextID++
	id := h.nextID
	ch := make(chan reactivity.Event, buffer)
	h.subs[id] = ch
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if existing, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(existing)
		}
	}
}

// Broadcast is safe to install as a reactivity observer.
func (h *Hub) Broadcast(ev reactivity.Event) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) Close() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
