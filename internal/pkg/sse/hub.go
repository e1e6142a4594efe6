package sse

import (
	"sync"
)

// Event is a server-sent event delivered to subscribers of a topic.
type Event struct {
	Topic string
	Event string
	Data  interface{}
}

const subscriberBuffer = 16

// Hub fans events out to subscribers grouped by topic. A topic is an
// opaque string; matrix viewers subscribe to "departmentID|yearMonth"
// so only clients watching the affected scope receive cell changes.
// Delivery is best-effort: a subscriber whose buffer is full misses
// the event and recovers by re-fetching.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a topic and returns the event
// channel together with a cleanup function. The channel is closed by
// cleanup, never by Publish.
func (h *Hub) Subscribe(topic string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)

	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[topic], ch)
		close(ch)
		if len(h.subscribers[topic]) == 0 {
			delete(h.subscribers, topic)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every subscriber of the topic. The send is
// non-blocking; slow subscribers drop events instead of stalling the
// publisher.
func (h *Hub) Publish(topic string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers for a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[topic])
}

// TotalSubscribers returns the number of active subscribers across all topics.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
