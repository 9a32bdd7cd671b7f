// Package event carries structural-change notifications between the
// engine, the renumber scheduler, and the host: a small synchronous
// topic bus with panic isolation per handler.
package event

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Topics published by the engine.
const (
	TopicListChanged    = "list.changed"
	TopicListRenumbered = "list.renumbered"
	TopicDocumentLoaded = "document.loaded"
	TopicDocumentClosed = "document.closed"
	TopicConfigReloaded = "config.reloaded"
)

// Event is one notification.
type Event struct {
	Topic   string
	Payload any
}

// Handler receives events for a subscription.
type Handler func(Event)

// Subscription identifies a registered handler for unsubscribe.
type Subscription struct {
	topic string
	id    uint64
}

// Stats reports bus activity counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	HandlerPanics uint64
}

// Bus is a synchronous publish/subscribe hub. Delivery happens on the
// publisher's goroutine in subscription order; a panicking handler is
// isolated and counted, never propagated.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]Handler

	published atomic.Uint64
	delivered atomic.Uint64
	panics    atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: map[string]map[uint64]Handler{}}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic string, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	if b.subs[topic] == nil {
		b.subs[topic] = map[uint64]Handler{}
	}
	b.subs[topic][b.nextID] = h
	return Subscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes a subscription. Unknown subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := b.subs[sub.topic]; ok {
		delete(m, sub.id)
	}
}

// Publish delivers the event to every handler subscribed to its topic.
// Subscription IDs are monotonic, so iterating them sorted is
// subscription order.
func (b *Bus) Publish(e Event) {
	b.published.Add(1)

	b.mu.RLock()
	ids := make([]uint64, 0, len(b.subs[e.Topic]))
	for id := range b.subs[e.Topic] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	handlers := make([]Handler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.subs[e.Topic][id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(h, e)
	}
}

func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
		}
	}()
	h(e)
	b.delivered.Add(1)
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerPanics: b.panics.Load(),
	}
}
