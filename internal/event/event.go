// Package event provides a small topic-based publish/subscribe bus.
//
// The keybinding layer uses it for clipboard notification signals: after
// a kill, copy, or yank mutates the clipboard, a signal is published so
// other in-host listeners (status line, kill-ring viewers) can react.
package event

import "sync"

// Topic identifies an event type using dot notation ("clipboard.cut").
type Topic string

// Clipboard notification topics.
const (
	TopicClipboardCut   Topic = "clipboard.cut"
	TopicClipboardCopy  Topic = "clipboard.copy"
	TopicClipboardPaste Topic = "clipboard.paste"
)

// Event is a published occurrence with an optional payload.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler is called for each published event on a subscribed topic.
type Handler func(ev Event)

// Subscription represents an active subscription; Unsubscribe removes it.
type Subscription struct {
	id    uint64
	topic Topic
	bus   *Bus
}

// Unsubscribe removes this subscription from the bus.
func (s *Subscription) Unsubscribe() {
	if s.bus != nil {
		s.bus.unsubscribe(s.topic, s.id)
	}
}

// Bus routes published events to topic subscribers. Publish is
// synchronous: handlers run on the caller's goroutine in subscription
// order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic]map[uint64]Handler
	nextID   uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Topic]map[uint64]Handler)}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic Topic, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[topic] == nil {
		b.handlers[topic] = make(map[uint64]Handler)
	}
	b.nextID++
	b.handlers[topic][b.nextID] = h
	return &Subscription{id: b.nextID, topic: topic, bus: b}
}

// Publish delivers an event to all subscribers of its topic.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.handlers[topic]))
	for _, h := range b.handlers[topic] {
		hs = append(hs, h)
	}
	b.mu.RUnlock()

	for _, h := range hs {
		h(Event{Topic: topic, Payload: payload})
	}
}

func (b *Bus) unsubscribe(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers[topic], id)
}
