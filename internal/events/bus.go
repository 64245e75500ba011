// Package events provides the in-process event bus used to stream data
// load progress to connected dashboard clients.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a category of event
type EventType string

const (
	LoadStarted         EventType = "load_started"
	DomainLoaded        EventType = "domain_loaded"
	DomainFailed        EventType = "domain_failed"
	LoadCompleted       EventType = "load_completed"
	LoadFailed          EventType = "load_failed"
	SystemStatusChanged EventType = "system_status_changed"
)

// AllTypes lists every event type a stream client may subscribe to.
var AllTypes = []EventType{
	LoadStarted,
	DomainLoaded,
	DomainFailed,
	LoadCompleted,
	LoadFailed,
	SystemStatusChanged,
}

// Event is a single bus message
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Module    string                 `json:"module"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Handler is a subscriber callback. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(event *Event)

// Bus is a mutex-guarded fan-out of events to subscribers
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventType]map[int]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType]map[int]Handler),
	}
}

// Subscribe registers a handler for an event type and returns an
// unsubscribe function. Stream connections must call it on disconnect
// or their handlers accumulate for process lifetime.
func (b *Bus) Subscribe(eventType EventType, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[eventType][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[eventType], id)
	}
}

// Publish builds an event and delivers it to all handlers registered
// for its type. The event ID and timestamp are assigned here.
func (b *Bus) Publish(eventType EventType, module string, data map[string]interface{}) {
	event := &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Module:    module,
		Timestamp: time.Now(),
		Data:      data,
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[eventType]))
	for _, handler := range b.handlers[eventType] {
		handlers = append(handlers, handler)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
