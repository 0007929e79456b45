// Package events is a small typed event bus. Handlers are registered per
// event type and run synchronously, in registration order, on Emit.
package events

// Type identifies different kinds of events
type Type string

// Event interface that all events must implement
type Event interface {
	Type() Type
}

// Handler is a function that processes events
type Handler func(Event)

// Manager manages event subscriptions and dispatches
type Manager struct {
	subscribers map[Type][]Handler
}

// NewManager creates a new event manager
func NewManager() *Manager {
	return &Manager{
		subscribers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.subscribers[eventType] = append(m.subscribers[eventType], handler)
}

// Emit dispatches an event to all subscribed handlers. Events nobody
// subscribed to are dropped and Emit reports false.
func (m *Manager) Emit(event Event) bool {
	if event == nil {
		return false
	}
	handlers, exists := m.subscribers[event.Type()]
	if !exists {
		return false
	}

	for _, handler := range handlers {
		handler(event)
	}
	return true
}
