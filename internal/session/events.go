package session

import (
	"sync"
	"time"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
)

// EventType enumerates session lifecycle events.
type EventType string

const (
	EventLoggedIn       EventType = "logged_in"
	EventLoggedOut      EventType = "logged_out"
	EventSessionExpired EventType = "session_expired"
	// EventNavigate is an application-level navigation command. It replaces
	// the hard full-page redirect a browser host would perform: the hosting
	// UI decides how to honor the Target.
	EventNavigate EventType = "navigate"
)

// Event is delivered to subscribers on session state changes.
type Event struct {
	Type      EventType
	User      *domain.User
	Target    string
	Timestamp time.Time
}

// Handler handles a published event. Handlers run synchronously on the
// publishing goroutine.
type Handler func(Event)

// Dispatcher is a simple synchronous event bus for session state changes.
// It is the reactive surface a hosting UI subscribes to.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]Handler
}

// NewDispatcher creates a dispatcher instance.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]Handler)}
}

// Publish invokes handlers registered for the event's type.
func (d *Dispatcher) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	d.mu.RLock()
	handlers := append([]Handler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Subscribe registers a handler for the given event type.
func (d *Dispatcher) Subscribe(eventType EventType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}
