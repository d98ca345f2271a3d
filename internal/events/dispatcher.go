// Package events distributes game events (calls, winners, on-pot
// alerts) to interested observers such as the WebSocket hub.
package events

import (
	"log"
	"sync"
)

// Event is a game event dispatched to observers.
type Event struct {
	// Type is the event type, e.g. "number:called".
	Type string

	// Data is the typed event payload (see messages.go).
	Data any
}

// Observer is notified of dispatched events. Implementations decide
// which event types they care about via ShouldHandle.
type Observer interface {
	// OnEvent is called for each dispatched event the observer handles.
	OnEvent(event Event) error

	// Name returns a human-readable name for logging.
	Name() string

	// ShouldHandle filters which event types this observer receives.
	ShouldHandle(eventType string) bool
}

// Dispatcher fans events out to registered observers. Thread-safe.
type Dispatcher struct {
	observers []Observer
	mu        sync.RWMutex
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{observers: make([]Observer, 0)}
}

// Register adds an observer. It receives all future events that pass
// its ShouldHandle filter.
func (d *Dispatcher) Register(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, observer)
	log.Printf("[events] registered observer: %s", observer.Name())
}

// Unregister removes an observer.
func (d *Dispatcher) Unregister(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, obs := range d.observers {
		if obs == observer {
			d.observers[i] = d.observers[len(d.observers)-1]
			d.observers = d.observers[:len(d.observers)-1]
			return
		}
	}
}

// Dispatch notifies observers sequentially in registration order. An
// observer error is logged and does not stop delivery to the rest.
func (d *Dispatcher) Dispatch(event Event) {
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	for _, observer := range observers {
		if !observer.ShouldHandle(event.Type) {
			continue
		}
		if err := observer.OnEvent(event); err != nil {
			log.Printf("[events] observer %s failed to handle %s: %v",
				observer.Name(), event.Type, err)
		}
	}
}

// ObserverCount returns the number of registered observers.
func (d *Dispatcher) ObserverCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.observers)
}
