package websocket

import (
	"log"

	"github.com/jdelacruz/bingo-companion/internal/events"
)

// HubObserver forwards dispatched game events to WebSocket clients.
// It implements events.Observer and relays everything the dispatcher
// emits so the UI stays in sync with the game state.
type HubObserver struct {
	name string
	hub  *Hub
}

// NewHubObserver creates an observer that broadcasts events through hub.
func NewHubObserver(hub *Hub) *HubObserver {
	return &HubObserver{
		name: "HubObserver",
		hub:  hub,
	}
}

// OnEvent broadcasts the event to all connected clients.
func (o *HubObserver) OnEvent(event events.Event) error {
	if o.hub == nil {
		log.Printf("[%s] cannot broadcast %s: hub is nil", o.name, event.Type)
		return nil
	}

	o.hub.Broadcast(Message{
		Type: event.Type,
		Data: event.Data,
	})
	log.Printf("[%s] broadcast %s to %d clients", o.name, event.Type, o.hub.ClientCount())

	return nil
}

// Name returns the observer's name.
func (o *HubObserver) Name() string {
	return o.name
}

// ShouldHandle returns true for all event types.
func (o *HubObserver) ShouldHandle(eventType string) bool {
	return true
}

var _ events.Observer = (*HubObserver)(nil)
