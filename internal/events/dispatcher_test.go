package events

import (
	"errors"
	"testing"
)

type recordingObserver struct {
	name   string
	filter string
	seen   []Event
	err    error
}

func (o *recordingObserver) OnEvent(event Event) error {
	o.seen = append(o.seen, event)
	return o.err
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) ShouldHandle(eventType string) bool {
	return o.filter == "" || o.filter == eventType
}

func TestDispatcher_Dispatch(t *testing.T) {
	d := NewDispatcher()
	all := &recordingObserver{name: "all"}
	onlyCalls := &recordingObserver{name: "calls", filter: TypeNumberCalled}
	d.Register(all)
	d.Register(onlyCalls)

	d.Dispatch(Event{Type: TypeNumberCalled, Data: NumberCalledEvent{Number: 7}})
	d.Dispatch(Event{Type: TypeWinnerDetected})

	if len(all.seen) != 2 {
		t.Errorf("unfiltered observer saw %d events, want 2", len(all.seen))
	}
	if len(onlyCalls.seen) != 1 || onlyCalls.seen[0].Type != TypeNumberCalled {
		t.Errorf("filtered observer saw %+v, want only number:called", onlyCalls.seen)
	}
}

func TestDispatcher_ObserverErrorDoesNotStopDelivery(t *testing.T) {
	d := NewDispatcher()
	failing := &recordingObserver{name: "failing", err: errors.New("boom")}
	healthy := &recordingObserver{name: "healthy"}
	d.Register(failing)
	d.Register(healthy)

	d.Dispatch(Event{Type: TypeSessionReset})

	if len(healthy.seen) != 1 {
		t.Error("a failing observer must not block the others")
	}
}

func TestDispatcher_Unregister(t *testing.T) {
	d := NewDispatcher()
	obs := &recordingObserver{name: "gone"}
	d.Register(obs)
	d.Unregister(obs)

	d.Dispatch(Event{Type: TypeNumberCalled})

	if len(obs.seen) != 0 {
		t.Error("unregistered observer should see nothing")
	}
	if d.ObserverCount() != 0 {
		t.Errorf("observer count = %d, want 0", d.ObserverCount())
	}
}
