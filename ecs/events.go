package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventSwitchChanged = "switch_changed"
	EventGateChanged   = "gate_changed"
	EventCaptured      = "captured"
	EventReleased      = "released"
)

// SwitchChanged is the payload of EventSwitchChanged and EventGateChanged.
type SwitchChanged struct {
	Entity    Entity
	Name      string
	Activated bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
