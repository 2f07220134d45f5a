package resource

import ecslayout "github.com/wippyai/ecs-layout"

// Event types for descriptor lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventReleased
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event represents a descriptor lifecycle event.
type Event struct {
	Value  any
	Handle ecslayout.Handle
	TypeID ecslayout.TypeID
	Type   EventType
}

// Observer receives notifications about descriptor lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Dropper is optionally implemented by descriptor values that own
// storage. Drop is called exactly once, when the handle is released.
type Dropper interface {
	Drop()
}
