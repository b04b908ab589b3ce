package reactivity

import "fmt"

type EventType uint8

const (
	EventTrigger EventType = iota
	EventFlush
	EventDiagnostic
)

func (t EventType) String() string {
	switch t {
	case EventTrigger:
		return "trigger"
	case EventFlush:
		return "flush"
	case EventDiagnostic:
		return "diagnostic"
	default:
		return "unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (k TriggerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is what an observer installed with WithObserver receives.
type Event struct {
	Type   EventType   `json:"type"`
	Target string      `json:"target,omitempty"`
	Key    string      `json:"key,omitempty"`
	Kind   TriggerKind `json:"kind"`
	Jobs   int         `json:"jobs,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func (rs *System) emitTrigger(target, key any, kind TriggerKind) {
	if rs.observer == nil {
		return
	}
	rs.observer(Event{
		Type:   EventTrigger,
		Target: describe(target),
		Key:    fmt.Sprint(key),
		Kind:   kind,
	})
}
