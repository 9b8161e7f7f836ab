package models

// EventType identifies the kind of change carried by an Event.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
)

// Event is a change notification for the messages entity. Old is nil for
// inserts; New always carries the row state after the change.
type Event struct {
	Type EventType `json:"type"`
	Old  *Message  `json:"old,omitempty"`
	New  *Message  `json:"new,omitempty"`
}
