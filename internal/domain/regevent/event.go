// Package regevent provides domain types for graph registration
// notifications: the added/removed events TopicManager emits whenever a
// publisher or subscriber impl is created or torn down (§4.6, §9
// "Registration listener under lock").
package regevent

import (
	"time"

	"github.com/kodflow/topiccore/internal/domain/shared"
)

// unknownString is the string representation for unknown types.
const unknownString = "unknown"

// Type identifies whether a registration event reports a topic coming into
// existence or going away.
type Type int

const (
	// TypeUnknown is the zero value; never emitted.
	TypeUnknown Type = iota
	// TypeAdded reports a new impl was created (RegistrationListener.added).
	TypeAdded
	// TypeRemoved reports an impl's last reference was released
	// (RegistrationListener.removed).
	TypeRemoved
)

// String returns the string representation of the event type.
func (t Type) String() string {
	switch t {
	case TypeAdded:
		return "topic.added"
	case TypeRemoved:
		return "topic.removed"
	default:
		return unknownString
	}
}

// Event is a single added/removed notification (§6, "Registration listener
// contract").
type Event struct {
	// Type distinguishes added from removed.
	Type Type
	// Timestamp is when TopicManager observed the transition.
	Timestamp time.Time
	// TopicName is the resolved name the event concerns.
	TopicName string
	// MessageTypeName is the descriptor's type name at the time of the event.
	MessageTypeName string
	// Direction is "i" or "o".
	Direction string
}

// NewEvent creates an Event timestamped by shared.DefaultClock.
func NewEvent(t Type, topicName, messageTypeName, direction string) Event {
	return NewEventWithClock(shared.DefaultClock, t, topicName, messageTypeName, direction)
}

// NewEventWithClock creates an Event timestamped by clock, letting tests
// that assert on Timestamp supply a deterministic shared.Nower instead of
// racing the system clock.
func NewEventWithClock(clock shared.Nower, t Type, topicName, messageTypeName, direction string) Event {
	return Event{
		Type:            t,
		Timestamp:       clock.Now(),
		TopicName:       topicName,
		MessageTypeName: messageTypeName,
		Direction:       direction,
	}
}
