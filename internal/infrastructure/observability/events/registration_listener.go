package events

import (
	"github.com/kodflow/topiccore/internal/domain/regevent"
	"github.com/kodflow/topiccore/internal/domain/topic"
)

// auditLogger is the subset of registrylog.Store this package depends on,
// declared locally so events stays free of a build-tagged import. emit
// calls Append synchronously inside Added/Removed, so when TopicManager is
// the caller the append runs while the manager's lock is held.
type auditLogger interface {
	Append(event regevent.Event) error
}

// RegistrationListener adapts TopicManager's Added/Removed calls into
// regevent.Event values broadcast on a Bus, and optionally appended to an
// audit log. It satisfies pubsub.RegistrationListener without pubsub
// needing to import this package (§6, "Registration listener contract").
type RegistrationListener struct {
	bus   *Bus
	audit auditLogger
}

// NewRegistrationListener constructs a listener that publishes to bus and,
// if audit is non-nil, records every event for later inspection.
func NewRegistrationListener(bus *Bus, audit auditLogger) *RegistrationListener {
	return &RegistrationListener{bus: bus, audit: audit}
}

// Added publishes a TypeAdded event.
func (l *RegistrationListener) Added(name string, msgType topic.MessageType, direction topic.Direction) {
	l.emit(regevent.TypeAdded, name, msgType, direction)
}

// Removed publishes a TypeRemoved event.
func (l *RegistrationListener) Removed(name string, msgType topic.MessageType, direction topic.Direction) {
	l.emit(regevent.TypeRemoved, name, msgType, direction)
}

func (l *RegistrationListener) emit(t regevent.Type, name string, msgType topic.MessageType, direction topic.Direction) {
	event := regevent.NewEvent(t, name, msgType.Name, direction.String())
	l.bus.Publish(event)
	if l.audit != nil {
		_ = l.audit.Append(event)
	}
}
