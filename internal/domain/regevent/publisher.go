package regevent

// Publisher defines the interface for broadcasting registration events to
// the adapters that drain them outside TopicManager's lock (§9).
type Publisher interface {
	// Publish broadcasts event to all subscribers.
	Publish(event Event)
	// Subscribe returns a channel that receives events.
	Subscribe() <-chan Event
	// Unsubscribe removes a subscription.
	Unsubscribe(ch <-chan Event)
}

// Handler is a function that handles an event.
type Handler func(Event)

// Filter is a function that filters events; true passes the event through.
type Filter func(Event) bool

// FilterByType returns a filter that only passes events of the given types.
func FilterByType(types ...Type) Filter {
	typeSet := make(map[Type]struct{}, len(types))
	for _, t := range types {
		typeSet[t] = struct{}{}
	}
	return func(e Event) bool {
		_, ok := typeSet[e.Type]
		return ok
	}
}

// FilterByTopicName returns a filter that only passes events for the given
// resolved topic name.
func FilterByTopicName(topicName string) Filter {
	return func(e Event) bool {
		return e.TopicName == topicName
	}
}
