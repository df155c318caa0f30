package pubsub

import (
	"sync"

	"github.com/kodflow/topiccore/internal/domain/logging"
	"github.com/kodflow/topiccore/internal/domain/topic"
)

// PubSubInfo is one row of TopicManager.GetPubSubInfo: a topic name paired
// with its message type (§4.6).
type PubSubInfo struct {
	Name    string
	MsgType topic.MessageType
}

// TopicManager is the process-wide registry indexing publisher and
// subscriber impls by resolved name (§4.6). It is the single place that
// knows both maps exist; handles never touch them directly.
type TopicManager struct {
	mu sync.Mutex

	publishers  map[string]*PublisherImpl
	subscribers map[string]*SubscriberImpl

	log        logging.Logger
	serializer Serializer
	shutdown   ShutdownSignal
	registry   RegistrationListener
}

// NewTopicManager constructs an empty manager. registry may be nil, in
// which case registration notifications are dropped.
func NewTopicManager(log logging.Logger, serializer Serializer, shutdown ShutdownSignal, registry RegistrationListener) *TopicManager {
	if shutdown == nil {
		shutdown = neverShuttingDown{}
	}
	return &TopicManager{
		publishers:  make(map[string]*PublisherImpl),
		subscribers: make(map[string]*SubscriberImpl),
		log:         log,
		serializer:  serializer,
		shutdown:    shutdown,
		registry:    registry,
	}
}

// AcquirePublisher returns the publisher impl for name, creating it with
// the given options on first acquire (§4.6, "acquire_impl").
func (m *TopicManager) AcquirePublisher(name string, msgType topic.MessageType, latch bool, headers map[string]string) *PublisherImpl {
	m.mu.Lock()
	defer m.mu.Unlock()

	if impl, ok := m.publishers[name]; ok {
		impl.Acquire()
		return impl
	}

	impl := NewPublisherImpl(name, msgType, m.log, m.serializer, m.shutdown, latch, headers)
	impl.Acquire()
	m.publishers[name] = impl
	m.notifyAdded(name, msgType, topic.DirectionOutbound)
	return impl
}

// AcquireSubscriber returns the subscriber impl for name, creating it on
// first acquire.
func (m *TopicManager) AcquireSubscriber(name string, msgType topic.MessageType) *SubscriberImpl {
	m.mu.Lock()
	defer m.mu.Unlock()

	if impl, ok := m.subscribers[name]; ok {
		impl.Acquire()
		return impl
	}

	impl := NewSubscriberImpl(name, msgType, m.log, m.shutdown)
	impl.Acquire()
	m.subscribers[name] = impl
	m.notifyAdded(name, msgType, topic.DirectionInbound)
	return impl
}

// ReleasePublisher decrements impl's reference count for name, closing and
// removing it once the count reaches zero (§4.6, "release_impl").
func (m *TopicManager) ReleasePublisher(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	impl, ok := m.publishers[name]
	if !ok {
		return
	}
	if impl.Release() > 0 {
		return
	}
	impl.Close()
	delete(m.publishers, name)
	m.notifyRemoved(name, impl.MessageType(), topic.DirectionOutbound)
}

// ReleaseSubscriber decrements impl's reference count for name, closing
// and removing it once the count reaches zero.
func (m *TopicManager) ReleaseSubscriber(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	impl, ok := m.subscribers[name]
	if !ok {
		return
	}
	if impl.Release() > 0 {
		return
	}
	impl.Close()
	delete(m.subscribers, name)
	m.notifyRemoved(name, impl.MessageType(), topic.DirectionInbound)
}

// GetPublisher returns the publisher impl for name without touching its
// reference count, for testing and introspection (§4.6, "get_impl").
func (m *TopicManager) GetPublisher(name string) (*PublisherImpl, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	impl, ok := m.publishers[name]
	return impl, ok
}

// GetSubscriber returns the subscriber impl for name without touching its
// reference count.
func (m *TopicManager) GetSubscriber(name string) (*SubscriberImpl, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	impl, ok := m.subscribers[name]
	return impl, ok
}

// GetPublications lists every (name, type) pair currently published.
func (m *TopicManager) GetPublications() []PubSubInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PubSubInfo, 0, len(m.publishers))
	for name, impl := range m.publishers {
		out = append(out, PubSubInfo{Name: name, MsgType: impl.MessageType()})
	}
	return out
}

// GetSubscriptions lists every (name, type) pair currently subscribed.
func (m *TopicManager) GetSubscriptions() []PubSubInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PubSubInfo, 0, len(m.subscribers))
	for name, impl := range m.subscribers {
		out = append(out, PubSubInfo{Name: name, MsgType: impl.MessageType()})
	}
	return out
}

// GetPubSubInfo concatenates GetStatsInfo across every publisher and
// subscriber impl under the lock (§4.6, "get_pub_sub_info").
func (m *TopicManager) GetPubSubInfo() []topic.StatsRow {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []topic.StatsRow
	for _, impl := range m.publishers {
		rows = append(rows, impl.GetStatsInfo()...)
	}
	for _, impl := range m.subscribers {
		rows = append(rows, impl.GetStatsInfo()...)
	}
	return rows
}

// TopicNames returns the union of publisher and subscriber names, matching
// the invariant that the topic-name set is exactly that union (§3).
func (m *TopicManager) TopicNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]struct{}, len(m.publishers)+len(m.subscribers))
	for name := range m.publishers {
		seen[name] = struct{}{}
	}
	for name := range m.subscribers {
		seen[name] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	return out
}

// RemoveAll closes every impl and clears both maps, for node teardown
// (§4.6, "remove_all").
func (m *TopicManager) RemoveAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, impl := range m.publishers {
		impl.Close()
	}
	for _, impl := range m.subscribers {
		impl.Close()
	}
	m.publishers = make(map[string]*PublisherImpl)
	m.subscribers = make(map[string]*SubscriberImpl)
}

// notifyAdded calls the registration listener, if any, assuming m.mu is
// held (§4.6: "invoked while holding the lock; callers are warned this
// may be lengthy").
func (m *TopicManager) notifyAdded(name string, msgType topic.MessageType, direction topic.Direction) {
	if m.registry == nil {
		return
	}
	m.registry.Added(name, msgType, direction)
}

func (m *TopicManager) notifyRemoved(name string, msgType topic.MessageType, direction topic.Direction) {
	if m.registry == nil {
		return
	}
	m.registry.Removed(name, msgType, direction)
}

// defaultManager is the process-wide singleton, exposed via an accessor
// rather than eager static initialization (§9, "Global manager").
var (
	defaultManagerOnce sync.Once
	defaultManager     *TopicManager
)

// DefaultManager returns the process-wide TopicManager, constructing it
// with init on first use.
func DefaultManager(init func() *TopicManager) *TopicManager {
	defaultManagerOnce.Do(func() {
		defaultManager = init()
	})
	return defaultManager
}
