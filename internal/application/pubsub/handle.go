package pubsub

import (
	"fmt"
	"sync"

	"github.com/kodflow/topiccore/internal/domain/logging"
	"github.com/kodflow/topiccore/internal/domain/topic"
)

// Publisher is the user-facing façade over a PublisherImpl (§4.5). A
// Publisher is valid until its single Unregister call; subsequent calls
// are no-ops.
type Publisher struct {
	mu       sync.Mutex
	manager  *TopicManager
	impl     *PublisherImpl
	name     string
	msgType  topic.MessageType
	resolved bool
}

// NewPublisher validates name and descriptor, resolves the name, and
// acquires the shared impl from manager (§4.5, "Construction validates").
// listener, when non-nil, is registered before the impl is returned.
func NewPublisher(manager *TopicManager, resolver NameResolver, log logging.Logger, name string, msgType topic.MessageType, opts ...PublisherOption) (*Publisher, error) {
	if name == "" {
		return nil, topic.ErrInvalidArgument
	}
	if msgType.Name == "" {
		return nil, topic.ErrInvalidArgument
	}
	if !topic.IsLegalName(name) {
		log.Warn("pubsub", "name.illegal", "topic name is not a legal graph resource name", map[string]any{"name": name})
	}

	cfg := publisherConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	resolved, err := resolver.Resolve(name)
	if err != nil {
		return nil, err
	}

	impl := manager.AcquirePublisher(resolved, msgType, cfg.latch, cfg.headers)
	if !impl.MessageType().Compatible(msgType) {
		manager.ReleasePublisher(resolved)
		return nil, fmt.Errorf("%w: %q already published as %s (md5 %s), not %s (md5 %s)",
			topic.ErrInvalidArgument, resolved,
			impl.MessageType().Name, impl.MessageType().MD5Sum, msgType.Name, msgType.MD5Sum)
	}
	if cfg.listener != nil {
		impl.AddSubscribeListener(cfg.listener)
	}

	return &Publisher{
		manager:  manager,
		impl:     impl,
		name:     resolved,
		msgType:  msgType,
		resolved: true,
	}, nil
}

// PublisherOption configures optional Publisher construction parameters.
type PublisherOption func(*publisherConfig)

type publisherConfig struct {
	listener SubscribeListener
	nodelay  bool
	latch    bool
	headers  map[string]string
}

// WithSubscribeListener registers l to observe peer subscribe/unsubscribe
// events.
func WithSubscribeListener(l SubscribeListener) PublisherOption {
	return func(c *publisherConfig) { c.listener = l }
}

// WithLatch enables latching: the last successfully published message is
// replayed to every newly admitted connection.
func WithLatch() PublisherOption {
	return func(c *publisherConfig) { c.latch = true }
}

// WithTCPNoDelay records a preference passed through to future transports.
func WithTCPNoDelay() PublisherOption {
	return func(c *publisherConfig) { c.nodelay = true }
}

// WithHeaders attaches header key/value pairs advertised at connection
// negotiation.
func WithHeaders(headers map[string]string) PublisherOption {
	return func(c *publisherConfig) { c.headers = headers }
}

// Publish serializes and broadcasts message to every live connection
// (§4.3). It returns false, not an error, when there were no subscribers.
func (p *Publisher) Publish(message any) (bool, error) {
	p.mu.Lock()
	impl := p.impl
	p.mu.Unlock()
	if impl == nil {
		return false, topic.ErrClosedTopic
	}
	return impl.Publish(message, nil)
}

// GetNumConnections reports the current live connection count.
func (p *Publisher) GetNumConnections() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.impl == nil {
		return 0
	}
	return p.impl.GetNumConnections()
}

// Unregister releases this handle's reference to the impl exactly once;
// subsequent calls are no-ops (§4.5).
func (p *Publisher) Unregister() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.impl == nil {
		return
	}
	p.manager.ReleasePublisher(p.name)
	p.impl = nil
}

// Subscriber is the user-facing façade over a SubscriberImpl (§4.5).
type Subscriber struct {
	mu       sync.Mutex
	manager  *TopicManager
	impl     *SubscriberImpl
	name     string
	callback Callback
	args     any
	bound    bool
}

// NewSubscriber validates name and descriptor, resolves the name, acquires
// the shared impl, and — if callback is non-nil — registers it (§4.5).
func NewSubscriber(manager *TopicManager, resolver NameResolver, log logging.Logger, name string, msgType topic.MessageType, callback Callback, args any, opts ...SubscriberOption) (*Subscriber, error) {
	if name == "" {
		return nil, topic.ErrInvalidArgument
	}
	if msgType.Name == "" {
		return nil, topic.ErrInvalidArgument
	}
	if !topic.IsLegalName(name) {
		log.Warn("pubsub", "name.illegal", "topic name is not a legal graph resource name", map[string]any{"name": name})
	}

	cfg := subscriberConfig{queueSize: -1, buffSize: defaultBuffSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	resolved, err := resolver.Resolve(name)
	if err != nil {
		return nil, err
	}

	impl := manager.AcquireSubscriber(resolved, msgType)
	if !impl.MessageType().Compatible(msgType) {
		manager.ReleaseSubscriber(resolved)
		return nil, fmt.Errorf("%w: %q already subscribed as %s (md5 %s), not %s (md5 %s)",
			topic.ErrInvalidArgument, resolved,
			impl.MessageType().Name, impl.MessageType().MD5Sum, msgType.Name, msgType.MD5Sum)
	}
	if err := impl.SetQueueSize(cfg.queueSize); err != nil {
		manager.ReleaseSubscriber(resolved)
		return nil, err
	}
	if err := impl.SetBuffSize(cfg.buffSize); err != nil {
		manager.ReleaseSubscriber(resolved)
		return nil, err
	}
	impl.SetTCPNoDelay(cfg.nodelay)

	s := &Subscriber{manager: manager, impl: impl, name: resolved}
	if callback != nil {
		impl.AddCallback(callback, args)
		s.callback = callback
		s.args = args
		s.bound = true
	}
	return s, nil
}

// SubscriberOption configures optional Subscriber construction parameters.
type SubscriberOption func(*subscriberConfig)

type subscriberConfig struct {
	queueSize int
	buffSize  int
	nodelay   bool
}

// WithQueueSize sets the inbound queue-size hint (-1 = unbounded).
func WithQueueSize(size int) SubscriberOption {
	return func(c *subscriberConfig) { c.queueSize = size }
}

// WithBuffSize sets the buffer-size hint.
func WithBuffSize(size int) SubscriberOption {
	return func(c *subscriberConfig) { c.buffSize = size }
}

// WithSubscriberTCPNoDelay records a nodelay preference.
func WithSubscriberTCPNoDelay() SubscriberOption {
	return func(c *subscriberConfig) { c.nodelay = true }
}

// GetNumConnections reports the current live connection count.
func (s *Subscriber) GetNumConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.impl == nil {
		return 0
	}
	return s.impl.GetNumConnections()
}

// Unregister removes the bound callback (if any) and releases this
// handle's reference to the impl exactly once; subsequent calls are
// no-ops (§4.5).
func (s *Subscriber) Unregister() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.impl == nil {
		return
	}
	if s.bound {
		_ = s.impl.RemoveCallback(s.callback, s.args)
	}
	s.manager.ReleaseSubscriber(s.name)
	s.impl = nil
}
