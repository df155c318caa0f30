package pubsub

import (
	"reflect"
	"sync"

	"github.com/kodflow/topiccore/internal/domain/logging"
	"github.com/kodflow/topiccore/internal/domain/topic"
)

// callbackEntry pairs a registered callback with its opaque args, mirroring
// rospy's (fn, args) tuple so RemoveCallback can match both (§4.4).
type callbackEntry struct {
	fn   Callback
	args any
}

// SubscriberImpl extends topic.Impl with the copy-on-write callback list
// and the queue-size/buffer-size/nodelay knobs (§4.4).
type SubscriberImpl struct {
	*topic.Impl

	callbacksMu sync.Mutex
	callbacks   []callbackEntry

	queueSize *int
	buffSize  int
	nodelay   bool

	shutdown ShutdownSignal
}

// NewSubscriberImpl constructs a subscriber impl bound to resolvedName.
// queueSize follows the §4.4 convention: nil means unbounded.
func NewSubscriberImpl(resolvedName string, msgType topic.MessageType, log logging.Logger, shutdown ShutdownSignal) *SubscriberImpl {
	if shutdown == nil {
		shutdown = neverShuttingDown{}
	}
	return &SubscriberImpl{
		Impl:     topic.NewImpl(resolvedName, msgType, topic.DirectionInbound, log),
		buffSize: defaultBuffSize,
		shutdown: shutdown,
	}
}

// defaultBuffSize is used until SetBuffSize is called.
const defaultBuffSize int = 65536

// GetNumConnections reports the current live connection count.
func (s *SubscriberImpl) GetNumConnections() int { return s.Connections().Count() }

// AddCallback appends cb to the callback list, then replays the latch of
// any connection that already holds one so late joiners observe the most
// recent inbound state exactly once (§4.4, "Callback registration").
func (s *SubscriberImpl) AddCallback(cb Callback, args any) {
	s.callbacksMu.Lock()
	next := make([]callbackEntry, len(s.callbacks), len(s.callbacks)+1)
	copy(next, s.callbacks)
	next = append(next, callbackEntry{fn: cb, args: args})
	s.callbacks = next
	s.callbacksMu.Unlock()

	for _, c := range s.Connections().Snapshot() {
		if latch, ok := c.GetLatch(); ok {
			s.invokeSafely(cb, latch.Message, args)
		}
	}
}

// RemoveCallback removes the first entry whose function identity and args
// equal the requested pair. It fails with ErrNoSuchCallback if none match
// (§4.4).
func (s *SubscriberImpl) RemoveCallback(cb Callback, args any) error {
	s.callbacksMu.Lock()
	defer s.callbacksMu.Unlock()

	target := reflect.ValueOf(cb).Pointer()
	for i, entry := range s.callbacks {
		if reflect.ValueOf(entry.fn).Pointer() == target && entry.args == args {
			next := make([]callbackEntry, 0, len(s.callbacks)-1)
			next = append(next, s.callbacks[:i]...)
			next = append(next, s.callbacks[i+1:]...)
			s.callbacks = next
			return nil
		}
	}
	return topic.ErrNoSuchCallback
}

// ReceiveCallback invokes every registered callback with every message, in
// order, trapping per-callback errors so one bad callback never blocks
// delivery to the others or to later messages (§4.4, "Delivery"). When c is
// non-nil, each message also updates c's latch, so a callback registered
// later via AddCallback replays the same deserialized value delivered here
// (§4.4, "Callback registration").
func (s *SubscriberImpl) ReceiveCallback(c *topic.Connection, messages []any) {
	s.callbacksMu.Lock()
	entries := s.callbacks
	s.callbacksMu.Unlock()

	for _, m := range messages {
		if c != nil {
			c.SetLatch(m)
		}
		for _, entry := range entries {
			s.invokeSafely(entry.fn, m, entry.args)
		}
	}
}

// invokeSafely calls cb(message, args), recovering a panic and logging it
// as a bad callback (downgraded during shutdown) rather than propagating
// it to the transport thread that delivered the message (§4.4, §7).
func (s *SubscriberImpl) invokeSafely(cb Callback, message any, args any) {
	defer func() {
		if r := recover(); r != nil {
			level := "callback.panic"
			if s.shutdown.IsShutdown() {
				level = "callback.panic_during_shutdown"
			}
			s.Logger().Debug("pubsub", level, "bad callback", map[string]any{
				"topic": s.ResolvedName(),
				"panic": r,
			})
		}
	}()
	cb(message, args)
}

// SetQueueSize sets the inbound queue-size hint: -1 means unbounded, 0 is
// rejected, any other positive value is stored as a bound (§4.4,
// "Knob setters").
func (s *SubscriberImpl) SetQueueSize(size int) error {
	if size == 0 {
		return topic.ErrInvalidArgument
	}
	s.callbacksMu.Lock()
	defer s.callbacksMu.Unlock()
	if size < 0 {
		s.queueSize = nil
		return nil
	}
	s.queueSize = &size
	return nil
}

// QueueSize returns the current queue-size hint, and false if unbounded.
func (s *SubscriberImpl) QueueSize() (int, bool) {
	s.callbacksMu.Lock()
	defer s.callbacksMu.Unlock()
	if s.queueSize == nil {
		return 0, false
	}
	return *s.queueSize, true
}

// SetBuffSize sets the buffer-size hint; non-positive values are rejected
// (§4.4).
func (s *SubscriberImpl) SetBuffSize(size int) error {
	if size <= 0 {
		return topic.ErrInvalidArgument
	}
	s.callbacksMu.Lock()
	s.buffSize = size
	s.callbacksMu.Unlock()
	return nil
}

// BuffSize returns the current buffer-size hint.
func (s *SubscriberImpl) BuffSize() int {
	s.callbacksMu.Lock()
	defer s.callbacksMu.Unlock()
	return s.buffSize
}

// SetTCPNoDelay sets the nodelay hint, last writer wins.
func (s *SubscriberImpl) SetTCPNoDelay(nodelay bool) {
	s.callbacksMu.Lock()
	s.nodelay = nodelay
	s.callbacksMu.Unlock()
}

// TCPNoDelay returns the current nodelay hint.
func (s *SubscriberImpl) TCPNoDelay() bool {
	s.callbacksMu.Lock()
	defer s.callbacksMu.Unlock()
	return s.nodelay
}
