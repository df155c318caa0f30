package pubsub

import (
	"bytes"
	"sync"
	"sync/atomic"

	"github.com/kodflow/topiccore/internal/domain/logging"
	"github.com/kodflow/topiccore/internal/domain/topic"
)

// PublisherImpl extends topic.Impl with the shared serialization buffer,
// the publish mutex, subscribe listeners, headers, and the latch slot
// (§4.3).
type PublisherImpl struct {
	*topic.Impl

	serializer Serializer
	shutdown   ShutdownSignal

	// publishMu serializes use of buf and seq so concurrent publishers on
	// the same impl produce a well-ordered byte stream (§5). It is never
	// taken recursively: admission (AddConnection) acquires it itself and
	// calls the already-locked inner routine, instead of re-entering
	// Publish (§9, "Reentrant locks").
	publishMu sync.Mutex
	buf       bytes.Buffer

	listenersMu sync.Mutex
	listeners   []SubscribeListener

	headersMu sync.Mutex
	headers   map[string]string

	latchEnabled bool
	latchMu      sync.Mutex
	latch        []byte

	messageDataSent atomic.Uint64
}

// NewPublisherImpl constructs a publisher impl bound to resolvedName.
func NewPublisherImpl(resolvedName string, msgType topic.MessageType, log logging.Logger, serializer Serializer, shutdown ShutdownSignal, latch bool, headers map[string]string) *PublisherImpl {
	if shutdown == nil {
		shutdown = neverShuttingDown{}
	}
	h := make(map[string]string, len(headers))
	for k, v := range headers {
		h[k] = v
	}
	return &PublisherImpl{
		Impl:         topic.NewImpl(resolvedName, msgType, topic.DirectionOutbound, log),
		serializer:   serializer,
		shutdown:     shutdown,
		latchEnabled: latch,
		headers:      h,
	}
}

// Headers returns a copy of the publisher's header map.
func (p *PublisherImpl) Headers() map[string]string {
	p.headersMu.Lock()
	defer p.headersMu.Unlock()
	out := make(map[string]string, len(p.headers))
	for k, v := range p.headers {
		out[k] = v
	}
	return out
}

// MessageDataSent returns the cumulative serialized byte count ever
// written across all publishes.
func (p *PublisherImpl) MessageDataSent() uint64 { return p.messageDataSent.Load() }

// GetNumConnections reports the current live connection count.
func (p *PublisherImpl) GetNumConnections() int { return p.Connections().Count() }

// Publish serializes message and broadcasts it to every live connection,
// or to override alone when non-nil (§4.3). It returns false, not an
// error, when there were no subscribers to reach.
func (p *PublisherImpl) Publish(message any, override []*topic.Connection) (bool, error) {
	if p.Closed() {
		if p.shutdown.IsShutdown() {
			return false, nil
		}
		return false, topic.ErrClosedTopic
	}

	if p.latchEnabled {
		if err := p.storeLatchIfSerializable(message); err != nil {
			return false, err
		}
	}

	targets := override
	if targets == nil {
		targets = p.Connections().Snapshot()
	}
	if len(targets) == 0 {
		return false, nil
	}

	p.publishMu.Lock()
	evicted, err := p.publishLocked(targets, message)
	p.publishMu.Unlock()

	for _, c := range evicted {
		if cerr := c.Close(); cerr != nil {
			p.Logger().Debug("pubsub", "connection.evict_close_error", "error closing evicted connection", map[string]any{
				"topic": p.ResolvedName(),
				"error": cerr.Error(),
			})
		}
	}

	if err != nil {
		return false, err
	}
	return true, nil
}

// publishLocked serializes message under seq and writes it to every
// target, assuming publishMu is already held by the caller. It returns the
// set of connections whose write_data failed, for the caller to close
// outside the lock (§4.3 step 8).
func (p *PublisherImpl) publishLocked(targets []*topic.Connection, message any) ([]*topic.Connection, error) {
	seq := p.NextSeq()
	p.buf.Reset()
	if err := p.serializer.Serialize(&p.buf, seq, message); err != nil {
		return nil, topic.ErrSerialization
	}
	data := p.buf.Bytes()

	var evicted []*topic.Connection
	for _, c := range targets {
		if p.shutdown.IsShutdown() {
			break
		}
		if err := c.WriteData(data); err != nil {
			p.Logger().Debug("pubsub", "connection.write_error", "write_data failed during broadcast", map[string]any{
				"topic":      p.ResolvedName(),
				"connection": c.ID(),
				"error":      err.Error(),
			})
			evicted = append(evicted, c)
		}
	}

	p.messageDataSent.Add(uint64(len(data)))
	if p.Closed() {
		if !p.shutdown.IsShutdown() {
			return evicted, topic.ErrClosedDuringPublish
		}
		return evicted, nil
	}
	return evicted, nil
}

// publishToOneLocked serializes message and writes it to exactly one
// connection, assuming publishMu is already held by the caller. Used by
// AddConnection to deliver a latched value without re-entering Publish.
func (p *PublisherImpl) publishToOneLocked(c *topic.Connection, message any) error {
	seq := p.NextSeq()
	p.buf.Reset()
	if err := p.serializer.Serialize(&p.buf, seq, message); err != nil {
		return topic.ErrSerialization
	}
	data := p.buf.Bytes()
	p.messageDataSent.Add(uint64(len(data)))
	return c.WriteData(data)
}

// storeLatchIfSerializable updates the latch slot by independently
// serializing message into a scratch buffer, leaving the shared buf
// untouched, then stripping the 4-byte length prefix so only the raw
// encoded payload is retained. The latch is only overwritten on a
// successful encode (§4.3, "Latch semantics").
//
// Storing the bare payload (rather than the framed buffer Serialize
// produces) matters because replay routes the latch back through
// Serialize a second time via latchedBytes: Serialize frames a []byte
// argument directly instead of gob-encoding it again, on the assumption
// it is already one encoded payload. Storing the framed buffer would
// make that second pass prepend a second length prefix ahead of the
// first, corrupting every late-joiner's decode.
func (p *PublisherImpl) storeLatchIfSerializable(message any) error {
	var scratch bytes.Buffer
	if err := p.serializer.Serialize(&scratch, p.Impl.NextSeq(), message); err != nil {
		return topic.ErrSerialization
	}
	framed := scratch.Bytes()
	if len(framed) < 4 {
		return topic.ErrSerialization
	}
	payload := make([]byte, len(framed)-4)
	copy(payload, framed[4:])

	p.latchMu.Lock()
	p.latch = payload
	p.latchMu.Unlock()
	return nil
}

// LatchEnabled reports whether this publisher retains a latch.
func (p *PublisherImpl) LatchEnabled() bool { return p.latchEnabled }

// LatchedMessage returns the raw encoded payload of the current latch (no
// length prefix — see storeLatchIfSerializable) and whether one exists.
func (p *PublisherImpl) LatchedMessage() ([]byte, bool) {
	p.latchMu.Lock()
	defer p.latchMu.Unlock()
	if p.latch == nil {
		return nil, false
	}
	return p.latch, true
}

// AddSubscribeListener registers a listener to be notified of future
// peer subscribe/unsubscribe events.
func (p *PublisherImpl) AddSubscribeListener(l SubscribeListener) {
	p.listenersMu.Lock()
	defer p.listenersMu.Unlock()
	p.listeners = append(p.listeners, l)
}

// AddConnection admits c: it registers the connection on the base impl,
// notifies every SubscribeListener, and — if this publisher is latched
// and holds a value — writes the latch directly to c while holding the
// publish mutex, so the replay respects the same ordering as a live
// broadcast (§4.3, "Connection admission").
func (p *PublisherImpl) AddConnection(c *topic.Connection) error {
	p.Connections().Add(c)

	p.listenersMu.Lock()
	listeners := make([]SubscribeListener, len(p.listeners))
	copy(listeners, p.listeners)
	p.listenersMu.Unlock()

	broadcast := func(message any) (bool, error) { return p.Publish(message, nil) }
	singlePeer := func(message any) error {
		_, err := p.Publish(message, []*topic.Connection{c})
		return err
	}
	for _, l := range listeners {
		if err := l.PeerSubscribe(p.ResolvedName(), broadcast, singlePeer); err != nil {
			p.Logger().Debug("pubsub", "peer_subscribe.error", "SubscribeListener.PeerSubscribe failed", map[string]any{
				"topic": p.ResolvedName(),
				"error": err.Error(),
			})
		}
	}

	if msg, ok := p.LatchedMessage(); ok {
		p.publishMu.Lock()
		err := p.publishToOneLocked(c, latchedBytes(msg))
		p.publishMu.Unlock()
		return err
	}
	return nil
}

// latchedBytes wraps raw latch bytes so the Serializer port sees the same
// shape it would for a fresh message; the default gob serializer treats
// rawBytes specially and writes it through unchanged.
type rawBytes []byte

func latchedBytes(b []byte) any { return rawBytes(b) }

// RemoveConnection removes c from the live list and notifies every
// SubscribeListener of the new remaining count (§4.3, "Connection
// removal").
func (p *PublisherImpl) RemoveConnection(c *topic.Connection) {
	p.Connections().Remove(c)

	p.listenersMu.Lock()
	listeners := make([]SubscribeListener, len(p.listeners))
	copy(listeners, p.listeners)
	p.listenersMu.Unlock()

	remaining := p.Connections().Count()
	for _, l := range listeners {
		l.PeerUnsubscribe(p.ResolvedName(), remaining)
	}
}
