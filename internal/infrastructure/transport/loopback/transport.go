// Package loopback provides an in-process duplex Transport pair: two
// peers wired directly to each other's read side, used to connect a
// PublisherImpl and a SubscriberImpl within one process without any real
// socket I/O (§1, "the wire-level transport implementation ... out of
// scope", consumed here as the Transport contract, §6).
//
// The send/pump split mirrors a websocket client's buffered outbound
// channel and dedicated pump goroutine: WriteData never blocks the
// caller beyond a bounded buffer, and delivery to the peer happens on a
// goroutine of its own.
package loopback

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kodflow/topiccore/internal/domain/topic"
)

// ErrSendBufferFull indicates the outbound buffer could not accept a
// write without blocking; the caller's broadcast loop treats this as a
// transport failure and evicts the connection.
var ErrSendBufferFull error = errors.New("loopback: send buffer full")

// defaultSendBuffer bounds each side's outbound channel.
const defaultSendBuffer int = 256

var nextID atomic.Uint64

// Transport is one half of an in-process duplex pair (§6, "Transport
// contract").
type Transport struct {
	id         string
	endpointID string
	direction  topic.Direction

	send chan []byte
	done chan struct{}

	mu        sync.Mutex
	closeOnce sync.Once
	peer      *Transport
	cleanup   func(topic.Transport)
	onReceive func([]byte)
}

// NewPair constructs two Transports wired to each other: out delivers to
// in's OnReceive handler and vice versa. out carries DirectionOutbound
// (the publisher side); in carries DirectionInbound (the subscriber
// side). Each side's EndpointID is its peer's: out reports subEndpointID
// and in reports pubEndpointID.
func NewPair(subEndpointID, pubEndpointID string) (out *Transport, in *Transport) {
	out = &Transport{
		id:         fmt.Sprintf("loopback-%d", nextID.Add(1)),
		endpointID: subEndpointID,
		direction:  topic.DirectionOutbound,
		send:       make(chan []byte, defaultSendBuffer),
		done:       make(chan struct{}),
	}
	in = &Transport{
		id:         fmt.Sprintf("loopback-%d", nextID.Add(1)),
		endpointID: pubEndpointID,
		direction:  topic.DirectionInbound,
		send:       make(chan []byte, defaultSendBuffer),
		done:       make(chan struct{}),
	}
	out.peer = in
	in.peer = out

	go out.pump()
	go in.pump()
	return out, in
}

// pump drains t.send and hands each payload to the peer's receive
// handler, on its own goroutine so WriteData never blocks on delivery.
func (t *Transport) pump() {
	for data := range t.send {
		t.mu.Lock()
		peer := t.peer
		t.mu.Unlock()
		if peer == nil {
			continue
		}
		peer.mu.Lock()
		onReceive := peer.onReceive
		peer.mu.Unlock()
		if onReceive != nil {
			onReceive(data)
		}
	}
}

// SetOnReceive registers the handler invoked with every payload this
// transport's peer writes. Typically wired to a deserializer that feeds
// SubscriberImpl.ReceiveCallback.
func (t *Transport) SetOnReceive(fn func([]byte)) {
	t.mu.Lock()
	t.onReceive = fn
	t.mu.Unlock()
}

// WriteData enqueues data for delivery to the peer. It returns
// ErrSendBufferFull rather than blocking when the bounded buffer is full.
func (t *Transport) WriteData(data []byte) error {
	select {
	case <-t.done:
		return topic.ErrClosedTopic
	default:
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	select {
	case t.send <- buf:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close closes this transport and invokes its cleanup callback exactly
// once.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
		close(t.send)
		t.mu.Lock()
		cleanup := t.cleanup
		t.mu.Unlock()
		if cleanup != nil {
			cleanup(t)
		}
	})
	return nil
}

// SetCleanupCallback registers fn to run exactly once after Close.
func (t *Transport) SetCleanupCallback(fn func(topic.Transport)) {
	t.mu.Lock()
	t.cleanup = fn
	t.mu.Unlock()
}

// ID returns this transport's stable identifier.
func (t *Transport) ID() string { return t.id }

// EndpointID returns the peer endpoint's identifier.
func (t *Transport) EndpointID() string { return t.endpointID }

// Direction reports "i" or "o".
func (t *Transport) Direction() topic.Direction { return t.direction }

// TransportType returns the fixed tag "loopback".
func (t *Transport) TransportType() string { return "loopback" }

var _ topic.Transport = (*Transport)(nil)
