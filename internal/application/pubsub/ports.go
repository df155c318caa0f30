// Package pubsub implements the publish/subscribe application core:
// PublisherImpl, SubscriberImpl, the process-wide TopicManager, and the
// Publisher/Subscriber user handles (§4.3, §4.4, §4.5, §4.6). It depends
// only on domain types and the ports declared here; concrete transports,
// serializers, resolvers, and registration listeners are supplied by the
// infrastructure layer.
package pubsub

import (
	"bytes"

	"github.com/kodflow/topiccore/internal/domain/topic"
)

// Serializer encodes a (seq, message) pair into buf, matching the
// serialize_message contract (§6). Implementations own the wire format;
// the core only needs the resulting bytes.
type Serializer interface {
	// Serialize appends a length-prefixed encoding of (seq, message) to buf.
	Serialize(buf *bytes.Buffer, seq uint64, message any) error
}

// RegistrationListener is notified of topic lifecycle transitions (§6,
// §4.6). Added may be invoked while TopicManager's lock is held; callers
// are warned it may be slow (§5).
type RegistrationListener interface {
	// Added is called once a new impl is inserted into the manager.
	Added(name string, msgType topic.MessageType, direction topic.Direction)
	// Removed is called once an impl's last reference is released.
	Removed(name string, msgType topic.MessageType, direction topic.Direction)
}

// NameResolver resolves a user-supplied topic name to its canonical,
// remapped form (§6). ResolvePreInit is used for handles constructed
// before node initialization completes.
type NameResolver interface {
	// Resolve resolves name to its canonical graph form.
	Resolve(name string) (string, error)
	// ResolvePreInit resolves name when the node has not yet initialized.
	ResolvePreInit(name string) (string, error)
}

// BroadcastFunc publishes message to every current subscriber connection.
type BroadcastFunc func(message any) (bool, error)

// SinglePeerFunc publishes message to exactly one connection.
type SinglePeerFunc func(message any) error

// SubscribeListener receives peer subscribe/unsubscribe notifications for
// one publisher (§6, "SubscribeListener contract"). Either callback may be
// nil.
type SubscribeListener interface {
	// PeerSubscribe is invoked when a new connection is admitted.
	PeerSubscribe(topicName string, broadcast BroadcastFunc, singlePeer SinglePeerFunc) error
	// PeerUnsubscribe is invoked when a connection is removed.
	PeerUnsubscribe(topicName string, numRemaining int)
}

// ShutdownSignal reports whether the process is tearing down (§5,
// "Cancellation"). publish consults it instead of raising during shutdown.
type ShutdownSignal interface {
	// IsShutdown reports whether the process is shutting down.
	IsShutdown() bool
}

// neverShuttingDown is the default ShutdownSignal used when none is
// supplied; it always reports false.
type neverShuttingDown struct{}

func (neverShuttingDown) IsShutdown() bool { return false }

// Callback is a subscriber's message handler, invoked once per inbound
// message with the caller-supplied opaque args (§4.4).
type Callback func(message any, args any)
