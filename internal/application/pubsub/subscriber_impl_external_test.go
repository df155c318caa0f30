package pubsub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodflow/topiccore/internal/application/pubsub"
	"github.com/kodflow/topiccore/internal/domain/topic"
	"github.com/kodflow/topiccore/internal/infrastructure/observability/logging/eventlog"
)

func newTestSubscriber() *pubsub.SubscriberImpl {
	return pubsub.NewSubscriberImpl("/chatter", testMsgType, eventlog.NewSilentLogger(), nil)
}

// TestSubscriberImpl_ReceiveCallback_DeliversInOrder verifies every
// registered callback receives every message, in order.
func TestSubscriberImpl_ReceiveCallback_DeliversInOrder(t *testing.T) {
	t.Parallel()

	s := newTestSubscriber()
	var got []any
	s.AddCallback(func(message any, _ any) { got = append(got, message) }, nil)

	s.ReceiveCallback(nil, []any{"one", "two", "three"})

	assert.Equal(t, []any{"one", "two", "three"}, got)
}

// TestSubscriberImpl_ReceiveCallback_MultipleCallbacks verifies every
// registered callback is invoked for each message.
func TestSubscriberImpl_ReceiveCallback_MultipleCallbacks(t *testing.T) {
	t.Parallel()

	s := newTestSubscriber()
	var a, b int
	s.AddCallback(func(any, any) { a++ }, nil)
	s.AddCallback(func(any, any) { b++ }, nil)

	s.ReceiveCallback(nil, []any{"x"})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

// TestSubscriberImpl_ReceiveCallback_PanicIsolation verifies a callback that
// panics does not prevent delivery to the remaining callbacks or messages.
func TestSubscriberImpl_ReceiveCallback_PanicIsolation(t *testing.T) {
	t.Parallel()

	s := newTestSubscriber()
	var surviving int
	s.AddCallback(func(any, any) { panic("boom") }, nil)
	s.AddCallback(func(any, any) { surviving++ }, nil)

	assert.NotPanics(t, func() {
		s.ReceiveCallback(nil, []any{"one", "two"})
	})
	assert.Equal(t, 2, surviving)
}

// TestSubscriberImpl_RemoveCallback_RemovesMatchingEntry verifies
// RemoveCallback stops future delivery to the removed callback only.
func TestSubscriberImpl_RemoveCallback_RemovesMatchingEntry(t *testing.T) {
	t.Parallel()

	s := newTestSubscriber()
	var calledA, calledB int
	cbA := func(any, any) { calledA++ }
	cbB := func(any, any) { calledB++ }
	s.AddCallback(cbA, nil)
	s.AddCallback(cbB, nil)

	require.NoError(t, s.RemoveCallback(cbA, nil))
	s.ReceiveCallback(nil, []any{"x"})

	assert.Equal(t, 0, calledA)
	assert.Equal(t, 1, calledB)
}

// TestSubscriberImpl_RemoveCallback_NoMatch verifies removing a callback
// that was never registered fails with ErrNoSuchCallback.
func TestSubscriberImpl_RemoveCallback_NoMatch(t *testing.T) {
	t.Parallel()

	s := newTestSubscriber()
	err := s.RemoveCallback(func(any, any) {}, nil)
	assert.ErrorIs(t, err, topic.ErrNoSuchCallback)
}

// TestSubscriberImpl_AddCallback_ReplaysExistingLatch verifies a callback
// registered after a connection already holds a latched value is invoked
// once with that value immediately upon registration.
func TestSubscriberImpl_AddCallback_ReplaysExistingLatch(t *testing.T) {
	t.Parallel()

	s := newTestSubscriber()
	conn := topic.NewConnection(newFakeTransport("peer"))
	conn.SetLatch("latched-payload")
	s.Connections().Add(conn)

	var got any
	s.AddCallback(func(message any, _ any) { got = message }, nil)

	assert.Equal(t, "latched-payload", got)
}

// TestSubscriberImpl_AddCallback_ReplaysLatchSetByReceiveCallback verifies
// the connection-latch path a real transport drives: ReceiveCallback(c,
// ...) sets c's latch to the deserialized message it just delivered, and a
// callback registered afterwards receives that exact value, matching what
// live delivery would have handed it.
func TestSubscriberImpl_AddCallback_ReplaysLatchSetByReceiveCallback(t *testing.T) {
	t.Parallel()

	s := newTestSubscriber()
	conn := topic.NewConnection(newFakeTransport("peer"))
	s.Connections().Add(conn)

	s.ReceiveCallback(conn, []any{"inbound-message"})

	var got any
	s.AddCallback(func(message any, _ any) { got = message }, nil)

	assert.Equal(t, "inbound-message", got)
}

// TestSubscriberImpl_SetQueueSize verifies queue-size validation and the
// unbounded (-1) convention.
func TestSubscriberImpl_SetQueueSize(t *testing.T) {
	t.Parallel()

	s := newTestSubscriber()

	assert.ErrorIs(t, s.SetQueueSize(0), topic.ErrInvalidArgument)

	require.NoError(t, s.SetQueueSize(-1))
	_, bounded := s.QueueSize()
	assert.False(t, bounded)

	require.NoError(t, s.SetQueueSize(10))
	size, bounded := s.QueueSize()
	assert.True(t, bounded)
	assert.Equal(t, 10, size)
}

// TestSubscriberImpl_SetBuffSize verifies buffer-size validation and the
// default value.
func TestSubscriberImpl_SetBuffSize(t *testing.T) {
	t.Parallel()

	s := newTestSubscriber()
	assert.Equal(t, 65536, s.BuffSize())

	assert.ErrorIs(t, s.SetBuffSize(0), topic.ErrInvalidArgument)
	assert.ErrorIs(t, s.SetBuffSize(-1), topic.ErrInvalidArgument)

	require.NoError(t, s.SetBuffSize(4096))
	assert.Equal(t, 4096, s.BuffSize())
}

// TestSubscriberImpl_TCPNoDelay verifies the nodelay hint setter/getter.
func TestSubscriberImpl_TCPNoDelay(t *testing.T) {
	t.Parallel()

	s := newTestSubscriber()
	assert.False(t, s.TCPNoDelay())
	s.SetTCPNoDelay(true)
	assert.True(t, s.TCPNoDelay())
}
