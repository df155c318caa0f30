package pubsub_test

import (
	"errors"
	"sync"

	"github.com/kodflow/topiccore/internal/domain/topic"
)

var errWriteFailed = errors.New("fake transport: write failed")

// fakeTransport is an in-memory topic.Transport for exercising
// PublisherImpl/SubscriberImpl/TopicManager without a real wire transport.
type fakeTransport struct {
	mu sync.Mutex

	id         string
	endpointID string
	direction  topic.Direction
	transport  string

	writes  [][]byte
	failing bool
	closed  bool
	onClose func(topic.Transport)
}

func newFakeTransport(id string) *fakeTransport {
	return &fakeTransport{id: id, endpointID: id, direction: topic.DirectionOutbound, transport: "fake"}
}

func (f *fakeTransport) WriteData(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errWriteFailed
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.writes = append(f.writes, cp)
	return nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	f.closed = true
	cb := f.onClose
	f.mu.Unlock()
	if cb != nil {
		cb(f)
	}
	return nil
}

func (f *fakeTransport) SetCleanupCallback(fn func(topic.Transport)) {
	f.mu.Lock()
	f.onClose = fn
	f.mu.Unlock()
}

func (f *fakeTransport) ID() string               { return f.id }
func (f *fakeTransport) EndpointID() string       { return f.endpointID }
func (f *fakeTransport) Direction() topic.Direction { return f.direction }
func (f *fakeTransport) TransportType() string    { return f.transport }

func (f *fakeTransport) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

func (f *fakeTransport) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

// lastWrite returns the bytes passed to the most recent WriteData call.
func (f *fakeTransport) lastWrite() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.writes) == 0 {
		return nil
	}
	return f.writes[len(f.writes)-1]
}
