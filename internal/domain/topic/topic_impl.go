package topic

import (
	"sync"
	"sync/atomic"

	"github.com/kodflow/topiccore/internal/domain/logging"
)

// Impl is the shared per-topic state common to PublisherImpl and
// SubscriberImpl (§3, §4.2). It is reference-counted and mutated from both
// user threads and transport threads; every exported method is safe for
// concurrent use.
type Impl struct {
	// ConnLock is a plain (non-reentrant) mutex that Close holds while it
	// snapshots and clears the live connection list. ConnectionList's own
	// copy-on-write updates and SubscriberImpl's callback list do not take
	// it; it is exported, but no embedding impl locks it.
	ConnLock sync.Mutex

	resolvedName string
	msgType      MessageType
	direction    Direction
	log          logging.Logger

	connections *ConnectionList

	closed atomic.Bool
	seq    atomic.Uint64

	refCount atomic.Int32
}

// NewImpl constructs the shared base for a topic impl. direction and the
// resolved name never change for the lifetime of the impl.
func NewImpl(resolvedName string, msgType MessageType, direction Direction, log logging.Logger) *Impl {
	return &Impl{
		resolvedName: resolvedName,
		msgType:      msgType,
		direction:    direction,
		log:          log,
		connections:  NewConnectionList(resolvedName),
	}
}

// ResolvedName returns the canonical topic name this impl was created for.
func (i *Impl) ResolvedName() string { return i.resolvedName }

// MessageType returns the fixed message type descriptor.
func (i *Impl) MessageType() MessageType { return i.msgType }

// Direction reports whether this impl is a publisher or a subscriber impl.
func (i *Impl) Direction() Direction { return i.direction }

// Closed reports whether Close has run.
func (i *Impl) Closed() bool { return i.closed.Load() }

// NextSeq increments and returns the monotonic per-publisher sequence
// number (§4.3). Subscriber impls never call this.
func (i *Impl) NextSeq() uint64 { return i.seq.Add(1) }

// Connections exposes the copy-on-write connection list so embedding impls
// can add/remove/snapshot without re-implementing it.
func (i *Impl) Connections() *ConnectionList { return i.connections }

// RefCount returns the current handle reference count.
func (i *Impl) RefCount() int32 { return i.refCount.Load() }

// Acquire increments the reference count, returning the new value. Called
// by TopicManager.AcquirePublisher and TopicManager.AcquireSubscriber.
func (i *Impl) Acquire() int32 { return i.refCount.Add(1) }

// Release decrements the reference count, returning the new value. It does
// not check for a negative result, and TopicManager does not check it
// either; TopicManager removes the impl from its map once the count reaches
// zero, so its own releases of that name find no impl afterwards.
func (i *Impl) Release() int32 { return i.refCount.Add(-1) }

// Close is idempotent: it marks the impl closed, closes every live
// connection (logging, not propagating, per-connection errors), and clears
// the live list. The dead list is left untouched (§4.2, statistics
// retention policy).
func (i *Impl) Close() {
	if !i.closed.CompareAndSwap(false, true) {
		return
	}

	i.ConnLock.Lock()
	conns := i.connections.Snapshot()
	i.connections.Clear()
	i.ConnLock.Unlock()

	for _, c := range conns {
		if err := c.Close(); err != nil {
			i.log.Debug("topic", "connection.close_error", "error closing connection on topic close", map[string]any{
				"topic":      i.resolvedName,
				"connection": c.ID(),
				"error":      err.Error(),
			})
		}
	}
}

// HasConnection reports whether a connection to endpointID is currently
// live. It is an unlocked snapshot scan (§4.2).
func (i *Impl) HasConnection(endpointID string) bool {
	for _, c := range i.connections.Snapshot() {
		if c.EndpointID() == endpointID {
			return true
		}
	}
	return false
}

// HasConnections reports whether the live list is non-empty.
func (i *Impl) HasConnections() bool {
	return len(i.connections.Snapshot()) > 0
}

// GetStatsInfo returns one StatsRow per live connection followed by one per
// dead connection, matching §4.2's (id, endpoint_id, direction,
// transport_type, topic_name, live) shape.
func (i *Impl) GetStatsInfo() []StatsRow {
	live := i.connections.Snapshot()
	dead := i.connections.DeadSnapshot()
	rows := make([]StatsRow, 0, len(live)+len(dead))
	for _, c := range live {
		bytes, numMsg := c.Stats()
		rows = append(rows, StatsRow{
			ID:            c.ID(),
			EndpointID:    c.EndpointID(),
			Direction:     c.Direction(),
			TransportType: c.TransportType(),
			TopicName:     i.resolvedName,
			Live:          true,
			StatBytes:     bytes,
			StatNumMsg:    numMsg,
		})
	}
	for _, d := range dead {
		rows = append(rows, StatsRow{
			ID:            d.ID,
			EndpointID:    d.EndpointID,
			Direction:     d.Direction,
			TransportType: d.TransportType,
			TopicName:     d.TopicName,
			Live:          false,
			StatBytes:     d.StatBytes,
			StatNumMsg:    d.StatNumMsg,
		})
	}
	return rows
}

// Logger returns the impl's logging port, for embedding impls that need to
// log outside the helpers above.
func (i *Impl) Logger() logging.Logger { return i.log }
