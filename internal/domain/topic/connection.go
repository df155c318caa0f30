package topic

import "sync"

// Transport is the wire-level duplex byte channel to one peer (§6). It is
// an external collaborator: framing, handshake, and socket I/O are out of
// scope for the topic core (§1).
type Transport interface {
	// WriteData sends a framed payload to the peer.
	WriteData(data []byte) error
	// Close closes the transport. SetCleanupCallback's function is invoked
	// exactly once after Close completes.
	Close() error
	// SetCleanupCallback registers fn to run exactly once after Close.
	SetCleanupCallback(fn func(Transport))

	// ID is a stable identifier for this transport.
	ID() string
	// EndpointID is the peer endpoint's identifier.
	EndpointID() string
	// Direction is "i" (inbound) or "o" (outbound).
	Direction() Direction
	// TransportType is a short tag such as "TCPROS" or "loopback".
	TransportType() string
}

// Latch holds the last inbound value received on a connection, for
// transports that support inbound latching (subscriber side only).
type Latch struct {
	// Message is the last received, already-deserialized payload — the
	// same value a live SubscriberImpl.ReceiveCallback delivers to
	// callbacks, so a replay is indistinguishable from a live delivery.
	Message any
	// Enabled reports whether this connection carries a latch at all.
	Enabled bool
}

// Connection is a transport endpoint owned by an impl (§3). It tracks byte
// and message counters alongside the underlying Transport.
type Connection struct {
	mu sync.Mutex

	transport Transport

	// statBytes is the cumulative byte count written through WriteData.
	statBytes uint64
	// statNumMsg is the cumulative message count written through WriteData.
	statNumMsg uint64
	// done is set once the underlying transport has closed.
	done bool
	// latch holds the last inbound value, if latching applies.
	latch Latch
}

// NewConnection wraps a Transport in a Connection.
func NewConnection(t Transport) *Connection {
	return &Connection{transport: t}
}

// ID returns the underlying transport's stable identifier.
func (c *Connection) ID() string { return c.transport.ID() }

// EndpointID returns the peer endpoint identifier.
func (c *Connection) EndpointID() string { return c.transport.EndpointID() }

// Direction returns "i" or "o".
func (c *Connection) Direction() Direction { return c.transport.Direction() }

// TransportType returns the transport's short type tag.
func (c *Connection) TransportType() string { return c.transport.TransportType() }

// WriteData writes data to the transport and updates counters on success.
func (c *Connection) WriteData(data []byte) error {
	if err := c.transport.WriteData(data); err != nil {
		return err
	}
	c.mu.Lock()
	c.statBytes += uint64(len(data))
	c.statNumMsg++
	c.mu.Unlock()
	return nil
}

// SetLatch stores an inbound latched value (subscriber side).
func (c *Connection) SetLatch(message any) {
	c.mu.Lock()
	c.latch = Latch{Message: message, Enabled: true}
	c.mu.Unlock()
}

// GetLatch returns the current latch and whether it is populated.
func (c *Connection) GetLatch() (Latch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latch, c.latch.Enabled
}

// Done reports whether the transport has closed.
func (c *Connection) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// SetCleanupCallback registers fn to run once the transport closes,
// forwarding to the underlying Transport.
func (c *Connection) SetCleanupCallback(fn func(*Connection)) {
	c.transport.SetCleanupCallback(func(Transport) {
		c.mu.Lock()
		c.done = true
		c.mu.Unlock()
		fn(c)
	})
}

// Close closes the underlying transport.
func (c *Connection) Close() error {
	return c.transport.Close()
}

// Stats returns the counters currently recorded for this connection.
func (c *Connection) Stats() (bytes uint64, numMsg uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statBytes, c.statNumMsg
}

// Freeze captures an immutable statistical snapshot of a once-live
// connection, retained after removal (§3, "Dead connection").
func (c *Connection) Freeze(topicName string) DeadConnection {
	bytes, numMsg := c.Stats()
	return DeadConnection{
		ID:            c.ID(),
		EndpointID:    c.EndpointID(),
		Direction:     c.Direction(),
		TransportType: c.TransportType(),
		TopicName:     topicName,
		StatBytes:     bytes,
		StatNumMsg:    numMsg,
	}
}

// DeadConnection is a frozen snapshot of a formerly live connection,
// retained solely for statistics (§3).
type DeadConnection struct {
	ID            string
	EndpointID    string
	Direction     Direction
	TransportType string
	TopicName     string
	StatBytes     uint64
	StatNumMsg    uint64
}

// StatsRow is the common shape returned by TopicImpl.GetStatsInfo (§4.2):
// (id, endpoint_id, direction, transport_type, topic_name, live).
type StatsRow struct {
	ID            string
	EndpointID    string
	Direction     Direction
	TransportType string
	TopicName     string
	Live          bool
	StatBytes     uint64
	StatNumMsg    uint64
}
