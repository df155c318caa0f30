package topic

// Direction distinguishes whether an impl publishes outbound messages or
// receives inbound ones.
type Direction string

const (
	// DirectionOutbound identifies a PublisherImpl.
	DirectionOutbound Direction = "o"
	// DirectionInbound identifies a SubscriberImpl.
	DirectionInbound Direction = "i"
)

// String returns the wire-style single-letter tag for the direction,
// matching the Transport contract's direction field (§6).
func (d Direction) String() string {
	return string(d)
}
