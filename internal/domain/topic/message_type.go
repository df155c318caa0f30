package topic

// MessageType is the immutable message type descriptor carried by a topic
// impl (§3). It is fixed at impl creation; a second handle acquiring the
// same resolved name must supply a compatible descriptor.
//
// Serialization itself is delegated to a Serializer port (§6); MessageType
// only carries the identity needed to check compatibility and to report
// stats.
type MessageType struct {
	// Name is the fully-qualified type name, e.g. "std_msgs/String".
	Name string
	// MD5Sum is the schema fingerprint used for compatibility checks.
	MD5Sum string
}

// Compatible reports whether two descriptors may share one topic impl. A
// wildcard MD5Sum ("*") on either side matches anything with the same
// Name, mirroring rospy's AnyMsg escape hatch for generic subscribers.
// NewPublisher/NewSubscriber call this after acquiring a (possibly
// already-shared) impl, rejecting the acquire when the caller's descriptor
// doesn't match the impl's existing one.
func (m MessageType) Compatible(other MessageType) bool {
	if m.Name != other.Name {
		return false
	}
	if m.MD5Sum == "*" || other.MD5Sum == "*" {
		return true
	}
	return m.MD5Sum == other.MD5Sum
}
