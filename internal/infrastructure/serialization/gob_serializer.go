// Package serialization provides the gob-based Serializer adapter
// consumed by pubsub.PublisherImpl (§6, "Message/serialization contract").
package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"reflect"
)

// ErrShortBuffer indicates a buffer is too small to hold a length prefix.
var ErrShortBuffer error = errors.New("serialization: buffer shorter than length prefix")

func init() {
	// string is the simplest concrete message type a caller can publish
	// without registering its own; gob needs every concrete type that
	// crosses an interface{} field registered before it can decode one.
	gob.Register("")
}

// GobSerializer implements pubsub.Serializer by gob-encoding (seq,
// message) and prefixing the result with its own length, matching the
// "length-prefixed, schema-aware encoding" contract (§6). It is safe for
// concurrent use: every call builds its own gob.Encoder.
type GobSerializer struct{}

// New constructs a GobSerializer.
func New() *GobSerializer { return &GobSerializer{} }

// envelope is the wire shape gob encodes: the publisher's sequence number
// alongside the opaque message payload.
type envelope struct {
	Seq     uint64
	Message any
}

// Serialize appends a 4-byte big-endian length prefix followed by the
// encoding of (seq, message) to buf. When message is already a []byte (or
// a named type over []byte, as used for latch replay), it is framed
// directly without a second gob pass, since it was gob-encoded once at the
// original publish.
func (s *GobSerializer) Serialize(buf *bytes.Buffer, seq uint64, message any) error {
	payload, ok := asByteSlice(message)
	if !ok {
		var body bytes.Buffer
		if err := gob.NewEncoder(&body).Encode(envelope{Seq: seq, Message: message}); err != nil {
			return err
		}
		payload = body.Bytes()
	}

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(payload)))
	buf.Write(lenPrefix[:])
	buf.Write(payload)
	return nil
}

// asByteSlice reports whether message's underlying type is a byte slice,
// covering both []byte and named types such as pubsub's internal
// latch-carrier type.
func asByteSlice(message any) ([]byte, bool) {
	if b, ok := message.([]byte); ok {
		return b, true
	}
	v := reflect.ValueOf(message)
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		return v.Bytes(), true
	}
	return nil, false
}

// Deserialize reads one length-prefixed envelope from data and returns the
// decoded sequence number and message. It is used by test transports and
// by any loopback consumer that decodes what GobSerializer produced.
func Deserialize(data []byte) (seq uint64, message any, err error) {
	if len(data) < 4 {
		return 0, nil, ErrShortBuffer
	}
	n := binary.BigEndian.Uint32(data[:4])
	if len(data) < int(4+n) {
		return 0, nil, ErrShortBuffer
	}
	payload := data[4 : 4+n]

	var env envelope
	if decErr := gob.NewDecoder(bytes.NewReader(payload)).Decode(&env); decErr != nil {
		return 0, nil, decErr
	}
	return env.Seq, env.Message, nil
}
