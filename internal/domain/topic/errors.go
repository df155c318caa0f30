// Package topic provides domain entities for the topic core: connections,
// the copy-on-write connection list, and the shared topic implementation
// base that publishers and subscribers extend.
package topic

import (
	"errors"

	"github.com/kodflow/topiccore/internal/domain/shared"
)

// Sentinel errors for the topic package.
var (
	// ErrInvalidArgument indicates a handle was constructed with a bad name,
	// a nil or non-message descriptor, or an out-of-range knob value. It is
	// the shared domain sentinel rather than a package-local one, so callers
	// across packages can check for it with a single errors.Is target.
	ErrInvalidArgument error = shared.ErrInvalidArgument

	// ErrUninitialized indicates publish was attempted before node init.
	ErrUninitialized error = errors.New("node is not initialized")

	// ErrClosedTopic indicates publish was attempted after the topic closed
	// and the process is not shutting down.
	ErrClosedTopic error = errors.New("publish to a closed topic")

	// ErrClosedDuringPublish indicates the serialization buffer became
	// invalid mid-publish because the topic closed underneath the call,
	// outside of a shutdown.
	ErrClosedDuringPublish error = errors.New("topic was closed during publish")

	// ErrSerialization indicates the message could not be encoded.
	ErrSerialization error = errors.New("message serialization failed")

	// ErrNoSuchCallback indicates remove_callback found no matching entry.
	ErrNoSuchCallback error = errors.New("no such callback")
)
