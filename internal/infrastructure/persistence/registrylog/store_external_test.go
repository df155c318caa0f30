//go:build linux

package registrylog_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodflow/topiccore/internal/domain/regevent"
	"github.com/kodflow/topiccore/internal/infrastructure/persistence/registrylog"
)

func openTestStore(t *testing.T) *registrylog.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.db")
	store, err := registrylog.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestStore_AppendAndSince_ReturnsInChronologicalOrder verifies events
// appended out of call order are returned by Since sorted by their own
// timestamp.
func TestStore_AppendAndSince_ReturnsInChronologicalOrder(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	base := time.Now().Add(-time.Hour)

	older := regevent.NewEvent(regevent.TypeAdded, "/chatter", "std_msgs/String", "o")
	older.Timestamp = base
	newer := regevent.NewEvent(regevent.TypeRemoved, "/odom", "nav_msgs/Odometry", "i")
	newer.Timestamp = base.Add(time.Minute)

	require.NoError(t, store.Append(newer))
	require.NoError(t, store.Append(older))

	got, err := store.Since(base.Add(-time.Second))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/chatter", got[0].TopicName)
	assert.Equal(t, "/odom", got[1].TopicName)
}

// TestStore_Since_ExcludesEventsBeforeFrom verifies Since only returns
// events at or after the requested timestamp.
func TestStore_Since_ExcludesEventsBeforeFrom(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	base := time.Now().Add(-time.Hour)

	early := regevent.NewEvent(regevent.TypeAdded, "/early", "std_msgs/String", "o")
	early.Timestamp = base
	late := regevent.NewEvent(regevent.TypeAdded, "/late", "std_msgs/String", "o")
	late.Timestamp = base.Add(time.Hour)

	require.NoError(t, store.Append(early))
	require.NoError(t, store.Append(late))

	got, err := store.Since(base.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/late", got[0].TopicName)
}

// TestStore_Since_EmptyStoreReturnsNoEvents verifies a freshly opened store
// with nothing appended returns an empty result, not an error.
func TestStore_Since_EmptyStoreReturnsNoEvents(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	got, err := store.Since(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestStore_Open_PersistsAcrossReopen verifies events written before Close
// are visible after reopening the same file.
func TestStore_Open_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "registry.db")
	store, err := registrylog.Open(path)
	require.NoError(t, err)

	event := regevent.NewEvent(regevent.TypeAdded, "/chatter", "std_msgs/String", "o")
	require.NoError(t, store.Append(event))
	require.NoError(t, store.Close())

	reopened, err := registrylog.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Since(event.Timestamp.Add(-time.Second))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/chatter", got[0].TopicName)
}
