package topic

import "sync"

// ConnectionList is a copy-on-write list of live connections with a
// parallel list of recently closed connections retained for statistics
// (§4.1). Writers (Add/Remove) serialize under mu; readers take Snapshot
// and iterate it without locking, because mutation never modifies an
// existing snapshot — it always publishes a new slice reference.
type ConnectionList struct {
	mu sync.Mutex

	liveRef atomicSlicePtr[*Connection]
	deadRef atomicSlicePtr[DeadConnection]

	topicName string
}

// NewConnectionList creates an empty connection list for the given topic
// name, used only to label frozen dead-connection snapshots.
func NewConnectionList(topicName string) *ConnectionList {
	cl := &ConnectionList{topicName: topicName}
	cl.liveRef.store(nil)
	cl.deadRef.store(nil)
	return cl
}

// Add appends conn to the live list under the lock and registers a cleanup
// callback that removes it automatically once its transport closes.
func (cl *ConnectionList) Add(conn *Connection) {
	cl.mu.Lock()
	old := cl.liveRef.load()
	next := make([]*Connection, len(old), len(old)+1)
	copy(next, old)
	next = append(next, conn)
	cl.liveRef.store(next)
	cl.mu.Unlock()

	conn.SetCleanupCallback(func(c *Connection) {
		cl.Remove(c)
	})
}

// Remove deletes conn from the live list, if present, and appends a frozen
// snapshot of it to the dead list. Both lists are published atomically
// under the lock; removing a connection twice is a no-op on the second call.
func (cl *ConnectionList) Remove(conn *Connection) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	old := cl.liveRef.load()
	idx := -1
	for i, c := range old {
		if c == conn {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	next := make([]*Connection, 0, len(old)-1)
	next = append(next, old[:idx]...)
	next = append(next, old[idx+1:]...)
	cl.liveRef.store(next)

	oldDead := cl.deadRef.load()
	nextDead := make([]DeadConnection, len(oldDead), len(oldDead)+1)
	copy(nextDead, oldDead)
	nextDead = append(nextDead, conn.Freeze(cl.topicName))
	cl.deadRef.store(nextDead)
}

// Snapshot returns the current live-connection slice reference. Callers may
// iterate it freely; it will never be mutated in place.
func (cl *ConnectionList) Snapshot() []*Connection {
	return cl.liveRef.load()
}

// DeadSnapshot returns the current dead-connection slice reference.
func (cl *ConnectionList) DeadSnapshot() []DeadConnection {
	return cl.deadRef.load()
}

// Count returns the length of the live list under the lock.
func (cl *ConnectionList) Count() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.liveRef.load())
}

// Clear empties the live list, leaving the dead list untouched (§4.2:
// close() retains dead connections for statistics).
func (cl *ConnectionList) Clear() {
	cl.mu.Lock()
	cl.liveRef.store(nil)
	cl.mu.Unlock()
}

// atomicSlicePtr publishes a slice reference under a lightweight RWMutex so
// Snapshot readers never block Add/Remove writers for longer than a pointer
// swap. Separate from sync.Mutex above: that one serializes the
// read-modify-write of constructing the *next* slice; this one only guards
// the published reference itself.
type atomicSlicePtr[T any] struct {
	mu  sync.RWMutex
	val []T
}

func (a *atomicSlicePtr[T]) store(v []T) {
	a.mu.Lock()
	a.val = v
	a.mu.Unlock()
}

func (a *atomicSlicePtr[T]) load() []T {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.val
}
