//go:build linux

// Package registrylog persists the registration add/remove event stream
// TopicManager emits, as an append-only audit trail. It stores events,
// never message bodies, matching the core's non-goal of durable message
// queuing (§1).
package registrylog

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/kodflow/topiccore/internal/domain/regevent"
)

const (
	// dbFileMode is the file permission mode for the BoltDB database file.
	dbFileMode os.FileMode = 0o600
	// dbOpenTimeout bounds how long Open waits for the file lock.
	dbOpenTimeout = 5 * time.Second
)

// bucketEvents is the single bucket holding every recorded event, keyed by
// a timestamp-sortable byte key so a range scan yields chronological order.
var bucketEvents []byte = []byte("registry_events")

// Store is an append-only bbolt-backed log of regevent.Event occurrences.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if absent) a registry-log database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, dbFileMode, &bolt.Options{Timeout: dbOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("open registrylog: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketEvents)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init registrylog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append records event under a key derived from its timestamp, so later
// scans come back in the order events occurred.
func (s *Store) Append(event regevent.Event) error {
	var body bytes.Buffer
	if err := gob.NewEncoder(&body).Encode(event); err != nil {
		return fmt.Errorf("encode registry event: %w", err)
	}
	key := timeToKey(event.Timestamp)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEvents).Put(key, body.Bytes())
	})
}

// Since returns every recorded event with a timestamp at or after from, in
// chronological order.
func (s *Store) Since(from time.Time) ([]regevent.Event, error) {
	var out []regevent.Event
	startKey := timeToKey(from)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketEvents).Cursor()
		for k, v := c.Seek(startKey); k != nil; k, v = c.Next() {
			var event regevent.Event
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&event); err != nil {
				return fmt.Errorf("decode registry event: %w", err)
			}
			out = append(out, event)
		}
		return nil
	})
	return out, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// timeToKey converts a time to a sortable big-endian byte key.
func timeToKey(t time.Time) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(t.UnixNano()))
	return b
}
