package state

import (
	"sync"
	"time"

	"github.com/five82/catalog/internal/catalog"
)

// Snapshot is a copy of the master collection and its load status.
type Snapshot struct {
	Records    []catalog.Record
	Loaded     bool // a load completed successfully
	LastError  error
	LoadedAt   time.Time
	Generation int // increments on every completed load attempt
}

// Pending reports whether no load attempt has completed yet.
func (s Snapshot) Pending() bool {
	return s.Generation == 0
}

// Failed reports whether the most recent load attempt failed.
func (s Snapshot) Failed() bool {
	return s.LastError != nil
}

// Store owns the master collection. The loader writes it, the view
// controller reads copies of it.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetLoaded replaces the master collection with a copy of records.
func (s *Store) SetLoaded(records []catalog.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Records = cloneRecords(records)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LoadedAt = time.Now()
	s.snapshot.Generation++
}

// SetFailed records a failed load. The master collection is emptied so the
// view degrades to an empty state instead of showing stale records.
func (s *Store) SetFailed(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Records = nil
	s.snapshot.Loaded = false
	s.snapshot.LastError = err
	s.snapshot.LoadedAt = time.Now()
	s.snapshot.Generation++
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Records = cloneRecords(s.snapshot.Records)
	return snap
}

// Records returns a copy of the master collection.
func (s *Store) Records() []catalog.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.snapshot.Records)
}

func cloneRecords(records []catalog.Record) []catalog.Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]catalog.Record, len(records))
	copy(dup, records)
	return dup
}
