package state

import (
	"errors"
	"testing"
	"time"

	"github.com/five82/catalog/internal/catalog"
	"github.com/five82/catalog/internal/source"
)

func TestStore_PendingUntilFirstLoad(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if !snap.Pending() || snap.Loaded || snap.Failed() {
		t.Fatalf("zero store = %#v, want pending", snap)
	}
	if len(s.Records()) != 0 {
		t.Fatalf("zero store has records")
	}
}

func TestStore_SetLoadedAndSnapshotClone(t *testing.T) {
	var s Store

	records := []catalog.Record{{Code: "A1"}, {Code: "B2"}}
	before := time.Now()
	s.SetLoaded(records)

	// Mutating the caller's slice must not leak into the store.
	records[0].Code = "mutated"

	snap := s.Snapshot()
	if !snap.Loaded || snap.Pending() || snap.Failed() {
		t.Fatalf("snapshot = %#v, want loaded", snap)
	}
	if len(snap.Records) != 2 || snap.Records[0].Code != "A1" {
		t.Fatalf("snapshot records = %#v, want A1,B2", snap.Records)
	}
	if snap.LoadedAt.Before(before) {
		t.Fatalf("LoadedAt = %v, want >= %v", snap.LoadedAt, before)
	}
	if snap.Generation != 1 {
		t.Fatalf("Generation = %d, want 1", snap.Generation)
	}

	snap.Records[0].Code = "changed"
	if got := s.Records(); got[0].Code != "A1" {
		t.Fatalf("Snapshot should clone records; got %q want A1", got[0].Code)
	}
}

func TestStore_SetFailedEmptiesCollection(t *testing.T) {
	var s Store
	s.SetLoaded([]catalog.Record{{Code: "A1"}})

	origErr := &source.LoadError{Op: source.OpStatus, Source: "products.json", Err: errors.New("returned status 404")}
	s.SetFailed(origErr)

	snap := s.Snapshot()
	if len(snap.Records) != 0 {
		t.Fatalf("records after failure = %#v, want empty", snap.Records)
	}
	if snap.Loaded || !snap.Failed() {
		t.Fatalf("snapshot = %#v, want failed", snap)
	}
	if snap.LastError != origErr {
		t.Fatalf("LastError = %v, want the stored error as-is", snap.LastError)
	}
	var loadErr *source.LoadError
	if !errors.As(snap.LastError, &loadErr) || loadErr.Op != source.OpStatus {
		t.Fatalf("LastError = %v, want LoadError with status op", snap.LastError)
	}
	if snap.Generation != 2 {
		t.Fatalf("Generation = %d, want 2", snap.Generation)
	}
}

func TestStore_SetFailedNilIsNoop(t *testing.T) {
	var s Store
	s.SetFailed(nil)
	if !s.Snapshot().Pending() {
		t.Fatalf("SetFailed(nil) changed the store")
	}
}

func TestStore_ReloadAfterFailureClearsError(t *testing.T) {
	var s Store
	s.SetFailed(errors.New("boom"))
	s.SetLoaded([]catalog.Record{{Code: "A1"}})

	snap := s.Snapshot()
	if snap.Failed() || !snap.Loaded || len(snap.Records) != 1 {
		t.Fatalf("snapshot = %#v, want loaded with one record", snap)
	}
}
