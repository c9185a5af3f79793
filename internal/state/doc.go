// Package state holds the master record collection.
//
// # Overview
//
// The Store is the only mutable shared resource in the program. The loader
// writes it once per load attempt; the view controller reads copies of it and
// derives every filtered view from those copies.
//
//	Loader:                         View controller:
//	┌────────────────────┐          ┌─────────────────────┐
//	│ client.Load()      │          │                     │
//	│      ↓             │          │                     │
//	│ store.SetLoaded()  │─────────→│ store.Snapshot()    │
//	│  or SetFailed()    │ (mutex)  │      ↓              │
//	└────────────────────┘          │ catalog.Filter()    │
//	                                │      ↓              │
//	                                │ render              │
//	                                └─────────────────────┘
//
// # Update Semantics
//
//	store.SetLoaded(records)
//	→ Records = copy(records), Loaded = true, LastError = nil
//
//	store.SetFailed(err)
//	→ Records = nil, Loaded = false, LastError = err
//
// A failed load never leaves stale records behind: the view shows the error
// row and later filter changes show the empty placeholder.
//
// Generation counts completed load attempts. It is zero until the first load
// finishes, which is how the UI tells "still loading" from "loaded nothing".
//
// # Concurrency
//
// A sync.RWMutex guards the snapshot. Writes come from the load command and
// the optional file watcher; reads come from the UI. Snapshots are returned
// with defensive copies so no caller can mutate the master collection.
package state
