package dw

import "fmt"

// Aggregate accumulates classified events for one supervised run. It is
// owned by the run's read loop and never shared; counters only ever grow.
type Aggregate struct {
	Errors           int
	Warnings         int
	ChunksRemoved    int
	SnapshotsRemoved int

	// Storage and Repository hold the last observed names.
	Storage    string
	Repository string

	// header holds the "; Storage: X" / "; Repository: Y" fragments in
	// arrival order; stats holds the statistics payloads in arrival order.
	header []string
	stats  []string
}

// Fold merges one classified line into the aggregate, in event-arrival
// order.
func (a *Aggregate) Fold(ev LineEvent) {
	if ev.StorageSet != "" {
		a.Storage = ev.StorageSet
		a.header = append(a.header, fmt.Sprintf("; Storage: %s", ev.StorageSet))
	}
	if ev.RepositorySet != "" {
		a.Repository = ev.RepositorySet
		a.header = append(a.header, fmt.Sprintf("; Repository: %s", ev.RepositorySet))
	}
	if ev.IsWarning {
		a.Warnings++
	}
	if ev.IsError {
		a.Errors++
	}
	if ev.ChunkDeleted {
		a.ChunksRemoved++
	}
	if ev.SnapshotDeleted {
		a.SnapshotsRemoved++
	}
	if ev.StatEntry != "" {
		a.stats = append(a.stats, ev.StatEntry)
	}
}

// HeaderFragments returns the storage/repository fragments in arrival order.
func (a *Aggregate) HeaderFragments() []string { return a.header }

// StatFragments returns the statistics payloads in arrival order.
func (a *Aggregate) StatFragments() []string { return a.stats }
