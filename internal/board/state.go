// Package board owns the application state shared by the polling task and the
// HTTP surface: the last fetched record set, its summary and sync metadata.
// Search and filter state belongs to each request and is not kept here.
package board

import (
	"sync"
	"time"

	"participant_board/internal/roster"
	"participant_board/internal/view"
)

// SyncStatus describes the outcome of recent fetch cycles
type SyncStatus struct {
	Cycles      int64
	Failures    int64
	LastSuccess time.Time
	LastError   string
	LastErrorAt time.Time
}

// Snapshot is a consistent copy of the state used for one render
type Snapshot struct {
	Records []roster.Record
	Summary roster.Summary
	Sync    SyncStatus
	Loaded  bool
}

// State is safe for concurrent use
type State struct {
	mu      sync.RWMutex
	pricing roster.Pricing
	records []roster.Record
	summary roster.Summary
	sync    SyncStatus
	loaded  bool
}

func NewState(pricing roster.Pricing) *State {
	return &State{
		pricing: pricing,
	}
}

// Replace swaps the record set wholesale and recomputes the summary
func (s *State) Replace(records []roster.Record, at time.Time) roster.Summary {
	copied := append([]roster.Record(nil), records...)
	summary := roster.Aggregate(copied, s.pricing)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = copied
	s.summary = summary
	s.loaded = true
	s.sync.Cycles++
	s.sync.LastSuccess = at
	return summary
}

// RecordFailure notes a failed cycle without touching records or summary
func (s *State) RecordFailure(err error, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync.Cycles++
	s.sync.Failures++
	s.sync.LastError = err.Error()
	s.sync.LastErrorAt = at
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Records: append([]roster.Record(nil), s.records...),
		Summary: s.summary,
		Sync:    s.sync,
		Loaded:  s.loaded,
	}
}

func (s *State) Pricing() roster.Pricing {
	return s.pricing
}

// Rows renders the snapshot with the search and filter state of one request
func (snap Snapshot) Rows(ctrl view.Controller) []view.Row {
	return view.Render(snap.Records, ctrl)
}
