package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hooprank/hooprank/internal/domain/model"
	"github.com/hooprank/hooprank/pkg/metrics"
)

// MemoryRoster is the in-memory Store implementation.
//
// Reads of the published ranking are O(1) per athlete via the rank
// index; the full ordering is held as a sorted slice. The ranking is
// immutable once published, so readers share it without copying the
// index — only TopN results are copied out.
type MemoryRoster struct {
	mu      sync.RWMutex
	roster  map[string]model.StatRecord
	version uint64
	ranking *rankingSnapshot
}

// rankingSnapshot is one published ranking, never mutated after
// SetRanking builds it.
type rankingSnapshot struct {
	version uint64
	entries []Entry          // sorted best-first, ranks assigned
	byID    map[string]Entry // athlete id -> entry
}

// NewMemoryRoster creates an empty roster store with configuration options.
func NewMemoryRoster(opts ...Option) *MemoryRoster {
	s := &MemoryRoster{
		roster: make(map[string]model.StatRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert replaces the stat line for an athlete, inserting if unknown.
func (s *MemoryRoster) Upsert(_ context.Context, rec model.StatRecord) (bool, error) {
	if rec.AthleteID == "" {
		return false, fmt.Errorf("%w: empty athlete id", ErrInvalidRecord)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.roster[rec.AthleteID]
	s.roster[rec.AthleteID] = rec
	s.version++

	metrics.UpdateRosterSize(len(s.roster))
	return !existed, nil
}

// Roster returns an immutable copy of all stat lines plus the version
// they correspond to. Order is unspecified; ranking imposes its own.
func (s *MemoryRoster) Roster(_ context.Context) ([]model.StatRecord, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.StatRecord, 0, len(s.roster))
	for _, rec := range s.roster {
		out = append(out, rec)
	}
	// Deterministic order keeps normalization output stable for tests
	// and diffing; the math itself is order-independent.
	sort.Slice(out, func(i, j int) bool { return out[i].AthleteID < out[j].AthleteID })
	return out, s.version
}

// Version returns the current roster version.
func (s *MemoryRoster) Version(_ context.Context) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// SetRanking publishes a ranking snapshot computed from the given
// roster version. Ranks are assigned here from the slice order.
func (s *MemoryRoster) SetRanking(_ context.Context, version uint64, entries []Entry) error {
	snap := &rankingSnapshot{
		version: version,
		entries: make([]Entry, len(entries)),
		byID:    make(map[string]Entry, len(entries)),
	}
	for i, e := range entries {
		e.Rank = i + 1
		snap.entries[i] = e
		snap.byID[e.AthleteID] = e
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ranking != nil && version < s.ranking.version {
		return fmt.Errorf("%w: version %d already published", ErrStaleRanking, s.ranking.version)
	}
	s.ranking = snap
	return nil
}

// RankingVersion returns the version the published ranking was
// computed from.
func (s *MemoryRoster) RankingVersion(_ context.Context) (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ranking == nil {
		return 0, false
	}
	return s.ranking.version, true
}

// Rank returns the published rank entry for an athlete.
func (s *MemoryRoster) Rank(_ context.Context, athleteID string) (Entry, error) {
	s.mu.RLock()
	snap := s.ranking
	s.mu.RUnlock()

	if snap == nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, athleteID)
	}
	e, ok := snap.byID[athleteID]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, athleteID)
	}
	return e, nil
}

// TopN returns the first n entries of the published ranking.
func (s *MemoryRoster) TopN(_ context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	s.mu.RLock()
	snap := s.ranking
	s.mu.RUnlock()

	if snap == nil {
		return []Entry{}, nil
	}
	if n > len(snap.entries) {
		n = len(snap.entries)
	}
	out := make([]Entry, n)
	copy(out, snap.entries[:n])
	return out, nil
}

// Count returns the number of athletes tracked in the roster.
func (s *MemoryRoster) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.roster)
}
