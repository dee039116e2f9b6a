// Package repository defines the roster store interface and errors.
package repository

import (
	"context"

	"github.com/hooprank/hooprank/internal/domain/model"
)

// Entry represents one row of the ranking snapshot.
type Entry struct {
	Rank      int     `json:"rank"`
	AthleteID string  `json:"athlete_id"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
}

// Store provides read/write access to the roster and the most
// recently published ranking snapshot.
//
// The roster is versioned: every accepted upsert bumps the version,
// which is how the service tells a published ranking has gone stale
// without re-normalizing on every read.
type Store interface {
	// Upsert replaces the stat line for an athlete, inserting if
	// unknown. Returns true when the athlete is new to the roster.
	Upsert(ctx context.Context, rec model.StatRecord) (bool, error)

	// Roster returns an immutable copy of all stat lines plus the
	// roster version they correspond to.
	Roster(ctx context.Context) ([]model.StatRecord, uint64)

	// Version returns the current roster version.
	Version(ctx context.Context) uint64

	// SetRanking publishes a ranking snapshot computed from the given
	// roster version. Older snapshots than the one already published
	// are rejected with ErrStaleRanking.
	SetRanking(ctx context.Context, version uint64, entries []Entry) error

	// RankingVersion returns the version the published ranking was
	// computed from, and false when no ranking has been published.
	RankingVersion(ctx context.Context) (uint64, bool)

	// Rank returns the published rank entry for an athlete.
	// Returns ErrNotFound if the athlete is unknown or unranked.
	Rank(ctx context.Context, athleteID string) (Entry, error)

	// TopN returns the first n entries of the published ranking.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of athletes tracked in the roster.
	Count(ctx context.Context) int
}
