// Package model contains domain models passed between layers.
package model

import (
	"math"
	"time"

	"github.com/hooprank/hooprank/internal/domain/category"
)

// StatRecord holds one athlete's raw per-game averages for a single
// evaluation period. Absent values are represented as NaN and are
// excluded from population statistics rather than coerced to zero;
// a literal zero is a real stat line, not a gap.
type StatRecord struct {
	AthleteID string
	Name      string

	Points            float64
	Rebounds          float64
	Assists           float64
	Steals            float64
	Blocks            float64
	ThreePointersMade float64
	Turnovers         float64

	// Percentages carry a companion attempt volume; a percentage with
	// zero attempts is not meaningful and does not enter the
	// population statistics for its category.
	FieldGoalPct      float64
	FieldGoalAttempts float64
	FreeThrowPct      float64
	FreeThrowAttempts float64
}

// Value returns the raw value for c and whether it is present.
// Absent (NaN) values report false.
func (r StatRecord) Value(c category.Category) (float64, bool) {
	var v float64
	switch c {
	case category.Points:
		v = r.Points
	case category.Rebounds:
		v = r.Rebounds
	case category.Assists:
		v = r.Assists
	case category.Steals:
		v = r.Steals
	case category.Blocks:
		v = r.Blocks
	case category.ThreePointersMade:
		v = r.ThreePointersMade
	case category.Turnovers:
		v = r.Turnovers
	case category.FieldGoalPct:
		v = r.FieldGoalPct
	case category.FreeThrowPct:
		v = r.FreeThrowPct
	default:
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Attempts returns the attempt volume paired with a percentage
// category. It returns 0 for non-percentage categories and for absent
// volumes.
func (r StatRecord) Attempts(c category.Category) float64 {
	var v float64
	switch c {
	case category.FieldGoalPct:
		v = r.FieldGoalAttempts
	case category.FreeThrowPct:
		v = r.FreeThrowAttempts
	default:
		return 0
	}
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// Absent is the sentinel for a missing raw value.
func Absent() float64 {
	return math.NaN()
}

// NormalizedRecord carries one standardized score per tracked category
// for a single athlete. Scores are population z-scores (impact
// z-scores for the percentage categories) with the inverse category
// already sign-corrected: positive always means better than average.
type NormalizedRecord struct {
	AthleteID string
	Name      string
	Scores    map[category.Category]float64
}

// Score returns the standardized score for c and whether it is set.
func (r NormalizedRecord) Score(c category.Category) (float64, bool) {
	s, ok := r.Scores[c]
	return s, ok
}

// CompositeScore is one athlete's aggregate ranking number: the
// weighted arithmetic mean of all per-category standardized scores.
type CompositeScore struct {
	AthleteID string
	Name      string
	Score     float64
}

// Submission is a stat-line submission flowing through the ingest
// pipeline. SubmissionID makes replays idempotent.
type Submission struct {
	SubmissionID string
	Record       StatRecord
	TS           time.Time
}
