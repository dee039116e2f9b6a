// Package scoring combines normalized category scores into composite
// ranking numbers under a caller-supplied weight vector.
package scoring

import (
	"fmt"
	"math"

	"github.com/hooprank/hooprank/internal/domain/category"
)

// WeightVector is a closed record of per-category multipliers, one
// field per tracked category. The closed shape makes a missing
// category a compile-time impossibility for code constructing it
// directly; configuration maps go through FromMap, which fails fast
// instead of defaulting.
//
// Turnovers is a positive penalty strength. The normalizer already
// flipped the sign of the turnover z-score, so a larger weight always
// deepens the penalty and never flips it. Sign inversion happens in
// exactly one place, at normalization time.
type WeightVector struct {
	Points            float64
	Rebounds          float64
	Assists           float64
	Steals            float64
	Blocks            float64
	ThreePointersMade float64
	Turnovers         float64
	FieldGoalPct      float64
	FreeThrowPct      float64
}

// DefaultWeights returns the stock draft weighting: counting
// categories at full strength, shooting percentages discounted for
// their noisiness, threes slightly below full.
func DefaultWeights() WeightVector {
	return WeightVector{
		Points:            1.0,
		Rebounds:          1.0,
		Assists:           1.0,
		Steals:            1.0,
		Blocks:            1.0,
		Turnovers:         1.0,
		FieldGoalPct:      0.5,
		FreeThrowPct:      0.3,
		ThreePointersMade: 0.8,
	}
}

// FromMap builds a WeightVector from a configuration map keyed by
// category name. Every tracked category must be present: a missing
// key is a configuration error, never an implicit zero, because a
// silently-zeroed category would read downstream as a deliberate
// "exclude this stat" choice. Unknown keys are rejected for the same
// reason in reverse.
func FromMap(m map[string]float64) (WeightVector, error) {
	var w WeightVector
	for name := range m {
		if !category.Valid(name) {
			return WeightVector{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
	}
	for _, c := range category.All() {
		v, ok := m[string(c)]
		if !ok {
			return WeightVector{}, fmt.Errorf("%w: %q", ErrMissingWeight, c)
		}
		w.set(c, v)
	}
	if err := w.Validate(); err != nil {
		return WeightVector{}, err
	}
	return w, nil
}

// ToMap returns the vector keyed by category name, for configuration
// round-trips and API responses.
func (w WeightVector) ToMap() map[string]float64 {
	m := make(map[string]float64, category.Count())
	for _, c := range category.All() {
		m[string(c)] = w.Weight(c)
	}
	return m
}

// Weight returns the multiplier for c.
func (w WeightVector) Weight(c category.Category) float64 {
	switch c {
	case category.Points:
		return w.Points
	case category.Rebounds:
		return w.Rebounds
	case category.Assists:
		return w.Assists
	case category.Steals:
		return w.Steals
	case category.Blocks:
		return w.Blocks
	case category.ThreePointersMade:
		return w.ThreePointersMade
	case category.Turnovers:
		return w.Turnovers
	case category.FieldGoalPct:
		return w.FieldGoalPct
	case category.FreeThrowPct:
		return w.FreeThrowPct
	}
	return 0
}

func (w *WeightVector) set(c category.Category, v float64) {
	switch c {
	case category.Points:
		w.Points = v
	case category.Rebounds:
		w.Rebounds = v
	case category.Assists:
		w.Assists = v
	case category.Steals:
		w.Steals = v
	case category.Blocks:
		w.Blocks = v
	case category.ThreePointersMade:
		w.ThreePointersMade = v
	case category.Turnovers:
		w.Turnovers = v
	case category.FieldGoalPct:
		w.FieldGoalPct = v
	case category.FreeThrowPct:
		w.FreeThrowPct = v
	}
}

// Validate rejects vectors no aggregation should run with: NaN/Inf
// entries anywhere, or a negative turnover weight (the penalty
// strength is positive by contract; negating it here would silently
// reward turnovers).
func (w WeightVector) Validate() error {
	for _, c := range category.All() {
		v := w.Weight(c)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %q", ErrInvalidWeight, c)
		}
	}
	if w.Turnovers < 0 {
		return fmt.Errorf("%w: %q must be a non-negative penalty strength", ErrInvalidWeight, category.Turnovers)
	}
	return nil
}
