package scoring

import (
	"fmt"
	"sort"

	"github.com/hooprank/hooprank/internal/domain/category"
	"github.com/hooprank/hooprank/internal/domain/model"
	"github.com/hooprank/hooprank/internal/domain/normalize"
)

// Aggregate folds one normalized record through the weight vector
// into a single composite number: the sum of the nine weighted
// standardized scores divided by the fixed category count. Dividing
// by the count rather than the total weight keeps the composite on
// the same scale however the weights are tuned.
//
// Every tracked category must carry a score; a record missing one is
// malformed input and fails with the category and athlete named.
func Aggregate(rec model.NormalizedRecord, weights WeightVector) (model.CompositeScore, error) {
	if err := weights.Validate(); err != nil {
		return model.CompositeScore{}, err
	}
	sum := 0.0
	for _, c := range category.All() {
		z, ok := rec.Score(c)
		if !ok {
			return model.CompositeScore{}, fmt.Errorf("%w: %q for athlete %q", ErrMissingScore, c, rec.AthleteID)
		}
		sum += z * weights.Weight(c)
	}
	return model.CompositeScore{
		AthleteID: rec.AthleteID,
		Name:      rec.Name,
		Score:     sum / float64(category.Count()),
	}, nil
}

// AggregateScores computes one composite per athlete. There is no
// cross-athlete interaction here; that already happened during
// normalization, which is what makes re-weighting a linear pass over
// an existing normalized population.
func AggregateScores(recs []model.NormalizedRecord, weights WeightVector) ([]model.CompositeScore, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	out := make([]model.CompositeScore, len(recs))
	for i, rec := range recs {
		cs, err := Aggregate(rec, weights)
		if err != nil {
			return nil, err
		}
		out[i] = cs
	}
	return out, nil
}

// ScoreAndRank is the convenience composition: normalize the whole
// population, aggregate under weights, and return composites sorted
// best-first (score descending, athlete id ascending on ties).
func ScoreAndRank(recs []model.StatRecord, weights WeightVector) ([]model.CompositeScore, error) {
	normalized := normalize.Population(recs)
	scores, err := AggregateScores(normalized, weights)
	if err != nil {
		return nil, err
	}
	SortByScore(scores)
	return scores, nil
}

// SortByScore orders composites best-first with a deterministic
// tie-break on athlete id.
func SortByScore(scores []model.CompositeScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].AthleteID < scores[j].AthleteID
	})
}
