// Package normalize converts a population of raw stat records into
// per-category standardized scores.
//
// Normalization is population-relative: each athlete's score depends
// on the mean and spread of the whole comparison population, so the
// package operates on the full population at once and never on a
// single record in isolation. The functions are pure; concurrent
// callers may normalize the same immutable snapshot simultaneously.
package normalize

import (
	"math"

	"github.com/hooprank/hooprank/internal/domain/category"
	"github.com/hooprank/hooprank/internal/domain/model"
)

// Population computes a NormalizedRecord for every member of records.
//
// Counting categories get the population z-score of the raw value.
// The inverse category (turnovers) gets the negated z-score, so a
// positive score always means better than average. The percentage
// categories get the z-score of a volume-weighted impact quantity,
// (percentage - mean percentage) * attempts, computed over the
// athletes with positive attempt volume.
//
// Degenerate cases never produce NaN or Inf: a category with zero
// spread, or an athlete excluded from a category's population (absent
// value, zero attempts), scores exactly 0 there.
func Population(records []model.StatRecord) []model.NormalizedRecord {
	out := make([]model.NormalizedRecord, len(records))
	for i, r := range records {
		out[i] = model.NormalizedRecord{
			AthleteID: r.AthleteID,
			Name:      r.Name,
			Scores:    make(map[category.Category]float64, category.Count()),
		}
	}

	for _, c := range category.All() {
		switch c.Kind() {
		case category.Percentage:
			impactScores(records, c, out)
		default:
			directScores(records, c, out)
		}
	}
	return out
}

// directScores fills in plain z-scores for a counting or inverse
// category. The population statistics exclude absent values.
func directScores(records []model.StatRecord, c category.Category, out []model.NormalizedRecord) {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := r.Value(c); ok {
			values = append(values, v)
		}
	}
	mean, stddev := meanStddev(values)

	invert := c.Kind() == category.Inverse
	for i, r := range records {
		v, ok := r.Value(c)
		if !ok || stddev == 0 {
			out[i].Scores[c] = 0
			continue
		}
		z := (v - mean) / stddev
		if invert {
			z = -z
		}
		out[i].Scores[c] = z
	}
}

// impactScores fills in impact-weighted z-scores for a percentage
// category. Only athletes with a defined percentage and strictly
// positive attempts enter the population; everyone else scores 0 but
// still appears in the output.
func impactScores(records []model.StatRecord, c category.Category, out []model.NormalizedRecord) {
	type member struct {
		idx int
		pct float64
		att float64
	}
	members := make([]member, 0, len(records))
	pctSum := 0.0
	for i, r := range records {
		pct, ok := r.Value(c)
		att := r.Attempts(c)
		if !ok || att <= 0 {
			out[i].Scores[c] = 0
			continue
		}
		members = append(members, member{idx: i, pct: pct, att: att})
		pctSum += pct
	}
	if len(members) == 0 {
		return
	}
	meanPct := pctSum / float64(len(members))

	// Impact rewards being above the mean percentage at volume; a
	// shooter exactly at the mean scores 0 regardless of attempts.
	impacts := make([]float64, len(members))
	for i, m := range members {
		impacts[i] = (m.pct - meanPct) * m.att
	}
	mean, stddev := meanStddev(impacts)

	for i, m := range members {
		if stddev == 0 {
			out[m.idx].Scores[c] = 0
			continue
		}
		out[m.idx].Scores[c] = (impacts[i] - mean) / stddev
	}
}

// meanStddev returns the mean and population standard deviation
// (divide by N, not N-1) of values. Fewer than two values yields a
// zero stddev, which callers treat as a flat category.
func meanStddev(values []float64) (mean, stddev float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	if n < 2 {
		return mean, 0
	}
	sq := 0.0
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(n))
}
