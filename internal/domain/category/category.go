// Package category enumerates the tracked statistical categories.
//
// The set is closed: nine categories, fixed order. Every normalized
// record and every weight vector carries exactly one entry per
// category, so downstream code can iterate All() and rely on
// completeness instead of probing for optional keys.
package category

// Kind classifies how a category is normalized.
type Kind int

const (
	// Counting categories are z-scored directly; higher raw is better.
	Counting Kind = iota
	// Inverse categories are z-scored and sign-flipped once at
	// normalization time; higher raw is worse.
	Inverse
	// Percentage categories are z-scored on a volume-weighted impact
	// quantity rather than the raw percentage.
	Percentage
)

// Category identifies one tracked statistic.
type Category string

// The nine tracked categories.
const (
	Points            Category = "points"
	Rebounds          Category = "rebounds"
	Assists           Category = "assists"
	Steals            Category = "steals"
	Blocks            Category = "blocks"
	ThreePointersMade Category = "three_pointers_made"
	Turnovers         Category = "turnovers"
	FieldGoalPct      Category = "field_goal_pct"
	FreeThrowPct      Category = "free_throw_pct"
)

// all holds the fixed iteration order used everywhere.
var all = []Category{
	Points,
	Rebounds,
	Assists,
	Steals,
	Blocks,
	ThreePointersMade,
	Turnovers,
	FieldGoalPct,
	FreeThrowPct,
}

// All returns the tracked categories in their fixed order.
// Callers must not mutate the returned slice.
func All() []Category {
	return all
}

// Count returns the number of tracked categories. The composite score
// divides by this fixed count so its scale does not drift if a future
// category is added.
func Count() int {
	return len(all)
}

// Kind returns how the category is normalized.
func (c Category) Kind() Kind {
	switch c {
	case Turnovers:
		return Inverse
	case FieldGoalPct, FreeThrowPct:
		return Percentage
	default:
		return Counting
	}
}

// Valid reports whether s names a tracked category.
func Valid(s string) bool {
	for _, c := range all {
		if string(c) == s {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
