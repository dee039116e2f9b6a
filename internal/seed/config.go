package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumAthletes int           // Number of athletes to generate
	TopN        int           // Number of top entries to fetch afterwards
	Workers     int           // Number of concurrent submitters
	Timeout     time.Duration // HTTP request timeout
	Verbose     bool          // Enable verbose logging
}

// StatLine is the submission payload for POST /statlines.
type StatLine struct {
	SubmissionID      string  `json:"submission_id"`
	AthleteID         string  `json:"athlete_id"`
	Name              string  `json:"name"`
	Points            float64 `json:"points"`
	Rebounds          float64 `json:"rebounds"`
	Assists           float64 `json:"assists"`
	Steals            float64 `json:"steals"`
	Blocks            float64 `json:"blocks"`
	ThreePointersMade float64 `json:"three_pointers_made"`
	Turnovers         float64 `json:"turnovers"`
	FieldGoalPct      float64 `json:"field_goal_pct"`
	FieldGoalAttempts float64 `json:"field_goal_attempts"`
	FreeThrowPct      float64 `json:"free_throw_pct"`
	FreeThrowAttempts float64 `json:"free_throw_attempts"`
	TS                string  `json:"ts"`
}

// Entry mirrors a ranking entry returned by GET /rankings.
type Entry struct {
	Rank      int     `json:"rank"`
	AthleteID string  `json:"athlete_id"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
}

// ackResponse is the submission acknowledgement shape.
type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds seeding run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Successful int
	Duplicate  int
	Failed     int
	Ranked     int
	StartTime  time.Time
	Duration   time.Duration
}
