package seed

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hooprank/hooprank/pkg/logger"
)

// Random number generation constants.
const (
	randomFloatDivisor = 1000000
	archetypeDivisor   = 5
)

// Archetype cases for stat-line generation.
const (
	caseScorer = iota
	casePlaymaker
	caseInterior
	caseThreeAndD
	caseReserve
)

// getRandomFloat returns a random float64 in [0.0, 1.0) using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// between returns a random float64 in [lo, hi).
func between(lo, hi float64) float64 {
	return lo + getRandomFloat()*(hi-lo)
}

// generateStatLines creates one stat line per athlete with unique ids.
func generateStatLines(ctx context.Context, config *Config, stats *Stats) []StatLine {
	logger.Get().Info(ctx, "generating stat lines",
		logger.Int("numAthletes", config.NumAthletes))

	lines := make([]StatLine, config.NumAthletes)
	for i := range lines {
		lines[i] = generateStatLine(i)
	}

	stats.Generated = len(lines)
	return lines
}

// generateStatLine produces a stat line for one synthetic athlete. The
// archetype mix keeps the population spread realistic so z-scores do
// not collapse onto a single cluster.
func generateStatLine(index int) StatLine {
	athleteID := uuid.New().String()
	line := StatLine{
		SubmissionID: uuid.New().String(),
		AthleteID:    athleteID,
		Name:         "Athlete " + strconv.Itoa(index+1),
		TS:           time.Now().UTC().Format(time.RFC3339),
	}

	archetype, _ := rand.Int(rand.Reader, big.NewInt(archetypeDivisor))
	switch archetype.Int64() {
	case caseScorer:
		line.Points = between(22, 34)
		line.Rebounds = between(4, 8)
		line.Assists = between(3, 7)
		line.Steals = between(0.8, 1.8)
		line.Blocks = between(0.2, 0.8)
		line.ThreePointersMade = between(2, 4.5)
		line.Turnovers = between(2.5, 4.5)
		line.FieldGoalPct = between(0.44, 0.52)
		line.FieldGoalAttempts = between(17, 24)
		line.FreeThrowPct = between(0.80, 0.92)
		line.FreeThrowAttempts = between(5, 10)
	case casePlaymaker:
		line.Points = between(14, 22)
		line.Rebounds = between(3, 6)
		line.Assists = between(7, 11)
		line.Steals = between(1.0, 2.2)
		line.Blocks = between(0.1, 0.5)
		line.ThreePointersMade = between(1.5, 3)
		line.Turnovers = between(2.5, 4.0)
		line.FieldGoalPct = between(0.43, 0.49)
		line.FieldGoalAttempts = between(12, 17)
		line.FreeThrowPct = between(0.78, 0.90)
		line.FreeThrowAttempts = between(3, 6)
	case caseInterior:
		line.Points = between(14, 24)
		line.Rebounds = between(9, 14)
		line.Assists = between(1.5, 4)
		line.Steals = between(0.5, 1.2)
		line.Blocks = between(1.2, 2.8)
		line.ThreePointersMade = between(0, 0.8)
		line.Turnovers = between(1.5, 3.0)
		line.FieldGoalPct = between(0.55, 0.68)
		line.FieldGoalAttempts = between(10, 16)
		line.FreeThrowPct = between(0.55, 0.75)
		line.FreeThrowAttempts = between(3, 8)
	case caseThreeAndD:
		line.Points = between(9, 15)
		line.Rebounds = between(3, 6)
		line.Assists = between(1.5, 3.5)
		line.Steals = between(1.0, 1.8)
		line.Blocks = between(0.4, 1.0)
		line.ThreePointersMade = between(2, 3.5)
		line.Turnovers = between(0.8, 1.8)
		line.FieldGoalPct = between(0.42, 0.48)
		line.FieldGoalAttempts = between(8, 12)
		line.FreeThrowPct = between(0.75, 0.88)
		line.FreeThrowAttempts = between(1, 3)
	default: // caseReserve
		line.Points = between(4, 10)
		line.Rebounds = between(1.5, 4)
		line.Assists = between(0.5, 2.5)
		line.Steals = between(0.3, 0.9)
		line.Blocks = between(0.1, 0.6)
		line.ThreePointersMade = between(0.3, 1.5)
		line.Turnovers = between(0.5, 1.5)
		line.FieldGoalPct = between(0.38, 0.48)
		line.FieldGoalAttempts = between(4, 9)
		line.FreeThrowPct = between(0.65, 0.85)
		line.FreeThrowAttempts = between(0.5, 2)
	}

	return line
}
