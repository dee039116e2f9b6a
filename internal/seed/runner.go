// Package seed generates synthetic athlete stat lines and submits them
// to a running ranking service, then reads back the resulting
// leaderboard. It is the standard way to populate a fresh instance.
package seed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hooprank/hooprank/pkg/logger"
)

// processingDelay gives the ingest workers time to drain the queue
// before rankings are read back.
const processingDelay = 2 * time.Second

// Run executes a complete seeding pass against a live service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting roster seed",
		logger.String("baseURL", config.BaseURL),
		logger.Int("athletes", config.NumAthletes),
		logger.Int("workers", config.Workers),
		logger.Int("topN", config.TopN))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	lines := generateStatLines(ctx, config, stats)
	submitStatLines(ctx, config, lines, stats)

	logger.Get().Info(ctx, "waiting for submissions to be processed")
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(processingDelay):
	}

	entries, err := fetchRankings(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("ranking readback failed: %w", err)
	}

	if config.Verbose {
		for _, e := range entries {
			logger.Get().Info(ctx, "ranking entry",
				logger.Int("rank", e.Rank),
				logger.String("athleteID", e.AthleteID),
				logger.String("name", e.Name),
				logger.Float64("score", e.Score))
		}
	}

	stats.Duration = time.Since(stats.StartTime)
	displayFinalStats(ctx, stats)
	return nil
}

// checkServiceHealth verifies the service is up before seeding.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("connecting to service: %w", err)
	}
	defer resp.Body.Close()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var linesPerSecond float64
	if stats.Duration > 0 {
		linesPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "seeding completed",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("failed", stats.Failed),
		logger.Int("ranked", stats.Ranked),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("linesPerSecond", linesPerSecond))
}
