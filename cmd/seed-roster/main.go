package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/hooprank/hooprank/internal/seed"
	"github.com/hooprank/hooprank/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumAthletes = 500
	defaultTopN        = 25
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numAthletes = flag.Int("athletes", defaultNumAthletes, "Number of athletes to generate and submit")
		topN        = flag.Int("top", defaultTopN, "Number of top entries to fetch after seeding")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submitters")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose     = flag.Bool("verbose", false, "Log every ranking entry read back")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seed.Config{
		BaseURL:     *baseURL,
		NumAthletes: *numAthletes,
		TopN:        *topN,
		Workers:     *workers,
		Timeout:     *timeout,
		Verbose:     *verbose,
	}

	if err := seed.Run(ctx, config); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
