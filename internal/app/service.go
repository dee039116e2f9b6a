// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	submissionqueue "github.com/hooprank/hooprank/internal/adapters/mq/queue"
	workerpool "github.com/hooprank/hooprank/internal/adapters/mq/worker"
	"github.com/hooprank/hooprank/internal/adapters/repository"
	"github.com/hooprank/hooprank/internal/domain/dedupe"
	"github.com/hooprank/hooprank/internal/domain/model"
	"github.com/hooprank/hooprank/internal/domain/normalize"
	"github.com/hooprank/hooprank/internal/domain/scoring"
	"github.com/hooprank/hooprank/pkg/logger"
	"github.com/hooprank/hooprank/pkg/metrics"
)

// Service implements the API dependencies for the ranking system.
//
// The scoring pipeline is lazy: submissions only bump the roster
// version, and the expensive population normalization reruns on the
// next read that observes a version change. A weights change alone
// re-aggregates the cached normalized population without normalizing
// again — aggregation is linear while normalization walks the whole
// roster per category.
type Service struct {
	roster  repository.Store
	deduper dedupe.Deduper
	queue   submissionqueue.Queue
	pool    *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int

	// Engine state, guarded by engineMu. The normalized population is
	// immutable once built; rankedWeights/rankedVersion remember what
	// the published ranking was computed from.
	engineMu          sync.Mutex
	weights           scoring.WeightVector
	normalized        []model.NormalizedRecord
	normalizedVersion uint64
	rankedVersion     uint64
	rankedWeights     scoring.WeightVector
	ranked            bool

	// State
	stateMu sync.Mutex
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithWeights sets the initial weight vector.
func WithWeights(w scoring.WeightVector) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   100_000,
		dedupeSize:  500_000,
		weights:     scoring.DefaultWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds and starts the ingest pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.started {
		return fmt.Errorf("service already started")
	}
	if err := s.weights.Validate(); err != nil {
		return fmt.Errorf("starting service: %w", err)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.roster = repository.NewMemoryRoster()
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = submissionqueue.NewInMemoryQueue(submissionqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.roster)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
	)
	return nil
}

// Stop shuts the pipeline down: the queue stops accepting, workers
// drain what remains.
func (s *Service) Stop() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if !s.started {
		return
	}
	_ = s.queue.Close()
	s.pool.Stop()
	s.started = false
}

// SeenAndRecord implements the idempotency check for the API layer.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordSubmissionDuplicate()
	}
	return seen
}

// Unrecord rolls back an idempotency record after a failed enqueue.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue pushes a submission for async processing. Returns false on
// backpressure.
func (s *Service) Enqueue(ctx context.Context, sub model.Submission) bool {
	return s.queue.Enqueue(ctx, sub)
}

// TopN returns the first n entries of the current ranking, refreshing
// it first if the roster or weights moved.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return s.roster.TopN(ctx, n)
}

// Rank returns the current rank entry for an athlete.
func (s *Service) Rank(ctx context.Context, athleteID string) (repository.Entry, error) {
	if err := s.refresh(ctx); err != nil {
		return repository.Entry{}, err
	}
	return s.roster.Rank(ctx, athleteID)
}

// Weights returns the active weight vector keyed by category name.
func (s *Service) Weights(_ context.Context) map[string]float64 {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	return s.weights.ToMap()
}

// UpdateWeights replaces the active weight vector. The map must carry
// every tracked category; a partial map fails fast without touching
// the published ranking. The next read re-aggregates the cached
// normalized population under the new weights.
func (s *Service) UpdateWeights(ctx context.Context, m map[string]float64) error {
	w, err := scoring.FromMap(m)
	if err != nil {
		return err
	}

	s.engineMu.Lock()
	s.weights = w
	s.engineMu.Unlock()

	s.logger.Info(ctx, "weights updated")
	return nil
}

// refresh brings the published ranking up to date with the roster and
// the active weights. Normalization only reruns when the roster
// version moved; a weights-only change reuses the cached normalized
// population.
func (s *Service) refresh(ctx context.Context) error {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	roster, version := s.roster.Roster(ctx)

	if version != s.normalizedVersion || s.normalized == nil {
		start := time.Now()
		s.normalized = normalize.Population(roster)
		s.normalizedVersion = version
		metrics.RecordNormalizationDuration(float64(time.Since(start).Milliseconds()))
	}

	if s.ranked && version == s.rankedVersion && s.weights == s.rankedWeights {
		return nil
	}

	start := time.Now()
	scores, err := scoring.AggregateScores(s.normalized, s.weights)
	if err != nil {
		return err
	}
	scoring.SortByScore(scores)
	metrics.RecordAggregationDuration(float64(time.Since(start).Milliseconds()))

	entries := make([]repository.Entry, len(scores))
	for i, cs := range scores {
		entries[i] = repository.Entry{
			AthleteID: cs.AthleteID,
			Name:      cs.Name,
			Score:     cs.Score,
		}
	}
	if err := s.roster.SetRanking(ctx, version, entries); err != nil {
		return err
	}
	s.rankedVersion = version
	s.rankedWeights = s.weights
	s.ranked = true
	metrics.RecordRerank()

	s.logger.Debug(ctx, "ranking refreshed",
		logger.Uint64("version", version),
		logger.Int("athletes", len(entries)),
	)
	return nil
}

// GetStats returns service statistics for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()

	s.engineMu.Lock()
	weights := s.weights.ToMap()
	normalizedVersion := s.normalizedVersion
	rankedVersion := s.rankedVersion
	s.engineMu.Unlock()

	return map[string]interface{}{
		"rosterSize":        s.roster.Count(ctx),
		"queueLength":       s.queue.Len(ctx),
		"workerCount":       s.pool.Size(),
		"dedupeSize":        s.deduper.Size(),
		"normalizedVersion": normalizedVersion,
		"rankedVersion":     rankedVersion,
		"weights":           weights,
	}
}
