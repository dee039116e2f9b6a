package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hooprank/hooprank/pkg/logger"
)

// httpClient wraps http.Client with a fixed timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.client.Do(req)
}

func (c *httpClient) postJSON(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// submitStatLines posts all stat lines concurrently through a worker
// pool and tallies the outcomes.
func submitStatLines(ctx context.Context, config *Config, lines []StatLine, stats *Stats) {
	logger.Get().Info(ctx, "submitting stat lines",
		logger.Int("count", len(lines)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/statlines"

	var (
		submitted  int64
		successful int64
		duplicate  int64
		failed     int64
	)

	lineChan := make(chan StatLine, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for line := range lineChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddInt64(&submitted, 1)
				switch submitSingleStatLine(ctx, client, url, line) {
				case outcomeSuccess:
					atomic.AddInt64(&successful, 1)
				case outcomeDuplicate:
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	for _, line := range lines {
		select {
		case <-ctx.Done():
			close(lineChan)
			wg.Wait()
			return
		case lineChan <- line:
		}
	}
	close(lineChan)
	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Duplicate = int(atomic.LoadInt64(&duplicate))
	stats.Failed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "stat line submission completed",
		logger.Int("successful", stats.Successful),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("failed", stats.Failed))
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeDuplicate
	outcomeFailed
)

func submitSingleStatLine(ctx context.Context, client *httpClient, url string, line StatLine) outcome {
	resp, err := client.postJSON(ctx, url, line)
	if err != nil {
		return outcomeFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed
	}

	switch resp.StatusCode {
	case http.StatusAccepted:
		return outcomeSuccess
	case http.StatusOK:
		// 200 acknowledges a replayed submission id.
		var ack ackResponse
		_ = json.Unmarshal(body, &ack)
		return outcomeDuplicate
	default:
		return outcomeFailed
	}
}

// fetchRankings retrieves the top N ranking entries.
func fetchRankings(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/rankings?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching rankings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching rankings: unexpected status %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding rankings: %w", err)
	}

	stats.Ranked = len(entries)
	return entries, nil
}
