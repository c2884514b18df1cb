package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/consultmatch/internal/adapters/dataset"
	"github.com/okian/consultmatch/pkg/logger"
)

type result int

const (
	resultOK result = iota
	resultRejected
	resultFailed
)

type client struct {
	http    *http.Client
	baseURL string
}

func newClient(cfg Config) *client {
	return &client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (c *client) post(ctx context.Context, path string, body any, headers map[string]string) (int, error) {
	var payload io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// Push posts f to the server at cfg.BaseURL. Consultants go one at a time
// so the server keeps file order; projects and team requests fan out over
// cfg.Workers.
func Push(ctx context.Context, cfg Config, f dataset.File) (Stats, error) {
	log := logger.Get().Named("seed")
	start := time.Now()
	c := newClient(cfg)
	var stats Stats

	log.Info(ctx, "pushing dataset",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("consultants", len(f.Consultants)),
		logger.Int("projects", len(f.Projects)),
		logger.Int("workers", cfg.Workers),
	)

	for _, consultant := range f.Consultants {
		status, err := c.post(ctx, "/consultants", consultant, nil)
		if err != nil {
			return stats, err
		}
		if status != http.StatusCreated {
			return stats, fmt.Errorf("consultant %s: unexpected status %d", consultant.ID, status)
		}
		stats.ConsultantsPushed++
	}

	projects := make([]func(context.Context) result, len(f.Projects))
	for i, p := range f.Projects {
		projects[i] = func(ctx context.Context) result {
			status, err := c.post(ctx, "/projects", p, nil)
			if err != nil || status != http.StatusCreated {
				log.Warn(ctx, "project rejected", logger.String("project_id", p.ID), logger.Int("status", status))
				return resultFailed
			}
			return resultOK
		}
	}
	ok, _, failed := fanOut(ctx, cfg.Workers, projects)
	stats.ProjectsPushed = ok
	stats.Failed += failed

	if cfg.Staff {
		teams := make([]func(context.Context) result, len(f.Projects))
		for i, p := range f.Projects {
			teams[i] = func(ctx context.Context) result {
				status, err := c.post(ctx, "/projects/"+p.ID+"/assignments", nil,
					map[string]string{"Idempotency-Key": "seed-" + p.ID})
				switch {
				case err != nil:
					return resultFailed
				case status == http.StatusCreated || status == http.StatusOK:
					return resultOK
				case status == http.StatusConflict || status == http.StatusTooManyRequests:
					return resultRejected
				default:
					return resultFailed
				}
			}
		}
		committed, rejected, failed := fanOut(ctx, cfg.Workers, teams)
		stats.TeamsRequested = len(teams)
		stats.TeamsCommitted = committed
		stats.TeamsRejected = rejected
		stats.Failed += failed
	}

	stats.Duration = time.Since(start)
	log.Info(ctx, "push completed",
		logger.Int("consultants", stats.ConsultantsPushed),
		logger.Int("projects", stats.ProjectsPushed),
		logger.Int("teamsCommitted", stats.TeamsCommitted),
		logger.Int("teamsRejected", stats.TeamsRejected),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
	)
	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("push interrupted: %w", err)
	}
	return stats, nil
}

// fanOut runs tasks on a fixed number of workers and tallies their results.
func fanOut(ctx context.Context, workers int, tasks []func(context.Context) result) (ok, rejected, failed int) {
	var counts [3]atomic.Int64
	ch := make(chan func(context.Context) result, max(workers, 1)*2)
	var wg sync.WaitGroup

	for range max(workers, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range ch {
				if ctx.Err() != nil {
					continue
				}
				counts[task(ctx)].Add(1)
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, task := range tasks {
			select {
			case <-ctx.Done():
				return
			case ch <- task:
			}
		}
	}()

	wg.Wait()
	return int(counts[resultOK].Load()), int(counts[resultRejected].Load()), int(counts[resultFailed].Load())
}
