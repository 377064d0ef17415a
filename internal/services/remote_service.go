package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"kv.dev/portfolio/internal/logging"
	"kv.dev/portfolio/internal/metrics"
	"kv.dev/portfolio/internal/models"
)

// DefaultRemoteURL is the published project document
const DefaultRemoteURL = "https://api.jsonbin.io/v3/b/6924f27b43b1c97be9c31152"

// maxRemoteBody bounds the remote document size
const maxRemoteBody = 1 << 20

// ErrThrottled is returned when a fetch is attempted too soon after the last one
// and no earlier result is available.
var ErrThrottled = errors.New("remote fetch throttled")

// RemoteConfig configures the remote loader
type RemoteConfig struct {
	URL         string
	Timeout     time.Duration
	MinInterval time.Duration
}

// RemoteService loads the project list from the remote document
type RemoteService struct {
	url     string
	timeout time.Duration
	client  *http.Client
	limiter *rate.Limiter
	group   singleflight.Group
	logger  *zap.Logger

	mu   sync.Mutex
	last []models.Project
}

// NewRemoteService creates a new RemoteService
func NewRemoteService(cfg RemoteConfig, client *http.Client, logger *zap.Logger) *RemoteService {
	if cfg.URL == "" {
		cfg.URL = DefaultRemoteURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	return &RemoteService{
		url:     cfg.URL,
		timeout: cfg.Timeout,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logging.OrNop(logger),
	}
}

// remoteDocument is the envelope the remote endpoint returns
type remoteDocument struct {
	Record json.RawMessage `json:"record"`
}

// Fetch returns the remote project list. Concurrent callers share one request;
// calls inside the minimum interval reuse the last good result. The shared
// request outlives any single caller's cancellation, bounded by the timeout.
func (s *RemoteService) Fetch(ctx context.Context) ([]models.Project, error) {
	ch := s.group.DoChan("remote", func() (interface{}, error) {
		if !s.limiter.Allow() {
			if last := s.cached(); last != nil {
				return last, nil
			}
			return nil, ErrThrottled
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		projects, err := s.fetch(fetchCtx)
		metrics.RemoteFetches.WithLabelValues(metrics.Result(err)).Inc()
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.last = projects
		s.mu.Unlock()
		return projects, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.Project), nil
	}
}

func (s *RemoteService) cached() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *RemoteService) fetch(ctx context.Context) ([]models.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build remote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote projects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("remote responded with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read remote body: %w", err)
	}

	var doc remoteDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse remote body: %w", err)
	}
	if len(doc.Record) == 0 {
		return nil, errors.New("remote body has no record field")
	}

	var projects []models.Project
	if err := json.Unmarshal(doc.Record, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse remote record: %w", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}

	s.logger.Debug("remote projects loaded",
		zap.Int("count", len(projects)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return projects, nil
}
