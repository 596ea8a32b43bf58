// Package httpx is the upstream transport shared by the provider clients:
// per-provider timeout, rate limit and circuit breaker around a JSON GET.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"medi-forecast/internal/config"
)

// ErrCircuitOpen is returned while a provider's breaker rejects requests.
var ErrCircuitOpen = errors.New("circuit breaker open")

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch returned status %d: %s", e.StatusCode, e.Body)
}

// NotFound reports whether the upstream answered 404.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Config describes one upstream provider.
type Config struct {
	Name              string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
	Accept            string
	Breaker           config.BreakerConfig
}

// Client performs rate-limited, breaker-guarded JSON GETs against one provider.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	userAgent  string
	accept     string
	logger     *slog.Logger
}

type response struct {
	status int
	body   []byte
}

// maxErrorBody bounds how much of an error response is kept in StatusError.
const maxErrorBody = 512

func NewClient(cfg Config, logger *slog.Logger) *Client {
	logger = logger.With("component", "httpx", "provider", cfg.Name)

	accept := cfg.Accept
	if accept == "" {
		accept = "application/json"
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	minRequests := cfg.Breaker.MinRequests
	failureRatio := cfg.Breaker.FailureRatio
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= failureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    breaker,
		userAgent:  cfg.UserAgent,
		accept:     accept,
		logger:     logger,
	}
}

// GetJSON fetches rawURL, decodes the body into out and returns the body
// verbatim. There are no retries.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, rawURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}

	resp := result.(*response)
	if resp.status < 200 || resp.status >= 300 {
		return nil, &StatusError{StatusCode: resp.status, Body: truncate(resp.body)}
	}

	if out != nil {
		if err := json.Unmarshal(resp.body, out); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	c.logger.Debug("fetched upstream resource", "url", rawURL, "bytes", len(resp.body))

	return json.RawMessage(resp.body), nil
}

// do returns client errors (4xx) as results so they do not trip the breaker.
func (c *Client) do(ctx context.Context, rawURL string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", c.accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(body)}
	}

	return &response{status: resp.StatusCode, body: body}, nil
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}
