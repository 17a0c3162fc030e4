// Package crawler fetches remote payloads for HTTP-backed sources.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"podrank/internal/config"
	"podrank/pkg/utils"
)

// Scraper errors.
var (
	// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrBodyTooLarge indicates a response body longer than the retry policy allows.
	ErrBodyTooLarge = errors.New("response body too large")
)

// Scraper handles HTTP fetches with config-driven retry logic.
type Scraper struct {
	client      *http.Client
	retryPolicy config.RetryPolicy
	headers     http.Header
}

// NewScraper creates a scraper using the default retry policy.
func NewScraper() *Scraper {
	return NewScraperWithConfig(config.Default().Retry)
}

// NewScraperWithConfig creates a new scraper with a custom retry policy.
func NewScraperWithConfig(retryPolicy config.RetryPolicy) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy: retryPolicy,
		headers:     utils.NewHTTPHelper().BuildHeaders(nil),
	}
}

// Fetch returns the body of url. Transport failures and temporary status
// codes are retried with exponential backoff; other statuses fail at once.
func (s *Scraper) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, _, _, err := s.FetchWithMetrics(ctx, url)

	return body, err
}

// FetchWithMetrics returns (body, statusCode, duration, error).
func (s *Scraper) FetchWithMetrics(ctx context.Context, url string) ([]byte, int, time.Duration, error) {
	var lastErr error

	var lastStatusCode int

	start := time.Now()
	attempts := max(s.retryPolicy.MaxAttempts, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := s.wait(ctx, attempt); err != nil {
				return nil, lastStatusCode, time.Since(start), err
			}
		}

		body, status, err := s.do(ctx, url)
		lastStatusCode = status

		if err == nil {
			return body, status, time.Since(start), nil
		}

		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt, attempts, err)

		if ctx.Err() != nil {
			break
		}

		if status != 0 && !isRetryableStatus(status) {
			break
		}
	}

	return nil, lastStatusCode, time.Since(start), lastErr
}

func (s *Scraper) do(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = s.headers.Clone()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, s.retryPolicy.BodyLimit()))

		return nil, resp.StatusCode, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	limit := s.retryPolicy.BodyLimit()

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > limit {
		return nil, resp.StatusCode, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}

	return body, resp.StatusCode, nil
}

func (s *Scraper) wait(ctx context.Context, attempt int) error {
	delay := s.retryPolicy.GetRetryDelay(attempt)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable, // 503
		http.StatusGatewayTimeout,  // 504
		http.StatusTooManyRequests, // 429
		http.StatusRequestTimeout:  // 408
		return true
	}

	return false
}
