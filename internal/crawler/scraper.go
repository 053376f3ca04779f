package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"

	"jregfetch/internal/config"
	"jregfetch/internal/logger"
)

const maxRedirects = 10

// Scraper fetches pages over HTTP with config-driven retry logic.
type Scraper struct {
	client       *resty.Client
	retryPolicy  config.RetryPolicy
	bufferSizeKb int
	log          *logger.Logger
}

// NewScraper creates a scraper from the fetch section of the config.
func NewScraper(cfg config.FetchConfig, log *logger.Logger) *Scraper {
	client := resty.New()
	client.SetTimeout(cfg.GetTimeout())
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))

	return &Scraper{
		client:       client,
		retryPolicy:  cfg.Retry,
		bufferSizeKb: cfg.BufferSizeKb,
		log:          log,
	}
}

// Fetch returns the body of url, trying up to MaxAttempts times.
// Transport errors and HTTP statuses >= 400 count as failed attempts.
// An oversized body fails at once since retrying cannot shrink it.
func (s *Scraper) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error

	attempts := 0

	for attempt := 1; attempt <= s.retryPolicy.MaxAttempts; attempt++ {
		if delay := s.retryPolicy.GetRetryDelay(attempt); delay > 0 {
			select {
			case <-ctx.Done():
				return "", &FetchError{URL: url, Attempts: attempts, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		attempts++
		startTime := time.Now()

		body, err := s.fetchOnce(ctx, url)
		if err == nil {
			s.log.Debug("fetched page", "url", url, "attempt", attempt, "bytes", len(body),
				"duration", time.Since(startTime))

			return body, nil
		}

		lastErr = err

		if ctx.Err() != nil || errors.Is(err, ErrResponseTooLarge) {
			break
		}

		s.log.Warn("fetch attempt failed", "url", url, "attempt", attempt,
			"max_attempts", s.retryPolicy.MaxAttempts, "err", err)
	}

	return "", &FetchError{URL: url, Attempts: attempts, Err: lastErr}
}

func (s *Scraper) fetchOnce(ctx context.Context, url string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	raw := resp.RawBody()
	defer raw.Close()

	if resp.StatusCode() >= 400 {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode())
	}

	// bufferSizeKb is in KB, convert to bytes
	limit := int64(s.bufferSizeKb) * 1024

	body, err := io.ReadAll(io.LimitReader(raw, limit+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > limit {
		return "", fmt.Errorf("%w: more than %d KB", ErrResponseTooLarge, s.bufferSizeKb)
	}

	return string(body), nil
}
