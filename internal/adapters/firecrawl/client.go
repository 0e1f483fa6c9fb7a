package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"finadvisor/internal/adapters/config"
	"finadvisor/internal/metrics"
	"finadvisor/pkg/errors"
	"finadvisor/pkg/logger"
)

const (
	defaultBaseURL     = "https://api.firecrawl.dev"
	defaultTimeout     = 30 * time.Second
	defaultSearchLimit = 5
	defaultRPM         = 30

	searchPath = "/v1/search"
)

// Client is a Firecrawl search API client.
type Client struct {
	apiKey      string
	baseURL     string
	searchLimit int
	httpClient  *http.Client
	limiter     *rate.Limiter
	log         *logger.Logger
	backoff     []time.Duration
}

// NewClient creates a Firecrawl client from configuration.
func NewClient(cfg config.FirecrawlConfig, log *logger.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	searchLimit := cfg.SearchLimit
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}

	rpm := cfg.RequestsPerMin
	if rpm <= 0 {
		rpm = defaultRPM
	}
	burst := rpm / 10
	if burst < 1 {
		burst = 1
	}

	if log == nil {
		log = logger.Get()
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		searchLimit: searchLimit,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(rate.Limit(float64(rpm))/60.0, burst),
		log:         log,
		backoff:     []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
	}
}

type searchRequest struct {
	Query         string        `json:"query"`
	Limit         int           `json:"limit,omitempty"`
	ScrapeOptions scrapeOptions `json:"scrapeOptions"`
}

type scrapeOptions struct {
	Formats []string `json:"formats"`
}

// SearchResponse mirrors the Firecrawl search payload. Success false with a
// populated Error means the provider rejected the query after a clean HTTP
// exchange.
type SearchResponse struct {
	Success bool           `json:"success"`
	Data    []SearchResult `json:"data"`
	Error   string         `json:"error"`
}

// SearchResult is one scraped search hit.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Markdown    string `json:"markdown"`
	Content     string `json:"content"`
}

// Search runs a web search with markdown scraping enabled. Transport errors
// and 5xx/429 responses are retried with increasing backoff; auth and client
// errors fail immediately.
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.Wrap(errors.ErrMissingQuery, "empty search query")
	}
	if limit <= 0 {
		limit = c.searchLimit
	}

	body, err := json.Marshal(searchRequest{
		Query:         query,
		Limit:         limit,
		ScrapeOptions: scrapeOptions{Formats: []string{"markdown"}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal search request")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "firecrawl rate limiter")
	}

	var lastErr error

	for attempt := 0; attempt <= len(c.backoff); attempt++ {
		if attempt > 0 {
			c.log.Warnf("Firecrawl search retry %d/%d: %v", attempt, len(c.backoff), lastErr)
			select {
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), "firecrawl search cancelled")
			case <-time.After(c.backoff[attempt-1]):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
		if err != nil {
			return nil, errors.Wrap(err, "build search request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		latency := time.Since(start)
		if err != nil {
			metrics.RecordProviderAPICall("firecrawl", "search", latency, err)
			lastErr = errors.Wrap(err, "do search request")
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			metrics.RecordProviderAPICall("firecrawl", "search", latency, err)
			lastErr = errors.Wrap(err, "read search response")
			continue
		}

		statusErr := searchStatusError(resp.StatusCode)
		metrics.RecordProviderAPICall("firecrawl", "search", latency, statusErr)

		switch {
		case statusErr == nil:
			var parsed SearchResponse
			if err := json.Unmarshal(respBody, &parsed); err != nil {
				return nil, errors.Wrap(err, "unmarshal search response")
			}
			return &parsed, nil

		case errors.Is(statusErr, errors.ErrRateLimited),
			errors.Is(statusErr, errors.ErrSearchFailed):
			lastErr = statusErr
			continue

		default:
			return nil, statusErr
		}
	}

	if errors.Is(lastErr, errors.ErrRateLimited) {
		return nil, lastErr
	}
	return nil, errors.Wrapf(errors.ErrSearchFailed, "search retries exhausted: %v", lastErr)
}

// searchStatusError maps an HTTP status to a retry decision: nil means
// proceed, ErrRateLimited and ErrSearchFailed are retryable, everything
// else aborts the call.
func searchStatusError(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusTooManyRequests:
		return errors.Wrap(errors.ErrRateLimited, "firecrawl search")
	case status >= 500:
		return errors.Wrapf(errors.ErrSearchFailed, "firecrawl search: status %d", status)
	case status == http.StatusUnauthorized || status == http.StatusForbidden ||
		status == http.StatusPaymentRequired:
		return errors.Wrapf(errors.ErrSearchRejected, "firecrawl search: status %d", status)
	default:
		return errors.Wrapf(errors.ErrSearchRejected, "firecrawl search: unexpected status %d", status)
	}
}
