package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"finadvisor/internal/adapters/config"
	"finadvisor/internal/metrics"
	"finadvisor/pkg/errors"
	"finadvisor/pkg/logger"
)

const (
	defaultBaseURL = "https://query2.finance.yahoo.com"
	defaultTimeout = 30 * time.Second
	defaultRPM     = 60

	quoteSummaryPath = "/v10/finance/quoteSummary/"
	timeseriesPath   = "/ws/fundamentals-timeseries/v1/finance/timeseries/"

	// Yahoo rejects requests without a browser-looking user agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Client fetches market data from the Yahoo Finance public API. Live quotes
// and daily candles go through the finance-go bindings; company profiles,
// key statistics and financial statements hit the quoteSummary and
// fundamentals-timeseries endpoints directly.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	log        *logger.Logger
	now        func() time.Time
}

// NewClient creates a Yahoo Finance client from configuration.
func NewClient(cfg config.YahooConfig, log *logger.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
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
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(float64(rpm))/60.0, burst),
		log:        log,
		now:        time.Now,
	}
}

// getJSON performs a rate-limited GET against the Yahoo API and decodes the
// response into out. Endpoint is the metrics label for the call.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "yahoo rate limiter")
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.Wrap(err, "build yahoo request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		metrics.RecordProviderAPICall("yahoo", endpoint, latency, err)
		return errors.Wrapf(errors.ErrProviderUnavailable, "yahoo %s: %v", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordProviderAPICall("yahoo", endpoint, latency, err)
		return errors.Wrapf(errors.ErrProviderUnavailable, "read yahoo %s response: %v", endpoint, err)
	}

	statusErr := statusError(endpoint, resp.StatusCode, body)
	metrics.RecordProviderAPICall("yahoo", endpoint, latency, statusErr)
	if statusErr != nil {
		return statusErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decode yahoo %s response", endpoint)
	}

	return nil
}

func statusError(endpoint string, status int, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		return errors.Wrapf(errors.ErrNotFound, "yahoo %s: %s", endpoint, summarizeBody(body))
	case status == http.StatusTooManyRequests:
		return errors.Wrapf(errors.ErrRateLimited, "yahoo %s", endpoint)
	case status >= 500:
		return errors.Wrapf(errors.ErrProviderUnavailable, "yahoo %s: status %d", endpoint, status)
	default:
		return errors.Newf("yahoo %s: unexpected status %d: %s", endpoint, status, summarizeBody(body))
	}
}

func summarizeBody(body []byte) string {
	const max = 200

	s := string(bytes.TrimSpace(body))
	if s == "" {
		return "empty body"
	}
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}

// rawValue is Yahoo's number wrapper. Depending on the formatted query
// parameter the API returns either {"raw": 1.23, "fmt": "1.23"} or a plain
// number, and absent values come through as {} or null.
type rawValue struct {
	Raw *float64
	Fmt string
}

func (v *rawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '{' {
		var obj struct {
			Raw *float64 `json:"raw"`
			Fmt string   `json:"fmt"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		v.Raw = obj.Raw
		v.Fmt = obj.Fmt
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	v.Raw = &f
	return nil
}

func (v *rawValue) value() *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
