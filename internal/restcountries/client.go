// Package restcountries is a client for the REST Countries v3.1 API.
package restcountries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"countrystats/internal/model"
)

const (
	// DefaultBaseURL is the public v3.1 endpoint.
	DefaultBaseURL = "https://restcountries.com/v3.1"

	fields = "name,population,currencies,region"

	endpointAll    = "all"
	endpointSearch = "name"
)

// ErrNotFound is returned when the API reports that no country matches.
var ErrNotFound = errors.New("country not found")

// StatusError is a non-2xx reply other than not found.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// apiError is the JSON object the API sends instead of an array on failure.
type apiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Client fetches country records. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	metrics *Metrics
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every upstream call; zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger used for upstream diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client for baseURL; an empty baseURL selects DefaultBaseURL.
// Outbound requests are traced with otelhttp.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// All returns every country.
func (c *Client) All(ctx context.Context) ([]model.Country, error) {
	return c.get(ctx, endpointAll, c.baseURL+"/all")
}

// SearchByName returns the countries whose name contains name.
// The name is path-escaped; an unmatched name yields ErrNotFound.
func (c *Client) SearchByName(ctx context.Context, name string) ([]model.Country, error) {
	return c.get(ctx, endpointSearch, c.baseURL+"/name/"+url.PathEscape(name))
}

func (c *Client) get(ctx context.Context, endpoint, rawURL string) (countries []model.Country, err error) {
	start := time.Now()
	defer func() {
		c.metrics.observe(endpoint, outcome(err), time.Since(start))
	}()

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("build request url: %w", err)
	}
	q := u.Query()
	q.Set("fields", fields)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("restcountries response",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	return decode(body)
}

func decode(body []byte) ([]model.Country, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var ae apiError
		if err := json.Unmarshal(trimmed, &ae); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if ae.Status == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, &StatusError{StatusCode: ae.Status, Message: ae.Message}
	}

	var countries []model.Country
	if err := json.Unmarshal(trimmed, &countries); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if countries == nil {
		countries = []model.Country{}
	}
	return countries, nil
}

func errorMessage(body []byte) string {
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil {
		return ae.Message
	}
	return ""
}

func outcome(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &se):
		return "status_error"
	default:
		return "error"
	}
}
