package energy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/homeenergy/internal/logging"
	"github.com/rshade/homeenergy/pkg/version"
)

const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout bounds a single series request.
	DefaultTimeout = 30 * time.Second

	// maxPayloadBytes caps a response body. Two weeks of hourly values is
	// a few kilobytes, so this only trips on a misbehaving backend.
	maxPayloadBytes = 4 << 20

	headerRequestID = "X-Request-ID"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL      string
	ForecastPath string
	UsagePath    string
	// Timeout bounds each request. Zero disables the client-side timeout.
	Timeout time.Duration
}

// Client reads the forecast and usage series from the backend.
type Client struct {
	baseURL      string
	forecastPath string
	usagePath    string
	userAgent    string
	httpClient   *http.Client
	logger       zerolog.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request events.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logging.ComponentLogger(l, "energy-client")
	}
}

// NewClient validates cfg and returns a Client.
// Empty paths fall back to DefaultForecastPath and DefaultUsagePath.
func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: scheme must be http or https", base)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q: missing host", base)
	}

	c := &Client{
		baseURL:      strings.TrimRight(u.String(), "/"),
		forecastPath: withDefault(cfg.ForecastPath, DefaultForecastPath),
		usagePath:    withDefault(cfg.UsagePath, DefaultUsagePath),
		userAgent:    version.UserAgent(),
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Forecast fetches the emissions forecast.
func (c *Client) Forecast(ctx context.Context) (EmissionForecast, error) {
	values, err := c.getSeries(ctx, EndpointForecast, c.forecastPath)
	if err != nil {
		return nil, err
	}
	return EmissionForecast(values), nil
}

// OptimalUsage fetches the optimal usage schedule.
func (c *Client) OptimalUsage(ctx context.Context) (UsageSchedule, error) {
	values, err := c.getSeries(ctx, EndpointOptimalUsage, c.usagePath)
	if err != nil {
		return nil, err
	}
	return UsageSchedule(values), nil
}

// URL returns the absolute URL of the given endpoint.
func (c *Client) URL(endpoint Endpoint) string {
	if endpoint == EndpointOptimalUsage {
		return c.baseURL + c.usagePath
	}
	return c.baseURL + c.forecastPath
}

func (c *Client) getSeries(ctx context.Context, endpoint Endpoint, path string) ([]float64, error) {
	target := c.baseURL + path
	start := time.Now()

	log := c.logger.With().
		Str("endpoint", string(endpoint)).
		Str(logging.TraceIDField, logging.TraceIDFromContext(ctx)).
		Logger()
	log.Debug().Str("url", target).Msg("fetching series")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if id := logging.TraceIDFromContext(ctx); id != "" {
		req.Header.Set(headerRequestID, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
		return nil, &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	values, err := decodeSeries(resp.Body)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
	}

	log.Info().
		Int("status", resp.StatusCode).
		Int("values", len(values)).
		Dur("duration", time.Since(start)).
		Msg("series fetched")
	return values, nil
}

// decodeSeries reads a JSON array of numbers. A null body is rejected.
func decodeSeries(r io.Reader) ([]float64, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if len(body) > maxPayloadBytes {
		return nil, ErrPayloadTooLarge
	}

	var values []float64
	if err := json.Unmarshal(body, &values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if values == nil {
		return nil, fmt.Errorf("%w: expected array, got null", ErrMalformedPayload)
	}
	return values, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
