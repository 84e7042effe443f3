// Package base provides shared HTTP client infrastructure for Riot API clients.
package base

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/riftwatch/lol-mcp-server/internal/errors"
	"github.com/riftwatch/lol-mcp-server/metrics"
	"github.com/riftwatch/lol-mcp-server/tracing"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultTimeout for API requests. Zero leaves the request bounded only by its context.
	DefaultTimeout = 0

	// DefaultUserAgent identifies this server to the Riot API
	DefaultUserAgent = "lol-mcp-server/1.0"
)

// Client provides the common HTTP plumbing: one GET per call, static headers,
// metrics and tracing. It holds no per-request state and is safe for concurrent use.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithTimeout sets the overall request timeout on the HTTP client
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.HTTPClient.Timeout = d
	}
}

// NewClient creates a new base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: newHTTPClient(DefaultTimeout),
		Logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RequestConfig configures a single HTTP request
type RequestConfig struct {
	URL       string
	Endpoint  string            // metric/span label, e.g. "summoner_by_name"
	Headers   map[string]string // applied verbatim
	UserAgent string
}

// DoRequest performs exactly one GET request. There are no retries.
// It returns the body and status code of whatever response arrived; the caller
// decides what a given status means. Failures before a response is read are
// returned as *errors.TransportError.
func (c *Client) DoRequest(ctx context.Context, cfg RequestConfig) ([]byte, int, error) {
	ctx, span := tracing.StartSpan(ctx, "riot.api."+cfg.Endpoint)
	defer span.End()

	start := time.Now()
	body, statusCode, err := c.do(ctx, cfg)
	duration := time.Since(start)

	metrics.RecordUpstreamCall(cfg.Endpoint, duration.Seconds(), statusCode)
	tracing.AddUpstreamAttributes(span, cfg.Endpoint, cfg.URL, statusCode)

	if err != nil {
		tracing.RecordError(span, err)
		span.SetStatus(codes.Error, err.Error())
		c.Logger.Warn("Riot API request failed",
			"endpoint", cfg.Endpoint,
			"url", cfg.URL,
			"error", err,
			"duration_ms", duration.Milliseconds())
		return nil, 0, err
	}

	if statusCode != http.StatusOK {
		span.SetStatus(codes.Error, http.StatusText(statusCode))
	}
	c.Logger.Debug("Riot API request completed",
		"endpoint", cfg.Endpoint,
		"url", cfg.URL,
		"status", statusCode,
		"bytes", len(body),
		"duration_ms", duration.Milliseconds())

	return body, statusCode, nil
}

func (c *Client) do(ctx context.Context, cfg RequestConfig) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, 0, apierrors.NewTransportError(cfg.URL, err)
	}

	req.Header.Set("Accept", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	} else {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, apierrors.NewTransportError(cfg.URL, err)
	}

	body, err := readAndClose(resp)
	if err != nil {
		return nil, 0, apierrors.NewTransportError(cfg.URL, err)
	}

	return body, resp.StatusCode, nil
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// newHTTPClient creates an HTTP client with tuned transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     120 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
