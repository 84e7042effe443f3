package summoner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/riftwatch/lol-mcp-server/internal/base"
	apierrors "github.com/riftwatch/lol-mcp-server/internal/errors"
)

const (
	// DefaultHostTemplate is the platform host; %s is replaced by the region code
	DefaultHostTemplate = "https://%s.api.riotgames.com"

	// SummonerByNamePath is the summoner-v4 by-name route; the name is appended verbatim
	SummonerByNamePath = "/lol/summoner/v4/summoners/by-name/"

	// DefaultRegion is used when a lookup names no region
	DefaultRegion = "kr"

	// TokenHeader carries the API key on every request
	TokenHeader = "X-Riot-Token"

	endpointSummonerByName = "summoner_by_name"
)

// Client provides access to the Riot summoner-v4 API
type Client struct {
	*base.Client
	headers      map[string]string
	hostTemplate string
	userAgent    string
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		base.WithHTTPClient(hc)(c.Client)
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		base.WithLogger(l)(c.Client)
	}
}

// WithTimeout sets the overall request timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		base.WithTimeout(d)(c.Client)
	}
}

// WithHostTemplate overrides the platform host template. It must contain one %s for the region.
func WithHostTemplate(tmpl string) ClientOption {
	return func(c *Client) {
		c.hostTemplate = tmpl
	}
}

// WithUserAgent sets the User-Agent sent to the Riot API
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a summoner API client that authenticates with apiKey.
// The key lives only in this client's header map.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		Client:       base.NewClient(),
		headers:      map[string]string{TokenHeader: apiKey},
		hostTemplate: DefaultHostTemplate,
		userAgent:    base.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SummonerURL builds the by-name lookup URL. Region and name are interpolated
// without escaping, except that a '%' not starting a valid %XX escape becomes %25
// so the URL still parses.
func (c *Client) SummonerURL(region, name string) string {
	return requoteInvalidEscapes(fmt.Sprintf(c.hostTemplate, region) + SummonerByNamePath + name)
}

func requoteInvalidEscapes(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && !(i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// GetSummoner looks up a summoner by name on the given platform region.
// Any status other than 200 is returned as *errors.UpstreamError with the body untouched.
func (c *Client) GetSummoner(ctx context.Context, region, name string) (*SummonerInfo, error) {
	reqURL := c.SummonerURL(region, name)

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
		URL:       reqURL,
		Endpoint:  endpointSummonerByName,
		Headers:   c.headers,
		UserAgent: c.userAgent,
	})
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, apierrors.NewUpstreamError(statusCode, body, reqURL)
	}

	var s Summoner
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("failed to parse summoner response: %w", err)
	}

	return s.info(), nil
}
