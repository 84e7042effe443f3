package summoner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	apierrors "github.com/riftwatch/lol-mcp-server/internal/errors"
)

// recordingTransport answers every request with a canned response and keeps the requests it saw
type recordingTransport struct {
	mu       sync.Mutex
	requests []*http.Request
	status   int
	body     string
	err      error
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.mu.Lock()
	rt.requests = append(rt.requests, req)
	rt.mu.Unlock()

	if rt.err != nil {
		return nil, rt.err
	}
	return &http.Response{
		StatusCode: rt.status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(rt.body)),
		Request:    req,
	}, nil
}

func (rt *recordingTransport) count() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.requests)
}

func (rt *recordingTransport) last() *http.Request {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if len(rt.requests) == 0 {
		return nil
	}
	return rt.requests[len(rt.requests)-1]
}

func newTestClient(apiKey string, rt http.RoundTripper) *Client {
	return NewClient(apiKey,
		WithHTTPClient(&http.Client{Transport: rt}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestNewClient(t *testing.T) {
	client := NewClient("RGAPI-test")
	if client == nil {
		t.Fatal("NewClient returned nil")
	}
	if client.Client == nil {
		t.Fatal("base client is nil")
	}
	if client.HTTPClient == nil {
		t.Error("HTTPClient is nil")
	}
	if client.hostTemplate != DefaultHostTemplate {
		t.Errorf("hostTemplate = %q, want %q", client.hostTemplate, DefaultHostTemplate)
	}
	if client.headers[TokenHeader] != "RGAPI-test" {
		t.Errorf("token header = %q, want %q", client.headers[TokenHeader], "RGAPI-test")
	}
}

func TestNewClientWithOptions(t *testing.T) {
	customHTTP := &http.Client{Timeout: 60 * time.Second}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := NewClient("key",
		WithHTTPClient(customHTTP),
		WithLogger(logger),
		WithHostTemplate("http://%s.example.test"),
		WithUserAgent("tester/1.0"),
	)

	if client.HTTPClient != customHTTP {
		t.Error("custom HTTP client was not set")
	}
	if client.Logger != logger {
		t.Error("custom logger was not set")
	}
	if client.hostTemplate != "http://%s.example.test" {
		t.Errorf("hostTemplate = %q", client.hostTemplate)
	}
	if client.userAgent != "tester/1.0" {
		t.Errorf("userAgent = %q", client.userAgent)
	}
}

func TestWithTimeout(t *testing.T) {
	client := NewClient("key", WithTimeout(3*time.Second))
	if client.HTTPClient.Timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", client.HTTPClient.Timeout)
	}
}

func TestSummonerURL(t *testing.T) {
	client := NewClient("key")

	tests := []struct {
		name   string
		region string
		id     string
		want   string
	}{
		{
			name:   "na1 Faker",
			region: "na1",
			id:     "Faker",
			want:   "https://na1.api.riotgames.com/lol/summoner/v4/summoners/by-name/Faker",
		},
		{
			name:   "default region",
			region: "kr",
			id:     "Hide on bush",
			want:   "https://kr.api.riotgames.com/lol/summoner/v4/summoners/by-name/Hide on bush",
		},
		{
			name:   "bare percent is requoted",
			region: "kr",
			id:     "50%",
			want:   "https://kr.api.riotgames.com/lol/summoner/v4/summoners/by-name/50%25",
		},
		{
			name:   "invalid escape is requoted",
			region: "kr",
			id:     "%zz",
			want:   "https://kr.api.riotgames.com/lol/summoner/v4/summoners/by-name/%25zz",
		},
		{
			name:   "valid escape is kept",
			region: "kr",
			id:     "%41bc",
			want:   "https://kr.api.riotgames.com/lol/summoner/v4/summoners/by-name/%41bc",
		},
		{
			name:   "unknown region used verbatim",
			region: "moon1",
			id:     "a/b?c",
			want:   "https://moon1.api.riotgames.com/lol/summoner/v4/summoners/by-name/a/b?c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.SummonerURL(tt.region, tt.id); got != tt.want {
				t.Errorf("SummonerURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetSummoner_RequestShape(t *testing.T) {
	rt := &recordingTransport{status: http.StatusOK, body: `{}`}
	client := newTestClient("RGAPI-secret", rt)

	if _, err := client.GetSummoner(context.Background(), "na1", "Faker"); err != nil {
		t.Fatalf("GetSummoner failed: %v", err)
	}

	if rt.count() != 1 {
		t.Fatalf("requests = %d, want 1", rt.count())
	}
	req := rt.last()
	if req.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", req.Method)
	}
	if got := req.URL.String(); got != "https://na1.api.riotgames.com/lol/summoner/v4/summoners/by-name/Faker" {
		t.Errorf("URL = %q", got)
	}
	if got := req.Header.Get("X-Riot-Token"); got != "RGAPI-secret" {
		t.Errorf("X-Riot-Token = %q, want %q", got, "RGAPI-secret")
	}
}

func TestGetSummoner_PercentInName(t *testing.T) {
	rt := &recordingTransport{status: http.StatusOK, body: `{"name":"50%"}`}
	client := newTestClient("key", rt)

	info, err := client.GetSummoner(context.Background(), "kr", "50%")
	if err != nil {
		t.Fatalf("GetSummoner failed: %v", err)
	}
	if info.Name == nil || *info.Name != "50%" {
		t.Errorf("Name = %v", info.Name)
	}
	if rt.count() != 1 {
		t.Fatalf("requests = %d, want 1", rt.count())
	}
	if got := rt.last().URL.EscapedPath(); got != "/lol/summoner/v4/summoners/by-name/50%25" {
		t.Errorf("path = %q", got)
	}
}

func TestGetSummoner_FullBody(t *testing.T) {
	rt := &recordingTransport{
		status: http.StatusOK,
		body: `{
			"id": "enc-summoner-id",
			"accountId": "enc-account-id",
			"puuid": "puuid-123",
			"name": "Faker",
			"profileIconId": 6,
			"revisionDate": 1700000000000,
			"summonerLevel": 712
		}`,
	}
	client := newTestClient("key", rt)

	info, err := client.GetSummoner(context.Background(), "kr", "Faker")
	if err != nil {
		t.Fatalf("GetSummoner failed: %v", err)
	}

	if info.SummonerID == nil || *info.SummonerID != "enc-summoner-id" {
		t.Errorf("SummonerID = %v", info.SummonerID)
	}
	if info.AccountID == nil || *info.AccountID != "enc-account-id" {
		t.Errorf("AccountID = %v", info.AccountID)
	}
	if info.PUUID == nil || *info.PUUID != "puuid-123" {
		t.Errorf("PUUID = %v", info.PUUID)
	}
	if info.Name == nil || *info.Name != "Faker" {
		t.Errorf("Name = %v", info.Name)
	}
	if info.ProfileIconID == nil || *info.ProfileIconID != 6 {
		t.Errorf("ProfileIconID = %v", info.ProfileIconID)
	}
	if info.Level == nil || *info.Level != 712 {
		t.Errorf("Level = %v", info.Level)
	}
	if info.RevisionDate == nil || *info.RevisionDate != 1700000000000 {
		t.Errorf("RevisionDate = %v", info.RevisionDate)
	}
}

func TestGetSummoner_PartialBody(t *testing.T) {
	rt := &recordingTransport{
		status: http.StatusOK,
		body:   `{"puuid": "puuid-only", "name": null, "extra": "ignored"}`,
	}
	client := newTestClient("key", rt)

	info, err := client.GetSummoner(context.Background(), "euw1", "someone")
	if err != nil {
		t.Fatalf("GetSummoner failed: %v", err)
	}

	if info.PUUID == nil || *info.PUUID != "puuid-only" {
		t.Errorf("PUUID = %v, want puuid-only", info.PUUID)
	}
	if info.SummonerID != nil || info.AccountID != nil || info.Name != nil ||
		info.ProfileIconID != nil || info.Level != nil || info.RevisionDate != nil {
		t.Errorf("missing fields should be nil, got %+v", info)
	}
}

func TestGetSummoner_NonOK(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, `{"status":{"message":"Data not found - summoner not found","status_code":404}}`},
		{"forbidden", http.StatusForbidden, `{"status":{"message":"Forbidden","status_code":403}}`},
		{"unauthorized", http.StatusUnauthorized, `{"status":{"message":"Unauthorized","status_code":401}}`},
		{"server error", http.StatusServiceUnavailable, "<html><body>503 Service Unavailable</body></html>"},
		{"no content", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &recordingTransport{status: tt.status, body: tt.body}
			client := newTestClient("key", rt)

			_, err := client.GetSummoner(context.Background(), "kr", "Faker")
			var upstream *apierrors.UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upstream.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", upstream.StatusCode, tt.status)
			}
			if upstream.Body != tt.body {
				t.Errorf("Body = %q, want %q", upstream.Body, tt.body)
			}
			if rt.count() != 1 {
				t.Errorf("requests = %d, want 1 (no retries)", rt.count())
			}
		})
	}
}

func TestGetSummoner_InvalidJSON(t *testing.T) {
	rt := &recordingTransport{status: http.StatusOK, body: "not json"}
	client := newTestClient("key", rt)

	_, err := client.GetSummoner(context.Background(), "kr", "Faker")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if apierrors.IsUpstream(err) || apierrors.IsTransport(err) {
		t.Errorf("parse failure should be neither upstream nor transport error: %v", err)
	}
}

func TestGetSummoner_TransportError(t *testing.T) {
	rt := &recordingTransport{err: errors.New("dial tcp: lookup kr.api.riotgames.com: no such host")}
	client := newTestClient("key", rt)

	_, err := client.GetSummoner(context.Background(), "kr", "Faker")
	if !apierrors.IsTransport(err) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestGetSummoner_HTTPServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/na1/lol/summoner/v4/summoners/by-name/Faker" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get(TokenHeader) != "RGAPI-http" {
			t.Errorf("token = %q", r.Header.Get(TokenHeader))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Faker","summonerLevel":30}`))
	}))
	defer server.Close()

	client := NewClient("RGAPI-http",
		WithHostTemplate(server.URL+"/%s"),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	info, err := client.GetSummoner(context.Background(), "na1", "Faker")
	if err != nil {
		t.Fatalf("GetSummoner failed: %v", err)
	}
	if info.Name == nil || *info.Name != "Faker" {
		t.Errorf("Name = %v", info.Name)
	}
	if info.Level == nil || *info.Level != 30 {
		t.Errorf("Level = %v", info.Level)
	}
}

func TestClients_DoNotShareKeys(t *testing.T) {
	rtA := &recordingTransport{status: http.StatusOK, body: `{}`}
	rtB := &recordingTransport{status: http.StatusOK, body: `{}`}
	a := newTestClient("key-a", rtA)
	b := newTestClient("key-b", rtB)

	_, _ = a.GetSummoner(context.Background(), "kr", "x")
	_, _ = b.GetSummoner(context.Background(), "kr", "x")

	if got := rtA.last().Header.Get(TokenHeader); got != "key-a" {
		t.Errorf("client a sent %q", got)
	}
	if got := rtB.last().Header.Get(TokenHeader); got != "key-b" {
		t.Errorf("client b sent %q", got)
	}
}
