package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riftwatch/lol-mcp-server/internal/config"
	"github.com/riftwatch/lol-mcp-server/internal/summoner"
	"github.com/riftwatch/lol-mcp-server/metrics"
	"github.com/riftwatch/lol-mcp-server/tools"
)

const shutdownTimeout = 10 * time.Second

const serverInstructions = `League of Legends MCP Server looks up summoners through the Riot Games API.

Available tools:
- get_summoner_info: Get a summoner's ids, name, profile icon, level and revision date by name
- list_regions: List the platform region codes accepted by get_summoner_info

Failed lookups return a single "error" field with the Riot API response body.

Configure via environment variables:
- RIOT_API_KEY: Riot Games API key (required)
- LOL_MCP_TRANSPORT: http (default) or stdio
- LOL_MCP_HTTP_ADDR: listen address (default 0.0.0.0:8080)`

// newMCPServer builds the MCP server with every tool registered
func newMCPServer(client *summoner.Client, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Title:   ServerTitle,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	tools.NewHandlerRegistry(client, logger).RegisterAll(server)
	return server
}

// newHTTPHandler routes the MCP endpoint, /health and /metrics behind the instrumentation middleware
func newHTTPHandler(server *mcp.Server, mcpPath string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(mcpPath, mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))
	mux.HandleFunc("GET /health", handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return instrument(mux, mcpPath, logger)
}

// serveHTTP runs the HTTP transport until ctx is done, then shuts down gracefully
func serveHTTP(ctx context.Context, cfg *config.Config, server *mcp.Server, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newHTTPHandler(server, cfg.MCPPath, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", cfg.HTTPAddr, "mcp_path", cfg.MCPPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"name":    ServerName,
		"version": ServerVersion,
	})
}

// statusRecorder captures the response status for metrics
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.status = http.StatusOK
		r.wroteHeader = true
	}
	return r.ResponseWriter.Write(b)
}

// Flush keeps server-sent event streams working through the wrapper
func (r *statusRecorder) Flush() {
	_ = http.NewResponseController(r.ResponseWriter).Flush()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// instrument records HTTP metrics and turns handler panics into 500 responses
func instrument(next http.Handler, mcpPath string, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				metrics.PanicsRecovered.WithLabelValues("http").Inc()
				logger.Error("Panic recovered",
					"operation", r.Method+" "+r.URL.Path,
					"panic", p,
					"stack", string(debug.Stack()))
				if !rec.wroteHeader {
					http.Error(rec, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				} else {
					rec.status = http.StatusInternalServerError
				}
			}

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, pathLabel(r.URL.Path, mcpPath)).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

// pathLabel maps request paths onto a fixed label set
func pathLabel(path, mcpPath string) string {
	switch path {
	case mcpPath, "/health", "/metrics":
		return path
	default:
		return "other"
	}
}
