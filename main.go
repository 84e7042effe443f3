// League of Legends MCP Server - A Model Context Protocol server for the Riot Games API
// Provides a summoner lookup tool over streamable HTTP or stdio
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riftwatch/lol-mcp-server/internal/config"
	"github.com/riftwatch/lol-mcp-server/internal/summoner"
	"github.com/riftwatch/lol-mcp-server/tracing"
)

const (
	ServerName    = "lol-mcp-server"
	ServerTitle   = "League of Legends MCP Server"
	ServerVersion = "1.0.0"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Getenv, os.Stderr))
}

// run starts the server and returns the process exit status.
// Every setting is read through getenv layered over the env file; the server
// stops when ctx is done or on SIGINT/SIGTERM.
func run(ctx context.Context, args []string, getenv func(string) string, stderr io.Writer) int {
	flags := flag.NewFlagSet(ServerName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	envFile := flags.String("env-file", ".env", "dotenv file to read before configuration (ignored when missing)")
	configPath := flags.String("config", "", "YAML config file (overrides "+config.EnvConfigFile+")")
	transport := flags.String("transport", "", "transport to serve: http or stdio")
	addr := flags.String("addr", "", "listen address for the http transport")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	lookup, err := withEnvFile(*envFile, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to read %s: %v\n", *envFile, err)
		return 1
	}

	var cfg *config.Config
	if *configPath != "" {
		cfg, err = config.Load(*configPath, lookup)
	} else {
		cfg, err = config.LoadConfigFrom(lookup)
	}
	if errors.Is(err, config.ErrMissingAPIKey) {
		fmt.Fprintf(stderr, "%s must be set to a Riot Games API key (environment or %s)\n", config.EnvAPIKey, *envFile)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	if *transport != "" {
		cfg.Transport = *transport
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	// Logging goes to stderr; stdout carries the stdio transport
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	traceCfg := tracing.DefaultConfig(lookup)
	shutdownTracing, err := tracing.Setup(ctx, traceCfg)
	if err != nil {
		logger.Error("Failed to set up tracing", "error", err)
		return 1
	}
	if traceCfg.Enabled {
		logger.Info("Tracing enabled", "otlp_endpoint", traceCfg.OTLPEndpoint, "sample_rate", traceCfg.SampleRate)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	client := summoner.NewClient(cfg.APIKey,
		summoner.WithLogger(logger),
		summoner.WithTimeout(cfg.Timeout),
		summoner.WithUserAgent(cfg.UserAgent),
	)

	server := newMCPServer(client, logger)

	logger.Info("Starting League of Legends MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"transport", cfg.Transport,
	)

	switch cfg.Transport {
	case config.TransportStdio:
		err = server.Run(ctx, &mcp.StdioTransport{})
	default:
		err = serveHTTP(ctx, cfg, server, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", "error", err)
		return 1
	}

	logger.Info("Server stopped")
	return 0
}

// withEnvFile layers the variables of a dotenv file under getenv.
// Values already present in the environment win. A missing file is not an error.
func withEnvFile(path string, getenv func(string) string) (func(string) string, error) {
	if path == "" {
		return getenv, nil
	}

	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return getenv, nil
	}
	if err != nil {
		return nil, err
	}

	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return vars[key]
	}, nil
}
