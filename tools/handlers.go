package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riftwatch/lol-mcp-server/internal/summoner"
	"github.com/riftwatch/lol-mcp-server/metrics"
	"github.com/riftwatch/lol-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// failer is implemented by results that can carry an in-band error
type failer interface {
	Failed() bool
}

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	summonerClient *summoner.Client
	logger         *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(summonerClient *summoner.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		summonerClient: summonerClient,
		logger:         logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "GetSummonerInfo":
		schema, err := summonerInputSchema()
		if err != nil {
			h.logger.Error("Input schema unavailable, tool not registered", "tool", spec.Name, "error", err)
			return
		}
		tool.InputSchema = schema
		h.register(server, tool, spec, h.summonerClient.GetSummonerInfoMCP)
	case "ListRegions":
		h.register(server, tool, spec, h.summonerClient.ListRegionsMCP)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Title:       spec.Title,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		invocationID := uuid.NewString()

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category)
		span.SetAttributes(
			attribute.String("mcp.invocation_id", invocationID),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			tracing.RecordError(span, err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, metrics.StatusError)
			h.logger.Warn("Tool failed", "tool", spec.Name, "invocation_id", invocationID, "error", err)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		status := metrics.StatusSuccess
		if f, ok := any(result).(failer); ok && f.Failed() {
			status = metrics.StatusUpstreamError
			span.SetStatus(codes.Error, "upstream error")
		} else {
			span.SetStatus(codes.Ok, "")
		}
		metrics.RecordRequest(spec.Name, duration, status)
		h.logExecution(spec, invocationID, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, invocationID string, args, result any) {
	attrs := []any{"tool", spec.Name, "invocation_id", invocationID}

	switch a := args.(type) {
	case summoner.GetSummonerInfoArgs:
		attrs = append(attrs, "summoner_name", a.SummonerName, "region", a.Region)
	case summoner.ListRegionsArgs:
		// No args to log
	}

	switch r := result.(type) {
	case summoner.GetSummonerInfoResult:
		if r.Failed() {
			attrs = append(attrs, "found", false, "upstream_status", r.UpstreamStatus)
			h.logger.Warn("Tool returned error result", attrs...)
			return
		}
		attrs = append(attrs, "found", true)
	case summoner.ListRegionsResult:
		attrs = append(attrs, "regions", r.Count)
	}

	h.logger.Info("Tool executed", attrs...)
}

// Convenience function to call the generic register with method receiver
func (h *HandlerRegistry) register(server *mcp.Server, tool *mcp.Tool, spec ToolSpec, method any) {
	switch m := method.(type) {
	case func(context.Context, summoner.GetSummonerInfoArgs) (summoner.GetSummonerInfoResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, summoner.ListRegionsArgs) (summoner.ListRegionsResult, error):
		register(h, server, tool, spec, m)

	default:
		h.logger.Error("Unknown method type, tool not registered", "tool", spec.Name)
	}
}
