// Package tools provides a metadata-driven registry for MCP tool definitions.
// Tools are declared in definitions.go and bound to typed client methods in handlers.go.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a summoner client method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "get_summoner_info")
	Name string

	// Method is the client method name (e.g., "GetSummonerInfo")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (summoner, reference)
	Category string

	// ReadOnly indicates the tool doesn't modify any state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
