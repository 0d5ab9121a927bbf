// Package domain defines the gateway's MCP tool schemas and handlers.
package domain

import (
	"github.com/factgate/factgate/internal/platform/id"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// invocationIDMetaKey carries the gateway's correlation identifier on
	// tool results.
	invocationIDMetaKey = "factgate/invocation_id"
	// upstreamMetaKey names the upstream that served a proxied tool call.
	upstreamMetaKey = "factgate/upstream"
)

// ToolCallMetadata carries correlation identifiers for MCP tool calls.
type ToolCallMetadata struct {
	InvocationID string
	Upstream     string
}

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// CallToolResultWithMetadata builds a tool result carrying correlation
// metadata.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Meta: map[string]any{
			invocationIDMetaKey: meta.InvocationID,
		},
	}
	if meta.Upstream != "" {
		result.Meta[upstreamMetaKey] = meta.Upstream
	}
	return result
}

// annotateResultMetadata overlays correlation metadata on an existing result
// without discarding metadata the upstream already set.
func annotateResultMetadata(result *mcp.CallToolResult, meta ToolCallMetadata) *mcp.CallToolResult {
	if result == nil {
		return CallToolResultWithMetadata(meta)
	}
	if result.Meta == nil {
		result.Meta = map[string]any{}
	}
	result.Meta[invocationIDMetaKey] = meta.InvocationID
	if meta.Upstream != "" {
		result.Meta[upstreamMetaKey] = meta.Upstream
	}
	return result
}
