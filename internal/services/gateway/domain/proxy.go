package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ToolCaller relays a tool call to a named upstream MCP server.
type ToolCaller interface {
	CallTool(ctx context.Context, upstreamName, toolName string, arguments any) (*mcp.CallToolResult, error)
}

// ProxyTool rewrites an upstream tool definition for registration on the
// gateway under its prefixed name.
func ProxyTool(gatewayName string, tool *mcp.Tool) *mcp.Tool {
	proxied := *tool
	proxied.Name = gatewayName
	return &proxied
}

// ProxyHandler relays calls for one upstream tool. Arguments pass through
// untouched, and the upstream's result is returned verbatim apart from
// correlation metadata.
func ProxyHandler(caller ToolCaller, upstreamName, toolName string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, fmt.Errorf("generate invocation id: %w", err)
		}

		ctx, span := startToolSpan(ctx, toolName, invocationID,
			attribute.String("factgate.upstream", upstreamName))
		defer span.End()

		var arguments any
		if req != nil && req.Params != nil {
			arguments = req.Params.Arguments
		}

		result, err := caller.CallTool(ctx, upstreamName, toolName, arguments)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if result != nil && result.IsError {
			span.SetStatus(codes.Error, "upstream reported tool error")
		}
		return annotateResultMetadata(result, ToolCallMetadata{
			InvocationID: invocationID,
			Upstream:     upstreamName,
		}), nil
	}
}
