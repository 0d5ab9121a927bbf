package domain

import (
	"context"
	"fmt"

	"github.com/factgate/factgate/internal/factcheck"
	"github.com/factgate/factgate/internal/factcheck/store"
	"github.com/factgate/factgate/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// VerifyFactsInput represents the MCP tool input for fact verification.
type VerifyFactsInput struct {
	Fact1 string `json:"fact1" jsonschema:"first factual claim"`
	Fact2 string `json:"fact2" jsonschema:"second factual claim"`
}

// VerifyFactsResult represents the MCP tool output for fact verification.
type VerifyFactsResult struct {
	Verdict string   `json:"verdict" jsonschema:"fact1, fact2, or No match found"`
	Match   string   `json:"match" jsonschema:"how the verdict was reached (exact, approximate, none)"`
	Score   *float64 `json:"score,omitempty" jsonschema:"similarity score for approximate matches"`
}

// VerifyFactsTool defines the MCP tool schema for fact verification.
func VerifyFactsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "verify_facts",
		Description: "Given two competing factual claims, reports which one matches the reference dataset",
	}
}

// VerifyFactsHandler executes a fact verification. The dataset is loaded
// fresh from the store on every call; load failures surface as tool-level
// errors, never as process failures.
func VerifyFactsHandler(datasets store.Store, matcher *factcheck.Matcher) mcp.ToolHandlerFor[VerifyFactsInput, VerifyFactsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input VerifyFactsInput) (*mcp.CallToolResult, VerifyFactsResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, VerifyFactsResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		ctx, span := startToolSpan(ctx, "verify_facts", invocationID)
		defer span.End()

		runCtx, cancel := context.WithTimeout(ctx, timeouts.VerifyCall)
		defer cancel()

		records, err := datasets.Load(runCtx)
		if err != nil {
			err = fmt.Errorf("load fact dataset: %w", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, VerifyFactsResult{}, err
		}

		verdict := matcher.Verify(factcheck.Query{Fact1: input.Fact1, Fact2: input.Fact2}, records)

		result := VerifyFactsResult{
			Verdict: verdict.Verdict(),
			Match:   verdict.Kind.String(),
		}
		if verdict.Kind == factcheck.MatchApproximate {
			score := verdict.Score
			result.Score = &score
		}

		span.SetAttributes(
			attribute.String("factgate.verdict", result.Verdict),
			attribute.String("factgate.match", result.Match),
		)
		if result.Score != nil {
			span.SetAttributes(attribute.Float64("factgate.score", *result.Score))
		}

		toolResult := CallToolResultWithMetadata(ToolCallMetadata{InvocationID: invocationID})
		toolResult.Content = []mcp.Content{&mcp.TextContent{Text: result.Verdict}}
		return toolResult, result, nil
	}
}
