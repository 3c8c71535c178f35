package domain

import (
	"context"

	"github.com/google/uuid"
	platformgrpc "github.com/louisbranch/mysticnumbers/internal/platform/grpc"
	"github.com/louisbranch/mysticnumbers/internal/platform/requestctx"
	"github.com/louisbranch/mysticnumbers/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InvocationIDKey is the result metadata key carrying the tool invocation id.
const InvocationIDKey = "x-invocation-id"

// callTimeout caps a single calculator call from a tool or resource handler.
const callTimeout = timeouts.GRPCRequest

// ToolCallMetadata carries correlation identifiers for MCP tool calls.
type ToolCallMetadata struct {
	RequestID    string
	InvocationID string
}

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() string {
	return uuid.NewString()
}

// NewCallContext bounds ctx by the call timeout and attaches a fresh request
// id and the caller's locale, which the calculator client forwards.
func NewCallContext(ctx context.Context, invocationID string, locale string) (context.Context, context.CancelFunc, ToolCallMetadata) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := uuid.NewString()
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	callCtx = requestctx.WithRequestID(callCtx, requestID)
	if locale != "" {
		callCtx = requestctx.WithLocale(callCtx, locale)
	}
	return callCtx, cancel, ToolCallMetadata{RequestID: requestID, InvocationID: invocationID}
}

// CallToolResultWithMetadata builds a tool result with correlation metadata.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Meta: map[string]any{
			platformgrpc.RequestIDKey: meta.RequestID,
		},
	}
	if meta.InvocationID != "" {
		result.Meta[InvocationIDKey] = meta.InvocationID
	}
	return result
}
