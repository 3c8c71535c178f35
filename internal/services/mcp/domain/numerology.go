package domain

import (
	"context"

	"github.com/louisbranch/mysticnumbers/internal/interpretation"
	calculator "github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProfileInput represents the MCP tool input for computing a profile.
type ProfileInput struct {
	BirthDate   string `json:"birth_date" jsonschema:"birth date as YYYY-MM-DD (required)"`
	Name        string `json:"name,omitempty" jsonschema:"optional full name; letters outside A-Z are folded or ignored"`
	Locale      string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale: en-US, vi-VN, it-IT or ja-JP"`
	KeepMasters bool   `json:"keep_masters,omitempty" jsonschema:"stop reducing when a master number 11, 22 or 33 is reached"`
}

// ProfileTool defines the MCP tool schema for computing a profile.
func ProfileTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "numerology_profile",
		Description: "Computes the six core numbers (life path, birthday, attitude, expression, soul urge, personality) for a birth date and optional name, with derivation steps and localized interpretations",
	}
}

// ProfileHandler executes a profile request.
func ProfileHandler(calc calculator.Calculator) mcp.ToolHandlerFor[ProfileInput, calculator.ProfileView] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProfileInput) (*mcp.CallToolResult, calculator.ProfileView, error) {
		callCtx, cancel, meta := NewCallContext(ctx, NewInvocationID(), input.Locale)
		defer cancel()

		view, err := calc.ComputeProfile(callCtx, calculator.ProfileInput{
			BirthDate:   input.BirthDate,
			Name:        input.Name,
			Locale:      input.Locale,
			KeepMasters: input.KeepMasters,
		})
		if err != nil {
			return nil, calculator.ProfileView{}, toolError(err, input.Locale)
		}
		return CallToolResultWithMetadata(meta), view, nil
	}
}

// ReduceInput represents the MCP tool input for a digit reduction.
type ReduceInput struct {
	Number      int  `json:"number" jsonschema:"non-negative whole number to reduce"`
	KeepMasters bool `json:"keep_masters,omitempty" jsonschema:"stop reducing when a master number 11, 22 or 33 is reached"`
}

// ReduceTool defines the MCP tool schema for a digit reduction.
func ReduceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "numerology_reduce",
		Description: "Reduces a number to a single digit by repeatedly summing its digits; 11, 22 and 33 given as input are kept",
	}
}

// ReduceHandler executes a reduction request.
func ReduceHandler(calc calculator.Calculator) mcp.ToolHandlerFor[ReduceInput, calculator.ReductionView] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReduceInput) (*mcp.CallToolResult, calculator.ReductionView, error) {
		callCtx, cancel, meta := NewCallContext(ctx, NewInvocationID(), "")
		defer cancel()

		view, err := calc.Reduce(callCtx, calculator.ReduceInput{Number: input.Number, KeepMasters: input.KeepMasters})
		if err != nil {
			return nil, calculator.ReductionView{}, toolError(err, "")
		}
		return CallToolResultWithMetadata(meta), view, nil
	}
}

// DescribeInput represents the MCP tool input for an interpretation lookup.
type DescribeInput struct {
	Category string `json:"category" jsonschema:"one of lifePath, birthday, attitude, expression, soulUrge, personality"`
	Number   int    `json:"number" jsonschema:"number to interpret"`
	Locale   string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale: en-US, vi-VN, it-IT or ja-JP"`
}

// DescribeTool defines the MCP tool schema for an interpretation lookup.
func DescribeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "numerology_describe",
		Description: "Returns the localized interpretation of a number in one profile category",
	}
}

// DescribeHandler executes an interpretation lookup.
func DescribeHandler(calc calculator.Calculator) mcp.ToolHandlerFor[DescribeInput, interpretation.Interpretation] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DescribeInput) (*mcp.CallToolResult, interpretation.Interpretation, error) {
		callCtx, cancel, meta := NewCallContext(ctx, NewInvocationID(), input.Locale)
		defer cancel()

		out, err := calc.Describe(callCtx, calculator.DescribeInput{
			Category: input.Category,
			Number:   input.Number,
			Locale:   input.Locale,
		})
		if err != nil {
			return nil, interpretation.Interpretation{}, toolError(err, input.Locale)
		}
		return CallToolResultWithMetadata(meta), out, nil
	}
}
