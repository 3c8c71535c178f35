package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	calculator "github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LocalesURI addresses the supported locale list.
const LocalesURI = "numerology://locales"

const interpretationsHost = "interpretations"

// LocalesPayload is the JSON body of the locales resource.
type LocalesPayload struct {
	Locales []calculator.LocaleView `json:"locales"`
}

// LocalesResource defines the MCP resource listing supported locales.
func LocalesResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "locales",
		Title:       "Locales",
		Description: "Supported locales with their native names; en-US is the fallback",
		MIMEType:    "application/json",
		URI:         LocalesURI,
	}
}

// LocalesResourceHandler serves the locale list.
func LocalesResourceHandler(calc calculator.Calculator) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if calc == nil {
			return nil, fmt.Errorf("calculator is not configured")
		}
		uri := LocalesURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		callCtx, cancel, _ := NewCallContext(ctx, "", "")
		defer cancel()

		locales, err := calc.Locales(callCtx)
		if err != nil {
			return nil, toolError(err, "")
		}
		return jsonResource(uri, LocalesPayload{Locales: locales})
	}
}

// InterpretationResourceTemplate defines the MCP resource template for one
// interpretation.
func InterpretationResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "interpretation",
		Title:       "Interpretation",
		Description: "Localized interpretation of a number in a category. URI format: numerology://interpretations/{category}/{number}?lang={locale}",
		MIMEType:    "application/json",
		URITemplate: "numerology://interpretations/{category}/{number}{?lang}",
	}
}

// InterpretationResourceHandler serves interpretation resources.
func InterpretationResourceHandler(calc calculator.Calculator) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if calc == nil {
			return nil, fmt.Errorf("calculator is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("interpretation URI is required; use numerology://interpretations/{category}/{number}")
		}
		uri := req.Params.URI

		in, err := parseInterpretationURI(uri)
		if err != nil {
			return nil, err
		}

		callCtx, cancel, _ := NewCallContext(ctx, "", in.Locale)
		defer cancel()

		out, err := calc.Describe(callCtx, in)
		if err != nil {
			return nil, toolError(err, in.Locale)
		}
		return jsonResource(uri, out)
	}
}

// parseInterpretationURI reads numerology://interpretations/{category}/{number}?lang=.
func parseInterpretationURI(uri string) (calculator.DescribeInput, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return calculator.DescribeInput{}, fmt.Errorf("parse interpretation URI: %w", err)
	}
	if parsed.Scheme != "numerology" || parsed.Host != interpretationsHost {
		return calculator.DescribeInput{}, mcp.ResourceNotFoundError(uri)
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return calculator.DescribeInput{}, fmt.Errorf("interpretation URI must be numerology://interpretations/{category}/{number}, got %q", uri)
	}
	number, err := calculator.ParseNumber(parts[1])
	if err != nil {
		return calculator.DescribeInput{}, toolError(err, parsed.Query().Get("lang"))
	}
	return calculator.DescribeInput{
		Category: parts[0],
		Number:   number,
		Locale:   parsed.Query().Get("lang"),
	}, nil
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
