// Package domain is the transport-neutral calculator service shared by the
// HTTP, gRPC and MCP surfaces.
//
// It parses raw request values, maps calculation failures to platform error
// codes, resolves locales and attaches interpretations, so every transport
// returns the same views for the same input.
package domain
