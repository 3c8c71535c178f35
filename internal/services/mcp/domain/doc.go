// Package domain defines the MCP tools and resources that expose the
// numerology calculator to model clients.
package domain
