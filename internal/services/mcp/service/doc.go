// Package service runs the MCP server over stdio or streamable HTTP, backed
// by a remote calculator or an in-process one.
package service
