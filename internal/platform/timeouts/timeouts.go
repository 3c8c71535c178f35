// Package timeouts holds the durations shared by the calculator and MCP
// processes so both sides of a call agree on them.
package timeouts

import "time"

// GRPCDial bounds the wait for a calculator peer to report healthy.
const GRPCDial = 5 * time.Second

// GRPCRequest bounds a single call from the MCP bridge to the calculator.
const GRPCRequest = 5 * time.Second

// ReadHeader limits how long the HTTP API waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers drain in-flight requests on stop.
const Shutdown = 5 * time.Second
