// Package timeouts defines shared timeout constants used across the gateway.
// Centralizing these values prevents drift between boundaries and makes the
// durations discoverable.
package timeouts

import "time"

// UpstreamConnect caps the wait time when connecting to an upstream MCP
// server.
const UpstreamConnect = 10 * time.Second

// UpstreamCall caps the time allowed for a single proxied tool call to an
// upstream MCP server.
const UpstreamCall = 30 * time.Second

// VerifyCall caps the time allowed for one local fact verification,
// including the dataset load.
const VerifyCall = 5 * time.Second

// ReadHeader limits how long the HTTP transport waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP transport waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
