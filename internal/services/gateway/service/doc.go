// Package service hosts the gateway MCP server.
//
// The server exposes one aggregated tool surface to clients: the local
// verify_facts tool backed by the fact reference dataset, plus one proxy
// tool per tool discovered on each configured upstream MCP server. Proxy
// tools are registered under "<upstream>_<tool>" so clients can tell
// same-named tools from different upstreams apart.
//
// # Transports
//
// Two transports are supported:
//   - stdio for local MCP clients that spawn the gateway as a subprocess
//   - streamable HTTP for remote clients, with loopback/allowlist host
//     checking and optional bearer token authentication
package service
