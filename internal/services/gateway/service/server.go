package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/factgate/factgate/internal/factcheck"
	"github.com/factgate/factgate/internal/factcheck/store"
	"github.com/factgate/factgate/internal/services/gateway/domain"
	"github.com/factgate/factgate/internal/services/gateway/upstream"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Factgate"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the gateway service run.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the HTTP listen address (HTTP transport only).
	HTTPAddr string
	// AllowedHosts are extra Host/Origin values accepted by the HTTP
	// transport beyond loopback.
	AllowedHosts []string
	// AuthToken, when set, requires a matching bearer token on HTTP
	// requests.
	AuthToken string
}

// UpstreamSource supplies aggregated upstream tools and relays calls to
// them. *upstream.Manager is the production implementation.
type UpstreamSource interface {
	domain.ToolCaller
	Tools() []upstream.Tool
	MonitorHealth(ctx context.Context)
	Close() error
}

// Deps are the collaborators the gateway serves from.
type Deps struct {
	// Datasets supplies the fact reference dataset for verify_facts.
	Datasets store.Store
	// Matcher verifies claim pairs; nil selects the default matcher.
	Matcher *factcheck.Matcher
	// Upstreams aggregates remote MCP servers; nil runs local tools only.
	Upstreams UpstreamSource
}

// ClientImplementation identifies the gateway when it connects to upstream
// MCP servers.
func ClientImplementation() *mcp.Implementation {
	return &mcp.Implementation{Name: serverName, Version: serverVersion}
}

// Server hosts the gateway MCP server.
type Server struct {
	mcpServer *mcp.Server
	datasets  store.Store
	upstreams UpstreamSource
}

// New creates a configured gateway server with the local verify_facts tool
// and one proxy tool per aggregated upstream tool.
func New(deps Deps) (*Server, error) {
	if deps.Datasets == nil {
		return nil, fmt.Errorf("dataset store is required")
	}
	matcher := deps.Matcher
	if matcher == nil {
		matcher = factcheck.NewMatcher()
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	server := &Server{
		mcpServer: mcpServer,
		datasets:  deps.Datasets,
		upstreams: deps.Upstreams,
	}

	if err := registerLocalTools(mcpServer, deps.Datasets, matcher); err != nil {
		return nil, err
	}
	if deps.Upstreams != nil {
		if err := registerUpstreamTools(mcpServer, deps.Upstreams); err != nil {
			return nil, err
		}
	}
	return server, nil
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the dataset store and upstream sessions held by the server.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.upstreams != nil {
		if err := s.upstreams.Close(); err != nil {
			firstErr = err
		}
		s.upstreams = nil
	}
	if s.datasets != nil {
		if err := s.datasets.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.datasets = nil
	}
	return firstErr
}

// serveWithTransport starts the MCP server using the provided transport.
// The server and its collaborators share a single exit path so cleanup
// behavior is consistent for both stdio and HTTP runs.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("gateway server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gateway: %w", closeErr)
		}
		return fmt.Errorf("serve gateway: %v; close gateway: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve gateway: %w", err)
	}
	return nil
}

// registerLocalTools registers the tools the gateway implements itself.
func registerLocalTools(server *mcp.Server, datasets store.Store, matcher *factcheck.Matcher) error {
	if server == nil {
		return fmt.Errorf("mcp server is required")
	}
	mcp.AddTool(server, domain.VerifyFactsTool(), domain.VerifyFactsHandler(datasets, matcher))
	return nil
}

// registerUpstreamTools registers one proxy tool per aggregated upstream
// tool. Duplicate gateway names are a configuration error: silently
// shadowing a tool would route calls to the wrong upstream.
func registerUpstreamTools(server *mcp.Server, upstreams UpstreamSource) error {
	seen := map[string]struct{}{
		domain.VerifyFactsTool().Name: {},
	}
	for _, tool := range upstreams.Tools() {
		gatewayName := tool.GatewayName()
		if _, dup := seen[gatewayName]; dup {
			return fmt.Errorf("duplicate gateway tool name %q", gatewayName)
		}
		seen[gatewayName] = struct{}{}
		server.AddTool(domain.ProxyTool(gatewayName, tool.Tool), domain.ProxyHandler(upstreams, tool.Upstream, tool.Name))
	}
	return nil
}

// Run is the service entrypoint for the gateway and blocks until context
// cancellation. It is transport-agnostic so startup can choose stdio for
// local clients and HTTP for remote integrations.
func Run(ctx context.Context, cfg Config, deps Deps) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := New(deps)
	if err != nil {
		return err
	}

	if deps.Upstreams != nil {
		healthCtx, healthCancel := context.WithCancel(ctx)
		defer healthCancel()
		go deps.Upstreams.MonitorHealth(healthCtx)
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.Serve(ctx)
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg)
	default:
		_ = server.Close()
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}
