package upstream

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/factgate/factgate/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// healthCheckInterval is how often connected upstream sessions are pinged.
const healthCheckInterval = 30 * time.Second

// newTransport builds the MCP transport for an upstream. Overridable in
// tests so the manager can connect to in-memory servers.
var newTransport = func(cfg ServerConfig) (mcp.Transport, error) {
	if strings.TrimSpace(cfg.Command) != "" {
		cmd := exec.Command(cfg.Command, cfg.Args...)
		cmd.Env = append(os.Environ(), cfg.Env...)
		cmd.Stderr = os.Stderr
		return &mcp.CommandTransport{Command: cmd}, nil
	}
	if strings.TrimSpace(cfg.URL) != "" {
		return &mcp.StreamableClientTransport{Endpoint: cfg.URL}, nil
	}
	return nil, fmt.Errorf("upstream %q has no transport", cfg.Name)
}

// Tool is one aggregated upstream tool: the upstream it came from, the name
// it carries there, and its definition.
type Tool struct {
	Upstream string
	Name     string
	Tool     *mcp.Tool
}

// GatewayName is the name the tool is registered under on the gateway:
// "<upstream>_<tool>". Prefixing keeps tool names collision-free across
// upstreams.
func (t Tool) GatewayName() string {
	return t.Upstream + "_" + t.Name
}

type connection struct {
	config  ServerConfig
	session *mcp.ClientSession
	tools   []*mcp.Tool
}

// Manager holds one client session per configured upstream and routes tool
// calls by upstream name.
type Manager struct {
	impl *mcp.Implementation

	mu          sync.RWMutex
	connections map[string]*connection
	order       []string
}

// Connect dials every configured upstream, initializes an MCP session, and
// lists its tools. A failing upstream fails the whole connect so startup
// surfaces misconfiguration immediately.
func Connect(ctx context.Context, cfg Config, impl *mcp.Implementation) (*Manager, error) {
	if impl == nil {
		return nil, fmt.Errorf("client implementation is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	manager := &Manager{
		impl:        impl,
		connections: make(map[string]*connection, len(cfg.Upstreams)),
	}
	for _, serverCfg := range cfg.Upstreams {
		if err := manager.connect(ctx, serverCfg); err != nil {
			_ = manager.Close()
			return nil, err
		}
	}
	return manager, nil
}

func (m *Manager) connect(ctx context.Context, cfg ServerConfig) error {
	transport, err := newTransport(cfg)
	if err != nil {
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeouts.UpstreamConnect)
	defer cancel()

	client := mcp.NewClient(m.impl, nil)
	session, err := client.Connect(connectCtx, transport, nil)
	if err != nil {
		return fmt.Errorf("connect to upstream %q: %w", cfg.Name, err)
	}

	tools, err := listAllTools(connectCtx, session)
	if err != nil {
		_ = session.Close()
		return fmt.Errorf("list tools of upstream %q: %w", cfg.Name, err)
	}

	name := strings.TrimSpace(cfg.Name)
	m.mu.Lock()
	m.connections[name] = &connection{
		config:  cfg,
		session: session,
		tools:   tools,
	}
	m.order = append(m.order, name)
	m.mu.Unlock()
	return nil
}

// listAllTools drains the upstream's tool list across pagination cursors.
func listAllTools(ctx context.Context, session *mcp.ClientSession) ([]*mcp.Tool, error) {
	var tools []*mcp.Tool
	cursor := ""
	for {
		result, err := session.ListTools(ctx, &mcp.ListToolsParams{Cursor: cursor})
		if err != nil {
			return nil, err
		}
		tools = append(tools, result.Tools...)
		if result.NextCursor == "" {
			return tools, nil
		}
		cursor = result.NextCursor
	}
}

// Tools returns every aggregated tool across all connected upstreams, in
// upstream config order within each upstream's own tool order.
func (m *Manager) Tools() []Tool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var aggregated []Tool
	for _, name := range m.order {
		conn, ok := m.connections[name]
		if !ok {
			continue
		}
		for _, tool := range conn.tools {
			aggregated = append(aggregated, Tool{Upstream: name, Name: tool.Name, Tool: tool})
		}
	}
	return aggregated
}

// CallTool relays a tool call to the named upstream and returns its result
// verbatim.
func (m *Manager) CallTool(ctx context.Context, upstreamName, toolName string, arguments any) (*mcp.CallToolResult, error) {
	m.mu.RLock()
	conn, ok := m.connections[upstreamName]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("upstream %q is not connected", upstreamName)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeouts.UpstreamCall)
	defer cancel()

	result, err := conn.session.CallTool(callCtx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: arguments,
	})
	if err != nil {
		return nil, fmt.Errorf("call tool %q on upstream %q: %w", toolName, upstreamName, err)
	}
	return result, nil
}

// MonitorHealth pings each upstream session periodically until the context
// ends. Failures are logged but do not terminate the gateway; individual
// tool calls surface their own errors.
func (m *Manager) MonitorHealth(ctx context.Context) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mu.RLock()
			for name, conn := range m.connections {
				pingCtx, cancel := context.WithTimeout(ctx, timeouts.UpstreamConnect)
				if err := conn.session.Ping(pingCtx, nil); err != nil {
					log.Printf("upstream %q health check failed: %v", name, err)
				}
				cancel()
			}
			m.mu.RUnlock()
		}
	}
}

// Close tears down every upstream session, reporting the first error.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for name, conn := range m.connections {
		if err := conn.session.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close upstream %q: %w", name, err)
		}
		delete(m.connections, name)
	}
	m.order = nil
	return firstErr
}
