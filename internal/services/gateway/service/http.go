package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/factgate/factgate/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serveHTTP runs the gateway as a streamable HTTP MCP server until the
// context is cancelled or the listener fails.
func (s *Server) serveHTTP(ctx context.Context, cfg Config) error {
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = "localhost:8081"
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", guardRequests(cfg, handler))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	log.Printf("starting MCP HTTP server on %s", addr)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		shutdownErr := httpServer.Shutdown(shutdownCtx)
		closeErr := s.Close()
		if shutdownErr != nil {
			return fmt.Errorf("shutdown HTTP server: %w", shutdownErr)
		}
		if closeErr != nil {
			return fmt.Errorf("close gateway: %w", closeErr)
		}
		return nil
	case err := <-errChan:
		_ = s.Close()
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

// guardRequests rejects requests whose Host or Origin is neither loopback
// nor explicitly allowed, and enforces the bearer token when one is
// configured. Host checking blocks DNS rebinding against local deployments.
func guardRequests(cfg Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !hostAllowed(r.Host, cfg.AllowedHosts) {
			http.Error(w, "Forbidden host", http.StatusForbidden)
			return
		}
		if origin := r.Header.Get("Origin"); origin != "" && !originAllowed(origin, cfg.AllowedHosts) {
			http.Error(w, "Forbidden origin", http.StatusForbidden)
			return
		}
		if cfg.AuthToken != "" && !tokenMatches(r.Header.Get("Authorization"), cfg.AuthToken) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func hostAllowed(host string, allowed []string) bool {
	if host == "" {
		return false
	}
	name := host
	if splitName, _, err := net.SplitHostPort(host); err == nil {
		name = splitName
	}
	if isLoopbackName(name) {
		return true
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, name) || strings.EqualFold(candidate, host) {
			return true
		}
	}
	return false
}

func originAllowed(origin string, allowed []string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	return hostAllowed(parsed.Host, allowed)
}

func isLoopbackName(name string) bool {
	if strings.EqualFold(name, "localhost") {
		return true
	}
	ip := net.ParseIP(name)
	return ip != nil && ip.IsLoopback()
}

func tokenMatches(header, token string) bool {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	presented := strings.TrimPrefix(header, prefix)
	return subtle.ConstantTimeCompare([]byte(presented), []byte(token)) == 1
}
