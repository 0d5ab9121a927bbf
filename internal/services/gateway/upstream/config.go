// Package upstream manages connections to the remote MCP servers whose tools
// the gateway aggregates.
package upstream

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig describes one upstream MCP server. Exactly one transport must
// be set: Command (stdio subprocess) or URL (streamable HTTP).
type ServerConfig struct {
	// Name prefixes the upstream's tool names in the aggregated catalog and
	// must be unique across upstreams.
	Name string `yaml:"name"`
	// Command is the executable to spawn for a stdio upstream.
	Command string `yaml:"command,omitempty"`
	// Args are the arguments passed to Command.
	Args []string `yaml:"args,omitempty"`
	// Env is extra environment for Command, as KEY=VALUE entries.
	Env []string `yaml:"env,omitempty"`
	// URL is the endpoint of a streamable HTTP upstream.
	URL string `yaml:"url,omitempty"`
}

// Validate rejects configs with no name or an ambiguous transport.
func (c ServerConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("upstream name is required")
	}
	hasCommand := strings.TrimSpace(c.Command) != ""
	hasURL := strings.TrimSpace(c.URL) != ""
	if hasCommand == hasURL {
		return fmt.Errorf("upstream %q must set exactly one of command or url", c.Name)
	}
	return nil
}

// Config is the parsed upstreams configuration file.
type Config struct {
	Upstreams []ServerConfig `yaml:"upstreams"`
}

// Validate checks every upstream entry and rejects duplicate names.
func (c Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Upstreams))
	for _, upstream := range c.Upstreams {
		if err := upstream.Validate(); err != nil {
			return err
		}
		name := strings.TrimSpace(upstream.Name)
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate upstream name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// LoadConfig reads and validates a YAML upstreams file. A missing path means
// the gateway runs with no upstreams, serving only its local tools.
func LoadConfig(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read upstreams config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode upstreams config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("upstreams config %s: %w", path, err)
	}
	return cfg, nil
}
