// Package factgate parses gateway command flags and wires the MCP gateway
// service for stdio or HTTP transport.
package factgate

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/factgate/factgate/internal/factcheck/store"
	"github.com/factgate/factgate/internal/factcheck/store/jsonfile"
	"github.com/factgate/factgate/internal/factcheck/store/sqlite"
	"github.com/factgate/factgate/internal/platform/config"
	"github.com/factgate/factgate/internal/platform/otel"
	"github.com/factgate/factgate/internal/services/gateway/service"
	"github.com/factgate/factgate/internal/services/gateway/upstream"
)

// Config holds gateway command configuration.
type Config struct {
	Transport       string `env:"FACTGATE_TRANSPORT"        envDefault:"stdio"`
	HTTPAddr        string `env:"FACTGATE_HTTP_ADDR"        envDefault:"localhost:8081"`
	DatasetDriver   string `env:"FACTGATE_DATASET_DRIVER"   envDefault:"json"`
	DatasetPath     string `env:"FACTGATE_DATASET_PATH"     envDefault:"data/facts.json"`
	UpstreamsConfig string `env:"FACTGATE_UPSTREAMS_CONFIG"`
	AllowedHosts    string `env:"FACTGATE_MCP_ALLOWED_HOSTS"`
	AuthToken       string `env:"FACTGATE_MCP_AUTH_TOKEN"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.DatasetDriver, "dataset-driver", cfg.DatasetDriver, "Dataset store driver: json or sqlite")
	fs.StringVar(&cfg.DatasetPath, "dataset-path", cfg.DatasetPath, "Dataset file or database path")
	fs.StringVar(&cfg.UpstreamsConfig, "upstreams-config", cfg.UpstreamsConfig, "YAML file listing upstream MCP servers")
	fs.StringVar(&cfg.AllowedHosts, "allowed-hosts", cfg.AllowedHosts, "Comma-separated extra hosts accepted over HTTP")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// openDatasetStore selects the dataset backend from configuration.
func openDatasetStore(cfg Config) (store.Store, error) {
	driver, err := store.ParseDriver(cfg.DatasetDriver)
	if err != nil {
		return nil, err
	}
	switch driver {
	case store.DriverJSON:
		return jsonfile.Open(cfg.DatasetPath)
	case store.DriverSQLite:
		return sqlite.Open(cfg.DatasetPath)
	default:
		return nil, fmt.Errorf("dataset driver %q is not supported", cfg.DatasetDriver)
	}
}

func splitHosts(value string) []string {
	var hosts []string
	for _, host := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(host); trimmed != "" {
			hosts = append(hosts, trimmed)
		}
	}
	return hosts
}

// Run starts the MCP gateway.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "factgate")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	datasets, err := openDatasetStore(cfg)
	if err != nil {
		return fmt.Errorf("open dataset store: %w", err)
	}

	upstreamCfg, err := upstream.LoadConfig(cfg.UpstreamsConfig)
	if err != nil {
		_ = datasets.Close()
		return fmt.Errorf("load upstreams config: %w", err)
	}

	deps := service.Deps{Datasets: datasets}
	if len(upstreamCfg.Upstreams) > 0 {
		manager, err := upstream.Connect(ctx, upstreamCfg, service.ClientImplementation())
		if err != nil {
			_ = datasets.Close()
			return fmt.Errorf("connect upstreams: %w", err)
		}
		deps.Upstreams = manager
	}

	return service.Run(ctx, service.Config{
		Transport:    service.TransportKind(cfg.Transport),
		HTTPAddr:     cfg.HTTPAddr,
		AllowedHosts: splitHosts(cfg.AllowedHosts),
		AuthToken:    cfg.AuthToken,
	}, deps)
}
