// Package factsimporter loads a JSON fact dataset into the SQLite dataset
// store used by the gateway.
package factsimporter

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/factgate/factgate/internal/factcheck"
	"github.com/factgate/factgate/internal/factcheck/store"
	"github.com/factgate/factgate/internal/factcheck/store/sqlite"
)

// Config holds configuration for the dataset importer.
type Config struct {
	Input  string
	DBPath string
	DryRun bool
}

// ParseConfig parses CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		DBPath: "data/facts.db",
	}

	fs.StringVar(&cfg.Input, "input", "", "JSON file holding an array of fact records")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "dataset database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.Input) == "" {
		return Config{}, errors.New("input is required")
	}

	return cfg, nil
}

// Run executes the importer using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	records, err := readRecords(cfg.Input)
	if err != nil {
		return err
	}
	if err := store.ValidateRecords(records); err != nil {
		return err
	}

	if cfg.DryRun {
		_, err = fmt.Fprintf(out, "validated %d record(s)\n", len(records))
		return err
	}

	datasets, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open dataset store: %w", err)
	}
	defer datasets.Close()

	if err := datasets.ImportRecords(ctx, records); err != nil {
		return fmt.Errorf("import records: %w", err)
	}

	_, err = fmt.Fprintf(out, "imported %d record(s) into %s\n", len(records), cfg.DBPath)
	return err
}

func readRecords(path string) ([]factcheck.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	var records []factcheck.Record
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return records, nil
}
