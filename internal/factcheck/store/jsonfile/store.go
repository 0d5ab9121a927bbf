// Package jsonfile provides a JSON-file-backed fact dataset store.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/factgate/factgate/internal/factcheck"
	"github.com/factgate/factgate/internal/factcheck/store"
)

// Store reads the fact dataset from a JSON file holding an array of records.
// The file is re-read on every Load so dataset edits take effect on the next
// verification without a restart.
type Store struct {
	path string
}

// Open returns a store for the given dataset file path. The file itself is
// only touched on Load.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("dataset path is required")
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Load reads and validates the full dataset.
func (s *Store) Load(ctx context.Context) ([]factcheck.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.path == "" {
		return nil, fmt.Errorf("dataset store is not configured")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", store.ErrDatasetMissing, s.path)
		}
		return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
	}

	var records []factcheck.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", store.ErrDatasetMalformed, s.path, err)
	}
	if err := store.ValidateRecords(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Close is a no-op; the store holds no open handles between loads.
func (s *Store) Close() error {
	return nil
}
