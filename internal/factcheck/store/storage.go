// Package store defines the persistence contract for the fact reference
// dataset.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/factgate/factgate/internal/factcheck"
)

var (
	// ErrDatasetMissing indicates the dataset's durable source does not exist.
	ErrDatasetMissing = errors.New("fact dataset not found")
	// ErrDatasetMalformed indicates the dataset exists but cannot be decoded
	// or fails record validation.
	ErrDatasetMalformed = errors.New("fact dataset is malformed")
)

// Store supplies the reference dataset. Load reads the durable source fresh
// on every call; implementations do not cache, and callers treat the
// returned slice as immutable.
type Store interface {
	Load(ctx context.Context) ([]factcheck.Record, error)
	Close() error
}

// Driver names a dataset store backend.
type Driver string

const (
	// DriverJSON reads the dataset from a JSON file.
	DriverJSON Driver = "json"
	// DriverSQLite reads the dataset from a SQLite database.
	DriverSQLite Driver = "sqlite"
)

// ParseDriver maps a configuration label to a known driver.
func ParseDriver(value string) (Driver, error) {
	switch Driver(value) {
	case DriverJSON:
		return DriverJSON, nil
	case DriverSQLite:
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("dataset driver %q is not supported", value)
	}
}

// ValidateRecords applies record validation to a loaded dataset, reporting
// the first failure with its position.
func ValidateRecords(records []factcheck.Record) error {
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrDatasetMalformed, i, err)
		}
	}
	return nil
}
