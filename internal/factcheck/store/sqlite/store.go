// Package sqlite provides a SQLite-backed fact dataset store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/factgate/factgate/internal/factcheck"
	"github.com/factgate/factgate/internal/factcheck/store"
	"github.com/factgate/factgate/internal/factcheck/store/sqlite/migrations"
	sqlitemigrate "github.com/factgate/factgate/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store persists the fact dataset in SQLite. Load reads every row on each
// call; rowid order preserves the first-match-wins scan semantics of the
// matcher.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite fact store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load reads and validates the full dataset in insertion order.
func (s *Store) Load(ctx context.Context) ([]factcheck.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("dataset store is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT fact1, fact2, correct_fact FROM fact_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query fact records: %w", err)
	}
	defer rows.Close()

	var records []factcheck.Record
	for rows.Next() {
		var record factcheck.Record
		var correct string
		if err := rows.Scan(&record.Facts.Fact1, &record.Facts.Fact2, &correct); err != nil {
			return nil, fmt.Errorf("scan fact record: %w", err)
		}
		record.CorrectFact = factcheck.Designation(correct)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fact records: %w", err)
	}
	if err := store.ValidateRecords(records); err != nil {
		return nil, err
	}
	return records, nil
}

// PutFactRecord appends one record to the dataset.
func (s *Store) PutFactRecord(ctx context.Context, record factcheck.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("dataset store is not configured")
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrDatasetMalformed, err)
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO fact_records (fact1, fact2, correct_fact, created_at) VALUES (?, ?, ?, ?)`,
		record.Facts.Fact1,
		record.Facts.Fact2,
		string(record.CorrectFact),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert fact record: %w", err)
	}
	return nil
}

// ImportRecords appends a batch of records in order, validating each one
// before any row is written.
func (s *Store) ImportRecords(ctx context.Context, records []factcheck.Record) error {
	if err := store.ValidateRecords(records); err != nil {
		return err
	}
	for i, record := range records {
		if err := s.PutFactRecord(ctx, record); err != nil {
			return fmt.Errorf("import record %d: %w", i, err)
		}
	}
	return nil
}
