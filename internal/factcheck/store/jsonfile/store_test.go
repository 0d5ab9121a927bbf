package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/factgate/factgate/internal/factcheck"
	"github.com/factgate/factgate/internal/factcheck/store"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facts.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestLoadReadsRecords(t *testing.T) {
	path := writeDataset(t, `[
  {"facts": {"fact1": "Sun is a star", "fact2": "Sun is a planet"}, "correct_fact": "fact1"},
  {"facts": {"fact1": "Water boils at 50C", "fact2": "Water boils at 100C"}, "correct_fact": "fact2"}
]`)
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	records, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Facts.Fact1 != "Sun is a star" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].CorrectFact != factcheck.DesignationFact2 {
		t.Errorf("expected fact2 designation, got %q", records[1].CorrectFact)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	_, err = s.Load(context.Background())
	if !errors.Is(err, store.ErrDatasetMissing) {
		t.Fatalf("expected ErrDatasetMissing, got %v", err)
	}
}

func TestLoadMalformedDocument(t *testing.T) {
	path := writeDataset(t, `{"not": "an array"}`)
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	_, err = s.Load(context.Background())
	if !errors.Is(err, store.ErrDatasetMalformed) {
		t.Fatalf("expected ErrDatasetMalformed, got %v", err)
	}
}

func TestLoadRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing fact2",
			content: `[{"facts": {"fact1": "only one"}, "correct_fact": "fact1"}]`,
		},
		{
			name:    "invalid correct_fact",
			content: `[{"facts": {"fact1": "a", "fact2": "b"}, "correct_fact": "fact3"}]`,
		},
		{
			name:    "missing correct_fact",
			content: `[{"facts": {"fact1": "a", "fact2": "b"}}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(writeDataset(t, tt.content))
			if err != nil {
				t.Fatalf("open store: %v", err)
			}
			_, err = s.Load(context.Background())
			if !errors.Is(err, store.ErrDatasetMalformed) {
				t.Fatalf("expected ErrDatasetMalformed, got %v", err)
			}
		})
	}
}

func TestLoadPicksUpEdits(t *testing.T) {
	path := writeDataset(t, `[]`)
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	records, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load empty dataset: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty dataset, got %d records", len(records))
	}

	updated := `[{"facts": {"fact1": "a", "fact2": "b"}, "correct_fact": "fact1"}]`
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("rewrite dataset: %v", err)
	}

	records, err = s.Load(context.Background())
	if err != nil {
		t.Fatalf("reload dataset: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected updated dataset on reload, got %d records", len(records))
	}
}

func TestLoadCancelledContext(t *testing.T) {
	s, err := Open(writeDataset(t, `[]`))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Load(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
