package factcheck

import "testing"

func sunDataset() []Record {
	return []Record{
		{
			Facts:       FactPair{Fact1: "Sun is a star", Fact2: "Sun is a planet"},
			CorrectFact: DesignationFact1,
		},
	}
}

func TestVerifyExactMatch(t *testing.T) {
	matcher := NewMatcher()

	t.Run("straight order", func(t *testing.T) {
		result := matcher.Verify(Query{Fact1: "Sun is a star", Fact2: "Sun is a planet"}, sunDataset())
		if result.Kind != MatchExact {
			t.Fatalf("expected exact match, got %v", result.Kind)
		}
		if result.Verdict() != "fact1" {
			t.Errorf("expected verdict fact1, got %q", result.Verdict())
		}
	})

	t.Run("swapped order flips designation", func(t *testing.T) {
		result := matcher.Verify(Query{Fact1: "Sun is a planet", Fact2: "Sun is a star"}, sunDataset())
		if result.Kind != MatchExact {
			t.Fatalf("expected exact match, got %v", result.Kind)
		}
		if result.Verdict() != "fact2" {
			t.Errorf("expected verdict fact2, got %q", result.Verdict())
		}
	})

	t.Run("complementary designations", func(t *testing.T) {
		straight := matcher.Verify(Query{Fact1: "Sun is a star", Fact2: "Sun is a planet"}, sunDataset())
		swapped := matcher.Verify(Query{Fact1: "Sun is a planet", Fact2: "Sun is a star"}, sunDataset())
		if straight.Designation.Flip() != swapped.Designation {
			t.Errorf("expected complementary designations, got %q and %q", straight.Designation, swapped.Designation)
		}
	})

	t.Run("first matching record wins", func(t *testing.T) {
		records := []Record{
			{Facts: FactPair{Fact1: "X", Fact2: "Y"}, CorrectFact: DesignationFact1},
			{Facts: FactPair{Fact1: "X", Fact2: "Y"}, CorrectFact: DesignationFact2},
		}
		result := matcher.Verify(Query{Fact1: "X", Fact2: "Y"}, records)
		if result.Designation != DesignationFact1 {
			t.Errorf("expected first record's designation, got %q", result.Designation)
		}
	})
}

func TestVerifyApproximateMatch(t *testing.T) {
	matcher := NewMatcher()

	t.Run("near-identical wording", func(t *testing.T) {
		result := matcher.Verify(Query{Fact1: "The sun is a star.", Fact2: "The sun is a planet."}, sunDataset())
		if result.Kind != MatchApproximate {
			t.Fatalf("expected approximate match, got %v", result.Kind)
		}
		if result.Verdict() != "fact1" {
			t.Errorf("expected verdict fact1, got %q", result.Verdict())
		}
		if result.Score <= DefaultThreshold || result.Score > 1 {
			t.Errorf("score %v outside (%v, 1]", result.Score, DefaultThreshold)
		}
	})

	t.Run("near-identical swapped wording flips designation", func(t *testing.T) {
		result := matcher.Verify(Query{Fact1: "The sun is a planet.", Fact2: "The sun is a star."}, sunDataset())
		if result.Kind != MatchApproximate {
			t.Fatalf("expected approximate match, got %v", result.Kind)
		}
		if result.Verdict() != "fact2" {
			t.Errorf("expected verdict fact2, got %q", result.Verdict())
		}
	})

	t.Run("unrelated strings", func(t *testing.T) {
		result := matcher.Verify(Query{Fact1: "zzzz", Fact2: "qqqq"}, sunDataset())
		if result.Kind != MatchNone {
			t.Fatalf("expected no match, got %v", result.Kind)
		}
		if result.Verdict() != NoMatchVerdict {
			t.Errorf("expected %q, got %q", NoMatchVerdict, result.Verdict())
		}
	})

	t.Run("threshold is exclusive", func(t *testing.T) {
		// Both alignments score exactly 0.6 per claim, so the per-record
		// score is exactly the threshold and must not qualify.
		records := []Record{
			{Facts: FactPair{Fact1: "abcxx", Fact2: "abcyy"}, CorrectFact: DesignationFact1},
		}
		result := matcher.Verify(Query{Fact1: "abczz", Fact2: "abcww"}, records)
		if result.Kind != MatchNone {
			t.Fatalf("expected no match at threshold boundary, got %v with score %v", result.Kind, result.Score)
		}
	})

	t.Run("best-scoring record wins", func(t *testing.T) {
		records := []Record{
			{Facts: FactPair{Fact1: "The moon orbits Earth", Fact2: "The moon orbits Mars"}, CorrectFact: DesignationFact1},
			{Facts: FactPair{Fact1: "Sun is a star", Fact2: "Sun is a planet"}, CorrectFact: DesignationFact1},
		}
		result := matcher.Verify(Query{Fact1: "The sun is a star.", Fact2: "The sun is a planet."}, records)
		if result.Kind != MatchApproximate {
			t.Fatalf("expected approximate match, got %v", result.Kind)
		}
		if result.Designation != DesignationFact1 {
			t.Errorf("expected fact1 from the closer record, got %q", result.Designation)
		}
	})
}

func TestVerifyEmptyDataset(t *testing.T) {
	matcher := NewMatcher()
	result := matcher.Verify(Query{Fact1: "anything", Fact2: "at all"}, nil)
	if result.Kind != MatchNone {
		t.Fatalf("expected no match for empty dataset, got %v", result.Kind)
	}
	if result.Verdict() != NoMatchVerdict {
		t.Errorf("expected %q, got %q", NoMatchVerdict, result.Verdict())
	}
}

func TestVerifyIdempotent(t *testing.T) {
	matcher := NewMatcher()
	query := Query{Fact1: "The sun is a star.", Fact2: "The sun is a planet."}
	first := matcher.Verify(query, sunDataset())
	second := matcher.Verify(query, sunDataset())
	if first != second {
		t.Errorf("expected identical results, got %+v then %+v", first, second)
	}
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{
			name:   "valid",
			record: Record{Facts: FactPair{Fact1: "a", Fact2: "b"}, CorrectFact: DesignationFact2},
		},
		{
			name:    "missing fact1",
			record:  Record{Facts: FactPair{Fact2: "b"}, CorrectFact: DesignationFact1},
			wantErr: true,
		},
		{
			name:    "missing fact2",
			record:  Record{Facts: FactPair{Fact1: "a"}, CorrectFact: DesignationFact1},
			wantErr: true,
		},
		{
			name:    "missing correct_fact",
			record:  Record{Facts: FactPair{Fact1: "a", Fact2: "b"}},
			wantErr: true,
		},
		{
			name:    "invalid correct_fact literal",
			record:  Record{Facts: FactPair{Fact1: "a", Fact2: "b"}, CorrectFact: "fact3"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDesignationFlip(t *testing.T) {
	if DesignationFact1.Flip() != DesignationFact2 {
		t.Error("expected fact1 to flip to fact2")
	}
	if DesignationFact2.Flip() != DesignationFact1 {
		t.Error("expected fact2 to flip to fact1")
	}
}
