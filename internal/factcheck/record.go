// Package factcheck decides which of two competing factual claims matches a
// curated reference dataset. Matching runs in two passes: an exact
// bidirectional lookup, then an approximate pass scoring every record with a
// longest-common-subsequence ratio. Verdicts always name one of the caller's
// two input positions, never a dataset value.
package factcheck

import "fmt"

// Designation labels which of the two claims in a pair is judged correct.
type Designation string

const (
	// DesignationFact1 names the first claim of a pair.
	DesignationFact1 Designation = "fact1"
	// DesignationFact2 names the second claim of a pair.
	DesignationFact2 Designation = "fact2"
)

// Flip returns the opposite designation. It is the orientation correction
// applied when a dataset record aligns with a query in swapped order.
func (d Designation) Flip() Designation {
	switch d {
	case DesignationFact1:
		return DesignationFact2
	case DesignationFact2:
		return DesignationFact1
	default:
		return d
	}
}

// Valid reports whether the designation is one of the two allowed literals.
func (d Designation) Valid() bool {
	return d == DesignationFact1 || d == DesignationFact2
}

// FactPair holds the two mutually exclusive claims of a record.
type FactPair struct {
	Fact1 string `json:"fact1"`
	Fact2 string `json:"fact2"`
}

// Record is one ground-truth entry of the reference dataset: two competing
// claims and which one is recorded as true. Records are immutable once
// loaded.
type Record struct {
	Facts       FactPair    `json:"facts"`
	CorrectFact Designation `json:"correct_fact"`
}

// Validate rejects records with a missing claim or an invalid correct_fact
// literal. Stores call it at load time so malformed dataset rows surface as
// load errors instead of silent mismatches.
func (r Record) Validate() error {
	if r.Facts.Fact1 == "" {
		return fmt.Errorf("record is missing facts.fact1")
	}
	if r.Facts.Fact2 == "" {
		return fmt.Errorf("record is missing facts.fact2")
	}
	if !r.CorrectFact.Valid() {
		return fmt.Errorf("record correct_fact %q must be %q or %q", r.CorrectFact, DesignationFact1, DesignationFact2)
	}
	return nil
}

// Query carries the two claims submitted by a caller. The pair is unordered
// in meaning but positionally tagged so verdicts can reference the caller's
// original positions.
type Query struct {
	Fact1 string
	Fact2 string
}
