package factcheck

// MatchKind classifies how a verdict was reached.
type MatchKind int

const (
	// MatchNone indicates no record matched above the threshold.
	MatchNone MatchKind = iota
	// MatchExact indicates a record matched both claims verbatim.
	MatchExact
	// MatchApproximate indicates the best-scoring record cleared the
	// similarity threshold.
	MatchApproximate
)

// String returns a stable label for the match kind.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchApproximate:
		return "approximate"
	default:
		return "none"
	}
}

// NoMatchVerdict is the terminal verdict when neither pass finds a record.
// It is a valid outcome, not an error.
const NoMatchVerdict = "No match found"

// Result is the outcome of a verification. Designation refers to the
// caller's query positions; Score is only meaningful for approximate
// matches.
type Result struct {
	Kind        MatchKind
	Designation Designation
	Score       float64
}

// Verdict maps the result to the external response string: the designation
// for a match, or NoMatchVerdict.
func (r Result) Verdict() string {
	if r.Kind == MatchNone {
		return NoMatchVerdict
	}
	return string(r.Designation)
}

// DefaultThreshold is the approximate-match acceptance threshold. The value
// is a heuristic; scores must strictly exceed it to qualify.
const DefaultThreshold = 0.6

// Matcher verifies claim pairs against a reference dataset. The zero value
// is not usable; construct with NewMatcher.
type Matcher struct {
	// Threshold is the exclusive lower bound a per-record score must beat
	// for an approximate match.
	Threshold float64
}

// NewMatcher returns a matcher with the default similarity threshold.
func NewMatcher() *Matcher {
	return &Matcher{Threshold: DefaultThreshold}
}

// Verify runs the exact pass and, on a miss, the approximate pass over the
// dataset in order. It never fails on well-formed inputs; dataset-load
// failures belong to the caller.
func (m *Matcher) Verify(query Query, records []Record) Result {
	if result, ok := exactMatch(query, records); ok {
		return result
	}
	return m.approximateMatch(query, records)
}

// exactMatch scans in order and stops at the first record whose claims equal
// the query's claims, straight or swapped. A swapped hit flips the recorded
// designation so the verdict still names the caller's positions.
func exactMatch(query Query, records []Record) (Result, bool) {
	for _, record := range records {
		if record.Facts.Fact1 == query.Fact1 && record.Facts.Fact2 == query.Fact2 {
			return Result{Kind: MatchExact, Designation: record.CorrectFact}, true
		}
		if record.Facts.Fact1 == query.Fact2 && record.Facts.Fact2 == query.Fact1 {
			return Result{Kind: MatchExact, Designation: record.CorrectFact.Flip()}, true
		}
	}
	return Result{}, false
}

// approximateMatch scores every record under both alignments and keeps the
// single best. Strict > comparison means the first-seen record wins ties.
func (m *Matcher) approximateMatch(query Query, records []Record) Result {
	var (
		bestScore   float64
		bestRecord  Record
		bestSwapped bool
		found       bool
	)
	for _, record := range records {
		straight := Similarity(query.Fact1, record.Facts.Fact1) + Similarity(query.Fact2, record.Facts.Fact2)
		swapped := Similarity(query.Fact1, record.Facts.Fact2) + Similarity(query.Fact2, record.Facts.Fact1)

		score := straight / 2
		flip := false
		if swapped > straight {
			score = swapped / 2
			flip = true
		}
		if !found || score > bestScore {
			bestScore = score
			bestRecord = record
			bestSwapped = flip
			found = true
		}
	}
	if !found || bestScore <= m.Threshold {
		return Result{Kind: MatchNone}
	}
	designation := bestRecord.CorrectFact
	if bestSwapped {
		designation = designation.Flip()
	}
	return Result{Kind: MatchApproximate, Designation: designation, Score: bestScore}
}
