package entity

// MatchState tags one side of a hardware match result.
type MatchState int

const (
	// MatchAbsent means the relevant marker line was not in the log.
	MatchAbsent MatchState = iota
	// MatchKnownUnmatched means a name was extracted but no catalog
	// entry passed the acceptance threshold.
	MatchKnownUnmatched
	// MatchFound means a catalog entry was accepted.
	MatchFound
)

// HardwareMatch is one side (CPU or GPU) of a match result.
type HardwareMatch struct {
	State MatchState
	Name  string          // extracted name, empty only when Absent
	Entry *BenchmarkEntry // set only when State is MatchFound
}

// HardwareMatchResult holds the outcome of matching a log against the
// benchmark catalogs. Either side may be absent.
type HardwareMatchResult struct {
	CPU HardwareMatch
	GPU HardwareMatch
}
