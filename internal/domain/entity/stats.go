package entity

// HardwareStatsEntry counts how often one piece of hardware has been
// observed. Uniquely keyed by (Kind, ID); Count never decreases.
type HardwareStatsEntry struct {
	Kind  HardwareKind
	ID    int
	Name  string
	Count int64
}
