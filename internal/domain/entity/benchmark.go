package entity

// HardwareKind distinguishes the two benchmark catalogs.
type HardwareKind string

const (
	KindCPU HardwareKind = "cpu"
	KindGPU HardwareKind = "gpu"
)

// BenchmarkEntry is one record from a benchmark database snapshot.
// Mark is kept unparsed: snapshots occasionally carry "NA" or empty
// values, and those must fail at rating time rather than at load time.
type BenchmarkEntry struct {
	ID     int
	Name   string
	Kind   HardwareKind
	Tokens []string // normalized name tokens, bare punctuation removed
	Mark   string   // cpu_mark for CPUs, gpu_3d_mark for GPUs
}
