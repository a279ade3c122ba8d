package usecase

import (
	"testing"

	"github.com/obsbot/logbot/internal/domain/entity"
)

// stubCatalog serves entries exactly as given; tests are responsible
// for listing them in name-length order like the real catalog.
type stubCatalog struct {
	cpus []entity.BenchmarkEntry
	gpus []entity.BenchmarkEntry
}

func (s *stubCatalog) Entries(kind entity.HardwareKind) []entity.BenchmarkEntry {
	if kind == entity.KindGPU {
		return s.gpus
	}
	return s.cpus
}

type recorderStub struct {
	updates []entity.BenchmarkEntry
	kinds   []entity.HardwareKind
}

func (r *recorderStub) Update(kind entity.HardwareKind, bench entity.BenchmarkEntry) {
	r.kinds = append(r.kinds, kind)
	r.updates = append(r.updates, bench)
}

func i79700kEntry() entity.BenchmarkEntry {
	return entity.BenchmarkEntry{
		ID:     100,
		Name:   "Intel Core i7-9700K @ 3.60GHz",
		Kind:   entity.KindCPU,
		Tokens: []string{"intel", "core", "i7", "9700k", "@", "3.60ghz"},
		Mark:   "12000",
	}
}

func TestMatchHardware_CPUMatchedAndStatsScheduledOnD3D11(t *testing.T) {
	rec := &recorderStub{}
	m := NewMatcher(&stubCatalog{cpus: []entity.BenchmarkEntry{i79700kEntry()}}, rec)

	log := "CPU Name: Intel(R) Core(TM) i7-9700K @ 3.60GHz\nLoading up D3D11...\n"
	res := m.MatchHardware(log)

	if res.CPU.State != entity.MatchFound {
		t.Fatalf("CPU.State = %v, want MatchFound", res.CPU.State)
	}
	if res.CPU.Entry.ID != 100 {
		t.Fatalf("CPU.Entry.ID = %d, want 100", res.CPU.Entry.ID)
	}
	if res.CPU.Name != "Intel(R) Core(TM) i7-9700K @ 3.60GHz" {
		t.Fatalf("CPU.Name = %q", res.CPU.Name)
	}
	if len(rec.updates) != 1 || rec.kinds[0] != entity.KindCPU {
		t.Fatalf("stats updates = %v %v, want one CPU update", rec.kinds, rec.updates)
	}
}

func TestMatchHardware_NoStatsOnOpenGLBackend(t *testing.T) {
	// same log, OpenGL instead of D3D11: match computed, nothing counted
	rec := &recorderStub{}
	m := NewMatcher(&stubCatalog{cpus: []entity.BenchmarkEntry{i79700kEntry()}}, rec)

	log := "CPU Name: Intel(R) Core(TM) i7-9700K @ 3.60GHz\nLoading up OpenGL...\n"
	res := m.MatchHardware(log)

	if res.CPU.State != entity.MatchFound {
		t.Fatalf("CPU.State = %v, want MatchFound", res.CPU.State)
	}
	if len(rec.updates) != 0 {
		t.Fatalf("stats updates = %v, want none", rec.updates)
	}
}

func TestMatchHardware_NoBackendMarkerYieldsAbsent(t *testing.T) {
	m := NewMatcher(&stubCatalog{cpus: []entity.BenchmarkEntry{i79700kEntry()}}, nil)

	res := m.MatchHardware("CPU Name: Intel(R) Core(TM) i7-9700K @ 3.60GHz\n")
	if res.CPU.State != entity.MatchAbsent || res.GPU.State != entity.MatchAbsent {
		t.Fatalf("result = %+v, want both sides absent", res)
	}
}

func TestMatchCPU_IntelThresholdRaisedToFive(t *testing.T) {
	// catalog entry without the clock-speed suffix only overlaps on 4
	// of the candidate's 5+ tokens, below the raised Intel minimum
	entry := entity.BenchmarkEntry{
		ID: 1, Name: "Intel Core i7-9700K", Kind: entity.KindCPU,
		Tokens: []string{"intel", "core", "i7", "9700k"}, Mark: "12000",
	}
	m := NewMatcher(&stubCatalog{cpus: []entity.BenchmarkEntry{entry}}, nil)

	got := m.matchCPU("Intel(R) Core(TM) i7-9700K @ 3.60GHz")
	if got.State != entity.MatchKnownUnmatched {
		t.Fatalf("State = %v, want MatchKnownUnmatched", got.State)
	}
	if got.Name == "" {
		t.Fatal("Name should be retained for known-unmatched hardware")
	}
}

func TestMatchCPU_ExcludedSKUKeepsDefaultThreshold(t *testing.T) {
	// Xeon is excluded from the raised minimum, 3 overlapping tokens win
	entry := entity.BenchmarkEntry{
		ID: 2, Name: "Intel Xeon E5-2680 v4", Kind: entity.KindCPU,
		Tokens: []string{"intel", "xeon", "e5", "2680", "v4"}, Mark: "10000",
	}
	m := NewMatcher(&stubCatalog{cpus: []entity.BenchmarkEntry{entry}}, nil)

	got := m.matchCPU("Intel(R) Xeon(R) CPU E5-2680 v4 @ 2.40GHz")
	if got.State != entity.MatchFound {
		t.Fatalf("State = %v, want MatchFound", got.State)
	}
}

func TestMatchCPU_AMDDefaultThreshold(t *testing.T) {
	entry := entity.BenchmarkEntry{
		ID: 3, Name: "AMD Ryzen 5 3600", Kind: entity.KindCPU,
		Tokens: []string{"amd", "ryzen", "5", "3600"}, Mark: "17800",
	}
	m := NewMatcher(&stubCatalog{cpus: []entity.BenchmarkEntry{entry}}, nil)

	got := m.matchCPU("AMD Ryzen 5 3600 6-Core Processor")
	if got.State != entity.MatchFound {
		t.Fatalf("State = %v, want MatchFound", got.State)
	}
}

func TestMatchCPU_NoOverlapIsKnownUnmatched(t *testing.T) {
	entry := entity.BenchmarkEntry{
		ID: 4, Name: "AMD Ryzen 5 3600", Kind: entity.KindCPU,
		Tokens: []string{"amd", "ryzen", "5", "3600"}, Mark: "17800",
	}
	m := NewMatcher(&stubCatalog{cpus: []entity.BenchmarkEntry{entry}}, nil)

	got := m.matchCPU("Some Exotic Chip")
	if got.State != entity.MatchKnownUnmatched {
		t.Fatalf("State = %v, want MatchKnownUnmatched", got.State)
	}
	if got.Name != "Some Exotic Chip" {
		t.Fatalf("Name = %q, want the extracted name", got.Name)
	}
}

func TestMatchGPU_TieGoesToShorterCatalogName(t *testing.T) {
	// both entries overlap on the same 2 tokens; the strictly-greater
	// rule keeps the earlier (shorter-named) entry
	gpus := []entity.BenchmarkEntry{
		{ID: 10, Name: "GeForce GTX 1060", Kind: entity.KindGPU,
			Tokens: []string{"geforce", "gtx", "1060"}, Mark: "9000"},
		{ID: 11, Name: "GeForce GTX 1060 6GB", Kind: entity.KindGPU,
			Tokens: []string{"geforce", "gtx", "1060", "6gb"}, Mark: "10000"},
	}
	m := NewMatcher(&stubCatalog{gpus: gpus}, nil)

	res := m.MatchHardware("Loading up D3D11 on adapter GeForce GTX 1060 (Device 0)\n")
	if res.GPU.State != entity.MatchFound {
		t.Fatalf("GPU.State = %v, want MatchFound", res.GPU.State)
	}
	if res.GPU.Entry.ID != 10 {
		t.Fatalf("GPU.Entry.ID = %d, want the shorter-named entry 10", res.GPU.Entry.ID)
	}
}

func TestMatchHardware_GPUStatsOnlyOnD3D11Line(t *testing.T) {
	gpus := []entity.BenchmarkEntry{
		{ID: 10, Name: "GeForce GTX 1060", Kind: entity.KindGPU,
			Tokens: []string{"geforce", "gtx", "1060"}, Mark: "9000"},
	}

	rec := &recorderStub{}
	m := NewMatcher(&stubCatalog{gpus: gpus}, rec)
	res := m.MatchHardware("Loading up OpenGL on adapter GeForce GTX 1060\n")
	if res.GPU.State != entity.MatchFound {
		t.Fatalf("GPU.State = %v, want MatchFound", res.GPU.State)
	}
	if len(rec.updates) != 0 {
		t.Fatalf("stats updates = %v, want none on OpenGL line", rec.updates)
	}

	rec = &recorderStub{}
	m = NewMatcher(&stubCatalog{gpus: gpus}, rec)
	_ = m.MatchHardware("Loading up D3D11 on adapter GeForce GTX 1060 (Device 0)\n")
	if len(rec.updates) != 1 || rec.kinds[0] != entity.KindGPU {
		t.Fatalf("stats updates = %v %v, want one GPU update", rec.kinds, rec.updates)
	}
}

func TestMatchGPU_LongNameNeedsThreeTokens(t *testing.T) {
	// 5 candidate tokens raise the GPU minimum to 3
	gpus := []entity.BenchmarkEntry{
		{ID: 12, Name: "Radeon RX 580", Kind: entity.KindGPU,
			Tokens: []string{"radeon", "rx", "580"}, Mark: "8500"},
	}
	m := NewMatcher(&stubCatalog{gpus: gpus}, nil)

	if got := m.matchGPU("AMD Radeon RX 580 Series"); got.State != entity.MatchFound {
		t.Fatalf("State = %v, want MatchFound with 3 overlapping tokens", got.State)
	}
	if got := m.matchGPU("Some Radeon RX Unknown Thing"); got.State != entity.MatchKnownUnmatched {
		t.Fatalf("State = %v, want MatchKnownUnmatched with only 2 overlapping tokens", got.State)
	}
}

func TestExtractAdapter_PlatformSuffixHandling(t *testing.T) {
	line := "12:00:00.000: Loading up D3D11 on adapter NVIDIA GeForce GTX 1060 6GB (Adapter 0)"

	if got := extractAdapter(line, false); got != "NVIDIA GeForce GTX 1060 6GB" {
		t.Fatalf("windows adapter = %q", got)
	}
	if got := extractAdapter(line, true); got != "NVIDIA GeForce GTX 1060 6GB (Adapter 0)" {
		t.Fatalf("macOS adapter = %q", got)
	}
	if got := extractAdapter("Loading up D3D11...", false); got != "" {
		t.Fatalf("no adapter marker: got %q, want empty", got)
	}
}

func TestOverlapScore_DisjointIsZero(t *testing.T) {
	if got := overlapScore([]string{"a", "b"}, []string{"c", "d"}); got != 0 {
		t.Fatalf("overlapScore = %d, want 0", got)
	}
	if got := overlapScore([]string{"a", "b", "c"}, []string{"c", "a"}); got != 2 {
		t.Fatalf("overlapScore = %d, want 2", got)
	}
}
