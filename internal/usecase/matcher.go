package usecase

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/domain/repository"
	"github.com/obsbot/logbot/pkg/logger"
)

// Graphics backend initialization markers. Their presence is what
// makes a log worth matching at all, and the D3D11 one additionally
// gates stats collection so a single run is not counted once per
// backend probe.
const (
	backendD3D11  = "Loading up D3D11"
	backendOpenGL = "Loading up OpenGL"
	d3d11Token    = "D3D11"

	cpuNameMarker = "CPU Name:"
	adapterMarker = "adapter"
	macOSMarker   = "NSMACHOperatingSystem"
)

// Intel SKU families the raised threshold does not apply to.
var intelExcludedSKUs = []string{"Atom", "Celeron", "Xeon", "Pentium"}

// StatsRecorder receives accepted matches for usage counting.
type StatsRecorder interface {
	Update(kind entity.HardwareKind, bench entity.BenchmarkEntry)
}

// Matcher extracts hardware names from a log and fuzzy-matches them
// against the benchmark catalogs by token overlap.
type Matcher struct {
	catalog repository.BenchmarkCatalog
	stats   StatsRecorder // may be nil
}

func NewMatcher(catalog repository.BenchmarkCatalog, stats StatsRecorder) *Matcher {
	return &Matcher{catalog: catalog, stats: stats}
}

// MatchHardware scans the log line by line. It only does anything when
// a graphics backend was initialized, since the hardware description
// lines appear around that point.
func (m *Matcher) MatchHardware(logText string) entity.HardwareMatchResult {
	var res entity.HardwareMatchResult

	hasD3D11 := strings.Contains(logText, backendD3D11)
	if !hasD3D11 && !strings.Contains(logText, backendOpenGL) {
		return res
	}
	isMac := strings.Contains(logText, macOSMarker)

	for _, line := range strings.Split(logText, "\n") {
		if strings.Contains(line, cpuNameMarker) {
			name := afterLastMarker(line, cpuNameMarker)
			res.CPU = m.matchCPU(name)

			// only count CPU stats for DX11 runs on Windows
			if hasD3D11 && res.CPU.State == entity.MatchFound && m.stats != nil {
				m.stats.Update(entity.KindCPU, *res.CPU.Entry)
			}
		}

		if strings.Contains(line, backendD3D11) || strings.Contains(line, backendOpenGL) {
			name := extractAdapter(line, isMac)
			if name == "" {
				continue
			}
			res.GPU = m.matchGPU(name)

			if strings.Contains(line, d3d11Token) && res.GPU.State == entity.MatchFound && m.stats != nil {
				m.stats.Update(entity.KindGPU, *res.GPU.Entry)
			}
		}
	}
	return res
}

func (m *Matcher) matchCPU(name string) entity.HardwareMatch {
	tokens := normalizeCPUName(name)
	best, score := bestMatch(entity.KindCPU, name, tokens, m.catalog.Entries(entity.KindCPU))
	if best == nil {
		logger.WarnLogger.Printf("Could not find CPU in CPU DB (update required?): %s", name)
		return entity.HardwareMatch{State: entity.MatchKnownUnmatched, Name: name}
	}

	// Different minimums for Intel/AMD filter out false positives
	// without losing short names.
	minScore := 3
	if strings.Contains(best.Name, "Intel") && len(tokens) >= 5 && !containsAny(name, intelExcludedSKUs) {
		minScore = 5
	}
	if score < minScore {
		logger.WarnLogger.Printf("Could not find acceptable CPU match (update required?): %s", name)
		return entity.HardwareMatch{State: entity.MatchKnownUnmatched, Name: name}
	}
	return entity.HardwareMatch{State: entity.MatchFound, Name: name, Entry: best}
}

func (m *Matcher) matchGPU(name string) entity.HardwareMatch {
	tokens := normalizeGPUName(name)
	best, score := bestMatch(entity.KindGPU, name, tokens, m.catalog.Entries(entity.KindGPU))
	if best == nil {
		logger.WarnLogger.Printf("Could not find GPU in GPU DB (update required?): %s", name)
		return entity.HardwareMatch{State: entity.MatchKnownUnmatched, Name: name}
	}

	// vendor match quality is about the same, but some GPU names are
	// too short for a minimum of 3
	minScore := 3
	if len(tokens) <= 4 {
		minScore = 2
	}
	if score < minScore {
		logger.WarnLogger.Printf("Could not find acceptable GPU match (update required?): %s", name)
		return entity.HardwareMatch{State: entity.MatchKnownUnmatched, Name: name}
	}
	return entity.HardwareMatch{State: entity.MatchFound, Name: name, Entry: best}
}

// bestMatch scores every catalog entry and keeps the first one with a
// strictly higher overlap. Entries come sorted by name length, so the
// shortest name wins ties by construction.
func bestMatch(kind entity.HardwareKind, name string, tokens []string, entries []entity.BenchmarkEntry) (*entity.BenchmarkEntry, int) {
	bestScore := 0
	var best *entity.BenchmarkEntry
	for i := range entries {
		s := overlapScore(tokens, entries[i].Tokens)
		if s > bestScore {
			logger.DebugLogger.Printf("[%s] New best match (score: %d): %s => %s", kind, s, name, entries[i].Name)
			bestScore = s
			best = &entries[i]
		}
	}
	return best, bestScore
}

// overlapScore counts candidate tokens present in the entry's token
// set; the basis of the fuzzy identification.
func overlapScore(candidate, entry []string) int {
	return lo.CountBy(candidate, func(tok string) bool {
		return slices.Contains(entry, tok)
	})
}

var (
	cpuNameCleaner = strings.NewReplacer("(tm)", "", "(r)", "", "-", " ", "@", " ")
	gpuNameCleaner = strings.NewReplacer("(tm)", "", "(r)", "", "/", " ")
)

func normalizeCPUName(name string) []string {
	return strings.Fields(cpuNameCleaner.Replace(strings.ToLower(name)))
}

func normalizeGPUName(name string) []string {
	return strings.Fields(gpuNameCleaner.Replace(strings.ToLower(name)))
}

func afterLastMarker(line, marker string) string {
	idx := strings.LastIndex(line, marker)
	return strings.TrimSpace(line[idx+len(marker):])
}

// extractAdapter pulls the adapter description off a backend-init
// line. Windows lines carry a trailing parenthesized suffix that is
// stripped; the macOS format does not.
func extractAdapter(line string, isMac bool) string {
	idx := strings.Index(line, adapterMarker)
	if idx < 0 {
		return ""
	}
	rest := line[idx+len(adapterMarker):]
	if !isMac {
		if p := strings.LastIndex(rest, "("); p >= 0 {
			rest = rest[:p]
		}
	}
	return strings.TrimSpace(rest)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
