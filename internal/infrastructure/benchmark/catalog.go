package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/domain/repository"
	"github.com/obsbot/logbot/pkg/logger"
)

// rawEntry mirrors one record of a benchmark snapshot file. Marks may
// show up as JSON numbers or strings depending on the snapshot, so
// they are captured raw and stringified without being parsed.
type rawEntry struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	NameLower string          `json:"name_lower"`
	CPUMark   json.RawMessage `json:"cpu_mark"`
	GPU3DMark json.RawMessage `json:"gpu_3d_mark"`
}

// Catalog holds both benchmark tables, immutable after Load. Each
// table is sorted ascending by name length: the matcher's
// strictly-greater replacement rule relies on this order to make the
// shortest name win score ties.
type Catalog struct {
	cpus []entity.BenchmarkEntry
	gpus []entity.BenchmarkEntry
}

var _ repository.BenchmarkCatalog = (*Catalog)(nil)

// Load reads both snapshot files. Any failure is fatal to the caller:
// without a catalog there is no hardware matching.
func Load(cpuPath, gpuPath string) (*Catalog, error) {
	cpus, err := loadFile(cpuPath, entity.KindCPU)
	if err != nil {
		return nil, fmt.Errorf("loading CPU benchmark data: %w", err)
	}
	gpus, err := loadFile(gpuPath, entity.KindGPU)
	if err != nil {
		return nil, fmt.Errorf("loading GPU benchmark data: %w", err)
	}
	logger.InfoLogger.Printf("Loaded benchmark catalogs: %d CPUs, %d GPUs", len(cpus), len(gpus))
	return &Catalog{cpus: cpus, gpus: gpus}, nil
}

// Entries returns one catalog table in catalog order.
func (c *Catalog) Entries(kind entity.HardwareKind) []entity.BenchmarkEntry {
	if kind == entity.KindGPU {
		return c.gpus
	}
	return c.cpus
}

func loadFile(path string, kind entity.HardwareKind) ([]entity.BenchmarkEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []rawEntry
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	entries := make([]entity.BenchmarkEntry, 0, len(raw))
	for _, r := range raw {
		mark := r.CPUMark
		if kind == entity.KindGPU {
			mark = r.GPU3DMark
		}
		entries = append(entries, entity.BenchmarkEntry{
			ID:     r.ID,
			Name:   r.Name,
			Kind:   kind,
			Tokens: NameTokens(r.nameLower()),
			Mark:   markString(mark),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Name) < len(entries[j].Name)
	})
	return entries, nil
}

func (r rawEntry) nameLower() string {
	if r.NameLower != "" {
		return r.NameLower
	}
	// older snapshots lack name_lower
	return strings.ReplaceAll(strings.ToLower(r.Name), "-", " ")
}

// NameTokens splits a pre-lowered benchmark name into its token set,
// dropping bare punctuation tokens that only hurt matching.
func NameTokens(nameLower string) []string {
	return lo.Filter(strings.Fields(nameLower), func(tok string, _ int) bool {
		return tok != "-" && tok != "(" && tok != ")"
	})
}

func markString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
