package storage

import (
	"context"
	"sync"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/domain/repository"
)

type statsKey struct {
	kind entity.HardwareKind
	id   int
}

// memoryStatsRepository is an in-memory StatsRepository, used when the
// bot runs without a database and as a test double.
type memoryStatsRepository struct {
	mu      sync.Mutex
	entries map[statsKey]entity.HardwareStatsEntry
}

func NewMemoryStatsRepository() repository.StatsRepository {
	return &memoryStatsRepository{entries: make(map[statsKey]entity.HardwareStatsEntry)}
}

func (m *memoryStatsRepository) LoadAll(ctx context.Context) ([]entity.HardwareStatsEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]entity.HardwareStatsEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

// Insert mirrors the Postgres upsert semantics: a duplicate insert
// increments the existing row.
func (m *memoryStatsRepository) Insert(ctx context.Context, e entity.HardwareStatsEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := statsKey{kind: e.Kind, id: e.ID}
	if cur, ok := m.entries[key]; ok {
		cur.Count++
		m.entries[key] = cur
		return nil
	}
	m.entries[key] = e
	return nil
}

func (m *memoryStatsRepository) Increment(ctx context.Context, kind entity.HardwareKind, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := statsKey{kind: kind, id: id}
	if cur, ok := m.entries[key]; ok {
		cur.Count++
		m.entries[key] = cur
	}
	return nil
}
