package repository

import (
	"context"

	"github.com/obsbot/logbot/internal/domain/entity"
)

// StatsRepository persists observed-hardware counters. Exactly one of
// gpu_id/cpu_id is set per row, derived from the entry kind.
type StatsRepository interface {
	// LoadAll returns every persisted counter, used once at startup.
	LoadAll(ctx context.Context) ([]entity.HardwareStatsEntry, error)

	// Insert stores a first observation. Implementations must be
	// idempotent upserts: a duplicate insert for an id that raced into
	// existence degenerates to an increment of the existing row.
	Insert(ctx context.Context, e entity.HardwareStatsEntry) error

	// Increment bumps the counter of an existing row by one.
	Increment(ctx context.Context, kind entity.HardwareKind, id int) error
}

// StateRepository stores runtime toggles that survive restarts.
type StateRepository interface {
	GetBool(key string, def bool) bool
	SetBool(key string, value bool) error
}
