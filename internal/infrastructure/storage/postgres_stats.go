package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/domain/repository"
)

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// postgresStatsRepository stores hardware observation counters in a
// single table (gpu_id, cpu_id, name, counts) where exactly one of the
// id columns is non-null per row.
type postgresStatsRepository struct {
	db    *sql.DB
	table string
}

// NewPostgresStatsRepository builds a repository over an existing
// connection. The table name is configurable and therefore validated
// before it is interpolated into queries.
func NewPostgresStatsRepository(db *sql.DB, table string) (repository.StatsRepository, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid stats table name %q", table)
	}
	return &postgresStatsRepository{db: db, table: table}, nil
}

func (r *postgresStatsRepository) LoadAll(ctx context.Context) ([]entity.HardwareStatsEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT gpu_id, cpu_id, name, counts FROM %q`, r.table))
	if err != nil {
		return nil, fmt.Errorf("loading hardware stats: %w", err)
	}
	defer rows.Close()

	var entries []entity.HardwareStatsEntry
	for rows.Next() {
		var gpuID, cpuID sql.NullInt64
		var name string
		var counts int64
		if err := rows.Scan(&gpuID, &cpuID, &name, &counts); err != nil {
			return nil, fmt.Errorf("scanning hardware stats row: %w", err)
		}
		switch {
		case gpuID.Valid:
			entries = append(entries, entity.HardwareStatsEntry{
				Kind: entity.KindGPU, ID: int(gpuID.Int64), Name: name, Count: counts,
			})
		case cpuID.Valid:
			entries = append(entries, entity.HardwareStatsEntry{
				Kind: entity.KindCPU, ID: int(cpuID.Int64), Name: name, Count: counts,
			})
		}
	}
	return entries, rows.Err()
}

// Insert is an upsert: two writers racing on a freshly observed id end
// up incrementing a single row instead of creating duplicates.
func (r *postgresStatsRepository) Insert(ctx context.Context, e entity.HardwareStatsEntry) error {
	conflictCol := "cpu_id"
	if e.Kind == entity.KindGPU {
		conflictCol = "gpu_id"
	}
	query := fmt.Sprintf(
		`INSERT INTO %q (gpu_id, cpu_id, name, counts) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (%s) DO UPDATE SET counts = %q.counts + 1`,
		r.table, conflictCol, r.table)

	gpuID, cpuID := idColumns(e.Kind, e.ID)
	_, err := r.db.ExecContext(ctx, query, gpuID, cpuID, e.Name, e.Count)
	if err != nil {
		return fmt.Errorf("inserting hardware stats for %s %d: %w", e.Kind, e.ID, err)
	}
	return nil
}

func (r *postgresStatsRepository) Increment(ctx context.Context, kind entity.HardwareKind, id int) error {
	query := fmt.Sprintf(
		`UPDATE %q SET counts = counts + 1
		 WHERE gpu_id IS NOT DISTINCT FROM $1 AND cpu_id IS NOT DISTINCT FROM $2`,
		r.table)

	gpuID, cpuID := idColumns(kind, id)
	_, err := r.db.ExecContext(ctx, query, gpuID, cpuID)
	if err != nil {
		return fmt.Errorf("incrementing hardware stats for %s %d: %w", kind, id, err)
	}
	return nil
}

func idColumns(kind entity.HardwareKind, id int) (gpuID, cpuID sql.NullInt64) {
	if kind == entity.KindGPU {
		gpuID = sql.NullInt64{Int64: int64(id), Valid: true}
	} else {
		cpuID = sql.NullInt64{Int64: int64(id), Valid: true}
	}
	return gpuID, cpuID
}
