package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/domain/repository"
	"github.com/obsbot/logbot/pkg/logger"
)

const statsQueueSize = 64

// statsOp is one queued persistence operation. insert distinguishes a
// first observation from a plain increment.
type statsOp struct {
	insert bool
	entry  entity.HardwareStatsEntry
}

// StatsAggregator keeps in-memory observation counts per hardware id
// and mirrors every change to the repository through a bounded queue
// drained by a single background writer, so reply latency never waits
// on the database.
type StatsAggregator struct {
	mu     sync.Mutex
	repo   repository.StatsRepository
	counts map[entity.HardwareKind]map[int]*entity.HardwareStatsEntry
	queue  chan statsOp
}

var _ StatsRecorder = (*StatsAggregator)(nil)

func NewStatsAggregator(repo repository.StatsRepository) *StatsAggregator {
	return &StatsAggregator{
		repo: repo,
		counts: map[entity.HardwareKind]map[int]*entity.HardwareStatsEntry{
			entity.KindCPU: {},
			entity.KindGPU: {},
		},
		queue: make(chan statsOp, statsQueueSize),
	}
}

// Load populates the in-memory maps from the repository, once at
// startup.
func (a *StatsAggregator) Load(ctx context.Context) error {
	entries, err := a.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		logger.WarnLogger.Println("No hardware stats received from DB!")
		return nil
	}

	a.mu.Lock()
	for _, e := range entries {
		e := e
		a.counts[e.Kind][e.ID] = &e
	}
	a.mu.Unlock()

	logger.InfoLogger.Printf("Received %d hardware stats entries from DB.", len(entries))
	return nil
}

// Run drains the persistence queue until ctx is done. Write failures
// are logged and dropped; the in-memory counts stay authoritative for
// the process lifetime.
func (a *StatsAggregator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case op := <-a.queue:
			var err error
			if op.insert {
				err = a.repo.Insert(ctx, op.entry)
			} else {
				err = a.repo.Increment(ctx, op.entry.Kind, op.entry.ID)
			}
			if err != nil {
				logger.ErrorLogger.Printf("Persisting hardware stats failed: %v", err)
			}
		}
	}
}

// Update records one observation and schedules the matching write: an
// insert for an unseen id, an increment otherwise. The queue is never
// blocked on; a full queue drops the write with an error log.
func (a *StatsAggregator) Update(kind entity.HardwareKind, bench entity.BenchmarkEntry) {
	a.mu.Lock()
	var op statsOp
	if cur, ok := a.counts[kind][bench.ID]; ok {
		cur.Count++
		op = statsOp{entry: *cur}
	} else {
		e := &entity.HardwareStatsEntry{Kind: kind, ID: bench.ID, Name: bench.Name, Count: 1}
		a.counts[kind][bench.ID] = e
		op = statsOp{insert: true, entry: *e}
	}
	a.mu.Unlock()

	select {
	case a.queue <- op:
	default:
		logger.ErrorLogger.Printf("Stats queue full, dropping %s update for id %d", kind, bench.ID)
	}
}

// TopN returns the n most-observed entries of a kind, count
// descending. Tie order is unspecified.
func (a *StatsAggregator) TopN(kind entity.HardwareKind, n int) []entity.HardwareStatsEntry {
	a.mu.Lock()
	snapshot := make([]entity.HardwareStatsEntry, 0, len(a.counts[kind]))
	for _, e := range a.counts[kind] {
		snapshot = append(snapshot, *e)
	}
	a.mu.Unlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].Count > snapshot[j].Count
	})
	if len(snapshot) > n {
		snapshot = snapshot[:n]
	}
	return snapshot
}
