package repository

import (
	"context"

	"github.com/obsbot/logbot/internal/domain/entity"
)

// LogRepository downloads and validates raw log text.
type LogRepository interface {
	// DownloadLog fetches the raw content at url, resolves its
	// encoding and classifies it. Crash logs and non-OBS logs are
	// returned as entity.ErrCrashLog / entity.ErrNotAnOBSLog; failed
	// downloads as *entity.FetchError.
	DownloadLog(ctx context.Context, url string) (string, error)
}

// AnalyzerRepository fetches the remote structured analysis of a log.
type AnalyzerRepository interface {
	FetchAnalysis(ctx context.Context, logURL string) (*entity.AnalysisReport, error)
}

// BenchmarkCatalog is the read-only view of the loaded benchmark data.
// Entries are returned in catalog order: ascending name length, which
// participates in match tie-breaking.
type BenchmarkCatalog interface {
	Entries(kind entity.HardwareKind) []entity.BenchmarkEntry
}
