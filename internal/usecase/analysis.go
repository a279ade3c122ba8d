package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/domain/repository"
	"github.com/obsbot/logbot/pkg/logger"
)

const (
	analyzerPageBase = "https://obsproject.com/tools/analyzer?log_url="

	// hwCheckStateKey is the persisted runtime toggle for the
	// hardware-check augmentation of replies.
	hwCheckStateKey = "hw_check_enabled"

	filteredLogHost = "obsbot.rodney.io"
)

// Needles that mark debug spam worth offering a filtered mirror for.
var filteredLogNeedles = []string{"obs-streamelements.dll", "ftl_stream_create"}

// AnalysisResult is everything the delivery layer needs to render a
// reply. The core never sends messages itself.
type AnalysisResult struct {
	Candidate       entity.LogCandidate
	Report          entity.AnalysisReport
	HardwareLines   []string // empty when the hardware check is disabled
	AnalyzerPageURL string
	FilteredLogURL  string // non-empty when a debug-spam mirror applies
}

// LogAnalysisUseCase drives the per-message pipeline: resolve
// candidates, then for each one download/validate, fetch the remote
// analysis and match hardware, stopping at the first full success.
type LogAnalysisUseCase struct {
	resolver *Resolver
	logs     repository.LogRepository
	analyzer repository.AnalyzerRepository
	matcher  *Matcher
	rating   *RatingEngine
	stats    *StatsAggregator
	state    repository.StateRepository
}

func NewLogAnalysisUseCase(
	resolver *Resolver,
	logs repository.LogRepository,
	analyzerRepo repository.AnalyzerRepository,
	matcher *Matcher,
	rating *RatingEngine,
	stats *StatsAggregator,
	stateRepo repository.StateRepository,
) *LogAnalysisUseCase {
	return &LogAnalysisUseCase{
		resolver: resolver,
		logs:     logs,
		analyzer: analyzerRepo,
		matcher:  matcher,
		rating:   rating,
		stats:    stats,
		state:    stateRepo,
	}
}

// HandleMessage processes one incoming message. Every per-candidate
// failure is logged and swallowed; nil means no candidate produced a
// full analysis and the caller stays silent.
func (u *LogAnalysisUseCase) HandleMessage(ctx context.Context, msg entity.IncomingMessage) *AnalysisResult {
	candidates := u.resolver.ResolveCandidates(msg)
	if len(candidates) == 0 {
		return nil
	}

	runID := uuid.NewString()
	for _, cand := range candidates {
		text, err := u.logs.DownloadLog(ctx, cand.FetchURL)
		if err != nil {
			logDownloadFailure(runID, cand.FetchURL, err)
			continue
		}

		report, err := u.analyzer.FetchAnalysis(ctx, cand.FetchURL)
		if err != nil {
			if errors.Is(err, entity.ErrAnalyzerInvalidResponse) {
				logger.ErrorLogger.Printf("[%s] Analyzer result for %q is invalid", runID, cand.FetchURL)
			} else {
				logger.ErrorLogger.Printf("[%s] Failed retrieving log analysis from %q: %v", runID, cand.FetchURL, err)
			}
			continue
		}

		// Hardware matching always runs so usage stats keep flowing;
		// only the visible check is behind the toggle.
		matched := u.matcher.MatchHardware(text)

		res := &AnalysisResult{
			Candidate:       cand,
			Report:          *report,
			AnalyzerPageURL: analyzerPageBase + url.QueryEscape(cand.DisplayURL),
		}
		if u.HardwareCheckEnabled() {
			res.HardwareLines = u.rating.Rate(matched)
		}
		if strings.Contains(cand.FetchURL, "obsproject.com") && containsAny(text, filteredLogNeedles) {
			res.FilteredLogURL = strings.Replace(cand.FetchURL, "obsproject.com", filteredLogHost, 1)
		}
		return res
	}
	return nil
}

// HardwareCheckEnabled reads the persisted runtime toggle.
func (u *LogAnalysisUseCase) HardwareCheckEnabled() bool {
	return u.state.GetBool(hwCheckStateKey, false)
}

// ToggleHardwareCheck flips and persists the toggle, returning the new
// value.
func (u *LogAnalysisUseCase) ToggleHardwareCheck() (bool, error) {
	next := !u.HardwareCheckEnabled()
	if err := u.state.SetBool(hwCheckStateKey, next); err != nil {
		return next, err
	}
	return next, nil
}

// TopHardware returns the n most commonly observed entries of a kind.
func (u *LogAnalysisUseCase) TopHardware(kind entity.HardwareKind, n int) []entity.HardwareStatsEntry {
	return u.stats.TopN(kind, n)
}

func logDownloadFailure(runID, url string, err error) {
	var fetchErr *entity.FetchError
	switch {
	case errors.Is(err, entity.ErrCrashLog):
		logger.DebugLogger.Printf("[%s] Skipping crash log %q", runID, url)
	case errors.Is(err, entity.ErrNotAnOBSLog):
		logger.DebugLogger.Printf("[%s] Skipping non-OBS log %q", runID, url)
	case errors.As(err, &fetchErr):
		logger.ErrorLogger.Printf("[%s] Failed retrieving log from %q (status %d)", runID, url, fetchErr.StatusCode)
	default:
		logger.ErrorLogger.Printf("[%s] Unhandled error when downloading log %q: %v", runID, url, err)
	}
}
