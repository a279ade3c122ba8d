package usecase

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/pkg/logger"
)

// Qualitative tier labels.
const (
	ratingBelowMinimum  = "Below minimum requirements"
	ratingBelowEncoding = "Below cpu encoding requirements"
	ratingBottleneck    = "Possible bottleneck"
	ratingOK            = "OK!"

	potato = "🥔"
)

// CPU tier boundaries (cpu_mark).
const (
	cpuEncodingMark   = 3250
	cpuBottleneckMark = 4500
	cpuOKMark         = 7500
)

// GPU tier boundaries (gpu_3d_mark).
const (
	gpuBottleneckMark = 400
	gpuOKMark         = 3000
)

// RatingEngine converts benchmark marks into qualitative tiers. The
// random draw is injectable so the potato easter egg is testable.
type RatingEngine struct {
	intn func(n int) int
}

func NewRatingEngine() *RatingEngine {
	return &RatingEngine{intn: rand.Intn}
}

// RateCPU buckets a cpu_mark. The potato preset is deliberately
// applied before the tier checks and overwritten by any tier above the
// lowest, so it only ever shows on bottom-tier hardware.
func (e *RatingEngine) RateCPU(mark int) string {
	rating := ratingBelowMinimum
	if e.intn(101) == 100 {
		rating = potato
	}
	if mark >= cpuEncodingMark {
		rating = ratingBelowEncoding
	}
	if mark >= cpuBottleneckMark {
		rating = ratingBottleneck
	}
	if mark >= cpuOKMark {
		rating = ratingOK
	}
	return rating
}

// RateGPU buckets a gpu_3d_mark, same potato rules as RateCPU.
func (e *RatingEngine) RateGPU(mark int) string {
	rating := ratingBelowMinimum
	if e.intn(101) == 100 {
		rating = potato
	}
	if mark >= gpuBottleneckMark {
		rating = ratingBottleneck
	}
	if mark >= gpuOKMark {
		rating = ratingOK
	}
	return rating
}

// Rate renders the hardware-check lines for a match result. Malformed
// marks drop only the affected side.
func (e *RatingEngine) Rate(res entity.HardwareMatchResult) []string {
	var lines []string

	if line, ok := e.rateSide(res.CPU, e.RateCPU); ok {
		lines = append(lines, line)
	}
	if line, ok := e.rateSide(res.GPU, e.RateGPU); ok {
		lines = append(lines, line)
	}
	return lines
}

func (e *RatingEngine) rateSide(side entity.HardwareMatch, rate func(int) string) (string, bool) {
	switch side.State {
	case entity.MatchFound:
		mark, err := parseMark(side.Entry)
		if err != nil {
			logger.ErrorLogger.Printf("Parsing benchmark score failed: %v", err)
			return "", false
		}
		return fmt.Sprintf("%s - %s", side.Entry.Name, rate(mark)), true
	case entity.MatchKnownUnmatched:
		return fmt.Sprintf("%s (not in benchmark DB)", side.Name), true
	default:
		return "", false
	}
}

func parseMark(entry *entity.BenchmarkEntry) (int, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(entry.Mark), ",", "")
	mark, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &entity.ScoreParseError{Kind: entry.Kind, Name: entry.Name, Mark: entry.Mark, Err: err}
	}
	return mark, nil
}
