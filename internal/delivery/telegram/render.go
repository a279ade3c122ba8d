package telegram

import (
	"fmt"
	"strings"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/usecase"
)

// renderResult turns an analysis result into the reply text.
func renderResult(res *usecase.AnalysisResult) string {
	var sb strings.Builder

	if res.FilteredLogURL != "" {
		fmt.Fprintf(&sb, "_Log contains debug messages (browser/ftl/etc), for a filtered version [click here](%s)_\n\n", res.FilteredLogURL)
	}

	writeSection(&sb, "🛑 Critical", res.Report.Critical)
	writeSection(&sb, "⚠️ Warning", res.Report.Warning)
	writeSection(&sb, "ℹ️ Info", res.Report.Info)

	if len(res.HardwareLines) > 0 {
		sb.WriteString("*Hardware Check*\n")
		sb.WriteString(strings.Join(res.HardwareLines, " / "))
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "*Analyser Report*\n[Click here for solutions / full analysis](%s)", res.AnalyzerPageURL)
	return sb.String()
}

func writeSection(sb *strings.Builder, title string, messages []string) {
	if len(messages) == 0 {
		return
	}
	fmt.Fprintf(sb, "*%s*\n", title)
	for _, msg := range messages {
		fmt.Fprintf(sb, "- %s\n", msg)
	}
	sb.WriteString("\n")
}

func renderTopHardware(cpus, gpus []entity.HardwareStatsEntry) string {
	var sb strings.Builder
	sb.WriteString("*Top Hardware*\n\n")

	sb.WriteString("CPUs\n```\n")
	writeRanking(&sb, cpus)
	sb.WriteString("```\nGPUs\n```\n")
	writeRanking(&sb, gpus)
	sb.WriteString("```")
	return sb.String()
}

func writeRanking(sb *strings.Builder, entries []entity.HardwareStatsEntry) {
	for pos, e := range entries {
		fmt.Fprintf(sb, "%2d. - %s (%d)\n", pos+1, e.Name, e.Count)
	}
}
