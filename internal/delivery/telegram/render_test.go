package telegram

import (
	"strings"
	"testing"

	"github.com/obsbot/logbot/internal/domain/entity"
	"github.com/obsbot/logbot/internal/usecase"
)

func TestRenderResult_AllSections(t *testing.T) {
	res := &usecase.AnalysisResult{
		Report: entity.AnalysisReport{
			Critical: []string{"Running as admin"},
			Warning:  []string{"Old version", "32-bit build"},
			Info:     []string{"Game capture in use"},
		},
		HardwareLines:   []string{"Intel Core i7-9700K @ 3.60GHz - OK!", "GeForce GTX 1060 - OK!"},
		AnalyzerPageURL: "https://obsproject.com/tools/analyzer?log_url=x",
		FilteredLogURL:  "https://obsbot.rodney.io/logs/abc",
	}

	out := renderResult(res)

	wantOrder := []string{
		"filtered version [click here](https://obsbot.rodney.io/logs/abc)",
		"*🛑 Critical*",
		"- Running as admin",
		"*⚠️ Warning*",
		"- Old version",
		"- 32-bit build",
		"*ℹ️ Info*",
		"- Game capture in use",
		"*Hardware Check*",
		"Intel Core i7-9700K @ 3.60GHz - OK! / GeForce GTX 1060 - OK!",
		"*Analyser Report*",
		"(https://obsproject.com/tools/analyzer?log_url=x)",
	}
	pos := 0
	for _, want := range wantOrder {
		idx := strings.Index(out[pos:], want)
		if idx < 0 {
			t.Fatalf("output missing %q after position %d:\n%s", want, pos, out)
		}
		pos += idx + len(want)
	}
}

func TestRenderResult_EmptySectionsOmitted(t *testing.T) {
	res := &usecase.AnalysisResult{
		Report:          entity.AnalysisReport{Info: []string{"ok"}},
		AnalyzerPageURL: "https://obsproject.com/tools/analyzer?log_url=x",
	}

	out := renderResult(res)
	for _, absent := range []string{"Critical", "Warning", "Hardware Check", "filtered version"} {
		if strings.Contains(out, absent) {
			t.Errorf("output must not contain %q:\n%s", absent, out)
		}
	}
	if !strings.Contains(out, "*ℹ️ Info*") {
		t.Fatalf("output missing info section:\n%s", out)
	}
}

func TestRenderTopHardware_RankedLists(t *testing.T) {
	out := renderTopHardware(
		[]entity.HardwareStatsEntry{
			{Name: "AMD Ryzen 5 3600", Count: 120},
			{Name: "Intel Core i5-9400F @ 2.90GHz", Count: 87},
		},
		[]entity.HardwareStatsEntry{
			{Name: "GeForce GTX 1060", Count: 95},
		},
	)

	for _, want := range []string{
		"*Top Hardware*",
		" 1. - AMD Ryzen 5 3600 (120)",
		" 2. - Intel Core i5-9400F @ 2.90GHz (87)",
		" 1. - GeForce GTX 1060 (95)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
