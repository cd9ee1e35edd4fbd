package report

import (
	"bemlint/internal/data/history"
	"testing"
)

func TestRenderTrendLine_FirstRun(t *testing.T) {
	trend := history.Trend{Latest: history.Run{DiagnosticCount: 3, FailedFiles: 2}}

	got := RenderTrendLine(trend)
	want := "history: first recorded run, 3 diagnostics in 2 files"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderTrendLine_Deltas(t *testing.T) {
	trend := history.Trend{
		Latest:           history.Run{DiagnosticCount: 4, FailedFiles: 2},
		Previous:         &history.Run{DiagnosticCount: 6, FailedFiles: 2},
		DeltaDiagnostics: -2,
		DeltaFailedFiles: 0,
		DeltaByRule:      map[string]int{"BEM003": -1, "BEM001": -1, "BEM005": 0},
	}

	got := RenderTrendLine(trend)
	want := "history: 4 diagnostics (-2) in 2 files (+0); BEM001 -1, BEM003 -1"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
