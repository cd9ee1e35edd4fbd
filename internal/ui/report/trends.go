package report

import (
	"bemlint/internal/data/history"
	"bemlint/internal/shared/util"
	"fmt"
	"strings"
)

// RenderTrendLine summarizes how the latest run compares with the previous
// one, e.g. "history: 4 diagnostics (-2) in 2 files (+0); BEM001 -1, BEM003 -1".
func RenderTrendLine(trend history.Trend) string {
	latest := trend.Latest
	if trend.Previous == nil {
		return fmt.Sprintf("history: first recorded run, %d diagnostics in %d files",
			latest.DiagnosticCount, latest.FailedFiles)
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("history: %d diagnostics (%+d) in %d files (%+d)",
		latest.DiagnosticCount, trend.DeltaDiagnostics,
		latest.FailedFiles, trend.DeltaFailedFiles))

	sep := "; "
	for _, rule := range util.SortedStringKeys(trend.DeltaByRule) {
		delta := trend.DeltaByRule[rule]
		if delta == 0 {
			continue
		}
		buf.WriteString(fmt.Sprintf("%s%s %+d", sep, rule, delta))
		sep = ", "
	}
	return buf.String()
}
