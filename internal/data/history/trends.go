package history

import "fmt"

// BuildTrend compares the last run in runs, which must be ordered oldest
// first, with the one before it.
func BuildTrend(runs []Run) (Trend, error) {
	if len(runs) == 0 {
		return Trend{}, fmt.Errorf("no runs available")
	}

	latest := runs[len(runs)-1]
	trend := Trend{Latest: latest, DeltaByRule: make(map[string]int)}
	if len(runs) == 1 {
		for rule, count := range latest.ByRule {
			trend.DeltaByRule[rule] = count
		}
		return trend, nil
	}

	prev := runs[len(runs)-2]
	trend.Previous = &prev
	trend.DeltaDiagnostics = latest.DiagnosticCount - prev.DiagnosticCount
	trend.DeltaFailedFiles = latest.FailedFiles - prev.FailedFiles
	for rule, count := range latest.ByRule {
		trend.DeltaByRule[rule] = count - prev.ByRule[rule]
	}
	for rule, count := range prev.ByRule {
		if _, ok := latest.ByRule[rule]; !ok {
			trend.DeltaByRule[rule] = -count
		}
	}
	return trend, nil
}
