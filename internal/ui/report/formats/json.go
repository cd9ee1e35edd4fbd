package formats

import (
	"bemlint/internal/data/history"
	"bemlint/internal/engine/lint"
	"encoding/json"
)

type jsonReport struct {
	Files       []jsonFile `json:"files"`
	Diagnostics int        `json:"diagnostics"`
	FailedFiles int        `json:"failed_files"`
	Errors      int        `json:"errors"`
	Trend       *jsonTrend `json:"trend,omitempty"`
}

type jsonFile struct {
	Path        string           `json:"path"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

type jsonDiagnostic struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	RuleID   string `json:"rule_id"`
	RuleName string `json:"rule_name"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

type jsonTrend struct {
	RunID            string         `json:"run_id"`
	PreviousRunID    string         `json:"previous_run_id,omitempty"`
	DeltaDiagnostics int            `json:"delta_diagnostics"`
	DeltaFailedFiles int            `json:"delta_failed_files"`
	DeltaByRule      map[string]int `json:"delta_by_rule,omitempty"`
}

// GenerateJSON renders lint results as an indented JSON document. trend
// may be nil.
func GenerateJSON(files []lint.FileResult, trend *history.Trend) ([]byte, error) {
	out := jsonReport{Files: make([]jsonFile, 0, len(files))}
	for _, f := range files {
		jf := jsonFile{Path: f.Path, Diagnostics: make([]jsonDiagnostic, 0, len(f.Diagnostics))}
		if f.Err != nil {
			jf.Error = f.Err.Error()
			out.Errors++
		}
		if len(f.Diagnostics) > 0 {
			out.FailedFiles++
		}
		for _, d := range f.Diagnostics {
			jf.Diagnostics = append(jf.Diagnostics, jsonDiagnostic{
				Line:     d.Line,
				Column:   d.Column,
				RuleID:   d.RuleID,
				RuleName: d.RuleName,
				Subject:  d.Subject,
				Message:  d.Message,
			})
		}
		out.Diagnostics += len(f.Diagnostics)
		out.Files = append(out.Files, jf)
	}

	if trend != nil {
		jt := &jsonTrend{
			RunID:            trend.Latest.ID,
			DeltaDiagnostics: trend.DeltaDiagnostics,
			DeltaFailedFiles: trend.DeltaFailedFiles,
			DeltaByRule:      trend.DeltaByRule,
		}
		if trend.Previous != nil {
			jt.PreviousRunID = trend.Previous.ID
		}
		out.Trend = jt
	}

	return json.MarshalIndent(out, "", "  ")
}
