package app

import (
	"bemlint/internal/core/errors"
	"bemlint/internal/data/history"
	"bemlint/internal/engine/lint"
	"time"
)

// Exit codes shared by the CLI and watch mode.
const (
	ExitClean    = 0
	ExitFindings = 1
	ExitFailure  = 2
)

// Report is the outcome of one run over the resolved files.
type Report struct {
	// Files holds one result per linted file, in input order. Without
	// --all it stops at the first failing file.
	Files    []lint.FileResult
	Ignored  []string
	All      bool
	Duration time.Duration
	// Trend is set when history is enabled.
	Trend *history.Trend
}

func (r Report) DiagnosticCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

// FailedFiles counts files with at least one diagnostic.
func (r Report) FailedFiles() int {
	n := 0
	for _, f := range r.Files {
		if len(f.Diagnostics) > 0 {
			n++
		}
	}
	return n
}

// Errors returns the files that could not be analyzed.
func (r Report) Errors() []lint.FileResult {
	var out []lint.FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// ByRule counts diagnostics per rule id.
func (r Report) ByRule() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			counts[d.RuleID]++
		}
	}
	return counts
}

// ExitCode is 2 when any file could not be analyzed, 1 when any
// diagnostic was reported and 0 otherwise.
func (r Report) ExitCode() int {
	if len(r.Errors()) > 0 {
		return ExitFailure
	}
	if r.DiagnosticCount() > 0 {
		return ExitFindings
	}
	return ExitClean
}

// ErrorCode reports the domain code of a failed file, for metrics labels.
func ErrorCode(err error) string {
	for _, code := range []errors.ErrorCode{errors.CodeNotFound, errors.CodeReadFailed, errors.CodeParseFailed} {
		if errors.IsCode(err, code) {
			return string(code)
		}
	}
	return string(errors.CodeInternal)
}

func (r Report) historyRun() history.Run {
	return history.Run{
		FileCount:       len(r.Files),
		FailedFiles:     r.FailedFiles(),
		ErrorFiles:      len(r.Errors()),
		DiagnosticCount: r.DiagnosticCount(),
		ByRule:          r.ByRule(),
	}
}
