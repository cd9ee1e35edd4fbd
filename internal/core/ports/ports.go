// Package ports holds the interfaces the app layer depends on, so the
// CLI and tests can swap implementations.
package ports

import (
	"bemlint/internal/data/history"
	"bemlint/internal/engine/lint"
)

// FileLinter lints one stylesheet from disk.
type FileLinter interface {
	LintFile(path string) lint.FileResult
}

// HistoryStore abstracts run persistence for trend reporting.
type HistoryStore interface {
	SaveRun(run history.Run) (history.Run, error)
	LoadRuns(limit int) ([]history.Run, error)
	Close() error
}
