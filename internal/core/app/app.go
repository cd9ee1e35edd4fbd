// Package app wires configuration, file resolution, linting, history and
// watching into the operations the CLI exposes.
package app

import (
	"bemlint/internal/core/config"
	"bemlint/internal/core/ignore"
	"bemlint/internal/core/ports"
	"bemlint/internal/data/history"
	"bemlint/internal/engine/lint"
	"bemlint/internal/engine/parser"
	"bemlint/internal/shared/util"
	"context"
	"fmt"
	"log/slog"
)

type App struct {
	Config   *config.Config
	Resolver *Resolver
	Runner   *Runner
	History  ports.HistoryStore
}

// Options tweak construction for callers that already hold a store or
// want history regardless of config.
type Options struct {
	EnableHistory bool
	History       ports.HistoryStore
}

func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	resolver, err := NewResolver(cfg.Lint.Extensions, cfg.Exclude.Dirs, cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	ignored, err := ignore.Load(cfg.Lint.IgnoreFile)
	if err != nil {
		return nil, err
	}
	if ignored.Len() > 0 {
		slog.Debug("loaded ignore file", "path", cfg.Lint.IgnoreFile, "entries", ignored.Len())
	}

	linter := lint.New(parser.New(), lint.Options{
		Aggregator:      cfg.Lint.Aggregator,
		SuppressKeyword: cfg.Lint.SuppressKeyword,
	})

	a := &App{
		Config:   cfg,
		Resolver: resolver,
		Runner:   NewRunner(linter, ignored, cfg.Workers()),
		History:  opts.History,
	}

	if a.History == nil && (opts.EnableHistory || cfg.History.Enabled) {
		a.History = openHistory(cfg.History.Path)
	}
	return a, nil
}

// openHistory returns nil when the store cannot be opened; linting goes on
// without trends.
func openHistory(path string) ports.HistoryStore {
	store, err := history.Open(path)
	if err == nil {
		return store
	}
	if history.IsCorruptError(err) {
		slog.Warn("history database is corrupt, delete it to start a fresh history", "path", path, "error", err)
	} else {
		slog.Warn("history disabled", "path", path, "error", err)
	}
	return nil
}

// Lint resolves args and lints the result once.
func (a *App) Lint(ctx context.Context, args []string, all bool) (Report, error) {
	files, err := a.Resolver.Resolve(args)
	if err != nil {
		return Report{}, err
	}
	return a.lintFiles(ctx, files, all)
}

func (a *App) lintFiles(ctx context.Context, files []string, all bool) (Report, error) {
	report, err := a.Runner.Run(ctx, files, all)
	if err != nil {
		return report, err
	}
	a.record(&report)
	slog.Debug("lint run finished",
		"files", len(report.Files),
		"diagnostics", report.DiagnosticCount(),
		"duration", report.Duration,
		"heap_mb", util.HeapAllocMB(),
	)
	return report, nil
}

// record stores the run and attaches the trend. History problems are
// logged and never change the lint outcome.
func (a *App) record(report *Report) {
	if a.History == nil {
		return
	}
	if _, err := a.History.SaveRun(report.historyRun()); err != nil {
		slog.Warn("failed to save run history", "error", err)
		return
	}
	runs, err := a.History.LoadRuns(2)
	if err != nil {
		slog.Warn("failed to load run history", "error", err)
		return
	}
	trend, err := history.BuildTrend(runs)
	if err != nil {
		slog.Warn("failed to build trend", "error", err)
		return
	}
	report.Trend = &trend
}

func (a *App) Close() error {
	if a == nil || a.History == nil {
		return nil
	}
	return a.History.Close()
}
