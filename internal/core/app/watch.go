package app

import (
	"bemlint/internal/core/watcher"
	"bemlint/internal/shared/observability"
	"bemlint/internal/shared/util"
	"context"
	"log/slog"
	"path/filepath"
)

// Watch lints args once, then re-lints on every debounced batch of
// stylesheet changes until ctx is done. Each run is passed to onReport.
// Re-lints always cover the full argument set so the aggregator and
// ignore rules see a consistent view.
func (a *App) Watch(ctx context.Context, args []string, all bool, onReport func(Report)) error {
	relint := func() {
		report, err := a.Lint(ctx, args, all)
		if err != nil {
			if ctx.Err() == nil {
				slog.Error("lint run failed", "error", err)
			}
			return
		}
		onReport(report)
	}

	relint()

	limiter := util.NewLimiter(a.Config.Watch.MaxRelintsPerSecond, 1)
	changes := make(chan []string, 1)
	w, err := watcher.NewWatcher(a.Config.Watch.Debounce, a.Config.Exclude.Dirs, a.Config.Exclude.Files, func(paths []string) {
		select {
		case changes <- paths:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()
	w.SetExtensions(a.Config.Lint.Extensions)

	roots := watchRoots(args)
	if err := w.Watch(roots); err != nil {
		return err
	}
	slog.Info("watching for stylesheet changes", "roots", len(roots))

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-changes:
			slog.Debug("stylesheets changed", "paths", paths)
			if !limiter.Allow(1) {
				observability.RelintsThrottledTotal.Inc()
				if err := limiter.Wait(ctx, 1); err != nil {
					return nil
				}
			}
			relint()
		}
	}
}

// watchRoots maps each argument to something fsnotify can watch. Globs
// are watched at their static prefix directory.
func watchRoots(args []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, arg := range args {
		root := arg
		if isPattern(arg) {
			root = staticPrefix(arg)
		}
		root = filepath.Clean(root)
		if seen[root] {
			continue
		}
		seen[root] = true
		roots = append(roots, root)
	}
	return roots
}

func staticPrefix(pattern string) string {
	dir := filepath.Dir(pattern)
	for isPattern(dir) {
		dir = filepath.Dir(dir)
	}
	return dir
}
