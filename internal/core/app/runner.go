package app

import (
	"bemlint/internal/core/ignore"
	"bemlint/internal/core/ports"
	"bemlint/internal/engine/lint"
	"bemlint/internal/shared/observability"
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Runner lints resolved files. With all set it fans out over a bounded
// worker pool; otherwise it goes file by file and stops at the first
// file that fails.
type Runner struct {
	linter  ports.FileLinter
	ignore  *ignore.List
	workers int
}

func NewRunner(linter ports.FileLinter, ignored *ignore.List, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{linter: linter, ignore: ignored, workers: workers}
}

func (r *Runner) Run(ctx context.Context, files []string, all bool) (Report, error) {
	ctx, span := observability.Tracer.Start(ctx, "runner.Run", trace.WithAttributes(
		attribute.Int("files", len(files)),
		attribute.Bool("all", all),
	))
	defer span.End()

	start := time.Now()
	report := Report{All: all}

	targets := make([]string, 0, len(files))
	for _, f := range files {
		if r.ignore.Match(f) {
			slog.Debug("skipping ignored file", "path", f)
			report.Ignored = append(report.Ignored, f)
			continue
		}
		targets = append(targets, f)
	}

	var err error
	if all {
		report.Files, err = r.runAll(ctx, targets)
	} else {
		report.Files, err = r.runUntilFailure(ctx, targets)
	}

	report.Duration = time.Since(start)
	observability.LintDuration.Observe(report.Duration.Seconds())
	span.SetAttributes(attribute.Int("diagnostics", report.DiagnosticCount()))
	return report, err
}

func (r *Runner) runAll(ctx context.Context, files []string) ([]lint.FileResult, error) {
	results := make([]lint.FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.lintOne(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runUntilFailure(ctx context.Context, files []string) ([]lint.FileResult, error) {
	results := make([]lint.FileResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := r.lintOne(ctx, path)
		results = append(results, res)
		if res.Failed() {
			break
		}
	}
	return results, nil
}

func (r *Runner) lintOne(ctx context.Context, path string) lint.FileResult {
	_, span := observability.Tracer.Start(ctx, "runner.lintFile", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	res := r.linter.LintFile(path)
	switch {
	case res.Err != nil:
		code := ErrorCode(res.Err)
		observability.FilesLinted.WithLabelValues(observability.OutcomeError).Inc()
		observability.AnalysisFailures.WithLabelValues(code).Inc()
		span.RecordError(res.Err)
		slog.Debug("could not analyze file", "path", path, "error", res.Err)
	case len(res.Diagnostics) > 0:
		observability.FilesLinted.WithLabelValues(observability.OutcomeFailed).Inc()
		for _, d := range res.Diagnostics {
			observability.DiagnosticsTotal.WithLabelValues(d.RuleID).Inc()
		}
		slog.Debug("linted file", "path", path, "diagnostics", len(res.Diagnostics))
	default:
		observability.FilesLinted.WithLabelValues(observability.OutcomeClean).Inc()
		slog.Debug("linted file", "path", path, "diagnostics", 0)
	}
	return res
}
