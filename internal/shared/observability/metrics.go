package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bemlint_parsing_seconds",
		Help:    "Time spent parsing a stylesheet.",
		Buckets: prometheus.DefBuckets,
	})

	ParsersInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bemlint_parsers_in_use",
		Help: "Number of pooled tree-sitter parsers currently leased.",
	})

	LintDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bemlint_lint_run_seconds",
		Help:    "Time spent on one lint run over all resolved files.",
		Buckets: prometheus.DefBuckets,
	})

	FilesLinted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bemlint_files_linted_total",
		Help: "Total number of stylesheets linted, by outcome.",
	}, []string{"outcome"})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bemlint_diagnostics_total",
		Help: "Total number of diagnostics reported, by rule id.",
	}, []string{"rule"})

	AnalysisFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bemlint_analysis_failures_total",
		Help: "Total number of files that could not be analyzed, by error code.",
	}, []string{"code"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bemlint_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RelintsThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bemlint_relints_throttled_total",
		Help: "Total number of watch re-lints delayed by the rate limiter.",
	})
)

// Outcome labels for FilesLinted.
const (
	OutcomeClean  = "clean"
	OutcomeFailed = "diagnostics"
	OutcomeError  = "error"
)
