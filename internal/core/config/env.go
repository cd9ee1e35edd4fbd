package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: BEMLINT_[SECTION]_[KEY] (e.g., BEMLINT_OUTPUT_FORMAT).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Lint.Aggregator, "BEMLINT_LINT_AGGREGATOR")
	setEnvString(&cfg.Lint.SuppressKeyword, "BEMLINT_LINT_SUPPRESS_KEYWORD")
	setEnvString(&cfg.Lint.IgnoreFile, "BEMLINT_LINT_IGNORE_FILE")

	setEnvInt(&cfg.Run.Workers, "BEMLINT_RUN_WORKERS")

	setEnvString(&cfg.Output.Format, "BEMLINT_OUTPUT_FORMAT")
	if val, ok := os.LookupEnv("NO_COLOR"); ok && val != "" {
		disabled := false
		cfg.Output.Color = &disabled
	}

	setEnvDuration(&cfg.Watch.Debounce, "BEMLINT_WATCH_DEBOUNCE")
	setEnvFloat64(&cfg.Watch.MaxRelintsPerSecond, "BEMLINT_WATCH_MAX_RELINTS_PER_SECOND")

	setEnvBool(&cfg.History.Enabled, "BEMLINT_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "BEMLINT_HISTORY_PATH")

	setEnvString(&cfg.Observability.MetricsAddr, "BEMLINT_OBSERVABILITY_METRICS_ADDR")
	setEnvString(&cfg.Observability.OTLPEndpoint, "BEMLINT_OBSERVABILITY_OTLP_ENDPOINT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = strings.TrimSpace(val)
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
