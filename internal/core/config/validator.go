package config

import (
	"bemlint/internal/core/errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Validate checks every section and returns the first problem found as a
// CodeValidationError.
func Validate(cfg *Config) error {
	checks := []func(*Config) error{
		validateLint,
		validateExclude,
		validateRun,
		validateOutput,
		validateWatch,
		validateHistory,
	}
	for _, check := range checks {
		if err := check(cfg); err != nil {
			return errors.Wrap(err, errors.CodeValidationError, "invalid config")
		}
	}
	return nil
}

func validateLint(cfg *Config) error {
	if cfg.Lint.Aggregator == "" {
		return fmt.Errorf("lint.aggregator must not be empty")
	}
	if strings.ContainsAny(cfg.Lint.Aggregator, `/\`) {
		return fmt.Errorf("lint.aggregator must be a base name without directories, got %q", cfg.Lint.Aggregator)
	}
	if cfg.Lint.SuppressKeyword == "" {
		return fmt.Errorf("lint.suppress_keyword must not be empty")
	}
	if len(cfg.Lint.Extensions) == 0 {
		return fmt.Errorf("lint.extensions must list at least one extension")
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for _, group := range []struct {
		key      string
		patterns []string
	}{
		{"exclude.dirs", cfg.Exclude.Dirs},
		{"exclude.files", cfg.Exclude.Files},
	} {
		for _, pattern := range group.patterns {
			if _, err := glob.Compile(pattern, '/'); err != nil {
				return fmt.Errorf("%s: invalid pattern %q: %w", group.key, pattern, err)
			}
		}
	}
	return nil
}

func validateRun(cfg *Config) error {
	if cfg.Run.Workers < 0 {
		return fmt.Errorf("run.workers must be >= 0, got %d", cfg.Run.Workers)
	}
	return nil
}

func validateOutput(cfg *Config) error {
	switch cfg.Output.Format {
	case FormatText, FormatJSON, FormatSARIF:
		return nil
	default:
		return fmt.Errorf("output.format must be one of: text, json, sarif; got %q", cfg.Output.Format)
	}
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if cfg.Watch.MaxRelintsPerSecond < 0 {
		return fmt.Errorf("watch.max_relints_per_second must not be negative")
	}
	return nil
}

func validateHistory(cfg *Config) error {
	if cfg.History.Enabled && strings.TrimSpace(cfg.History.Path) == "" {
		return fmt.Errorf("history.path must not be empty when history is enabled")
	}
	return nil
}
