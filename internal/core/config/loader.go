package config

import (
	"bemlint/internal/core/errors"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads, defaults and validates the TOML config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "config file not found"), errors.CtxPath, path)
		}
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeReadFailed, "read config"), errors.CtxPath, path)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "decode config"), errors.CtxPath, path)
	}

	if err := finish(&cfg); err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return &cfg, nil
}

func finish(cfg *Config) error {
	applyDefaults(cfg)
	ApplyEnvOverrides(cfg)
	normalize(cfg)
	return Validate(cfg)
}

// LoadOrDefault behaves like Load, except that a missing file at
// DefaultPath yields DefaultConfig. An explicitly named file must exist.
func LoadOrDefault(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	cfg, err := Load(path)
	if err != nil && path == DefaultPath && errors.IsCode(err, errors.CodeNotFound) {
		cfg = &Config{}
		if err := finish(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cfg, err
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Lint.Aggregator) == "" {
		cfg.Lint.Aggregator = "main"
	}
	if strings.TrimSpace(cfg.Lint.SuppressKeyword) == "" {
		cfg.Lint.SuppressKeyword = "bemlint-ignore"
	}
	if strings.TrimSpace(cfg.Lint.IgnoreFile) == "" {
		cfg.Lint.IgnoreFile = ".csslintignore"
	}
	if len(cfg.Lint.Extensions) == 0 {
		cfg.Lint.Extensions = []string{".css"}
	}

	if cfg.Exclude.Dirs == nil {
		cfg.Exclude.Dirs = []string{".git", "node_modules"}
	}

	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = FormatText
	}
	if cfg.Output.Color == nil {
		enabled := true
		cfg.Output.Color = &enabled
	}

	// Default debounce if not set.
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Watch.MaxRelintsPerSecond == 0 {
		cfg.Watch.MaxRelintsPerSecond = 5
	}

	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = ".bemlint/history.db"
	}
}

func normalize(cfg *Config) {
	cfg.Lint.Aggregator = strings.TrimSpace(cfg.Lint.Aggregator)
	cfg.Lint.SuppressKeyword = strings.TrimSpace(cfg.Lint.SuppressKeyword)
	cfg.Lint.IgnoreFile = strings.TrimSpace(cfg.Lint.IgnoreFile)
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Output.Path = strings.TrimSpace(cfg.Output.Path)

	exts := make([]string, 0, len(cfg.Lint.Extensions))
	for _, ext := range cfg.Lint.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	cfg.Lint.Extensions = exts
}
