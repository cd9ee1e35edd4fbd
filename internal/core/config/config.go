package config

import (
	"runtime"
	"time"
)

// DefaultPath is where the CLI looks for a config file when --config is
// not given. A missing file at this path means defaults.
const DefaultPath = "./bemlint.toml"

type Config struct {
	Lint          Lint          `toml:"lint"`
	Exclude       Exclude       `toml:"exclude"`
	Run           Run           `toml:"run"`
	Output        Output        `toml:"output"`
	Watch         Watch         `toml:"watch"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Lint struct {
	Aggregator      string   `toml:"aggregator"`
	SuppressKeyword string   `toml:"suppress_keyword"`
	IgnoreFile      string   `toml:"ignore_file"`
	Extensions      []string `toml:"extensions"`
}

// Exclude holds gobwas/glob patterns. Patterns without a path separator
// match the base name; others match the slash-normalized path.
type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Run struct {
	Workers int `toml:"workers"`
}

type Output struct {
	Format string `toml:"format"`
	Color  *bool  `toml:"color"`
	// Path, when set, also writes the rendered report to this file.
	Path string `toml:"path"`
}

type Watch struct {
	Debounce            time.Duration `toml:"debounce"`
	MaxRelintsPerSecond float64       `toml:"max_relints_per_second"`
}

type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// DefaultConfig returns a fully populated config.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// ColorEnabled reports whether text output should be styled.
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// Workers returns the effective worker count for --all runs.
func (c *Config) Workers() int {
	if c.Run.Workers > 0 {
		return c.Run.Workers
	}
	return runtime.NumCPU()
}
