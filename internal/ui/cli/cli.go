package cli

import (
	"flag"
	"fmt"
	"io"
)

const versionString = "1.0.0"

const usageText = `Usage: bemlint [flags] <path|glob>...

Lints CSS files against the component naming convention. Directories are
walked recursively and globs support ** patterns.

Flags:
`

type cliOptions struct {
	configPath string
	all        bool
	verbose    bool
	format     string
	watch      bool
	history    bool
	version    bool
	args       []string
}

func parseOptions(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("bemlint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "Path to config file (default ./bemlint.toml when present)")
	fs.BoolVar(&opts.all, "all", false, "Don't exit on error until all files are checked")
	fs.BoolVar(&opts.verbose, "verbose", false, "Run with verbose logging")
	fs.StringVar(&opts.format, "format", "", "Output format: text, json or sarif (overrides output.format)")
	fs.BoolVar(&opts.watch, "watch", false, "Re-lint whenever a stylesheet changes")
	fs.BoolVar(&opts.history, "history", false, "Record runs and report the trend against the previous run")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	if !opts.version && len(opts.args) == 0 {
		fs.Usage()
		return cliOptions{}, fmt.Errorf("at least one path or glob is required")
	}
	return opts, nil
}
