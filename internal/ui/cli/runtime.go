package cli

import (
	coreapp "bemlint/internal/core/app"
	"bemlint/internal/core/config"
	"bemlint/internal/shared/observability"
	"bemlint/internal/ui/report"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
)

func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr, coreAppFactory{})
}

func run(args []string, stdout, stderr io.Writer, factory appFactory) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return coreapp.ExitClean
		}
		fmt.Fprintln(stderr, err.Error())
		return coreapp.ExitFailure
	}

	if opts.version {
		fmt.Fprintf(stdout, "bemlint v%s\n", versionString)
		return coreapp.ExitClean
	}

	cleanupLogs := configureLogging(opts.watch, opts.verbose, stderr)
	defer cleanupLogs()

	cfg, err := loadConfig(opts)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return coreapp.ExitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint, versionString)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(shutdownCtx); err != nil {
				slog.Warn("failed to flush traces", "error", err)
			}
		}()
	}

	svc, err := initializeApp(cfg, opts.history, factory)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return coreapp.ExitFailure
	}
	defer func() {
		if err := svc.Close(); err != nil {
			slog.Warn("failed to close app", "error", err)
		}
	}()

	renderOpts := report.Options{
		Format:      cfg.Output.Format,
		Color:       cfg.ColorEnabled() && isTerminal(stdout),
		Verbose:     opts.verbose,
		ProjectRoot: projectRoot(),
		Version:     versionString,
	}

	if opts.watch {
		return runWatch(ctx, svc, cfg, opts, stdout, renderOpts)
	}

	rep, err := svc.Lint(ctx, opts.args, opts.all)
	if err != nil {
		slog.Error("lint failed", "error", err)
		return coreapp.ExitFailure
	}
	if err := emit(stdout, cfg, rep, renderOpts); err != nil {
		slog.Error("failed to write report", "error", err)
		return coreapp.ExitFailure
	}
	return rep.ExitCode()
}

func runWatch(ctx context.Context, svc lintService, cfg *config.Config, opts cliOptions, stdout io.Writer, renderOpts report.Options) int {
	status := &runStatus{}
	if addr := strings.TrimSpace(cfg.Observability.MetricsAddr); addr != "" {
		server := NewObservabilityServer(addr, status)
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return coreapp.ExitFailure
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(stopCtx)
		}()
	}

	lastCode := coreapp.ExitClean
	err := svc.Watch(ctx, opts.args, opts.all, func(rep coreapp.Report) {
		status.record(rep)
		lastCode = rep.ExitCode()
		if err := emit(stdout, cfg, rep, renderOpts); err != nil {
			slog.Error("failed to write report", "error", err)
		}
	})
	if err != nil {
		slog.Error("watch failed", "error", err)
		return coreapp.ExitFailure
	}
	return lastCode
}

// emit writes the report to output.path when configured, stdout otherwise.
func emit(stdout io.Writer, cfg *config.Config, rep coreapp.Report, opts report.Options) error {
	if path := strings.TrimSpace(cfg.Output.Path); path != "" {
		return report.WriteFile(path, rep, opts)
	}
	return report.Render(stdout, rep, opts)
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig(opts cliOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultPath)
	}
	if err != nil {
		return nil, err
	}

	if opts.format != "" {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(opts.format))
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}
	if opts.history {
		cfg.History.Enabled = true
	}
	return cfg, nil
}

// isTerminal reports whether w is a terminal; reports piped into files or
// other tools stay plain.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func projectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return cwd
}

// configureLogging routes logs to stderr, or to a state-dir file in watch
// mode so they do not interleave with reports.
func configureLogging(watchMode, verbose bool, stderr io.Writer) func() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	output := stderr
	var closeFn func() = func() {}
	if watchMode {
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
				if err == nil {
					output = f
					closeFn = func() { _ = f.Close() }
				} else {
					fmt.Fprintf(stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return closeFn
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "bemlint", "bemlint.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "bemlint", "bemlint.log")
	}

	return "bemlint.log"
}
