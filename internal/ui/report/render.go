package report

import (
	"bemlint/internal/core/app"
	"bemlint/internal/core/config"
	"bemlint/internal/shared/util"
	"bytes"
	"fmt"
	"io"
)

type Options struct {
	Format  string
	Color   bool
	Verbose bool
	// ProjectRoot anchors SARIF URIs.
	ProjectRoot string
	Version     string
}

// Render writes rep to w in the requested format.
func Render(w io.Writer, rep app.Report, opts Options) error {
	switch opts.Format {
	case "", config.FormatText:
		return NewTextPrinter(w, opts.Color, opts.Verbose).Print(rep)
	case config.FormatJSON:
		data, err := formatsJSON(rep)
		if err != nil {
			return err
		}
		return writeLine(w, data)
	case config.FormatSARIF:
		data, err := formatsSARIF(rep, opts)
		if err != nil {
			return err
		}
		return writeLine(w, data)
	default:
		return fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

// WriteFile renders rep into path, creating parent directories. Text output
// written to a file is never colored.
func WriteFile(path string, rep app.Report, opts Options) error {
	var buf bytes.Buffer
	opts.Color = false
	if err := Render(&buf, rep, opts); err != nil {
		return err
	}
	if err := util.WriteFileWithDirs(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func writeLine(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
