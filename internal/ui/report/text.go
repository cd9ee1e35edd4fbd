package report

import (
	"bemlint/internal/core/app"
	"bemlint/internal/engine/lint"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// TextPrinter renders a report for humans. Offending names are highlighted
// in the message text when color is enabled.
type TextPrinter struct {
	w       io.Writer
	verbose bool

	headerStyle  lipgloss.Style
	subjectStyle lipgloss.Style
	failureStyle lipgloss.Style
	successStyle lipgloss.Style
	statusStyle  lipgloss.Style
}

func NewTextPrinter(w io.Writer, color, verbose bool) *TextPrinter {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &TextPrinter{
		w:       w,
		verbose: verbose,
		headerStyle: r.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Underline(true),
		subjectStyle: r.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true),
		failureStyle: r.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")),
		successStyle: r.NewStyle().
			Foreground(lipgloss.Color("#10B981")),
		statusStyle: r.NewStyle().
			Foreground(lipgloss.Color("#64748B")),
	}
}

func (p *TextPrinter) Print(rep app.Report) error {
	var b strings.Builder

	if p.verbose {
		for _, path := range rep.Ignored {
			b.WriteString(p.statusStyle.Render("skipped "+path+" (ignore file)") + "\n")
		}
	}

	if rep.All && rep.DiagnosticCount() > 0 {
		b.WriteString(p.headerStyle.Render(fmt.Sprintf("found %d errors in %d files:",
			rep.DiagnosticCount(), rep.FailedFiles())))
		b.WriteString("\n\n")
	}

	for _, f := range rep.Files {
		switch {
		case f.Err != nil:
		case len(f.Diagnostics) > 0:
			p.writeFile(&b, f)
		case p.verbose && !rep.All:
			b.WriteString("no errors in file " + p.successStyle.Render(f.Path) + "\n")
		}
	}

	if failed := rep.Errors(); len(failed) > 0 {
		b.WriteString(p.failureStyle.Render(fmt.Sprintf("could not analyze %d files:", len(failed))) + "\n")
		for _, f := range failed {
			b.WriteString(fmt.Sprintf("  %s: %v\n", f.Path, f.Err))
		}
		b.WriteString("\n")
	}

	if p.verbose {
		if rep.ExitCode() == app.ExitClean {
			b.WriteString(p.successStyle.Render(fmt.Sprintf("checked %d files and found no errors", len(rep.Files))))
		} else {
			b.WriteString(p.statusStyle.Render(fmt.Sprintf("checked %d files in %s",
				len(rep.Files), rep.Duration.Round(1e6))))
		}
		b.WriteString("\n")
	}

	if rep.Trend != nil {
		b.WriteString(p.statusStyle.Render(RenderTrendLine(*rep.Trend)) + "\n")
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *TextPrinter) writeFile(b *strings.Builder, f lint.FileResult) {
	b.WriteString(p.headerStyle.Render(fmt.Sprintf("%d errors in file %s:", len(f.Diagnostics), f.Path)))
	b.WriteString("\n\n")
	for _, d := range f.Diagnostics {
		b.WriteString(fmt.Sprintf("🔴 on line %d: [%s %s]\n", d.Line, d.RuleID, d.RuleName))
		b.WriteString("    " + p.highlight(d) + "\n\n")
	}
}

func (p *TextPrinter) highlight(d lint.Diagnostic) string {
	if d.Subject == "" {
		return d.Message
	}
	return strings.Replace(d.Message, d.Subject, p.subjectStyle.Render(d.Subject), 1)
}
