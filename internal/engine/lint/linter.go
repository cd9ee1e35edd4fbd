package lint

import (
	"bemlint/internal/core/errors"
	"bemlint/internal/engine/ast"
	"os"
)

// DefaultAggregator is the base name of the only file allowed to import.
const DefaultAggregator = "main"

// StylesheetParser is the parsing capability the linter consumes.
type StylesheetParser interface {
	Parse(source []byte) (*ast.Stylesheet, error)
}

// FileContext is the per-file metadata every rule sees. It is computed
// once before the walk.
type FileContext struct {
	Path           string
	FileName       string
	ComponentName  string
	AggregatorName string
	Mode           Mode
	Suppressed     SuppressedLines
}

type Options struct {
	Aggregator      string
	SuppressKeyword string
}

type Linter struct {
	parser StylesheetParser
	opts   Options
	rules  map[Mode][]Rule
}

func New(p StylesheetParser, opts Options) *Linter {
	if opts.Aggregator == "" {
		opts.Aggregator = DefaultAggregator
	}
	if opts.SuppressKeyword == "" {
		opts.SuppressKeyword = DefaultSuppressKeyword
	}
	return &Linter{
		parser: p,
		opts:   opts,
		rules: map[Mode][]Rule{
			ModeComponent:  RulesFor(ModeComponent),
			ModeAggregator: RulesFor(ModeAggregator),
		},
	}
}

// NewFileContext derives the file-level metadata for path and source.
func (l *Linter) NewFileContext(path string, source []byte) *FileContext {
	name := FileName(path)
	mode := ModeComponent
	if name == l.opts.Aggregator {
		mode = ModeAggregator
	}
	return &FileContext{
		Path:           path,
		FileName:       name,
		ComponentName:  ComponentName(name),
		AggregatorName: l.opts.Aggregator,
		Mode:           mode,
		Suppressed:     SuppressedLinesFor(string(source), l.opts.SuppressKeyword),
	}
}

// LintSource lints already-read source. path only names the file; it is
// never opened.
func (l *Linter) LintSource(path string, source []byte) ([]Diagnostic, error) {
	fc := l.NewFileContext(path, source)
	sheet, err := l.parser.Parse(source)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return Check(fc, sheet, l.rules[fc.Mode]), nil
}

// LintFile reads and lints path. Read and parse failures end up in Err.
func (l *Linter) LintFile(path string) FileResult {
	source, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeReadFailed
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		wrapped := errors.Wrap(err, code, "read stylesheet")
		return FileResult{Path: path, Err: errors.AddContext(wrapped, errors.CtxPath, path)}
	}
	diags, err := l.LintSource(path, source)
	return FileResult{Path: path, Diagnostics: diags, Err: err}
}

// Check walks root once and evaluates rules at every node whose line is
// not suppressed. Diagnostics come out in traversal order, and in rule
// order for findings on the same node.
func Check(fc *FileContext, root ast.Node, rules []Rule) []Diagnostic {
	var out []Diagnostic
	Walk(root, func(n ast.Node, tc TraversalContext) {
		if fc.Suppressed.Has(n.Position().Line) {
			return
		}
		for _, r := range rules {
			d, ok := r.Check(fc, n, tc)
			if !ok {
				continue
			}
			d.File = fc.Path
			d.RuleID = r.ID()
			d.RuleName = r.Name()
			out = append(out, d)
		}
	})
	return out
}
