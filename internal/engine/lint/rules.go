package lint

import (
	"bemlint/internal/engine/ast"
	"fmt"
	"strings"
)

// Mode selects which rules apply to a file. It is decided once per file.
type Mode int

const (
	// ModeComponent applies to every ordinary component stylesheet.
	ModeComponent Mode = iota
	// ModeAggregator applies only to the aggregator file.
	ModeAggregator
)

func (m Mode) String() string {
	if m == ModeAggregator {
		return "aggregator"
	}
	return "component"
}

// Rule is one independent check. Check must be total: it reports a finding
// with ok == true, or returns ok == false.
type Rule interface {
	ID() string
	Name() string
	Description() string
	Mode() Mode
	Check(fc *FileContext, n ast.Node, tc TraversalContext) (d Diagnostic, ok bool)
}

// Rules returns the fixed rule set in evaluation order.
func Rules() []Rule {
	return []Rule{
		noIDSelector{},
		noDoubleNesting{},
		classMatchesComponent{},
		animationMatchesComponent{},
		restrictedTypeSelector{},
		importOnlyInAggregator{},
		aggregatorOnlyImports{},
	}
}

// RulesFor returns the subset of rules active in mode, keeping order.
func RulesFor(mode Mode) []Rule {
	var out []Rule
	for _, r := range Rules() {
		if r.Mode() == mode {
			out = append(out, r)
		}
	}
	return out
}

func finding(n ast.Node, subject, format string, args ...any) Diagnostic {
	p := n.Position()
	return Diagnostic{
		Line:    p.Line,
		Column:  p.Column,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}

type noIDSelector struct{}

func (noIDSelector) ID() string          { return "BEM001" }
func (noIDSelector) Name() string        { return "no-id-selector" }
func (noIDSelector) Mode() Mode          { return ModeComponent }
func (noIDSelector) Description() string { return "Id selectors are not allowed." }

func (noIDSelector) Check(_ *FileContext, n ast.Node, _ TraversalContext) (Diagnostic, bool) {
	id, ok := n.(*ast.IDSelector)
	if !ok {
		return Diagnostic{}, false
	}
	subject := "#" + id.Name
	return finding(n, subject,
		"There is an id selector %s. Id selectors are not allowed, use a class instead.", subject), true
}

type noDoubleNesting struct{}

func (noDoubleNesting) ID() string   { return "BEM002" }
func (noDoubleNesting) Name() string { return "no-double-nesting" }
func (noDoubleNesting) Mode() Mode   { return ModeComponent }
func (noDoubleNesting) Description() string {
	return "Elements must not be nested: .block__one__two is ill-formed."
}

func (noDoubleNesting) Check(_ *FileContext, n ast.Node, _ TraversalContext) (Diagnostic, bool) {
	cls, ok := n.(*ast.ClassSelector)
	if !ok || strings.Count(cls.Name, ElementSeparator) < 2 {
		return Diagnostic{}, false
	}
	subject := "." + cls.Name
	return finding(n, subject, "The class name %s is nested more than once.", subject), true
}

type classMatchesComponent struct{}

func (classMatchesComponent) ID() string   { return "BEM003" }
func (classMatchesComponent) Name() string { return "class-matches-component" }
func (classMatchesComponent) Mode() Mode   { return ModeComponent }
func (classMatchesComponent) Description() string {
	return "Class names start with the component name derived from the file name."
}

func (classMatchesComponent) Check(fc *FileContext, n ast.Node, _ TraversalContext) (Diagnostic, bool) {
	cls, ok := n.(*ast.ClassSelector)
	if !ok {
		return Diagnostic{}, false
	}
	c := fc.ComponentName
	if cls.Name == c ||
		strings.HasPrefix(cls.Name, c+ModifierSeparator) ||
		strings.HasPrefix(cls.Name, c+ElementSeparator) {
		return Diagnostic{}, false
	}
	subject := "." + cls.Name
	return finding(n, subject,
		"The class name %s does not start with the component name. The name of the file is %s. "+
			"Class names which differ from %s should start with %s or %s.",
		subject, fc.FileName, c, c+ModifierSeparator, c+ElementSeparator), true
}

type animationMatchesComponent struct{}

func (animationMatchesComponent) ID() string   { return "BEM004" }
func (animationMatchesComponent) Name() string { return "animation-matches-component" }
func (animationMatchesComponent) Mode() Mode   { return ModeComponent }
func (animationMatchesComponent) Description() string {
	return "Animation names start with the component name followed by __."
}

func (animationMatchesComponent) Check(fc *FileContext, n ast.Node, _ TraversalContext) (Diagnostic, bool) {
	at, ok := n.(*ast.AtRule)
	if !ok || at.Name != "keyframes" || len(at.Prelude) == 0 {
		return Diagnostic{}, false
	}
	name := ast.Name(at.Prelude[0])
	prefix := fc.ComponentName + ElementSeparator
	if strings.HasPrefix(name, prefix) {
		return Diagnostic{}, false
	}
	return finding(n, name,
		"The animation name %s does not start with the component name. The name of the file is %s. "+
			"Animation names should start with %s.",
		name, fc.FileName, prefix), true
}

type restrictedTypeSelector struct{}

func (restrictedTypeSelector) ID() string   { return "BEM005" }
func (restrictedTypeSelector) Name() string { return "restricted-type-selector" }
func (restrictedTypeSelector) Mode() Mode   { return ModeComponent }
func (restrictedTypeSelector) Description() string {
	return "Type selectors only appear on the right hand side of a child combinator."
}

func (restrictedTypeSelector) Check(_ *FileContext, n ast.Node, tc TraversalContext) (Diagnostic, bool) {
	ts, ok := n.(*ast.TypeSelector)
	if !ok {
		return Diagnostic{}, false
	}
	if _, inside := tc.EnclosingAtRule(); inside {
		return Diagnostic{}, false
	}
	if comb, ok := tc.Prev.(*ast.Combinator); ok && comb.Name == ">" {
		return Diagnostic{}, false
	}
	return finding(n, ts.Name,
		"I see the type selector %s. Type selectors are only allowed if they appear on the right hand side "+
			"of a child combinator, like ... > %s.",
		ts.Name, ts.Name), true
}

type importOnlyInAggregator struct{}

func (importOnlyInAggregator) ID() string   { return "BEM006" }
func (importOnlyInAggregator) Name() string { return "import-only-in-aggregator" }
func (importOnlyInAggregator) Mode() Mode   { return ModeComponent }
func (importOnlyInAggregator) Description() string {
	return "@import rules belong in the aggregator file only."
}

func (importOnlyInAggregator) Check(fc *FileContext, n ast.Node, _ TraversalContext) (Diagnostic, bool) {
	at, ok := n.(*ast.AtRule)
	if !ok || at.Name != "import" {
		return Diagnostic{}, false
	}
	return finding(n, "@import",
		"@import is only allowed in the %s file. Keeping every import there gives a single source of truth "+
			"for what is loaded and makes the load order obvious.",
		fc.AggregatorName), true
}

type aggregatorOnlyImports struct{}

func (aggregatorOnlyImports) ID() string   { return "BEM007" }
func (aggregatorOnlyImports) Name() string { return "aggregator-only-imports" }
func (aggregatorOnlyImports) Mode() Mode   { return ModeAggregator }
func (aggregatorOnlyImports) Description() string {
	return "The aggregator file contains only @import rules and comments."
}

func (aggregatorOnlyImports) Check(fc *FileContext, n ast.Node, tc TraversalContext) (Diagnostic, bool) {
	if !tc.TopLevel() {
		return Diagnostic{}, false
	}
	if at, ok := n.(*ast.AtRule); ok && at.Name == "import" {
		return Diagnostic{}, false
	}
	subject := describe(n)
	return finding(n, subject,
		"The %s file may only contain @import rules and comments, found %s.",
		fc.AggregatorName, subject), true
}

func describe(n ast.Node) string {
	switch v := n.(type) {
	case *ast.AtRule:
		return "@" + v.Name
	case *ast.Declaration:
		return "declaration " + v.Property
	default:
		return "a " + n.Kind().String()
	}
}
