// Package ast is the closed node model the linter walks. The parser
// converts the tree-sitter concrete tree into these nodes so rules never
// see grammar-specific node kinds.
package ast

// Kind identifies a node variant.
type Kind int

const (
	KindStylesheet Kind = iota
	KindRule
	KindSelectorList
	KindSelector
	KindTypeSelector
	KindClassSelector
	KindIDSelector
	KindCombinator
	KindPseudoSelector
	KindAttributeSelector
	KindNestingSelector
	KindAtRule
	KindIdentifier
	KindString
	KindDeclaration
	KindRaw
)

var kindNames = [...]string{
	KindStylesheet:        "stylesheet",
	KindRule:              "rule",
	KindSelectorList:      "selector list",
	KindSelector:          "selector",
	KindTypeSelector:      "type selector",
	KindClassSelector:     "class selector",
	KindIDSelector:        "id selector",
	KindCombinator:        "combinator",
	KindPseudoSelector:    "pseudo selector",
	KindAttributeSelector: "attribute selector",
	KindNestingSelector:   "nesting selector",
	KindAtRule:            "at-rule",
	KindIdentifier:        "identifier",
	KindString:            "string",
	KindDeclaration:       "declaration",
	KindRaw:               "raw",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Pos is a 1-based source position.
type Pos struct {
	Line   int
	Column int
}

// Node is implemented only by the types in this package.
type Node interface {
	Kind() Kind
	Position() Pos
	node()
}

type Stylesheet struct {
	Pos
	Children []Node
}

// Rule is a qualified rule: a selector list followed by a block.
// Keyframe blocks are also Rules whose selector holds a single Raw.
type Rule struct {
	Pos
	Selectors *SelectorList
	Block     []Node
}

type SelectorList struct {
	Pos
	Selectors []*Selector
}

// Selector is one complex selector flattened into a sequence of simple
// selectors and combinators, e.g. `.a > li` is [Class a, Combinator >, Type li].
type Selector struct {
	Pos
	Children []Node
}

// TypeSelector matches an element name. The universal selector is a
// TypeSelector named "*".
type TypeSelector struct {
	Pos
	Name string
}

type ClassSelector struct {
	Pos
	Name string
}

type IDSelector struct {
	Pos
	Name string
}

// Combinator names are ">", "+", "~" and " " for descendant.
type Combinator struct {
	Pos
	Name string
}

// PseudoSelector covers pseudo-classes and pseudo-elements. Arguments
// holds the parenthesized part, e.g. the selectors inside `:not(...)`.
type PseudoSelector struct {
	Pos
	Name      string
	Element   bool
	Arguments []Node
}

type AttributeSelector struct {
	Pos
	Name string
}

type NestingSelector struct {
	Pos
}

// AtRule names are stored without the leading "@" and lower-cased.
type AtRule struct {
	Pos
	Name    string
	Prelude []Node
	Block   []Node
}

type Identifier struct {
	Pos
	Name string
}

type String struct {
	Pos
	Value string
}

type Declaration struct {
	Pos
	Property string
	Value    string
}

// Raw holds source text the linter has no finer model for.
type Raw struct {
	Pos
	Text string
}

func (p Pos) Position() Pos { return p }

func (*Stylesheet) Kind() Kind        { return KindStylesheet }
func (*Rule) Kind() Kind              { return KindRule }
func (*SelectorList) Kind() Kind      { return KindSelectorList }
func (*Selector) Kind() Kind          { return KindSelector }
func (*TypeSelector) Kind() Kind      { return KindTypeSelector }
func (*ClassSelector) Kind() Kind     { return KindClassSelector }
func (*IDSelector) Kind() Kind        { return KindIDSelector }
func (*Combinator) Kind() Kind        { return KindCombinator }
func (*PseudoSelector) Kind() Kind    { return KindPseudoSelector }
func (*AttributeSelector) Kind() Kind { return KindAttributeSelector }
func (*NestingSelector) Kind() Kind   { return KindNestingSelector }
func (*AtRule) Kind() Kind            { return KindAtRule }
func (*Identifier) Kind() Kind        { return KindIdentifier }
func (*String) Kind() Kind            { return KindString }
func (*Declaration) Kind() Kind       { return KindDeclaration }
func (*Raw) Kind() Kind               { return KindRaw }

func (*Stylesheet) node()        {}
func (*Rule) node()              {}
func (*SelectorList) node()      {}
func (*Selector) node()          {}
func (*TypeSelector) node()      {}
func (*ClassSelector) node()     {}
func (*IDSelector) node()        {}
func (*Combinator) node()        {}
func (*PseudoSelector) node()    {}
func (*AttributeSelector) node() {}
func (*NestingSelector) node()   {}
func (*AtRule) node()            {}
func (*Identifier) node()        {}
func (*String) node()            {}
func (*Declaration) node()       {}
func (*Raw) node()               {}

// Name returns the name-like attribute of n: the selector, at-rule,
// identifier or property name. Nodes without one return "".
func Name(n Node) string {
	switch v := n.(type) {
	case *TypeSelector:
		return v.Name
	case *ClassSelector:
		return v.Name
	case *IDSelector:
		return v.Name
	case *Combinator:
		return v.Name
	case *PseudoSelector:
		return v.Name
	case *AttributeSelector:
		return v.Name
	case *AtRule:
		return v.Name
	case *Identifier:
		return v.Name
	case *String:
		return v.Value
	case *Declaration:
		return v.Property
	case *Raw:
		return v.Text
	case *Stylesheet, *Rule, *SelectorList, *Selector, *NestingSelector:
		return ""
	}
	return ""
}

// Children returns the child sequence of n in document order. The
// returned slice is freshly allocated, so callers can't reach into the tree.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Stylesheet:
		return append([]Node(nil), v.Children...)
	case *Rule:
		out := make([]Node, 0, len(v.Block)+1)
		if v.Selectors != nil {
			out = append(out, v.Selectors)
		}
		return append(out, v.Block...)
	case *SelectorList:
		out := make([]Node, 0, len(v.Selectors))
		for _, s := range v.Selectors {
			out = append(out, s)
		}
		return out
	case *Selector:
		return append([]Node(nil), v.Children...)
	case *PseudoSelector:
		return append([]Node(nil), v.Arguments...)
	case *AtRule:
		out := make([]Node, 0, len(v.Prelude)+len(v.Block))
		out = append(out, v.Prelude...)
		return append(out, v.Block...)
	case *TypeSelector, *ClassSelector, *IDSelector, *Combinator,
		*AttributeSelector, *NestingSelector, *Identifier, *String, *Declaration, *Raw:
		return nil
	}
	return nil
}
