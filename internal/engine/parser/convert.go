package parser

import (
	"bemlint/internal/engine/ast"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

var combinators = map[string]string{
	"child_selector":            ">",
	"descendant_selector":       " ",
	"sibling_selector":          "~",
	"adjacent_sibling_selector": "+",
}

// compoundNames maps a compound selector kind to the child kind holding
// its own name. The grammar reuses class_name and tag_name for pseudo
// selectors, so the name is only meaningful relative to its parent.
var compoundNames = map[string]string{
	"class_selector":          "class_name",
	"id_selector":             "id_name",
	"pseudo_class_selector":   "class_name",
	"pseudo_element_selector": "tag_name",
	"attribute_selector":      "attribute_name",
}

var selectorKinds = map[string]bool{
	"tag_name":                  true,
	"universal_selector":        true,
	"nesting_selector":          true,
	"class_selector":            true,
	"id_selector":               true,
	"pseudo_class_selector":     true,
	"pseudo_element_selector":   true,
	"attribute_selector":        true,
	"child_selector":            true,
	"descendant_selector":       true,
	"sibling_selector":          true,
	"adjacent_sibling_selector": true,
	"namespace_selector":        true,
}

type converter struct {
	src []byte
}

func (c *converter) stylesheet(root *sitter.Node) *ast.Stylesheet {
	return &ast.Stylesheet{Pos: pos(root), Children: c.items(root)}
}

// items converts the statements of a stylesheet or block.
func (c *converter) items(parent *sitter.Node) []ast.Node {
	var out []ast.Node
	for _, child := range namedChildren(parent) {
		if n := c.statement(child); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (c *converter) statement(n *sitter.Node) ast.Node {
	kind := n.Kind()
	switch {
	case kind == "rule_set":
		return c.ruleSet(n)
	case kind == "declaration":
		return c.declaration(n)
	case kind == "at_rule" || strings.HasSuffix(kind, "_statement"):
		return c.atRule(n)
	default:
		return &ast.Raw{Pos: pos(n), Text: c.text(n)}
	}
}

func (c *converter) ruleSet(n *sitter.Node) *ast.Rule {
	rule := &ast.Rule{Pos: pos(n)}
	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "selectors":
			rule.Selectors = c.selectorList(child)
		case "block":
			rule.Block = c.items(child)
		}
	}
	return rule
}

func (c *converter) selectorList(n *sitter.Node) *ast.SelectorList {
	list := &ast.SelectorList{Pos: pos(n)}
	for _, child := range namedChildren(n) {
		list.Selectors = append(list.Selectors, &ast.Selector{
			Pos:      pos(child),
			Children: c.flatten(child, nil),
		})
	}
	return list
}

// flatten appends the simple selectors and combinators of a complex
// selector to out, left to right.
func (c *converter) flatten(n *sitter.Node, out []ast.Node) []ast.Node {
	kind := n.Kind()
	if name, ok := combinators[kind]; ok {
		parts := namedChildren(n)
		if len(parts) < 2 {
			return append(out, &ast.Raw{Pos: pos(n), Text: c.text(n)})
		}
		left, right := parts[0], parts[len(parts)-1]
		out = c.flatten(left, out)
		comb := &ast.Combinator{Pos: pos(right), Name: name}
		if tok := firstAnonymous(n); tok != nil {
			comb.Pos = pos(tok)
		}
		out = append(out, comb)
		return c.flatten(right, out)
	}
	if _, ok := compoundNames[kind]; ok {
		return c.compound(n, out)
	}

	switch kind {
	case "tag_name":
		return append(out, &ast.TypeSelector{Pos: pos(n), Name: c.text(n)})
	case "universal_selector":
		return append(out, &ast.TypeSelector{Pos: pos(n), Name: "*"})
	case "nesting_selector":
		return append(out, &ast.NestingSelector{Pos: pos(n)})
	default:
		return append(out, &ast.Raw{Pos: pos(n), Text: c.text(n)})
	}
}

// compound handles selectors of the form `<base>? <marker> <name> <args>?`,
// where marker is the anonymous ".", "#", ":", "::" or "[" token.
func (c *converter) compound(n *sitter.Node, out []ast.Node) []ast.Node {
	kind := n.Kind()
	nameKind := compoundNames[kind]

	markerIdx := -1
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && !child.IsNamed() {
			markerIdx = int(i)
			break
		}
	}

	at := pos(n)
	var name string
	var args []ast.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if int(i) == markerIdx {
			at = pos(child)
			continue
		}
		if !child.IsNamed() || isComment(child) {
			continue
		}
		if int(i) < markerIdx {
			out = c.flatten(child, out)
			continue
		}
		switch {
		case child.Kind() == nameKind && name == "":
			name = c.text(child)
		case child.Kind() == "arguments":
			args = c.arguments(child)
		}
	}

	switch kind {
	case "class_selector":
		return append(out, &ast.ClassSelector{Pos: at, Name: name})
	case "id_selector":
		return append(out, &ast.IDSelector{Pos: at, Name: name})
	case "attribute_selector":
		return append(out, &ast.AttributeSelector{Pos: at, Name: name})
	default:
		return append(out, &ast.PseudoSelector{
			Pos:       at,
			Name:      name,
			Element:   kind == "pseudo_element_selector",
			Arguments: args,
		})
	}
}

func (c *converter) arguments(n *sitter.Node) []ast.Node {
	var out []ast.Node
	for _, child := range namedChildren(n) {
		if selectorKinds[child.Kind()] {
			out = append(out, &ast.Selector{Pos: pos(child), Children: c.flatten(child, nil)})
			continue
		}
		out = append(out, &ast.Raw{Pos: pos(child), Text: c.text(child)})
	}
	return out
}

func (c *converter) declaration(n *sitter.Node) *ast.Declaration {
	decl := &ast.Declaration{Pos: pos(n)}
	var values []string
	for _, child := range namedChildren(n) {
		if child.Kind() == "property_name" && decl.Property == "" {
			decl.Property = c.text(child)
			continue
		}
		values = append(values, c.text(child))
	}
	decl.Value = strings.Join(values, " ")
	return decl
}

// atRule covers @import, @media, @keyframes and every other at-rule form
// the grammar knows: the first token is the at-keyword, named children
// are prelude values, and a block or keyframe list is the body.
func (c *converter) atRule(n *sitter.Node) *ast.AtRule {
	at := &ast.AtRule{Pos: pos(n)}
	if kw := n.Child(0); kw != nil {
		at.Name = strings.ToLower(strings.TrimPrefix(c.text(kw), "@"))
	}

	for i := uint(1); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() || isComment(child) {
			continue
		}
		switch child.Kind() {
		case "block":
			at.Block = c.items(child)
		case "keyframe_block_list":
			at.Block = c.keyframeBlocks(child)
		case "keyframes_name", "identifier", "plain_value", "namespace_name":
			at.Prelude = append(at.Prelude, &ast.Identifier{Pos: pos(child), Name: c.text(child)})
		case "string_value":
			at.Prelude = append(at.Prelude, &ast.String{Pos: pos(child), Value: trimQuoted(c.text(child))})
		default:
			at.Prelude = append(at.Prelude, &ast.Raw{Pos: pos(child), Text: c.text(child)})
		}
	}
	return at
}

func (c *converter) keyframeBlocks(n *sitter.Node) []ast.Node {
	var out []ast.Node
	for _, kb := range namedChildren(n) {
		if kb.Kind() != "keyframe_block" {
			continue
		}
		rule := &ast.Rule{Pos: pos(kb)}
		for _, child := range namedChildren(kb) {
			if child.Kind() == "block" {
				rule.Block = c.items(child)
				continue
			}
			if rule.Selectors == nil {
				rule.Selectors = &ast.SelectorList{
					Pos: pos(child),
					Selectors: []*ast.Selector{{
						Pos:      pos(child),
						Children: []ast.Node{&ast.Raw{Pos: pos(child), Text: c.text(child)}},
					}},
				}
			}
		}
		out = append(out, rule)
	}
	return out
}

// text returns the source bytes spanned by a node as a trimmed string.
func (c *converter) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start >= end || end > uint(len(c.src)) {
		return ""
	}
	return strings.TrimSpace(string(c.src[start:end]))
}

func pos(node *sitter.Node) ast.Pos {
	p := node.StartPosition()
	return ast.Pos{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

// namedChildren returns the named, non-comment children of n.
func namedChildren(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() || isComment(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstAnonymous(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && !child.IsNamed() {
			return child
		}
	}
	return nil
}

func isComment(n *sitter.Node) bool {
	kind := n.Kind()
	return kind == "comment" || kind == "js_comment"
}

func trimQuoted(value string) string {
	value = strings.TrimSpace(value)
	return strings.Trim(value, "\"'")
}
