package lint

import "bemlint/internal/engine/ast"

// TraversalContext is what the walker knows about a node's surroundings.
// It is passed by value, so a visit callback cannot disturb its siblings.
type TraversalContext struct {
	// Prev is the preceding node in the parent's child sequence, or nil.
	Prev ast.Node
	// AtRules is the stack of enclosing at-rule names, innermost last.
	AtRules []string
	// Depth is 0 for the root and 1 for top-level statements.
	Depth int
}

// EnclosingAtRule returns the innermost enclosing at-rule name.
func (c TraversalContext) EnclosingAtRule() (string, bool) {
	if len(c.AtRules) == 0 {
		return "", false
	}
	return c.AtRules[len(c.AtRules)-1], true
}

// TopLevel reports whether the node is a direct child of the stylesheet.
func (c TraversalContext) TopLevel() bool {
	return c.Depth == 1
}

// Walk visits every node reachable from root exactly once, depth-first in
// document order. visit runs before the node's children.
func Walk(root ast.Node, visit func(ast.Node, TraversalContext)) {
	if root == nil {
		return
	}
	walk(root, TraversalContext{}, visit)
}

func walk(n ast.Node, ctx TraversalContext, visit func(ast.Node, TraversalContext)) {
	visit(n, ctx)

	inner := ctx.AtRules
	if at, ok := n.(*ast.AtRule); ok {
		// Full slice expression so appends never alias a sibling's stack.
		inner = append(inner[:len(inner):len(inner)], at.Name)
	}

	var prev ast.Node
	for _, child := range ast.Children(n) {
		walk(child, TraversalContext{Prev: prev, AtRules: inner, Depth: ctx.Depth + 1}, visit)
		prev = child
	}
}
