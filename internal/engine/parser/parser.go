// Package parser turns CSS source into the ast node model using the
// tree-sitter CSS grammar.
package parser

import (
	"bemlint/internal/core/errors"
	"bemlint/internal/engine/ast"
	"bemlint/internal/shared/observability"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser is safe for concurrent use; each Parse leases its own
// tree-sitter parser from the pool.
type Parser struct {
	pool *Pool
}

func New() *Parser {
	return &Parser{pool: NewPool(sitter.NewLanguage(tree_sitter_css.Language()))}
}

// Parse converts source into a Stylesheet. Input the grammar cannot fully
// tree-ify fails with CodeParseFailed carrying the first error position.
func (p *Parser) Parse(source []byte) (*ast.Stylesheet, error) {
	start := time.Now()
	defer func() {
		observability.ParsingDuration.Observe(time.Since(start).Seconds())
	}()

	sp := p.pool.Get()
	defer p.pool.Put(sp)

	tree := sp.Parse(source, nil)
	if tree == nil {
		return nil, errors.New(errors.CodeParseFailed, "parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		pos := firstErrorPos(root)
		err := errors.New(errors.CodeParseFailed, "malformed stylesheet")
		err = errors.AddContext(err, errors.CtxLine, pos.Line)
		return nil, errors.AddContext(err, errors.CtxColumn, pos.Column)
	}

	c := converter{src: source}
	return c.stylesheet(root), nil
}

func firstErrorPos(node *sitter.Node) ast.Pos {
	if node.IsError() || node.IsMissing() {
		return pos(node)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		return firstErrorPos(child)
	}
	return pos(node)
}
