package lint

import (
	"bemlint/internal/engine/ast"
	"testing"
)

func TestWalk_VisitsOnceInDocumentOrder(t *testing.T) {
	li := &ast.TypeSelector{Name: "li"}
	comb := &ast.Combinator{Name: ">"}
	cls := &ast.ClassSelector{Name: "list"}
	sheet := &ast.Stylesheet{Children: []ast.Node{
		&ast.Rule{
			Selectors: &ast.SelectorList{Selectors: []*ast.Selector{{Children: []ast.Node{cls, comb, li}}}},
		},
	}}

	var kinds []ast.Kind
	seen := map[ast.Node]int{}
	Walk(sheet, func(n ast.Node, _ TraversalContext) {
		kinds = append(kinds, n.Kind())
		seen[n]++
	})

	want := []ast.Kind{
		ast.KindStylesheet, ast.KindRule, ast.KindSelectorList, ast.KindSelector,
		ast.KindClassSelector, ast.KindCombinator, ast.KindTypeSelector,
	}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visit %d: got %s, want %s", i, kinds[i], want[i])
		}
	}
	for n, count := range seen {
		if count != 1 {
			t.Errorf("%s visited %d times", n.Kind(), count)
		}
	}
}

func TestWalk_PrevSibling(t *testing.T) {
	first := &ast.ClassSelector{Name: "a"}
	comb := &ast.Combinator{Name: ">"}
	li := &ast.TypeSelector{Name: "li"}
	sel := &ast.Selector{Children: []ast.Node{first, comb, li}}

	prevs := map[ast.Node]ast.Node{}
	Walk(sel, func(n ast.Node, tc TraversalContext) {
		prevs[n] = tc.Prev
	})

	if prevs[first] != nil {
		t.Errorf("first child should have no previous sibling")
	}
	if prevs[comb] != ast.Node(first) {
		t.Errorf("combinator prev = %v, want class selector", prevs[comb])
	}
	if prevs[li] != ast.Node(comb) {
		t.Errorf("li prev = %v, want combinator", prevs[li])
	}
}

func TestWalk_AtRuleStackIsScoped(t *testing.T) {
	inMedia := &ast.TypeSelector{Name: "div"}
	inSupports := &ast.TypeSelector{Name: "span"}
	after := &ast.TypeSelector{Name: "p"}
	rule := func(n ast.Node) *ast.Rule {
		return &ast.Rule{Selectors: &ast.SelectorList{Selectors: []*ast.Selector{{Children: []ast.Node{n}}}}}
	}
	media := &ast.AtRule{Name: "media", Block: []ast.Node{
		rule(inMedia),
		&ast.AtRule{Name: "supports", Block: []ast.Node{rule(inSupports)}},
	}}
	sheet := &ast.Stylesheet{Children: []ast.Node{media, rule(after)}}

	stacks := map[ast.Node][]string{}
	depths := map[ast.Node]int{}
	Walk(sheet, func(n ast.Node, tc TraversalContext) {
		stacks[n] = tc.AtRules
		depths[n] = tc.Depth
	})

	if got, _ := (TraversalContext{AtRules: stacks[inMedia]}).EnclosingAtRule(); got != "media" {
		t.Errorf("div enclosing at-rule = %q, want media", got)
	}
	if got, _ := (TraversalContext{AtRules: stacks[inSupports]}).EnclosingAtRule(); got != "supports" {
		t.Errorf("span enclosing at-rule = %q, want supports", got)
	}
	if len(stacks[inSupports]) != 2 {
		t.Errorf("span stack = %v, want [media supports]", stacks[inSupports])
	}
	if _, inside := (TraversalContext{AtRules: stacks[after]}).EnclosingAtRule(); inside {
		t.Errorf("p after @media must have no enclosing at-rule, got %v", stacks[after])
	}
	if len(stacks[media]) != 0 {
		t.Errorf("the at-rule itself is visited in its outer context, got %v", stacks[media])
	}
	if depths[media] != 1 || depths[sheet] != 0 {
		t.Errorf("unexpected depths: sheet=%d media=%d", depths[sheet], depths[media])
	}
}

func TestWalk_NilRoot(t *testing.T) {
	called := false
	Walk(nil, func(ast.Node, TraversalContext) { called = true })
	if called {
		t.Fatal("visit must not run for a nil root")
	}
}
