// Package parse is the boundary to the external tree-sitter parser. The
// simplifier core only ever reads node types, byte spans and field children;
// everything it needs from the grammar lives behind the helpers here, and the
// tree itself is treated as immutable.
package parse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	tt "github.com/gamemath-labs/mlin/internal/types"
)

// Parse parses src as a script and returns the syntax tree. The caller owns
// the tree and should Close it when done.
func Parse(ctx context.Context, src []byte) (*sitter.Tree, error) {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	return tree, nil
}

// Content returns the trimmed source slice covered by n.
func Content(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(string(src[n.StartByte():n.EndByte()]))
}

// Operator returns the operator token of a unary, binary, update or
// augmented-assignment node, or "" when the node has none.
func Operator(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return Content(n.ChildByFieldName("operator"), src)
}

// Unwrap strips any number of parenthesized_expression layers.
func Unwrap(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == "parenthesized_expression" {
		inner := n.NamedChild(0)
		if inner == nil {
			return n
		}
		n = inner
	}
	return n
}

// StripOuterParens removes balanced outer parentheses from a source slice.
// It only strips a pair that encloses the whole string.
func StripOuterParens(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		depth := 0
		enclosing := true
		for i, c := range s {
			switch c {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 && i != len(s)-1 {
					enclosing = false
				}
			}
			if !enclosing {
				break
			}
		}
		if !enclosing {
			break
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// Position converts a node boundary to a file position. Tree-sitter rows and
// columns are 0-based; reported positions are 1-based.
func Position(n *sitter.Node) (start, end tt.Position) {
	if n == nil {
		return
	}
	sp, ep := n.StartPoint(), n.EndPoint()
	start = tt.Position{Line: int(sp.Row) + 1, Column: int(sp.Column) + 1, Offset: int(n.StartByte())}
	end = tt.Position{Line: int(ep.Row) + 1, Column: int(ep.Column) + 1, Offset: int(n.EndByte())}
	return
}

// NamedChildren returns the named children of n in document order.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// Walk visits n and every descendant in depth-first document order. The
// visitor returns false to skip a subtree.
func Walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		Walk(n.Child(i), visit)
	}
}
