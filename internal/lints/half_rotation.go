package lints

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/edit"
	"github.com/gamemath-labs/mlin/internal/parse"
	"github.com/gamemath-labs/mlin/internal/simplify"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// linearCallees are the rotation helpers known to be linear in their first
// argument, which is what makes factoring `f(s/2, angle)` into
// `(s/2) * f(1, angle)` sound.
var linearCallees = map[string]bool{
	"rotate_half":  true,
	"lengthdir_x":  true,
	"lengthdir_y":  true,
	"point_rotate": true,
}

// DetectHalfRotationFusion fuses the two-statement pattern
//
//	var s = E;
//	s = s - s / 2 - f(s / 2, angle);
//
// into a single initializer `var s = E' * (1 - f(1, angle));` where E' is the
// canonical rebuild of E scaled by one half. The original coefficient is
// preserved exactly by re-running the collector on the halved initializer.
func DetectHalfRotationFusion(filename string, root *sitter.Node, src []byte, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	for _, stmts := range statementBlocks(root) {
		for i := 0; i+1 < len(stmts); i++ {
			issue, ok := matchHalfRotation(filename, stmts[i], stmts[i+1], src, severity)
			if ok {
				issues = append(issues, issue)
			}
		}
	}

	return issues, nil
}

func matchHalfRotation(filename string, first, second *sitter.Node, src []byte, severity tt.Severity) (tt.Issue, bool) {
	name, value := singleDeclarator(first, src)
	if name == "" || value == nil {
		return tt.Issue{}, false
	}

	callee, angle, ok := matchHalfUpdate(second, name, src)
	if !ok {
		return tt.Issue{}, false
	}

	half := halvedText(value, src)
	replacement := fmt.Sprintf("var %s = %s * (1 - %s(1, %s));", name, half, callee, angle)

	fix := &edit.TextEdit{
		Start: int(first.StartByte()),
		End:   int(second.EndByte()),
		Text:  replacement,
	}
	issue := newIssue(
		"half-rotation-fusion",
		filename,
		fmt.Sprintf("half-rotation update of `%s` folds into its initializer", name),
		first,
		fix,
		severity,
	)
	_, end := parse.Position(second)
	issue.End = end
	return issue, true
}

// singleDeclarator returns the name and initializer of a one-declarator
// variable statement.
func singleDeclarator(n *sitter.Node, src []byte) (string, *sitter.Node) {
	if n == nil {
		return "", nil
	}
	if n.Type() != "variable_declaration" && n.Type() != "lexical_declaration" {
		return "", nil
	}
	decls := parse.NamedChildren(n)
	if len(decls) != 1 || decls[0].Type() != "variable_declarator" {
		return "", nil
	}
	name := identText(decls[0].ChildByFieldName("name"), src)
	return name, decls[0].ChildByFieldName("value")
}

// matchHalfUpdate matches `v = v - v / 2 - f(v / 2, angle)` and returns the
// callee and angle text.
func matchHalfUpdate(n *sitter.Node, v string, src []byte) (callee, angle string, ok bool) {
	if n == nil || n.Type() != "expression_statement" {
		return "", "", false
	}
	assign := n.NamedChild(0)
	if assign == nil || assign.Type() != "assignment_expression" {
		return "", "", false
	}
	if identText(assign.ChildByFieldName("left"), src) != v {
		return "", "", false
	}

	// right: (v - v/2) - call
	outer := parse.Unwrap(assign.ChildByFieldName("right"))
	if outer == nil || outer.Type() != "binary_expression" || parse.Operator(outer, src) != "-" {
		return "", "", false
	}
	inner := parse.Unwrap(outer.ChildByFieldName("left"))
	if inner == nil || inner.Type() != "binary_expression" || parse.Operator(inner, src) != "-" {
		return "", "", false
	}
	if identText(parse.Unwrap(inner.ChildByFieldName("left")), src) != v {
		return "", "", false
	}
	if !isHalfOf(inner.ChildByFieldName("right"), v, src) {
		return "", "", false
	}

	call := parse.Unwrap(outer.ChildByFieldName("right"))
	if call == nil || call.Type() != "call_expression" {
		return "", "", false
	}
	callee = identText(call.ChildByFieldName("function"), src)
	if !linearCallees[callee] {
		return "", "", false
	}
	args := parse.NamedChildren(call.ChildByFieldName("arguments"))
	if len(args) != 2 || !isHalfOf(args[0], v, src) {
		return "", "", false
	}
	return callee, parse.Content(args[1], src), true
}

// isHalfOf reports whether n is `v / 2`.
func isHalfOf(n *sitter.Node, v string, src []byte) bool {
	n = parse.Unwrap(n)
	if n == nil || n.Type() != "binary_expression" || parse.Operator(n, src) != "/" {
		return false
	}
	return identText(parse.Unwrap(n.ChildByFieldName("left")), src) == v &&
		numberText(n.ChildByFieldName("right"), src, "2")
}

// halvedText is the initializer scaled by one half, canonically rebuilt when
// the collector understands it, reproduced verbatim otherwise.
func halvedText(value *sitter.Node, src []byte) string {
	if c, ok := simplify.Collect(value, src); ok {
		c.Coefficient *= 0.5
		if rebuilt, ok := simplify.Rebuild(c); ok {
			return rebuilt
		}
	}
	text := parse.Content(value, src)
	if simplify.NeedsParens(text) {
		text = "(" + text + ")"
	}
	return text + " * 0.5"
}
