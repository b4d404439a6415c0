package lints

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/parse"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// epsilonLiteral is what zero checks are widened to. Game-math scripts keep
// accumulating float error, so an exact zero almost never means "exactly
// zero" by the time it is tested.
const epsilonLiteral = "0.0000001"

// DetectUndefinedGuard folds `x == undefined ? d : x` (and the negated
// arrangement) into `x ?? d`. Only ternaries sitting in numerically sensitive
// statements are touched; the heuristic keeps unrelated existence checks as
// they are.
func DetectUndefinedGuard(filename string, root *sitter.Node, src []byte, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	parse.Walk(root, func(n *sitter.Node) bool {
		if n.Type() != "ternary_expression" {
			return true
		}
		if !looksNumeric(enclosingStatementText(n, src)) {
			return true
		}

		cond := parse.Unwrap(n.ChildByFieldName("condition"))
		consequence := n.ChildByFieldName("consequence")
		alternative := n.ChildByFieldName("alternative")
		if cond == nil || cond.Type() != "binary_expression" {
			return true
		}

		subject, negated, ok := undefinedComparison(cond, src)
		if !ok {
			return true
		}

		var fallback *sitter.Node
		switch {
		case !negated && sameText(subject, alternative, src):
			// x == undefined ? d : x
			fallback = consequence
		case negated && sameText(subject, consequence, src):
			// x != undefined ? x : d
			fallback = alternative
		default:
			return true
		}

		replacement := fmt.Sprintf("%s ?? %s", parse.Content(subject, src), parse.Content(fallback, src))
		issues = append(issues, newIssue(
			"undefined-guard-fold",
			filename,
			"undefined guard is a coalescing expression",
			n,
			replaceNode(n, replacement),
			severity,
		))
		return false
	})

	return issues, nil
}

// DetectEpsilonZeroCheck widens `x == 0` conditions of if statements into
// `abs(x) < epsilon` comparisons, again only where the branch looks numeric.
func DetectEpsilonZeroCheck(filename string, root *sitter.Node, src []byte, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	parse.Walk(root, func(n *sitter.Node) bool {
		if n.Type() != "if_statement" {
			return true
		}
		if !looksNumeric(parse.Content(n, src)) {
			return true
		}
		cond := parse.Unwrap(n.ChildByFieldName("condition"))
		if cond == nil || cond.Type() != "binary_expression" {
			return true
		}
		op := parse.Operator(cond, src)
		if op != "==" && op != "===" {
			return true
		}

		var subject *sitter.Node
		switch {
		case numberText(cond.ChildByFieldName("right"), src, "0"):
			subject = cond.ChildByFieldName("left")
		case numberText(cond.ChildByFieldName("left"), src, "0"):
			subject = cond.ChildByFieldName("right")
		default:
			return true
		}

		replacement := fmt.Sprintf("abs(%s) < %s", parse.Content(subject, src), epsilonLiteral)
		issues = append(issues, newIssue(
			"epsilon-zero-check",
			filename,
			"exact zero comparison on a float; compare against an epsilon",
			cond,
			replaceNode(cond, replacement),
			severity,
		))
		return true
	})

	return issues, nil
}

// undefinedComparison matches `x == undefined` / `x != undefined` in either
// operand order and returns the non-undefined side.
func undefinedComparison(cond *sitter.Node, src []byte) (subject *sitter.Node, negated bool, ok bool) {
	op := parse.Operator(cond, src)
	switch op {
	case "==", "===":
		negated = false
	case "!=", "!==":
		negated = true
	default:
		return nil, false, false
	}

	left := cond.ChildByFieldName("left")
	right := cond.ChildByFieldName("right")
	switch {
	case isUndefined(right, src):
		return left, negated, true
	case isUndefined(left, src):
		return right, negated, true
	}
	return nil, false, false
}

func isUndefined(n *sitter.Node, src []byte) bool {
	n = parse.Unwrap(n)
	if n == nil {
		return false
	}
	return n.Type() == "undefined" || parse.Content(n, src) == "undefined"
}

func sameText(a, b *sitter.Node, src []byte) bool {
	if a == nil || b == nil {
		return false
	}
	return parse.StripOuterParens(parse.Content(a, src)) == parse.StripOuterParens(parse.Content(b, src))
}

// enclosingStatementText walks up to the nearest statement and returns its
// text, giving the sensitivity heuristic some context around the expression.
func enclosingStatementText(n *sitter.Node, src []byte) string {
	for cur := n; cur != nil; cur = cur.Parent() {
		switch cur.Type() {
		case "expression_statement", "variable_declaration", "lexical_declaration", "return_statement", "if_statement":
			return parse.Content(cur, src)
		}
	}
	return parse.Content(n, src)
}
