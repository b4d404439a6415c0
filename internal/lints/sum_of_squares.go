package lints

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/parse"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// DetectSumOfSquares folds `sqrt(a*a + b*b)` into `point_distance(0, 0, a, b)`
// and the three-addend form into `point_distance_3d(0, 0, 0, a, b, c)`. The
// match is purely structural: every addend must be a self-multiplication of
// the same sub-expression text.
func DetectSumOfSquares(filename string, root *sitter.Node, src []byte, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	parse.Walk(root, func(n *sitter.Node) bool {
		if n.Type() != "call_expression" {
			return true
		}
		if identText(n.ChildByFieldName("function"), src) != "sqrt" {
			return true
		}
		args := parse.NamedChildren(n.ChildByFieldName("arguments"))
		if len(args) != 1 {
			return true
		}

		terms := squareTerms(parse.Unwrap(args[0]), src)
		var replacement string
		switch len(terms) {
		case 2:
			replacement = fmt.Sprintf("point_distance(0, 0, %s, %s)", terms[0], terms[1])
		case 3:
			replacement = fmt.Sprintf("point_distance_3d(0, 0, 0, %s, %s, %s)", terms[0], terms[1], terms[2])
		default:
			return true
		}

		issues = append(issues, newIssue(
			"distance-fold",
			filename,
			"sum of squares under sqrt is a distance from the origin",
			n,
			replaceNode(n, replacement),
			severity,
		))
		return false
	})

	return issues, nil
}

// squareTerms flattens a `+` chain and returns the squared sub-expression of
// each addend, or nil when any addend is not a self-multiplication.
func squareTerms(n *sitter.Node, src []byte) []string {
	addends := flattenSum(n, src)
	terms := make([]string, 0, len(addends))
	for _, addend := range addends {
		term, ok := selfProduct(parse.Unwrap(addend), src)
		if !ok {
			return nil
		}
		terms = append(terms, term)
	}
	return terms
}

func flattenSum(n *sitter.Node, src []byte) []*sitter.Node {
	if n != nil && n.Type() == "binary_expression" && parse.Operator(n, src) == "+" {
		left := flattenSum(parse.Unwrap(n.ChildByFieldName("left")), src)
		if left == nil {
			return nil
		}
		return append(left, n.ChildByFieldName("right"))
	}
	if n == nil {
		return nil
	}
	return []*sitter.Node{n}
}

func selfProduct(n *sitter.Node, src []byte) (string, bool) {
	if n == nil || n.Type() != "binary_expression" || parse.Operator(n, src) != "*" {
		return "", false
	}
	left := parse.StripOuterParens(parse.Content(n.ChildByFieldName("left"), src))
	right := parse.StripOuterParens(parse.Content(n.ChildByFieldName("right"), src))
	if left == "" || left != right {
		return "", false
	}
	if strings.ContainsAny(left, "\"'") {
		return "", false
	}
	return left, true
}
