package lints

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/parse"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// DetectMultiplyByOne drops a literal `1` operand from a multiplication.
// Matching the literal as an AST node is inherently word-boundary safe:
// identifiers ending in the digit 1 never parse as a number.
func DetectMultiplyByOne(filename string, root *sitter.Node, src []byte, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	parse.Walk(root, func(n *sitter.Node) bool {
		if n.Type() != "binary_expression" || parse.Operator(n, src) != "*" {
			return true
		}
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")

		var keep *sitter.Node
		switch {
		case numberText(left, src, "1"):
			keep = right
		case numberText(right, src, "1"):
			keep = left
		default:
			return true
		}

		text := parse.Content(keep, src)
		issues = append(issues, newIssue(
			"multiply-by-one",
			filename,
			fmt.Sprintf("multiplication by one; `%s` is enough", text),
			n,
			replaceNode(n, text),
			severity,
		))
		return false
	})

	return issues, nil
}
