package lints

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/parse"
	"github.com/gamemath-labs/mlin/internal/simplify"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// DetectReciprocalDivision folds `a / (1 / k)` into `a * k` for literal k.
// Division by a reciprocal shows up constantly in ported formulas; the fold
// keeps the value bit-identical while dropping one division.
func DetectReciprocalDivision(filename string, root *sitter.Node, src []byte, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	parse.Walk(root, func(n *sitter.Node) bool {
		if n.Type() != "binary_expression" || parse.Operator(n, src) != "/" {
			return true
		}
		right := parse.Unwrap(n.ChildByFieldName("right"))
		if right == nil || right.Type() != "binary_expression" || parse.Operator(right, src) != "/" {
			return true
		}
		if !numberText(right.ChildByFieldName("left"), src, "1") {
			return true
		}
		k, ok := simplify.Evaluate(right.ChildByFieldName("right"), src)
		if !ok || k.Kind != simplify.KindNumber || k.Num == 0 {
			return true
		}

		left := n.ChildByFieldName("left")
		replacement := parse.Content(left, src) + " * " + simplify.FormatNumber(k.Num)
		issues = append(issues, newIssue(
			"reciprocal-division",
			filename,
			fmt.Sprintf("dividing by a reciprocal; `%s` multiplies directly", replacement),
			n,
			replaceNode(n, replacement),
			severity,
		))
		return false
	})

	return issues, nil
}
