package lints

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/parse"
	"github.com/gamemath-labs/mlin/internal/simplify"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// DetectMultiplicativeSimplification collects every assignment right-hand
// side and initializer into multiplicative components and proposes the
// canonical rebuild when it differs from the original text.
//
// The walk is top-down and spans already claimed by an emitted edit are
// skipped via the provenance record, so a rewritten expression never also
// yields edits for its sub-expressions.
func DetectMultiplicativeSimplification(filename string, root *sitter.Node, src []byte, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	prov := simplify.NewProvenance()

	parse.Walk(root, func(n *sitter.Node) bool {
		var candidate *sitter.Node
		switch n.Type() {
		case "variable_declarator":
			candidate = n.ChildByFieldName("value")
		case "assignment_expression", "augmented_assignment_expression":
			candidate = n.ChildByFieldName("right")
		case "return_statement":
			candidate = n.NamedChild(0)
		default:
			return true
		}
		if candidate == nil {
			return true
		}
		span := simplify.NodeSpan(candidate)
		if prov.Covered(span) {
			return true
		}

		components, ok := simplify.Collect(candidate, src)
		if !ok {
			return true
		}
		rebuilt, ok := simplify.Rebuild(components)
		if !ok {
			return true
		}
		original := parse.Content(candidate, src)
		if !simplify.Changed(original, rebuilt) {
			return true
		}

		prov.Mark(span, simplify.OriginMultiplicativeFold)
		issues = append(issues, newIssue(
			"simplify-multiplicative",
			filename,
			fmt.Sprintf("expression can be simplified to `%s`", rebuilt),
			candidate,
			replaceNode(candidate, rebuilt),
			severity,
		))
		return true
	})

	return issues, nil
}
