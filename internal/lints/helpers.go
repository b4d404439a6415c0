package lints

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/edit"
	"github.com/gamemath-labs/mlin/internal/parse"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// Catalogue lists every rule name in its fixed application order. The fixer
// uses the position in this list to break ties between edits proposed by
// different rules for the same span.
var Catalogue = []string{
	"simplify-multiplicative",
	"reciprocal-division",
	"distance-fold",
	"half-rotation-fusion",
	"multiply-by-one",
	"undefined-guard-fold",
	"epsilon-zero-check",
	"net-zero-update",
}

// Rank returns a rule's position in the catalogue; unknown rules sort last.
func Rank(rule string) int {
	for i, name := range Catalogue {
		if name == rule {
			return i
		}
	}
	return len(Catalogue)
}

func newIssue(rule, filename, message string, n *sitter.Node, fix *edit.TextEdit, severity tt.Severity) tt.Issue {
	start, end := parse.Position(n)
	issue := tt.Issue{
		Rule:       rule,
		Category:   "simplification",
		Filename:   filename,
		Message:    message,
		Confidence: 1.0,
		Severity:   severity,
		Start:      start,
		End:        end,
		Fix:        fix,
	}
	if fix != nil {
		issue.Suggestion = fix.Text
	}
	return issue
}

func replaceNode(n *sitter.Node, text string) *edit.TextEdit {
	return &edit.TextEdit{Start: int(n.StartByte()), End: int(n.EndByte()), Text: text}
}

var numericHints = []string{"sqrt", "sqr(", "distance", "math.", "point_", "lengthdir"}

// looksNumeric is the sensitivity heuristic guarding the syntactic folds:
// only rewrite zero checks and undefined guards that sit next to geometry or
// math calls, so array-length checks and the like stay untouched.
func looksNumeric(text string) bool {
	lower := strings.ToLower(text)
	for _, hint := range numericHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// statementBlocks yields the top-level statement list and every nested block
// body under root.
func statementBlocks(root *sitter.Node) [][]*sitter.Node {
	var blocks [][]*sitter.Node
	if root.Type() == "program" {
		blocks = append(blocks, parse.NamedChildren(root))
	}
	parse.Walk(root, func(n *sitter.Node) bool {
		if n.Type() == "statement_block" {
			blocks = append(blocks, parse.NamedChildren(n))
		}
		return true
	})
	return blocks
}

// removeStatement builds an edit deleting a statement. When the statement
// owns its whole line the line goes too, newline included; otherwise only the
// statement text and one trailing space are consumed.
func removeStatement(src []byte, n *sitter.Node) *edit.TextEdit {
	start := int(n.StartByte())
	end := int(n.EndByte())

	lineStart := start
	for lineStart > 0 && (src[lineStart-1] == ' ' || src[lineStart-1] == '\t') {
		lineStart--
	}
	lineEnd := end
	for lineEnd < len(src) && (src[lineEnd] == ' ' || src[lineEnd] == '\t') {
		lineEnd++
	}

	ownsLine := (lineStart == 0 || src[lineStart-1] == '\n') &&
		(lineEnd == len(src) || src[lineEnd] == '\n')
	if ownsLine {
		if lineEnd < len(src) {
			lineEnd++
		}
		return &edit.TextEdit{Start: lineStart, End: lineEnd}
	}
	if end < len(src) && src[end] == ' ' {
		end++
	}
	return &edit.TextEdit{Start: start, End: end}
}

func wordPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

// identText returns the identifier text of n, or "" when n is not a bare
// identifier.
func identText(n *sitter.Node, src []byte) string {
	if n == nil || n.Type() != "identifier" {
		return ""
	}
	return parse.Content(n, src)
}

// numberText reports whether n is the numeric literal lit.
func numberText(n *sitter.Node, src []byte, lit string) bool {
	n = parse.Unwrap(n)
	return n != nil && n.Type() == "number" && parse.Content(n, src) == lit
}
