package edit

import (
	"regexp"
	"strings"
)

// TextPass is a single text-to-text transformer. Passes run on already
// rewritten source, after all AST-driven edits have been composed; they never
// look at the tree, which keeps tree and text from drifting apart.
type TextPass struct {
	Name    string
	pattern *regexp.Regexp
	replace string
}

// Apply runs the pass over src.
func (p TextPass) Apply(src string) string {
	return p.pattern.ReplaceAllString(src, p.replace)
}

// CanonicalPasses is the fixed, ordered sweep of textual canonical forms.
// Order matters: multiplication stripping may expose a bare fraction that the
// leading-zero pass then normalizes.
var CanonicalPasses = []TextPass{
	{
		// "x * 1" -> "x", but only when 1 stands alone: identifiers ending
		// in the digit 1 and literals like 1.5 or 10 must survive.
		Name:    "strip-times-one",
		pattern: regexp.MustCompile(`\s\*\s*1([^.0-9]|$)`),
		replace: "$1",
	},
	{
		Name:    "strip-div-one",
		pattern: regexp.MustCompile(`\s/\s*1([^.0-9]|$)`),
		replace: "$1",
	},
	{
		// ".5" -> "0.5" so a downstream formatter has nothing to re-touch.
		Name:    "leading-zero",
		pattern: regexp.MustCompile(`(^|[^0-9A-Za-z_.])\.([0-9])`),
		replace: "${1}0.${2}",
	},
}

// ApplyPasses runs every canonical pass over src in order. String literals
// are copied through verbatim; the passes only ever rewrite code.
func ApplyPasses(src string) string {
	var out strings.Builder
	start := 0
	for i := 0; i < len(src); {
		c := src[i]
		if c != '"' && c != '\'' && c != '`' {
			i++
			continue
		}
		end := literalEnd(src, i)
		out.WriteString(applyAll(src[start:i]))
		out.WriteString(src[i:end])
		start = end
		i = end
	}
	out.WriteString(applyAll(src[start:]))
	return out.String()
}

func applyAll(segment string) string {
	for _, p := range CanonicalPasses {
		segment = p.Apply(segment)
	}
	return segment
}

// literalEnd returns the index just past the string literal opening at i.
// An unterminated literal runs to the end of the source.
func literalEnd(src string, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(src)
}
