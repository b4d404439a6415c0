package simplify

import (
	"math"
	"strings"

	"github.com/gamemath-labs/mlin/internal/parse"
)

// Rebuild renders a component set as minimal canonical source text. The
// second return is false when the set contains a leftover negative exponent;
// the caller must then fall back to the original text.
//
// Coefficient placement: a coefficient of one is omitted; a strictly positive
// fraction in (0,1) trails the factors, because prefixing it would produce a
// leading-decimal literal that downstream formatters rewrite with a leading
// zero, churning text that is otherwise untouched; a coefficient in front of
// a parenthesized factor likewise trails, keeping the factor's own text as
// the head of the product. Everything else leads.
func Rebuild(c Components) (string, bool) {
	if math.Abs(c.Coefficient) < Epsilon {
		return "0", true
	}
	if c.HasNegativeExponent() {
		return "", false
	}

	var parts []string
	for _, f := range c.Factors() {
		text := f.Text
		if NeedsParens(text) {
			text = "(" + text + ")"
		}
		for i := 0; i < f.Exp; i++ {
			parts = append(parts, text)
		}
	}

	coefficient := FormatNumber(c.Coefficient)
	if len(parts) == 0 {
		return coefficient, true
	}
	product := strings.Join(parts, " * ")
	if math.Abs(c.Coefficient-1) < Epsilon {
		return product, true
	}
	if prefixCoefficient(c) {
		return coefficient + " * " + product, true
	}
	return product + " * " + coefficient, true
}

func prefixCoefficient(c Components) bool {
	if c.Coefficient > 0 && c.Coefficient < 1 {
		return false
	}
	factors := c.Factors()
	if len(factors) > 0 && NeedsParens(factors[0].Text) {
		return false
	}
	return true
}

// Changed reports whether rebuilt differs from the original slice once both
// are stripped of outer parentheses. Equal text means "no rewrite" and the
// caller must not emit an edit.
func Changed(original, rebuilt string) bool {
	return parse.StripOuterParens(original) != parse.StripOuterParens(rebuilt)
}

// NeedsParens reports whether a sub-expression's text must be
// re-parenthesized to survive inside a product: any operator or space at
// bracket depth zero.
func NeedsParens(text string) bool {
	depth := 0
	for _, r := range text {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		default:
			if depth == 0 && strings.ContainsRune(" \t+-*/%<>=&|^!?~", r) {
				return true
			}
		}
	}
	return false
}
