package simplify

import (
	"math"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/parse"
)

// Factor is one opaque multiplicative unit with its integer exponent.
// Identity is the trimmed, outer-parenthesis-stripped source text of the
// underlying sub-expression; two textually equal factors merge.
type Factor struct {
	Text string
	Exp  int
}

// Components is the decomposition of a multiplicative expression into a
// scalar coefficient and a multiset of opaque factors. Insertion order of
// factors is preserved: the first-seen factor prints first on rebuild.
type Components struct {
	Coefficient float64
	order       []string
	exps        map[string]int
}

// NewComponents returns an empty component set with the given coefficient.
func NewComponents(coefficient float64) Components {
	return Components{Coefficient: coefficient, exps: map[string]int{}}
}

// AddFactor merges exp occurrences of the factor text into the set. An entry
// whose exponent reaches zero is removed entirely, order slot included.
func (c *Components) AddFactor(text string, exp int) {
	if c.exps == nil {
		c.exps = map[string]int{}
	}
	cur, seen := c.exps[text]
	next := cur + exp
	if next == 0 {
		if seen {
			delete(c.exps, text)
			for i, t := range c.order {
				if t == text {
					c.order = append(c.order[:i], c.order[i+1:]...)
					break
				}
			}
		}
		return
	}
	if !seen {
		c.order = append(c.order, text)
	}
	c.exps[text] = next
}

// Factors returns the factors in insertion order.
func (c Components) Factors() []Factor {
	out := make([]Factor, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, Factor{Text: t, Exp: c.exps[t]})
	}
	return out
}

// HasNegativeExponent reports whether any factor is a leftover reciprocal.
func (c Components) HasNegativeExponent() bool {
	for _, e := range c.exps {
		if e < 0 {
			return true
		}
	}
	return false
}

// Equal reports semantic equality: coefficients within Epsilon and matching
// factor-exponent multisets. Order is not significant for equality.
func (c Components) Equal(other Components) bool {
	if math.Abs(c.Coefficient-other.Coefficient) >= Epsilon {
		return false
	}
	if len(c.exps) != len(other.exps) {
		return false
	}
	for t, e := range c.exps {
		if other.exps[t] != e {
			return false
		}
	}
	return true
}

// Collect decomposes node into multiplicative components. It understands
// numeric subtrees (via Evaluate), opaque factors, unary sign, and binary
// multiplication and division; everything else reports false so the caller
// leaves the subtree untouched. Collection never guesses: a shape it cannot
// reproduce verbatim is a failure, not an approximation.
func Collect(n *sitter.Node, src []byte) (Components, bool) {
	if n == nil {
		return Components{}, false
	}

	if s, ok := Evaluate(n, src); ok && s.Kind == KindNumber {
		if math.IsInf(s.Num, 0) || math.IsNaN(s.Num) {
			return Components{}, false
		}
		return NewComponents(s.Num), true
	}

	switch n.Type() {
	case "identifier", "member_expression", "subscript_expression", "call_expression":
		return opaque(n, src), true

	case "parenthesized_expression":
		inner := n.NamedChild(0)
		if c, ok := Collect(inner, src); ok {
			return c, ok
		}
		// The interior is not a multiplicative shape, but the
		// parenthesized slice reproduces verbatim, so it can still
		// serve as a single factor.
		return opaque(n, src), true

	case "unary_expression":
		arg := n.ChildByFieldName("argument")
		switch parse.Operator(n, src) {
		case "-":
			c, ok := Collect(arg, src)
			if !ok {
				return Components{}, false
			}
			c.Coefficient = -c.Coefficient
			return c, true
		case "+":
			return Collect(arg, src)
		}
		return Components{}, false

	case "binary_expression":
		return collectBinary(n, src)
	}

	return Components{}, false
}

func collectBinary(n *sitter.Node, src []byte) (Components, bool) {
	op := parse.Operator(n, src)
	if op != "*" && op != "/" {
		return Components{}, false
	}

	left, lok := Collect(n.ChildByFieldName("left"), src)
	if !lok {
		return Components{}, false
	}
	right, rok := Collect(n.ChildByFieldName("right"), src)
	if !rok {
		return Components{}, false
	}

	if op == "*" {
		left.Coefficient *= right.Coefficient
		if math.IsInf(left.Coefficient, 0) || math.IsNaN(left.Coefficient) {
			return Components{}, false
		}
		for _, f := range right.Factors() {
			left.AddFactor(f.Text, f.Exp)
		}
		return left, true
	}

	// Division by a provably-zero coefficient is unevaluable.
	if math.Abs(right.Coefficient) < Epsilon {
		return Components{}, false
	}
	merged := left
	merged.Coefficient = left.Coefficient / right.Coefficient
	if math.IsInf(merged.Coefficient, 0) || math.IsNaN(merged.Coefficient) {
		return Components{}, false
	}
	for _, f := range right.Factors() {
		merged.AddFactor(f.Text, -f.Exp)
	}
	if merged.HasNegativeExponent() {
		// An uncancelled reciprocal has no canonical product form.
		// The division's own source text reproduces verbatim, so the
		// whole node degrades to one opaque factor.
		return opaqueWithCoefficient(n, src, 1), true
	}
	return merged, true
}

func opaque(n *sitter.Node, src []byte) Components {
	return opaqueWithCoefficient(n, src, 1)
}

func opaqueWithCoefficient(n *sitter.Node, src []byte, coefficient float64) Components {
	c := NewComponents(coefficient)
	c.AddFactor(parse.StripOuterParens(parse.Content(n, src)), 1)
	return c
}
