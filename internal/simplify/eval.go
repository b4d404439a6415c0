// Package simplify holds the algebraic core: constant evaluation,
// multiplicative component collection and canonical rebuilding. Every entry
// point is total over any node shape; an unsupported shape reports
// "cannot simplify" instead of failing.
package simplify

import (
	"math"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/parse"
)

// Epsilon is the tolerance used everywhere a real coefficient is compared.
const Epsilon = 1e-10

// Kind discriminates the two scalar shapes the evaluator can produce.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
)

// Scalar is the result of evaluating a literal-only subtree.
type Scalar struct {
	Kind Kind
	Num  float64
	Bool bool
}

// Number wraps a float into a Scalar.
func Number(v float64) Scalar { return Scalar{Kind: KindNumber, Num: v} }

// Boolean wraps a bool into a Scalar.
func Boolean(v bool) Scalar { return Scalar{Kind: KindBool, Bool: v} }

// Evaluate resolves a literal-only subtree to a scalar. It recurses only
// through parenthesization and evaluable operators; any identifier, call or
// unknown node shape makes the whole evaluation report false. Division or
// modulo by a provably-zero divisor also reports false: the caller must treat
// that as "cannot simplify", never as an error.
func Evaluate(n *sitter.Node, src []byte) (Scalar, bool) {
	if n == nil {
		return Scalar{}, false
	}
	switch n.Type() {
	case "number":
		v, ok := parseNumber(parse.Content(n, src))
		return Number(v), ok
	case "true":
		return Boolean(true), true
	case "false":
		return Boolean(false), true
	case "parenthesized_expression":
		return Evaluate(n.NamedChild(0), src)
	case "unary_expression":
		return evalUnary(n, src)
	case "binary_expression":
		return evalBinary(n, src)
	}
	return Scalar{}, false
}

func evalUnary(n *sitter.Node, src []byte) (Scalar, bool) {
	arg, ok := Evaluate(n.ChildByFieldName("argument"), src)
	if !ok {
		return Scalar{}, false
	}
	switch parse.Operator(n, src) {
	case "-":
		if arg.Kind == KindNumber {
			return Number(-arg.Num), true
		}
	case "+":
		if arg.Kind == KindNumber {
			return arg, true
		}
	case "!":
		if arg.Kind == KindBool {
			return Boolean(!arg.Bool), true
		}
	case "~":
		if arg.Kind == KindNumber && isIntegral(arg.Num) {
			return Number(float64(^int64(arg.Num))), true
		}
	}
	return Scalar{}, false
}

func evalBinary(n *sitter.Node, src []byte) (Scalar, bool) {
	op := parse.Operator(n, src)
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")

	// Logical operators short-circuit on a known side even when the other
	// side cannot be evaluated at all.
	if op == "&&" || op == "||" {
		return evalLogical(op, left, right, src)
	}

	l, lok := Evaluate(left, src)
	r, rok := Evaluate(right, src)
	if !lok || !rok {
		return Scalar{}, false
	}

	switch op {
	case "==", "===":
		return evalEquality(l, r, false)
	case "!=", "!==":
		return evalEquality(l, r, true)
	}

	if l.Kind != KindNumber || r.Kind != KindNumber {
		return Scalar{}, false
	}
	return evalArith(op, l.Num, r.Num)
}

func evalLogical(op string, left, right *sitter.Node, src []byte) (Scalar, bool) {
	l, lok := Evaluate(left, src)
	r, rok := Evaluate(right, src)

	if op == "&&" {
		if lok && l.Kind == KindBool && !l.Bool {
			return Boolean(false), true
		}
		if rok && r.Kind == KindBool && !r.Bool {
			return Boolean(false), true
		}
		if lok && rok && l.Kind == KindBool && r.Kind == KindBool {
			return Boolean(l.Bool && r.Bool), true
		}
		return Scalar{}, false
	}

	if lok && l.Kind == KindBool && l.Bool {
		return Boolean(true), true
	}
	if rok && r.Kind == KindBool && r.Bool {
		return Boolean(true), true
	}
	if lok && rok && l.Kind == KindBool && r.Kind == KindBool {
		return Boolean(l.Bool || r.Bool), true
	}
	return Scalar{}, false
}

func evalEquality(l, r Scalar, negate bool) (Scalar, bool) {
	if l.Kind != r.Kind {
		return Scalar{}, false
	}
	var eq bool
	if l.Kind == KindNumber {
		eq = math.Abs(l.Num-r.Num) < Epsilon
	} else {
		eq = l.Bool == r.Bool
	}
	return Boolean(eq != negate), true
}

func evalArith(op string, l, r float64) (Scalar, bool) {
	switch op {
	case "+":
		return Number(l + r), true
	case "-":
		return Number(l - r), true
	case "*":
		return Number(l * r), true
	case "/":
		if math.Abs(r) < Epsilon {
			return Scalar{}, false
		}
		return Number(l / r), true
	case "%":
		if math.Abs(r) < Epsilon {
			return Scalar{}, false
		}
		return Number(math.Mod(l, r)), true
	case "**":
		return Number(math.Pow(l, r)), true
	case "<":
		return Boolean(l < r), true
	case "<=":
		return Boolean(l <= r), true
	case ">":
		return Boolean(l > r), true
	case ">=":
		return Boolean(l >= r), true
	case "&", "|", "^", "<<", ">>":
		if !isIntegral(l) || !isIntegral(r) {
			return Scalar{}, false
		}
		return evalBitwise(op, int64(l), int64(r))
	}
	return Scalar{}, false
}

func evalBitwise(op string, l, r int64) (Scalar, bool) {
	switch op {
	case "&":
		return Number(float64(l & r)), true
	case "|":
		return Number(float64(l | r)), true
	case "^":
		return Number(float64(l ^ r)), true
	case "<<":
		if r < 0 || r > 62 {
			return Scalar{}, false
		}
		return Number(float64(l << uint(r))), true
	case ">>":
		if r < 0 || r > 62 {
			return Scalar{}, false
		}
		return Number(float64(l >> uint(r))), true
	}
	return Scalar{}, false
}

func isIntegral(v float64) bool {
	return v == math.Trunc(v) && math.Abs(v) < 1<<53
}

func parseNumber(text string) (float64, bool) {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		v, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return float64(v), true
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// FormatNumber renders a coefficient the way the rebuilder emits literals:
// no exponent notation, no trailing zeros.
func FormatNumber(v float64) string {
	if math.Abs(v) < Epsilon {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
