package simplify

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamemath-labs/mlin/internal/parse"
)

// exprNode parses `var __t = <expr>;` and returns the initializer node.
func exprNode(t *testing.T, expr string) (*sitter.Node, []byte) {
	t.Helper()
	src := []byte("var __t = " + expr + ";")
	tree, err := parse.Parse(context.Background(), src)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	var value *sitter.Node
	parse.Walk(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Type() == "variable_declarator" {
			value = n.ChildByFieldName("value")
			return false
		}
		return true
	})
	require.NotNil(t, value, "no initializer found for %q", expr)
	return value, src
}

func TestEvaluateNumbers(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected float64
	}{
		{"integer literal", "42", 42},
		{"float literal", "0.5", 0.5},
		{"hex literal", "0xff", 255},
		{"unary minus", "-3", -3},
		{"unary plus", "+3", 3},
		{"bitwise not", "~0", -1},
		{"addition", "1 + 2", 3},
		{"subtraction", "5 - 2", 3},
		{"multiplication", "2 * 3 * 4", 24},
		{"division", "10 / 4", 2.5},
		{"modulo", "7 % 3", 1},
		{"exponent", "2 ** 10", 1024},
		{"parenthesized", "((1 + 2)) * 3", 9},
		{"shift", "1 << 4", 16},
		{"bitwise and", "6 & 3", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, src := exprNode(t, tc.expr)
			got, ok := Evaluate(node, src)
			require.True(t, ok)
			require.Equal(t, KindNumber, got.Kind)
			assert.InDelta(t, tc.expected, got.Num, Epsilon)
		})
	}
}

func TestEvaluateBooleans(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected bool
	}{
		{"true literal", "true", true},
		{"negation", "!true", false},
		{"comparison", "1 < 2", true},
		{"equality", "2 == 2", true},
		{"strict inequality", "2 !== 3", true},
		{"logical and", "true && false", false},
		{"logical or", "false || true", true},
		// short-circuit: the unknown side never matters
		{"and short-circuit", "unknown_var && false", false},
		{"or short-circuit", "true || unknown_var", true},
		{"or short-circuit right", "unknown_var || true", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, src := exprNode(t, tc.expr)
			got, ok := Evaluate(node, src)
			require.True(t, ok)
			require.Equal(t, KindBool, got.Kind)
			assert.Equal(t, tc.expected, got.Bool)
		})
	}
}

func TestEvaluateUnknown(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"identifier", "speed"},
		{"member access", "obj.health"},
		{"call", "sqrt(2)"},
		{"division by zero", "1 / 0"},
		{"modulo by zero", "5 % 0"},
		{"division by zero expression", "3 / (2 - 2)"},
		{"and with unknown both", "a && b"},
		{"string literal", `"hi"`},
		{"mixed kinds", "1 + true"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, src := exprNode(t, tc.expr)
			_, ok := Evaluate(node, src)
			assert.False(t, ok)
		})
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	node, src := exprNode(t, "2 * 3 + 1")
	first, ok1 := Evaluate(node, src)
	second, ok2 := Evaluate(node, src)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "6", FormatNumber(6))
	assert.Equal(t, "0.5", FormatNumber(0.5))
	assert.Equal(t, "-2.25", FormatNumber(-2.25))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "0", FormatNumber(1e-12))
}
