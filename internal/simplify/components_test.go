package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func components(coefficient float64, factors ...Factor) Components {
	c := NewComponents(coefficient)
	for _, f := range factors {
		c.AddFactor(f.Text, f.Exp)
	}
	return c
}

func TestCollect(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected Components
	}{
		{
			name:     "numeric chain",
			expr:     "foo * 2 * 3",
			expected: components(6, Factor{"foo", 1}),
		},
		{
			name:     "pure number",
			expr:     "2 * 5",
			expected: components(10),
		},
		{
			name:     "zero coefficient",
			expr:     "0 * foo",
			expected: components(0, Factor{"foo", 1}),
		},
		{
			name:     "repeated factor",
			expr:     "x * x * 2",
			expected: components(2, Factor{"x", 2}),
		},
		{
			name:     "cancellation",
			expr:     "x * y / x",
			expected: components(1, Factor{"y", 1}),
		},
		{
			name:     "division folds coefficients",
			expr:     "foo * 10 / 4",
			expected: components(2.5, Factor{"foo", 1}),
		},
		{
			name:     "member and call factors",
			expr:     "obj.speed * sqrt(2) * 3",
			expected: components(3, Factor{"obj.speed", 1}, Factor{"sqrt(2)", 1}),
		},
		{
			name:     "unary minus negates",
			expr:     "-foo * 2",
			expected: components(-2, Factor{"foo", 1}),
		},
		{
			name:     "parenthesized opaque interior",
			expr:     "(a + b) * 2",
			expected: components(2, Factor{"a + b", 1}),
		},
		{
			name: "leftover reciprocal degrades to opaque division",
			expr: "(hp / max_hp) * 100 / 10",
			// hp / max_hp cannot cancel against anything, so the inner
			// division becomes a single factor before the outer one folds.
			expected: components(10, Factor{"hp / max_hp", 1}),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, src := exprNode(t, tc.expr)
			got, ok := Collect(node, src)
			require.True(t, ok)
			assert.True(t, tc.expected.Equal(got),
				"expected %v * %v, got %v * %v",
				tc.expected.Coefficient, tc.expected.Factors(),
				got.Coefficient, got.Factors())
		})
	}
}

func TestCollectFails(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"bare addition", "a + b"},
		{"subtraction", "a - b"},
		{"division by zero literal", "foo / 0"},
		{"division by zero expression", "foo / (2 - 2)"},
		{"comparison", "a < b"},
		{"string operand", `"s" * 2`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, src := exprNode(t, tc.expr)
			_, ok := Collect(node, src)
			assert.False(t, ok)
		})
	}
}

func TestAddFactorZeroExponentRemoves(t *testing.T) {
	c := NewComponents(1)
	c.AddFactor("x", 2)
	c.AddFactor("y", 1)
	c.AddFactor("x", -2)

	factors := c.Factors()
	require.Len(t, factors, 1)
	assert.Equal(t, Factor{Text: "y", Exp: 1}, factors[0])
	assert.False(t, c.HasNegativeExponent())
}

func TestFactorsPreserveInsertionOrder(t *testing.T) {
	c := NewComponents(1)
	c.AddFactor("b", 1)
	c.AddFactor("a", 1)
	c.AddFactor("b", 1)

	factors := c.Factors()
	require.Len(t, factors, 2)
	assert.Equal(t, "b", factors[0].Text)
	assert.Equal(t, 2, factors[0].Exp)
	assert.Equal(t, "a", factors[1].Text)
}

func TestComponentsEqualIgnoresOrder(t *testing.T) {
	a := components(2, Factor{"x", 1}, Factor{"y", 1})
	b := components(2, Factor{"y", 1}, Factor{"x", 1})
	assert.True(t, a.Equal(b))

	c := components(2.5, Factor{"x", 1}, Factor{"y", 1})
	assert.False(t, a.Equal(c))
}
