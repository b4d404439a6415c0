package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectUndefinedGuard(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{
			name:     "positive comparison",
			code:     "var len = sqrt(d == undefined ? 0 : d);",
			expected: "var len = sqrt(d ?? 0);",
		},
		{
			name:     "negated comparison",
			code:     "var v = dir != undefined ? dir : point_distance(0, 0, x, y);",
			expected: "var v = dir ?? point_distance(0, 0, x, y);",
		},
		{
			name:     "strict operators",
			code:     "var len = sqrt(d === undefined ? 1 : d);",
			expected: "var len = sqrt(d ?? 1);",
		},
		{
			name:     "undefined on the left",
			code:     "var len = sqrt(undefined == d ? 0 : d);",
			expected: "var len = sqrt(d ?? 0);",
		},
		{
			name:     "member expression subject",
			code:     "var s = p.spd != undefined ? p.spd : lengthdir_x(1, dir);",
			expected: "var s = p.spd ?? lengthdir_x(1, dir);",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issues := runDetector(t, DetectUndefinedGuard, tc.code)
			require.Len(t, issues, 1)
			assert.Equal(t, "undefined-guard-fold", issues[0].Rule)
			assert.Equal(t, tc.expected, applyFixes(tc.code, issues))
		})
	}
}

func TestDetectUndefinedGuardNoIssue(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{
			name: "no numeric context",
			code: `var n = name == undefined ? "?" : name;`,
		},
		{
			name: "arms do not mirror the subject",
			code: "var v = sqrt(d == undefined ? 0 : e);",
		},
		{
			name: "comparison against null",
			code: "var v = sqrt(d == null ? 0 : d);",
		},
		{
			name: "plain ternary",
			code: "var v = sqrt(a > b ? a : b);",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issues := runDetector(t, DetectUndefinedGuard, tc.code)
			assert.Empty(t, issues)
		})
	}
}

func TestDetectEpsilonZeroCheck(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{
			name:     "zero on the right",
			code:     "if (lengthdir_x(spd, dir) == 0) { spd = 0; }",
			expected: "if (abs(lengthdir_x(spd, dir)) < 0.0000001) { spd = 0; }",
		},
		{
			name:     "zero on the left",
			code:     "if (0 == sqrt(q)) { q = 1; }",
			expected: "if (abs(sqrt(q)) < 0.0000001) { q = 1; }",
		},
		{
			name:     "strict equality",
			code:     "if (point_distance(0, 0, dx, dy) === 0) { stop(); }",
			expected: "if (abs(point_distance(0, 0, dx, dy)) < 0.0000001) { stop(); }",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issues := runDetector(t, DetectEpsilonZeroCheck, tc.code)
			require.Len(t, issues, 1)
			assert.Equal(t, "epsilon-zero-check", issues[0].Rule)
			assert.Equal(t, tc.expected, applyFixes(tc.code, issues))
		})
	}
}

func TestDetectEpsilonZeroCheckNoIssue(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"no numeric context", "if (count == 0) { list = []; }"},
		{"inequality untouched", "if (sqrt(q) != 0) { go(); }"},
		{"less-than untouched", "if (sqrt(q) < 0) { go(); }"},
		{"nonzero literal", "if (sqrt(q) == 1) { go(); }"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issues := runDetector(t, DetectEpsilonZeroCheck, tc.code)
			assert.Empty(t, issues)
		})
	}
}
