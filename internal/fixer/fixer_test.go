package fixer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamemath-labs/mlin/internal/edit"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

func issueWithFix(rule string, confidence float64, start, end int, text string) tt.Issue {
	return tt.Issue{
		Rule:       rule,
		Confidence: confidence,
		Fix:        &edit.TextEdit{Start: start, End: end, Text: text},
	}
}

func TestApply(t *testing.T) {
	f := New(false, 0.75)

	t.Run("single fix", func(t *testing.T) {
		source := "var d = foo * 2 * 3;"
		issues := []tt.Issue{
			issueWithFix("simplify-multiplicative", 1.0, 8, 19, "6 * foo"),
		}
		fixed, applied := f.Apply(source, issues)
		assert.Equal(t, 1, applied)
		assert.Equal(t, "var d = 6 * foo;", fixed)
	})

	t.Run("low confidence skipped", func(t *testing.T) {
		source := "var d = foo * 2 * 3;"
		issues := []tt.Issue{
			issueWithFix("simplify-multiplicative", 0.5, 8, 19, "6 * foo"),
		}
		fixed, applied := f.Apply(source, issues)
		assert.Equal(t, 0, applied)
		assert.Equal(t, source, fixed)
	})

	t.Run("missing fix skipped", func(t *testing.T) {
		source := "var d = foo;"
		issues := []tt.Issue{{Rule: "epsilon-zero-check", Confidence: 1.0}}
		fixed, applied := f.Apply(source, issues)
		assert.Equal(t, 0, applied)
		assert.Equal(t, source, fixed)
	})

	t.Run("catalogue rank breaks same-span ties", func(t *testing.T) {
		source := "var d = a * 1;"
		// multiply-by-one outranks net-zero-update regardless of the order
		// the goroutines delivered them in.
		issues := []tt.Issue{
			issueWithFix("net-zero-update", 1.0, 8, 13, "zzz"),
			issueWithFix("multiply-by-one", 1.0, 8, 13, "a"),
		}
		fixed, applied := f.Apply(source, issues)
		assert.Equal(t, 2, applied)
		assert.Equal(t, "var d = a;", fixed)
	})

	t.Run("overlapping fixes keep the earlier span", func(t *testing.T) {
		source := "0123456789"
		issues := []tt.Issue{
			issueWithFix("multiply-by-one", 1.0, 3, 8, "B"),
			issueWithFix("simplify-multiplicative", 1.0, 0, 5, "A"),
		}
		fixed, applied := f.Apply(source, issues)
		assert.Equal(t, 2, applied)
		assert.Equal(t, "A56789", fixed)
	})

	t.Run("string literals elsewhere stay intact", func(t *testing.T) {
		source := "var msg = \"a * 1\";\nvar x = b * 1;\n"
		issues := []tt.Issue{
			issueWithFix("multiply-by-one", 1.0, 27, 32, "b"),
		}
		fixed, applied := f.Apply(source, issues)
		assert.Equal(t, 1, applied)
		assert.Equal(t, "var msg = \"a * 1\";\nvar x = b;\n", fixed)
	})

	t.Run("canonical passes run after composition", func(t *testing.T) {
		source := "var a = q * 1;\nvar b = .5;\n"
		issues := []tt.Issue{
			issueWithFix("simplify-multiplicative", 1.0, 23, 25, ".5"),
		}
		fixed, applied := f.Apply(source, issues)
		assert.Equal(t, 1, applied)
		assert.Equal(t, "var a = q;\nvar b = 0.5;\n", fixed)
	})
}

func TestFixRewritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.js")
	require.NoError(t, os.WriteFile(path, []byte("var d = foo * 2 * 3;\n"), 0o644))

	f := New(false, 0.75)
	issues := []tt.Issue{
		issueWithFix("simplify-multiplicative", 1.0, 8, 19, "6 * foo"),
	}
	require.NoError(t, f.Fix(path, issues))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var d = 6 * foo;\n", string(content))
}

func TestFixDryRunLeavesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.js")
	original := "var d = foo * 2 * 3;\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	f := New(true, 0.75)
	issues := []tt.Issue{
		issueWithFix("simplify-multiplicative", 1.0, 8, 19, "6 * foo"),
	}
	require.NoError(t, f.Fix(path, issues))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}
