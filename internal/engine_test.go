package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gamemath-labs/mlin/internal/types"
)

func TestEngineRunSource(t *testing.T) {
	engine, err := NewEngine(".", nil)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("var d = foo * 2 * 3;\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "simplify-multiplicative", issues[0].Rule)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "6 * foo", issues[0].Suggestion)
}

func TestEngineRunSetsFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "player.js")
	require.NoError(t, os.WriteFile(path, []byte("var d = foo * 2 * 3;\n"), 0o644))

	engine, err := NewEngine(dir, nil)
	require.NoError(t, err)

	issues, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, path, issues[0].Filename)
}

func TestEngineCollectsAcrossRules(t *testing.T) {
	src := []byte("var d = sqrt(dx * dx + dy * dy);\nx++;\nx--;\n")

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)

	issues, err := engine.RunSource(src)
	require.NoError(t, err)

	byRule := map[string]int{}
	for _, issue := range issues {
		byRule[issue.Rule]++
	}
	assert.Equal(t, 1, byRule["distance-fold"])
	assert.Equal(t, 2, byRule["net-zero-update"])
}

func TestEngineIgnoreRule(t *testing.T) {
	engine, err := NewEngine(".", nil)
	require.NoError(t, err)
	engine.IgnoreRule("simplify-multiplicative")

	issues, err := engine.RunSource([]byte("var d = foo * 2 * 3;\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)

	assert.NotContains(t, engine.Rules(), "simplify-multiplicative")
	assert.Contains(t, engine.Rules(), "net-zero-update")
}

func TestEngineConfiguredSeverity(t *testing.T) {
	engine, err := NewEngine(".", map[string]tt.ConfigRule{
		"simplify-multiplicative": {Severity: tt.SeverityError},
		"net-zero-update":         {Severity: tt.SeverityOff},
	})
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("var d = foo * 2 * 3;\nx++;\nx--;\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "simplify-multiplicative", issues[0].Rule)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
}

func TestNewSourceCode(t *testing.T) {
	sc := NewSourceCode("a\nb\nc")
	assert.Equal(t, []string{"a", "b", "c"}, sc.Lines)
}
