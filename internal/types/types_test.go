package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSeverityUnmarshal(t *testing.T) {
	var rules map[string]ConfigRule
	input := "a:\n  severity: error\nb:\n  severity: off\nc:\n  severity: warn\n"
	require.NoError(t, yaml.Unmarshal([]byte(input), &rules))

	assert.Equal(t, SeverityError, rules["a"].Severity)
	assert.Equal(t, SeverityOff, rules["b"].Severity)
	assert.Equal(t, SeverityWarning, rules["c"].Severity)
}

func TestSeverityUnmarshalRejectsUnknown(t *testing.T) {
	var rule ConfigRule
	err := yaml.Unmarshal([]byte("severity: loud\n"), &rule)
	assert.Error(t, err)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "off", SeverityOff.String())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "3:14", Position{Line: 3, Column: 14}.String())
}
