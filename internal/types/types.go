package types

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gamemath-labs/mlin/internal/edit"
)

// Position is a location inside one source file. Line and Column are
// 1-based for display; Offset is the byte offset the fixer operates on.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Issue represents a simplification opportunity found in a script.
type Issue struct {
	Rule       string         `json:"rule"`
	Category   string         `json:"category,omitempty"`
	Filename   string         `json:"filename"`
	Message    string         `json:"message"`
	Suggestion string         `json:"suggestion,omitempty"`
	Note       string         `json:"note,omitempty"`
	Confidence float64        `json:"confidence"`
	Severity   Severity       `json:"severity"`
	Start      Position       `json:"start"`
	End        Position       `json:"end"`
	Fix        *edit.TextEdit `json:"-"`
}

// Severity controls how an issue is reported. SeverityOff disables a rule.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "off"
	}
}

func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("severity must be a scalar, got %v", value.Kind)
	}
	// value.Value is the raw scalar text, so a bare `off` works no matter
	// how the resolver tagged it.
	switch raw := value.Value; raw {
	case "off", "":
		*s = SeverityOff
	case "error":
		*s = SeverityError
	case "warning", "warn":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity %q", raw)
	}
	return nil
}

// ConfigRule is the per-rule block of the configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
