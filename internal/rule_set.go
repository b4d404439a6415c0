package internal

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/lints"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// LintRule defines the interface for all simplification rules.
type LintRule interface {
	// Check runs the rule over one parsed file and returns its issues.
	Check(filename string, root *sitter.Node, src []byte) ([]tt.Issue, error)

	// Name returns the name of the rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

type baseRule struct {
	severity tt.Severity
}

func (r *baseRule) Severity() tt.Severity     { return r.severity }
func (r *baseRule) SetSeverity(s tt.Severity) { r.severity = s }

type MultiplicativeSimplifyRule struct{ baseRule }

func NewMultiplicativeSimplifyRule() LintRule {
	return &MultiplicativeSimplifyRule{baseRule{tt.SeverityWarning}}
}

func (r *MultiplicativeSimplifyRule) Check(filename string, root *sitter.Node, src []byte) ([]tt.Issue, error) {
	return lints.DetectMultiplicativeSimplification(filename, root, src, r.severity)
}

func (r *MultiplicativeSimplifyRule) Name() string { return "simplify-multiplicative" }

type ReciprocalDivisionRule struct{ baseRule }

func NewReciprocalDivisionRule() LintRule {
	return &ReciprocalDivisionRule{baseRule{tt.SeverityWarning}}
}

func (r *ReciprocalDivisionRule) Check(filename string, root *sitter.Node, src []byte) ([]tt.Issue, error) {
	return lints.DetectReciprocalDivision(filename, root, src, r.severity)
}

func (r *ReciprocalDivisionRule) Name() string { return "reciprocal-division" }

type DistanceFoldRule struct{ baseRule }

func NewDistanceFoldRule() LintRule {
	return &DistanceFoldRule{baseRule{tt.SeverityInfo}}
}

func (r *DistanceFoldRule) Check(filename string, root *sitter.Node, src []byte) ([]tt.Issue, error) {
	return lints.DetectSumOfSquares(filename, root, src, r.severity)
}

func (r *DistanceFoldRule) Name() string { return "distance-fold" }

type HalfRotationFusionRule struct{ baseRule }

func NewHalfRotationFusionRule() LintRule {
	return &HalfRotationFusionRule{baseRule{tt.SeverityInfo}}
}

func (r *HalfRotationFusionRule) Check(filename string, root *sitter.Node, src []byte) ([]tt.Issue, error) {
	return lints.DetectHalfRotationFusion(filename, root, src, r.severity)
}

func (r *HalfRotationFusionRule) Name() string { return "half-rotation-fusion" }

type MultiplyByOneRule struct{ baseRule }

func NewMultiplyByOneRule() LintRule {
	return &MultiplyByOneRule{baseRule{tt.SeverityWarning}}
}

func (r *MultiplyByOneRule) Check(filename string, root *sitter.Node, src []byte) ([]tt.Issue, error) {
	return lints.DetectMultiplyByOne(filename, root, src, r.severity)
}

func (r *MultiplyByOneRule) Name() string { return "multiply-by-one" }

type UndefinedGuardRule struct{ baseRule }

func NewUndefinedGuardRule() LintRule {
	return &UndefinedGuardRule{baseRule{tt.SeverityInfo}}
}

func (r *UndefinedGuardRule) Check(filename string, root *sitter.Node, src []byte) ([]tt.Issue, error) {
	return lints.DetectUndefinedGuard(filename, root, src, r.severity)
}

func (r *UndefinedGuardRule) Name() string { return "undefined-guard-fold" }

type EpsilonZeroCheckRule struct{ baseRule }

func NewEpsilonZeroCheckRule() LintRule {
	return &EpsilonZeroCheckRule{baseRule{tt.SeverityInfo}}
}

func (r *EpsilonZeroCheckRule) Check(filename string, root *sitter.Node, src []byte) ([]tt.Issue, error) {
	return lints.DetectEpsilonZeroCheck(filename, root, src, r.severity)
}

func (r *EpsilonZeroCheckRule) Name() string { return "epsilon-zero-check" }

type NetZeroUpdateRule struct{ baseRule }

func NewNetZeroUpdateRule() LintRule {
	return &NetZeroUpdateRule{baseRule{tt.SeverityWarning}}
}

func (r *NetZeroUpdateRule) Check(filename string, root *sitter.Node, src []byte) ([]tt.Issue, error) {
	return lints.DetectNetZeroUpdates(filename, root, src, r.severity)
}

func (r *NetZeroUpdateRule) Name() string { return "net-zero-update" }
