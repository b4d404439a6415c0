package lints

import (
	"fmt"
	"math"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gamemath-labs/mlin/internal/parse"
	"github.com/gamemath-labs/mlin/internal/simplify"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

// updateRun accumulates the net numeric delta a sequence of consecutive
// update statements applies to one variable inside one block body.
type updateRun struct {
	variable string
	delta    float64
	stmts    []*sitter.Node
}

// DetectNetZeroUpdates removes runs of increment, decrement and compound
// assignment statements whose net effect on a variable is exactly zero.
//
// Per block and variable the scan moves NoPendingRun -> Accumulating and then
// flushes or discards: a plain assignment to the variable flushes the pending
// run and starts a fresh one; any other statement touching the variable, or
// the end of the block, flushes everything. A flushed run is deleted only
// when |delta| < 1e-10; a nonzero net change stays observable, so none of
// its statements are removed. A `*= 1` or `/= 1` is a no-op on its own and is
// removed independently of any accumulation.
func DetectNetZeroUpdates(filename string, root *sitter.Node, src []byte, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	for _, stmts := range statementBlocks(root) {
		runs := map[string]*updateRun{}

		flush := func(run *updateRun) {
			delete(runs, run.variable)
			if math.Abs(run.delta) >= simplify.Epsilon || len(run.stmts) == 0 {
				return
			}
			for _, stmt := range run.stmts {
				issues = append(issues, newIssue(
					"net-zero-update",
					filename,
					fmt.Sprintf("updates to `%s` cancel out to a net change of zero", run.variable),
					stmt,
					removeStatement(src, stmt),
					severity,
				))
			}
		}

		for _, stmt := range stmts {
			kind, variable, delta := classifyUpdate(stmt, src)

			// Any statement mentioning some other tracked variable reads
			// it, whatever else the statement does; `y = x;` between two
			// updates of x keeps both observable.
			text := parse.Content(stmt, src)
			for _, run := range pendingRuns(runs) {
				if kind != updateNone && run.variable == variable {
					continue
				}
				if wordPattern(run.variable).MatchString(text) {
					flush(run)
				}
			}

			switch kind {
			case updateAccumulate:
				run := runs[variable]
				if run == nil {
					run = &updateRun{variable: variable}
					runs[variable] = run
				}
				run.delta += delta
				run.stmts = append(run.stmts, stmt)

			case updateScaleByOne:
				issues = append(issues, newIssue(
					"net-zero-update",
					filename,
					fmt.Sprintf("scaling `%s` by one has no effect", variable),
					stmt,
					removeStatement(src, stmt),
					severity,
				))

			case updateAssign:
				if run := runs[variable]; run != nil {
					flush(run)
				}
			}
		}

		for _, run := range pendingRuns(runs) {
			flush(run)
		}
	}

	return issues, nil
}

type updateKind int

const (
	updateNone updateKind = iota
	updateAccumulate
	updateScaleByOne
	updateAssign
)

// classifyUpdate inspects one statement and reports how it participates in
// the accumulation, if at all.
func classifyUpdate(stmt *sitter.Node, src []byte) (updateKind, string, float64) {
	if stmt == nil || stmt.Type() != "expression_statement" {
		return updateNone, "", 0
	}
	expr := stmt.NamedChild(0)
	if expr == nil {
		return updateNone, "", 0
	}

	switch expr.Type() {
	case "update_expression":
		variable := identText(expr.ChildByFieldName("argument"), src)
		if variable == "" {
			return updateNone, "", 0
		}
		if parse.Operator(expr, src) == "++" {
			return updateAccumulate, variable, 1
		}
		return updateAccumulate, variable, -1

	case "augmented_assignment_expression":
		variable := identText(expr.ChildByFieldName("left"), src)
		if variable == "" {
			return updateNone, "", 0
		}
		op := parse.Operator(expr, src)
		right := expr.ChildByFieldName("right")

		switch op {
		case "+=", "-=":
			value, ok := simplify.Evaluate(right, src)
			if !ok || value.Kind != simplify.KindNumber {
				return updateNone, "", 0
			}
			if op == "-=" {
				return updateAccumulate, variable, -value.Num
			}
			return updateAccumulate, variable, value.Num
		case "*=", "/=":
			if numberText(right, src, "1") {
				return updateScaleByOne, variable, 0
			}
		}
		return updateNone, "", 0

	case "assignment_expression":
		variable := identText(expr.ChildByFieldName("left"), src)
		if variable == "" {
			return updateNone, "", 0
		}
		return updateAssign, variable, 0
	}

	return updateNone, "", 0
}

// pendingRuns snapshots the active runs so flushing can mutate the map.
func pendingRuns(runs map[string]*updateRun) []*updateRun {
	out := make([]*updateRun, 0, len(runs))
	for _, run := range runs {
		out = append(out, run)
	}
	return out
}
