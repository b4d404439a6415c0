// Package fixer applies the edits suggested by issues to script files.
package fixer

import (
	"fmt"
	"os"
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/gamemath-labs/mlin/internal/edit"
	"github.com/gamemath-labs/mlin/internal/lints"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

type Fixer struct {
	DryRun        bool
	MinConfidence float64 // threshold for fixing issues
}

func New(dryRun bool, threshold float64) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
	}
}

// Fix rewrites filename with every applicable suggested edit. In dry-run
// mode it prints a unified diff instead of touching the file.
func (f *Fixer) Fix(filename string, issues []tt.Issue) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	original := string(content)
	fixed, applied := f.Apply(original, issues)
	if applied == 0 || fixed == original {
		return nil
	}

	if f.DryRun {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(original),
			B:        difflib.SplitLines(fixed),
			FromFile: filename,
			ToFile:   filename + " (fixed)",
			Context:  3,
		})
		if err != nil {
			return fmt.Errorf("failed to build diff: %w", err)
		}
		fmt.Print(diff)
		return nil
	}

	if err := os.WriteFile(filename, []byte(fixed), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Fixed %d issues in %s\n", applied, filename)
	return nil
}

// Apply composes the suggested edits of issues over source and runs the
// canonical text passes on the result. It returns the rewritten text and the
// number of edits submitted to the composer.
//
// Multiple rules run concurrently, so the incoming issue order is not
// deterministic; edits are ordered by offset first and catalogue rank second
// before composition, which makes overlap resolution reproducible.
func (f *Fixer) Apply(source string, issues []tt.Issue) (string, int) {
	fixable := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Fix == nil || issue.Confidence < f.MinConfidence {
			continue
		}
		fixable = append(fixable, issue)
	}
	if len(fixable) == 0 {
		return source, 0
	}

	sort.SliceStable(fixable, func(i, j int) bool {
		a, b := fixable[i], fixable[j]
		if a.Fix.Start != b.Fix.Start {
			return a.Fix.Start < b.Fix.Start
		}
		if a.Fix.End != b.Fix.End {
			return a.Fix.End < b.Fix.End
		}
		return lints.Rank(a.Rule) < lints.Rank(b.Rule)
	})

	edits := make([]edit.TextEdit, 0, len(fixable))
	for _, issue := range fixable {
		edits = append(edits, *issue.Fix)
	}

	fixed := edit.Compose(source, edits)
	return edit.ApplyPasses(fixed), len(edits)
}
