// Package edit composes byte-offset text edits into a single rewrite of a
// source string. Producing one edit is cheap; producing a conflict-free,
// deterministic set out of several independent passes is the part that needs
// care, so the composer works in two phases: reject overlaps first, splice
// second.
package edit

import "sort"

// TextEdit replaces the half-open byte range [Start, End) of the original
// source with Text. Offsets always refer to the original source, never to
// partially rewritten text.
type TextEdit struct {
	Start int
	End   int
	Text  string
}

// Valid reports whether the edit's span fits inside a source of length n.
func (e TextEdit) Valid(n int) bool {
	return e.Start >= 0 && e.Start <= e.End && e.End <= n
}

// Compose applies edits to source and returns the rewritten text.
//
// Edits are stable-sorted by (Start, End), so two edits proposing the same
// span keep their order of discovery. Walking the sorted list, any edit that
// starts before the end of the most recently accepted edit is dropped; the
// earlier edit wins. Accepted edits are then spliced with a forward cursor
// over the original string, which keeps every original offset valid while
// applying.
func Compose(source string, edits []TextEdit) string {
	accepted := Resolve(len(source), edits)
	if len(accepted) == 0 {
		return source
	}

	var out []byte
	cursor := 0
	for _, e := range accepted {
		out = append(out, source[cursor:e.Start]...)
		out = append(out, e.Text...)
		cursor = e.End
	}
	out = append(out, source[cursor:]...)
	return string(out)
}

// Resolve sorts edits and drops the ones that would overlap an earlier
// accepted edit or fall outside a source of length n. The returned slice is
// ordered by start offset and guaranteed conflict-free.
func Resolve(n int, edits []TextEdit) []TextEdit {
	sorted := make([]TextEdit, 0, len(edits))
	for _, e := range edits {
		if e.Valid(n) {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	accepted := sorted[:0]
	lastEnd := -1
	for _, e := range sorted {
		if e.Start < lastEnd {
			continue
		}
		accepted = append(accepted, e)
		lastEnd = e.End
	}
	return accepted
}
