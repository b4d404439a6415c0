package simplify

import sitter "github.com/smacker/go-tree-sitter"

// Origin labels where a replacement came from.
type Origin string

const (
	OriginMultiplicativeFold Origin = "multiplicative-fold"
	OriginPatternRewrite     Origin = "pattern-rewrite"
)

// Span is a half-open byte range over the original source.
type Span struct {
	Start uint32
	End   uint32
}

// NodeSpan returns the byte span covered by n.
func NodeSpan(n *sitter.Node) Span {
	return Span{Start: n.StartByte(), End: n.EndByte()}
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Provenance records which spans of the original source a pass has already
// claimed, and why. The syntax tree is shared and must stay immutable, so
// this side value is the only place replacement origin is ever written;
// nothing is tagged onto nodes.
type Provenance struct {
	origins map[Span]Origin
}

// NewProvenance returns an empty record. One record lives for one file pass.
func NewProvenance() *Provenance {
	return &Provenance{origins: map[Span]Origin{}}
}

// Mark claims a span.
func (p *Provenance) Mark(s Span, o Origin) {
	p.origins[s] = o
}

// Origin returns the recorded origin for an exact span.
func (p *Provenance) Origin(s Span) (Origin, bool) {
	o, ok := p.origins[s]
	return o, ok
}

// Covered reports whether s lies inside any claimed span. A pass uses this
// to skip sub-expressions of text it has already rewritten.
func (p *Provenance) Covered(s Span) bool {
	for claimed := range p.origins {
		if claimed.Contains(s) {
			return true
		}
	}
	return false
}
