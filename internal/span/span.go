// Package span locates byte ranges within a source and converts them to
// human-readable line/column positions.
package span

// SourceID identifies one entry on the source stack (see internal/source).
// It is the unit diagnostics and spans use to refer back to "which file".
type SourceID int

// Position is a location in a single source, expressed both as a byte
// offset and as 1-based line / 0-based column coordinates.
type Position struct {
	Source SourceID
	Line   int // 1-based
	Column int // 0-based byte offset within the line
	Offset int // byte offset within the source
}

// Span is a half-open byte range [Start, End) within a single source.
// A zero-length span (Start == End) is valid and marks an insertion point
// (used by fabricated header/paragraph boundaries that have no literal
// bytes of their own).
type Span struct {
	Source SourceID
	Start  int
	End    int
}

// Len reports the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Join returns the smallest span covering both s and other. Both spans must
// belong to the same source; callers that might join spans across sources
// should pick one side's source deliberately instead of calling this.
func (s Span) Join(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}

	return Span{Source: s.Source, Start: start, End: end}
}

// Label pairs a span with a human-readable annotation, the building block
// of a multi-span diagnostic (primary cause plus related locations).
type Label struct {
	Span    Span
	Message string
}
