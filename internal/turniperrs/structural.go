package turniperrs

import (
	"fmt"

	"github.com/connerohnesorge/turniptext/internal/span"
)

// UnmatchedScopeClose indicates a '}' (or raw-scope close) was seen with no
// corresponding open frame on the builder-context stack.
type UnmatchedScopeClose struct {
	Span span.Span
}

func (e *UnmatchedScopeClose) Error() string {
	return fmt.Sprintf("unmatched scope close at byte %d", e.Span.Start)
}

func (e *UnmatchedScopeClose) Kind() Kind { return Structural }

func (e *UnmatchedScopeClose) Primary() span.Span { return e.Span }

// UnclosedScope indicates the source (or an included source) ended while
// one or more block/inline/raw scopes were still open. OpenSpans lists the
// open points, innermost last; the parser fills in one entry, the innermost
// scope it was parsing when the source ran out.
type UnclosedScope struct {
	OpenSpans []span.Label
}

func (e *UnclosedScope) Error() string {
	return fmt.Sprintf("%d scope(s) still open at end of source", len(e.OpenSpans))
}

func (e *UnclosedScope) Kind() Kind { return Structural }

// Primary returns the innermost still-open span, the one the parser was
// looking at when the source ran out.
func (e *UnclosedScope) Primary() span.Span {
	if len(e.OpenSpans) == 0 {
		return span.Span{}
	}

	return e.OpenSpans[len(e.OpenSpans)-1].Span
}

// FenceMismatch indicates a close fence was found whose hash/dash count
// does not match the count of the currently open fence at that nesting
// level (the innermost one, since fences do not nest by count).
type FenceMismatch struct {
	OpenSpan  span.Span
	CloseSpan span.Span
	Want, Got int
}

func (e *FenceMismatch) Error() string {
	return fmt.Sprintf(
		"fence mismatch: opened with count %d at byte %d, close at byte %d has count %d",
		e.Want, e.OpenSpan.Start, e.CloseSpan.Start, e.Got,
	)
}

func (e *FenceMismatch) Kind() Kind { return Structural }

func (e *FenceMismatch) Primary() span.Span { return e.CloseSpan }

// SentenceBreakInScope indicates a construct was closed mid-sentence in a
// context where spec §4.3 requires sentence boundaries to align with scope
// boundaries (a Sentence frame closing without having seen its terminator).
type SentenceBreakInScope struct {
	Span span.Span
}

func (e *SentenceBreakInScope) Error() string {
	return fmt.Sprintf("scope closed mid-sentence at byte %d", e.Span.Start)
}

func (e *SentenceBreakInScope) Kind() Kind { return Structural }

func (e *SentenceBreakInScope) Primary() span.Span { return e.Span }

// InlineScopeOpenedMidLineButBlockShape indicates a ScopeOpen seen in
// inline mode resolved to block shape (optional whitespace then a Newline
// immediately follows the brace), which only a BlockScope may do; inline
// mode has no frame to open a block inside without first closing its
// enclosing sentence.
type InlineScopeOpenedMidLineButBlockShape struct {
	Span span.Span
}

func (e *InlineScopeOpenedMidLineButBlockShape) Error() string {
	return fmt.Sprintf("block-shaped scope opened mid-line at byte %d", e.Span.Start)
}

func (e *InlineScopeOpenedMidLineButBlockShape) Kind() Kind { return Structural }

func (e *InlineScopeOpenedMidLineButBlockShape) Primary() span.Span { return e.Span }

// InlineScopeClosedAcrossNewline indicates an InlineScope's ScopeClose was
// not found on the same logical line as its ScopeOpen: a Newline was seen
// before the matching close.
type InlineScopeClosedAcrossNewline struct {
	OpenSpan span.Span
	NLSpan   span.Span
}

func (e *InlineScopeClosedAcrossNewline) Error() string {
	return fmt.Sprintf(
		"inline scope opened at byte %d crosses a newline at byte %d before closing",
		e.OpenSpan.Start, e.NLSpan.Start,
	)
}

func (e *InlineScopeClosedAcrossNewline) Kind() Kind { return Structural }

func (e *InlineScopeClosedAcrossNewline) Primary() span.Span { return e.NLSpan }

// SameLineContentAfterBlock indicates non-whitespace content followed a
// Block or Header emitted from an eval-bracket on the same source line;
// spec requires the next such content to start only after a Newline.
type SameLineContentAfterBlock struct {
	Span span.Span
}

func (e *SameLineContentAfterBlock) Error() string {
	return fmt.Sprintf("content follows a block/header on the same line at byte %d", e.Span.Start)
}

func (e *SameLineContentAfterBlock) Kind() Kind { return Structural }

func (e *SameLineContentAfterBlock) Primary() span.Span { return e.Span }
