// Package doctree defines the document tree spec §3/§4.7 describe: the
// Text/Raw/embedded-value inline primitives, Sentence/Paragraph/Blocks
// block structure, and the DocSegment tree that headers are folded into.
package doctree

import (
	"github.com/connerohnesorge/turniptext/internal/hostiface"
	"github.com/connerohnesorge/turniptext/internal/span"
)

// InlineNode is any element that can appear inside a Sentence: literal
// text, a raw-scope body, or the result of an eval-bracket classified as
// CapabilityInline (or CapabilityNone, folded in as-is).
type InlineNode interface{ isInline() }

// Text is a run of literal characters, with any escape sequences already
// resolved and any hyphen runs already expanded (spec §4.6).
type Text struct {
	Span    span.Span
	Content string
}

func (*Text) isInline() {}

// Raw is the literal body of a raw scope (spec §4.5): no escape
// processing, no further tokenization, exactly the bytes between the
// fences with only newline normalization applied.
type Raw struct {
	Span    span.Span
	Content string
}

func (*Raw) isInline() {}

// EmbeddedInline wraps a host value produced by an eval-bracket that
// either has no build capability (used as-is) or was classified
// CapabilityInline and already built from the inline run that followed it.
type EmbeddedInline struct {
	Span  span.Span
	Value hostiface.HostValue
}

func (*EmbeddedInline) isInline() {}

// InlineGroup is an anonymous `{ ... }` scope at inline position with no
// preceding eval-bracket: plain grouping, not attached to any host value.
// Its content is still nested (not flattened into the parent run) so a
// diagnostic span over just the group remains meaningful.
type InlineGroup struct {
	Span    span.Span
	Content Inlines
}

func (*InlineGroup) isInline() {}

// Inlines is a flat run of InlineNodes, the payload handed to
// BuilderDispatcher.BuildFromInlines.
type Inlines struct {
	Span  span.Span
	Items []InlineNode
}

// Sentence is a maximal run of inline content up to (and not including) a
// sentence terminator, per spec §4.3's Sentence frame kind.
type Sentence struct {
	Span    span.Span
	Inlines Inlines
}

// Paragraph is a maximal run of Sentences separated only by whitespace,
// ended by a blank line or an enclosing scope boundary.
type Paragraph struct {
	Span      span.Span
	Sentences []Sentence
}

func (*Paragraph) isBlock() {}

// BlockNode is any element that can appear directly in a Blocks sequence:
// a paragraph, an anonymous group, or an embedded value classified
// CapabilityBlock.
type BlockNode interface{ isBlock() }

// EmbeddedBlock wraps a host value classified CapabilityBlock (used as-is,
// or built from the Blocks that followed it), or a header's value when it
// serves as a DocSegment's Header.
type EmbeddedBlock struct {
	Span  span.Span
	Value hostiface.HostValue
}

func (*EmbeddedBlock) isBlock() {}

// BlockGroup is an anonymous `{ ... }` scope at block position with no
// preceding eval-bracket: plain grouping, analogous to InlineGroup.
type BlockGroup struct {
	Span    span.Span
	Content Blocks
}

func (*BlockGroup) isBlock() {}

// Blocks is a flat sequence of BlockNodes, the payload handed to
// BuilderDispatcher.BuildFromBlocks and the content of a DocSegment.
type Blocks struct {
	Span  span.Span
	Items []BlockNode
}

// DocSegment is one node of the header tree spec §4.7 builds: the segment
// introduced by a header of a given weight, holding the blocks that follow
// it up to the next header of equal-or-lesser weight, and the child
// segments introduced by headers of strictly greater weight nested inside
// it.
type DocSegment struct {
	// Weight is the header's weight. The synthetic root segment has
	// Weight set to MinWeight, and every real header attaches somewhere
	// under it.
	Weight int
	// Header is nil for the synthetic root segment, and otherwise the
	// embedded value the header's eval-bracket produced.
	Header   *EmbeddedBlock
	Content  Blocks
	Children []*DocSegment
}

// MinWeight is the root segment's weight, -2^31. Assembler.AppendHeader
// never ascends past the root, so a header whose weight is at or below
// MinWeight still attaches directly under it.
const MinWeight = -1 << 31

// Document is the top-level parse result: the root segment plus any
// non-fatal diagnostics accumulated during the parse (spec §7's policy of
// returning warnings alongside a successful Document).
type Document struct {
	Root        *DocSegment
	Diagnostics []error
}
