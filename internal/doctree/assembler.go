package doctree

import (
	"github.com/connerohnesorge/turniptext/internal/hostiface"
	"github.com/connerohnesorge/turniptext/internal/span"
)

// Assembler incrementally builds the DocSegment tree as the parser walks
// through a source's top-level blocks, per spec §4.7: each new header
// ascends the current spine while the spine's weight is greater than or
// equal to the header's own weight, then attaches as a child of the
// deepest remaining ancestor (whose weight is then strictly less than the
// header's).
type Assembler struct {
	root  *DocSegment
	spine []*DocSegment // root first, deepest last
}

// NewAssembler creates an Assembler with a synthetic root segment that
// every header attaches under, directly or indirectly.
func NewAssembler() *Assembler {
	root := &DocSegment{Weight: MinWeight}

	return &Assembler{root: root, spine: []*DocSegment{root}}
}

// current returns the deepest segment on the spine: the one new blocks and
// (pending ascent) new headers attach to.
func (a *Assembler) current() *DocSegment {
	return a.spine[len(a.spine)-1]
}

// AppendBlock appends block to the content of the current deepest segment.
func (a *Assembler) AppendBlock(block BlockNode) {
	cur := a.current()
	cur.Content.Items = append(cur.Content.Items, block)
}

// AppendHeader places a new header at the given weight: it first ascends
// the spine while the current deepest segment's weight is >= weight (so a
// header never nests under a sibling or shallower header), then attaches
// as a child of whatever remains, and descends the spine into the new
// segment so subsequent content and any greater-weight header attaches
// there instead.
func (a *Assembler) AppendHeader(value hostiface.HostValue, headerSpan span.Span, weight int) *DocSegment {
	for len(a.spine) > 1 && a.current().Weight >= weight {
		a.spine = a.spine[:len(a.spine)-1]
	}

	seg := &DocSegment{
		Weight: weight,
		Header: &EmbeddedBlock{Span: headerSpan, Value: value},
	}

	parent := a.current()
	parent.Children = append(parent.Children, seg)
	a.spine = append(a.spine, seg)

	return seg
}

// Document finalizes the tree built so far into a Document, attaching
// diagnostics accumulated separately by the caller.
func (a *Assembler) Document(diagnostics []error) *Document {
	return &Document{Root: a.root, Diagnostics: diagnostics}
}
