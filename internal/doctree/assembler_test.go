package doctree

import (
	"testing"

	"github.com/connerohnesorge/turniptext/internal/span"
)

type fakeHeader struct{ name string }

func (f fakeHeader) HostTypeName() string { return f.name }

func headerName(seg *DocSegment) string {
	if seg.Header == nil {
		return "<root>"
	}

	return seg.Header.Value.HostTypeName()
}

// TestAssembler_WeightPlacement walks the classic chap/sec example from
// spec §8: chapters at weight 1, sections at weight 2, and confirms a new
// chapter closes out any open sections while a new section nests under the
// most recent still-open chapter.
func TestAssembler_WeightPlacement(t *testing.T) {
	a := NewAssembler()

	chap1 := a.AppendHeader(fakeHeader{"chap1"}, span.Span{}, 1)
	sec1 := a.AppendHeader(fakeHeader{"sec1"}, span.Span{}, 2)
	sec2 := a.AppendHeader(fakeHeader{"sec2"}, span.Span{}, 2)
	chap2 := a.AppendHeader(fakeHeader{"chap2"}, span.Span{}, 1)

	doc := a.Document(nil)

	if len(doc.Root.Children) != 2 {
		t.Fatalf("expected 2 top-level chapters, got %d", len(doc.Root.Children))
	}
	if doc.Root.Children[0] != chap1 || doc.Root.Children[1] != chap2 {
		t.Fatalf("expected chap1, chap2 as direct children of root")
	}
	if len(chap1.Children) != 2 {
		t.Fatalf("expected chap1 to have 2 sections, got %d", len(chap1.Children))
	}
	if chap1.Children[0] != sec1 || chap1.Children[1] != sec2 {
		t.Fatalf("expected sec1, sec2 nested under chap1")
	}
	if len(chap2.Children) != 0 {
		t.Fatalf("expected chap2 to start with no children, got %d", len(chap2.Children))
	}
}

// TestAssembler_DeeperHeaderNestsUnderShallower covers a sub-section (weight
// 3) nesting under a section (weight 2) nesting under a chapter (weight 1),
// and a later weight-2 header ascending back out of the weight-3 nesting.
func TestAssembler_DeeperHeaderNestsUnderShallower(t *testing.T) {
	a := NewAssembler()

	chap := a.AppendHeader(fakeHeader{"chap"}, span.Span{}, 1)
	sec := a.AppendHeader(fakeHeader{"sec"}, span.Span{}, 2)
	sub := a.AppendHeader(fakeHeader{"sub"}, span.Span{}, 3)
	sec2 := a.AppendHeader(fakeHeader{"sec2"}, span.Span{}, 2)

	doc := a.Document(nil)

	if len(doc.Root.Children) != 1 || doc.Root.Children[0] != chap {
		t.Fatalf("expected a single top-level chapter")
	}
	if len(chap.Children) != 2 || chap.Children[0] != sec || chap.Children[1] != sec2 {
		t.Fatalf("expected sec, sec2 as chap's direct children, got %v", chap.Children)
	}
	if len(sec.Children) != 1 || sec.Children[0] != sub {
		t.Fatalf("expected sub nested directly under sec")
	}
}

// TestAssembler_BlocksAttachToDeepestOpenSegment confirms plain block
// content always lands on whichever segment is currently deepest on the
// spine, not on the root.
func TestAssembler_BlocksAttachToDeepestOpenSegment(t *testing.T) {
	a := NewAssembler()

	p1 := &Paragraph{}
	a.AppendBlock(p1)

	a.AppendHeader(fakeHeader{"chap"}, span.Span{}, 1)
	p2 := &Paragraph{}
	a.AppendBlock(p2)

	doc := a.Document(nil)

	if len(doc.Root.Content.Items) != 1 || doc.Root.Content.Items[0] != p1 {
		t.Fatalf("expected p1 to land on the root segment before any header")
	}
	chap := doc.Root.Children[0]
	if len(chap.Content.Items) != 1 || chap.Content.Items[0] != p2 {
		t.Fatalf("expected p2 to land on the chapter segment")
	}
}
