package source

import "testing"

func TestStack_PushAssignsMonotonicIDs(t *testing.T) {
	s := NewStack(0)

	a, warn, err := s.Push("a.tt", []byte("hello"))
	if err != nil || warn != nil {
		t.Fatalf("Push(a) = warn %v, err %v, want nil, nil", warn, err)
	}
	b, warn, err := s.Push("b.tt", []byte("world"))
	if err != nil || warn != nil {
		t.Fatalf("Push(b) = warn %v, err %v, want nil, nil", warn, err)
	}

	if a.ID == b.ID {
		t.Fatalf("expected distinct IDs, got %d and %d", a.ID, b.ID)
	}
	if s.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", s.Depth())
	}
	if top := s.Top(); top != b {
		t.Fatalf("Top() = %v, want %v", top, b)
	}
}

func TestStack_PushRecursionWarningOnReuse(t *testing.T) {
	s := NewStack(0)

	if _, _, err := s.Push("a.tt", nil); err != nil {
		t.Fatalf("Push(a) error: %v", err)
	}
	if _, _, err := s.Push("b.tt", nil); err != nil {
		t.Fatalf("Push(b) error: %v", err)
	}

	_, warn, err := s.Push("a.tt", nil)
	if err != nil {
		t.Fatalf("Push(a again) error: %v", err)
	}
	if warn == nil {
		t.Fatalf("expected a RecursionWarning when re-pushing an open source name")
	}
	if warn.Name != "a.tt" || warn.Depth != 0 {
		t.Fatalf("warning = %+v, want Name=a.tt Depth=0", warn)
	}
}

func TestStack_PushRecursionLimit(t *testing.T) {
	s := NewStack(2)

	if _, _, err := s.Push("a.tt", nil); err != nil {
		t.Fatalf("Push(a) error: %v", err)
	}
	if _, _, err := s.Push("b.tt", nil); err != nil {
		t.Fatalf("Push(b) error: %v", err)
	}

	_, _, err := s.Push("c.tt", nil)
	if err == nil {
		t.Fatalf("expected ErrRecursionLimit pushing past maxDepth")
	}
	if _, ok := err.(*ErrRecursionLimit); !ok {
		t.Fatalf("error = %T, want *ErrRecursionLimit", err)
	}
}

func TestStack_PopRestoresPriorTop(t *testing.T) {
	s := NewStack(0)

	a, _, _ := s.Push("a.tt", nil)
	b, _, _ := s.Push("b.tt", nil)

	popped := s.Pop()
	if popped != b {
		t.Fatalf("Pop() = %v, want %v", popped, b)
	}
	if s.Top() != a {
		t.Fatalf("Top() after pop = %v, want %v", s.Top(), a)
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() after pop = %d, want 1", s.Depth())
	}
}

func TestStack_PopEmptyReturnsNil(t *testing.T) {
	s := NewStack(0)
	if got := s.Pop(); got != nil {
		t.Fatalf("Pop() on empty stack = %v, want nil", got)
	}
	if got := s.Top(); got != nil {
		t.Fatalf("Top() on empty stack = %v, want nil", got)
	}
}

func TestStack_PushRejectsNulByte(t *testing.T) {
	s := NewStack(0)

	_, _, err := s.Push("a.tt", []byte("hello\x00world"))
	if err == nil {
		t.Fatalf("expected ErrNulByte pushing a source with a NUL byte")
	}
	nb, ok := err.(*ErrNulByte)
	if !ok {
		t.Fatalf("error = %T, want *ErrNulByte", err)
	}
	if nb.Offset != 5 {
		t.Fatalf("Offset = %d, want 5", nb.Offset)
	}
}

func TestStack_PushRejectsInvalidUTF8(t *testing.T) {
	s := NewStack(0)

	_, _, err := s.Push("a.tt", []byte("hello\xffworld"))
	if err == nil {
		t.Fatalf("expected ErrInvalidUTF8 pushing a source with invalid UTF-8")
	}
	ub, ok := err.(*ErrInvalidUTF8)
	if !ok {
		t.Fatalf("error = %T, want *ErrInvalidUTF8", err)
	}
	if ub.Offset != 5 {
		t.Fatalf("Offset = %d, want 5", ub.Offset)
	}
}

func TestSource_LineIndex(t *testing.T) {
	src := &Source{ID: 0, Name: "x.tt", Bytes: []byte("one\ntwo")}
	idx := src.LineIndex()
	if idx.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", idx.LineCount())
	}
}
