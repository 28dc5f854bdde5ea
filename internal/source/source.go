// Package source implements the push/pop source stack that backs file
// includes: each entry owns its bytes and is assigned a stable span.SourceID,
// and the stack enforces a maximum include depth so a self-including file
// fails instead of hanging.
package source

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/connerohnesorge/turniptext/internal/span"
)

// DefaultMaxDepth is the default recursion limit on the number of nested
// Push calls the stack will accept before returning ErrRecursionLimit.
const DefaultMaxDepth = 128

// Source is one pushed document: a name (a file path, or a synthetic label
// like "<root>"), its bytes, and the ID diagnostics use to refer to it.
type Source struct {
	ID    span.SourceID
	Name  string
	Bytes []byte
}

// LineIndex lazily builds and returns a span.LineIndex over this source's
// bytes, suitable for rendering a diagnostic excerpt.
func (s *Source) LineIndex() *span.LineIndex {
	return span.NewLineIndex(s.Bytes)
}

// ErrRecursionLimit is returned by Push once the stack's depth would exceed
// its configured maximum.
type ErrRecursionLimit struct {
	MaxDepth int
	Name     string
}

func (e *ErrRecursionLimit) Error() string {
	return fmt.Sprintf(
		"include depth exceeds limit of %d while pushing %q",
		e.MaxDepth, e.Name,
	)
}

// ErrNulByte is returned by Push when contents contains a NUL byte: spec
// §3 requires a source-unit's contents to contain none.
type ErrNulByte struct {
	Name   string
	Source span.SourceID
	Offset int
}

func (e *ErrNulByte) Error() string {
	return fmt.Sprintf("source %q contains a NUL byte at offset %d", e.Name, e.Offset)
}

// ErrInvalidUTF8 is returned by Push when contents is not valid UTF-8: spec
// §3 requires a source-unit's contents to be validated UTF-8.
type ErrInvalidUTF8 struct {
	Name   string
	Source span.SourceID
	Offset int
}

func (e *ErrInvalidUTF8) Error() string {
	return fmt.Sprintf("source %q is not valid UTF-8 at offset %d", e.Name, e.Offset)
}

// firstInvalidUTF8 scans b for the first byte position where decoding fails,
// reporting ok=false if b is entirely valid UTF-8.
func firstInvalidUTF8(b []byte) (offset int, ok bool) {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i, true
		}
		i += size
	}

	return 0, false
}

// RecursionWarning is a non-fatal diagnostic produced when a source name
// already present somewhere on the stack is pushed again. This is usually
// a mutually-recursive include rather than a bug, so it is a warning, not
// a fatal error: the push still succeeds unless it also trips the depth
// limit.
type RecursionWarning struct {
	Name  string
	Depth int
}

func (w *RecursionWarning) Error() string {
	return fmt.Sprintf(
		"source %q is already open higher on the include stack (depth %d)",
		w.Name, w.Depth,
	)
}

// Stack is a push/pop stack of Sources, handing out monotonically
// increasing SourceIDs and tracking include depth and name reuse.
type Stack struct {
	maxDepth int
	entries  []*Source
	nextID   span.SourceID
}

// NewStack creates an empty Stack with the given maximum include depth.
// A maxDepth of 0 selects DefaultMaxDepth.
func NewStack(maxDepth int) *Stack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &Stack{maxDepth: maxDepth}
}

// Push opens a new source as a child of the current top of stack. It
// returns the pushed Source, an optional non-fatal *RecursionWarning when
// name is already open somewhere on the stack, and a fatal error:
// *ErrRecursionLimit if pushing would exceed the configured depth,
// *ErrNulByte if contents holds a NUL byte, or *ErrInvalidUTF8 if contents
// is not valid UTF-8.
func (s *Stack) Push(name string, contents []byte) (*Source, *RecursionWarning, error) {
	if len(s.entries) >= s.maxDepth {
		return nil, nil, &ErrRecursionLimit{MaxDepth: s.maxDepth, Name: name}
	}
	if i := bytes.IndexByte(contents, 0); i >= 0 {
		return nil, nil, &ErrNulByte{Name: name, Source: s.nextID, Offset: i}
	}
	if i, bad := firstInvalidUTF8(contents); bad {
		return nil, nil, &ErrInvalidUTF8{Name: name, Source: s.nextID, Offset: i}
	}

	var warning *RecursionWarning
	for depth, e := range s.entries {
		if e.Name == name {
			warning = &RecursionWarning{Name: name, Depth: depth}

			break
		}
	}

	src := &Source{ID: s.nextID, Name: name, Bytes: contents}
	s.nextID++
	s.entries = append(s.entries, src)

	return src, warning, nil
}

// Pop closes the current top-of-stack source and returns it. Pop on an
// empty stack returns nil.
func (s *Stack) Pop() *Source {
	if len(s.entries) == 0 {
		return nil
	}

	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]

	return top
}

// Top returns the current top-of-stack source without popping it, or nil
// if the stack is empty.
func (s *Stack) Top() *Source {
	if len(s.entries) == 0 {
		return nil
	}

	return s.entries[len(s.entries)-1]
}

// Depth returns the number of sources currently open.
func (s *Stack) Depth() int { return len(s.entries) }
