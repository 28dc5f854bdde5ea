package turniperrs

import (
	"fmt"

	"github.com/connerohnesorge/turniptext/internal/span"
)

// UnclosedCodeBracket indicates an eval-bracket ([-, [--, ...) was opened
// but the source ended before a matching close fence was found.
type UnclosedCodeBracket struct {
	OpenSpan span.Span
	N        int
}

func (e *UnclosedCodeBracket) Error() string {
	return fmt.Sprintf(
		"unclosed eval-bracket opened with fence count %d at byte %d",
		e.N, e.OpenSpan.Start,
	)
}

func (e *UnclosedCodeBracket) Kind() Kind { return Lexical }

func (e *UnclosedCodeBracket) Primary() span.Span { return e.OpenSpan }

// UnclosedRawScope indicates a #{ / ##{ / ... raw scope was opened but the
// source ended before its matching }# close fence was found.
type UnclosedRawScope struct {
	OpenSpan span.Span
	N        int
}

func (e *UnclosedRawScope) Error() string {
	return fmt.Sprintf(
		"unclosed raw scope opened with fence count %d at byte %d",
		e.N, e.OpenSpan.Start,
	)
}

func (e *UnclosedRawScope) Kind() Kind { return Lexical }

func (e *UnclosedRawScope) Primary() span.Span { return e.OpenSpan }

// DanglingEscape indicates a backslash was the last byte of the source,
// with nothing to escape.
type DanglingEscape struct {
	Span span.Span
}

func (e *DanglingEscape) Error() string {
	return fmt.Sprintf("dangling '\\' at end of source, byte %d", e.Span.Start)
}

func (e *DanglingEscape) Kind() Kind { return Lexical }

func (e *DanglingEscape) Primary() span.Span { return e.Span }

// NulInSource indicates a pushed source's bytes contain a NUL byte, which
// spec §3 disallows outright for a source-unit's contents.
type NulInSource struct {
	Span span.Span
	Name string
}

func (e *NulInSource) Error() string {
	return fmt.Sprintf("source %q contains a NUL byte at byte %d", e.Name, e.Span.Start)
}

func (e *NulInSource) Kind() Kind { return Lexical }

func (e *NulInSource) Primary() span.Span { return e.Span }

// InvalidUTF8 indicates a pushed source's bytes are not valid UTF-8, which
// spec §3 requires of a source-unit's contents.
type InvalidUTF8 struct {
	Span span.Span
	Name string
}

func (e *InvalidUTF8) Error() string {
	return fmt.Sprintf("source %q is not valid UTF-8 at byte %d", e.Name, e.Span.Start)
}

func (e *InvalidUTF8) Kind() Kind { return Lexical }

func (e *InvalidUTF8) Primary() span.Span { return e.Span }
