// Package token defines the lexical tokens produced by internal/lexer, one
// fine-grained type per delimiter per spec §3's Token sum type.
package token

import "github.com/connerohnesorge/turniptext/internal/span"

// Type identifies the lexical category of a Token.
type Type uint8

const (
	// EOF signals end of input; Span is zero-length at len(source).
	EOF Type = iota
	// Newline is a line ending: "\n", "\r\n", or a lone "\r", all
	// normalized to represent a single logical newline.
	Newline
	// Escaped is a backslash followed by one of \n \\ [ ] { } #.
	Escaped
	// Hashes is a run of n>=1 '#' not immediately followed by '{' and not
	// resolved into a comment. The lexer's Next never actually returns
	// this standalone (see doc comment on Lexer.Next); it exists so the
	// Type enum mirrors spec §3 exactly and remains constructible for
	// tests that want to assert the non-reachability directly.
	Hashes
	// CodeOpen is '[' followed by a run of n>=0 '-'.
	CodeOpen
	// CodeClose is a run of n>=0 '-' followed by ']'.
	CodeClose
	// ScopeOpen is a bare '{' not preceded by a hash-run.
	ScopeOpen
	// ScopeClose is a bare '}' not followed by a hash-run.
	ScopeClose
	// RawScopeOpen is a run of n>=1 '#' immediately followed by '{'.
	RawScopeOpen
	// RawScopeClose is '}' immediately followed by a run of n>=1 '#'.
	RawScopeClose
	// Hyphens is a run of n>=1 '-' not immediately followed by ']'.
	Hyphens
	// OtherText is the largest contiguous run of text that is none of
	// the above.
	OtherText
)

//nolint:revive // exhaustive switch reads better flat than table-driven here
func (t Type) String() string {
	switch t {
	case EOF:
		return "EOF"
	case Newline:
		return "Newline"
	case Escaped:
		return "Escaped"
	case Hashes:
		return "Hashes"
	case CodeOpen:
		return "CodeOpen"
	case CodeClose:
		return "CodeClose"
	case ScopeOpen:
		return "ScopeOpen"
	case ScopeClose:
		return "ScopeClose"
	case RawScopeOpen:
		return "RawScopeOpen"
	case RawScopeClose:
		return "RawScopeClose"
	case Hyphens:
		return "Hyphens"
	case OtherText:
		return "OtherText"
	default:
		return "Unknown"
	}
}

// Token is one lexical unit: its type, its span in the owning source, a
// zero-copy view of the bytes it covers, and a fence count N for the token
// kinds that carry one (CodeOpen/CodeClose/RawScopeOpen/RawScopeClose/
// Hashes/Hyphens). Escaped carries the escaped byte in Ch instead.
type Token struct {
	Type  Type
	Span  span.Span
	Bytes []byte
	N     int
	Ch    byte
}

// Text returns a copy of the token's source bytes as a string.
func (t Token) Text() string { return string(t.Bytes) }

// IsFence reports whether the token carries a meaningful fence count.
func (t Token) IsFence() bool {
	switch t.Type {
	case CodeOpen, CodeClose, RawScopeOpen, RawScopeClose, Hashes, Hyphens:
		return true
	case EOF, Newline, Escaped, ScopeOpen, ScopeClose, OtherText:
		return false
	default:
		return false
	}
}
