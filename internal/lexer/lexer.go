// Package lexer implements the byte-cursor tokenizer described in spec §4.1:
// a restartable, single-pass scanner that turns source bytes into the
// token.Type stream, plus two literal-capture helpers the parser drives
// directly when it is inside an eval-bracket body or a raw-scope body,
// where no further tokenization happens at all.
package lexer

import (
	"strings"

	"github.com/connerohnesorge/turniptext/internal/span"
	"github.com/connerohnesorge/turniptext/internal/token"
	"github.com/connerohnesorge/turniptext/internal/turniperrs"
)

// Lexer scans one source's bytes from left to right. It never looks behind
// its current position, so it can be handed off mid-stream to either Next
// (normal tokenization) or one of the Capture* methods (literal scanning)
// depending on what the parser currently expects.
type Lexer struct {
	source span.SourceID
	src    []byte
	pos    int
}

// New creates a Lexer over src's bytes, tagging every span it produces with
// sourceID.
func New(sourceID span.SourceID, src []byte) *Lexer {
	return &Lexer{source: sourceID, src: src}
}

// Pos returns the current byte offset.
func (l *Lexer) Pos() int { return l.pos }

// AtEOF reports whether the cursor has reached the end of the source.
func (l *Lexer) AtEOF() bool { return l.pos >= len(l.src) }

func (l *Lexer) span(start int) span.Span {
	return span.Span{Source: l.source, Start: start, End: l.pos}
}

func (l *Lexer) tok(start int, typ token.Type) token.Token {
	return token.Token{Type: typ, Span: l.span(start), Bytes: l.src[start:l.pos]}
}

// escapable is the set of bytes a backslash can escape, per spec §4.1 rule
// 3. '\r' is included so that "\<CR>" and "\<CRLF>" are both recognized as
// an escaped newline, collapsing to a single logical character.
func escapable(b byte) bool {
	switch b {
	case '\n', '\r', '\\', '[', ']', '{', '}', '#':
		return true
	default:
		return false
	}
}

func isSpecialStart(b byte) bool {
	switch b {
	case '\\', '#', '[', ']', '-', '{', '}', '\r', '\n':
		return true
	default:
		return false
	}
}

// isEscapeAt reports whether an escape sequence begins at pos (src[pos] is
// '\\' and the following byte is one of the escapable set).
func (l *Lexer) isEscapeAt(pos int) bool {
	if pos >= len(l.src) || l.src[pos] != '\\' {
		return false
	}
	if pos+1 >= len(l.src) {
		return false
	}

	return escapable(l.src[pos+1])
}

// Next returns the next token in normal mode: the mode used in block and
// inline contexts, outside any eval-bracket or raw-scope body.
//
// Hashes is never returned standalone by this method. Spec §4.1 rule 2
// ("# starting anywhere outside a raw-scope body begins a comment") and
// rule 4 ("a run of # directly followed by { is RawScopeOpen(n)") together
// fully resolve every '#' run the instant its next byte is known: either it
// is swallowed as a discarded comment, or it becomes a RawScopeOpen. There
// is no position where a hash-run survives as its own token, so Hashes
// exists in the token.Type enum for API completeness (matching spec §3's
// Token sum type) but this lexer never constructs one.
func (l *Lexer) Next() (token.Token, error) {
	for {
		if l.AtEOF() {
			return token.Token{Type: token.EOF, Span: l.span(l.pos)}, nil
		}

		start := l.pos
		b := l.src[start]

		switch {
		case b == '\n':
			l.pos++

			return l.tok(start, token.Newline), nil

		case b == '\r':
			l.pos++
			if !l.AtEOF() && l.src[l.pos] == '\n' {
				l.pos++
			}

			return l.tok(start, token.Newline), nil

		case b == '\\':
			if l.isEscapeAt(start) {
				return l.lexEscaped(start), nil
			}
			if start+1 >= len(l.src) {
				l.pos = start + 1

				return token.Token{}, &turniperrs.DanglingEscape{Span: l.span(start)}
			}

			return l.lexText(), nil

		case b == '#':
			if tk, consumed := l.lexHashRun(start); consumed {
				return tk, nil
			}
			// comment: discarded, loop back around for the real next token

		case b == '[':
			return l.lexCodeOpen(start), nil

		case b == '-':
			return l.lexDashRun(start), nil

		case b == ']':
			l.pos++
			tk := l.tok(start, token.CodeClose)
			tk.N = 0

			return tk, nil

		case b == '{':
			l.pos++

			return l.tok(start, token.ScopeOpen), nil

		case b == '}':
			return l.lexCloseBrace(start), nil

		default:
			return l.lexText(), nil
		}
	}
}

func (l *Lexer) lexEscaped(start int) token.Token {
	l.pos++ // backslash
	ch := l.src[l.pos]
	l.pos++
	if ch == '\r' && !l.AtEOF() && l.src[l.pos] == '\n' {
		l.pos++
	}
	if ch == '\r' {
		ch = '\n'
	}

	tk := l.tok(start, token.Escaped)
	tk.Ch = ch

	return tk
}

// lexHashRun consumes a maximal run of '#' starting at start. If the run is
// immediately followed by '{' it returns a RawScopeOpen token and true.
// Otherwise the run begins a comment extending to (not including) the next
// newline or EOF; the comment is discarded and it returns (zero, false) so
// the caller's loop fetches the following real token.
func (l *Lexer) lexHashRun(start int) (token.Token, bool) {
	for !l.AtEOF() && l.src[l.pos] == '#' {
		l.pos++
	}
	n := l.pos - start

	if !l.AtEOF() && l.src[l.pos] == '{' {
		l.pos++
		tk := l.tok(start, token.RawScopeOpen)
		tk.N = n

		return tk, true
	}

	for !l.AtEOF() && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
		l.pos++
	}

	return token.Token{}, false
}

func (l *Lexer) lexCodeOpen(start int) token.Token {
	l.pos++ // '['
	for !l.AtEOF() && l.src[l.pos] == '-' {
		l.pos++
	}
	tk := l.tok(start, token.CodeOpen)
	tk.N = l.pos - start - 1

	return tk
}

// lexDashRun consumes a maximal run of '-'. If immediately followed by ']'
// it resolves to CodeClose(n) (consuming the ']' too); otherwise to
// Hyphens(n) covering just the dash run.
func (l *Lexer) lexDashRun(start int) token.Token {
	for !l.AtEOF() && l.src[l.pos] == '-' {
		l.pos++
	}
	n := l.pos - start

	if !l.AtEOF() && l.src[l.pos] == ']' {
		l.pos++
		tk := l.tok(start, token.CodeClose)
		tk.N = n

		return tk
	}

	tk := l.tok(start, token.Hyphens)
	tk.N = n

	return tk
}

// lexCloseBrace consumes '}' and resolves it to ScopeClose, or to
// RawScopeClose(n) if a run of n>=1 '#' immediately follows.
func (l *Lexer) lexCloseBrace(start int) token.Token {
	l.pos++ // '}'
	hashStart := l.pos
	for !l.AtEOF() && l.src[l.pos] == '#' {
		l.pos++
	}
	n := l.pos - hashStart

	if n == 0 {
		return l.tok(start, token.ScopeClose)
	}

	tk := l.tok(start, token.RawScopeClose)
	tk.N = n

	return tk
}

// lexText consumes the largest contiguous run of plain text starting at the
// current position: anything that is not a newline, a genuine escape
// sequence, or the start of #, [, ], -, {, }. A backslash that does not begin
// a recognized escape is ordinary text and does not end the run, unless it
// is the last byte of the source, in which case the run stops short of it
// so Next sees a bare trailing backslash and reports DanglingEscape.
func (l *Lexer) lexText() token.Token {
	start := l.pos
	for !l.AtEOF() {
		b := l.src[l.pos]
		if b == '\\' {
			if l.isEscapeAt(l.pos) || l.pos+1 >= len(l.src) {
				break
			}

			l.pos++

			continue
		}
		if isSpecialStart(b) {
			break
		}
		l.pos++
	}

	return l.tok(start, token.OtherText)
}

// CaptureCode scans literally from the current position for a close fence
// of exactly n dashes followed by ']', per spec §4.4: every byte up to that
// point is content (CRLF/CR normalized to LF), and a dash run followed by
// ']' whose count does not equal n is passed through as literal text rather
// than ending the capture. Returns the content, the span of the consumed
// close fence, and a *turniperrs.UnclosedCodeBracket if the source ends
// first.
func (l *Lexer) CaptureCode(openSpan span.Span, n int) (string, span.Span, error) {
	var buf strings.Builder

	for {
		if l.AtEOF() {
			return "", span.Span{}, &turniperrs.UnclosedCodeBracket{OpenSpan: openSpan, N: n}
		}

		b := l.src[l.pos]

		switch {
		case b == '-':
			dashStart := l.pos
			for !l.AtEOF() && l.src[l.pos] == '-' {
				l.pos++
			}
			count := l.pos - dashStart
			if !l.AtEOF() && l.src[l.pos] == ']' && count == n {
				l.pos++

				return buf.String(), l.span(dashStart), nil
			}
			buf.Write(l.src[dashStart:l.pos])

		case b == ']' && n == 0:
			closeStart := l.pos
			l.pos++

			return buf.String(), l.span(closeStart), nil

		case b == '\r':
			buf.WriteByte('\n')
			l.pos++
			if !l.AtEOF() && l.src[l.pos] == '\n' {
				l.pos++
			}

		default:
			buf.WriteByte(b)
			l.pos++
		}
	}
}

// CaptureRaw scans literally from the current position for a close fence of
// '}' followed by exactly n '#', per spec §4.5: a '}' followed by any other
// count of '#' is literal content, and the scan continues past it one byte
// at a time. Returns a *turniperrs.UnclosedRawScope if the source ends
// first.
func (l *Lexer) CaptureRaw(openSpan span.Span, n int) (string, span.Span, error) {
	var buf strings.Builder

	for {
		if l.AtEOF() {
			return "", span.Span{}, &turniperrs.UnclosedRawScope{OpenSpan: openSpan, N: n}
		}

		b := l.src[l.pos]

		switch {
		case b == '}':
			braceStart := l.pos
			tmp := l.pos + 1
			count := 0
			for tmp < len(l.src) && l.src[tmp] == '#' {
				count++
				tmp++
			}
			if count == n {
				l.pos = tmp

				return buf.String(), l.span(braceStart), nil
			}
			buf.WriteByte('}')
			l.pos++

		case b == '\r':
			buf.WriteByte('\n')
			l.pos++
			if !l.AtEOF() && l.src[l.pos] == '\n' {
				l.pos++
			}

		default:
			buf.WriteByte(b)
			l.pos++
		}
	}
}
