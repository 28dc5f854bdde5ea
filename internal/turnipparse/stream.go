package turnipparse

import (
	"strings"

	"github.com/connerohnesorge/turniptext/internal/lexer"
	"github.com/connerohnesorge/turniptext/internal/token"
)

// stream wraps a Lexer with a small lookahead buffer, so block- and
// sentence-level parsing can peek one or more tokens ahead to decide which
// construct is starting, or whether a scope is block-shaped or
// inline-shaped, without consuming anything until the decision is made.
type stream struct {
	lx  *lexer.Lexer
	buf []token.Token
}

func newStream(lx *lexer.Lexer) *stream {
	return &stream{lx: lx}
}

// fill grows buf to at least n tokens. Once the lexer has produced an EOF
// token it keeps producing EOF on every further call, so fill never needs
// to special-case running past the end.
func (s *stream) fill(n int) error {
	for len(s.buf) < n {
		t, err := s.lx.Next()
		if err != nil {
			return err
		}
		s.buf = append(s.buf, t)
	}

	return nil
}

func (s *stream) next() (token.Token, error) {
	if err := s.fill(1); err != nil {
		return token.Token{}, err
	}

	t := s.buf[0]
	s.buf = s.buf[1:]

	return t, nil
}

// peek returns the next token without consuming it.
func (s *stream) peek() (token.Token, error) {
	return s.peekAt(0)
}

// peekAt returns the token i positions ahead without consuming it (i=0 is
// the same token peek/next would see next).
func (s *stream) peekAt(i int) (token.Token, error) {
	if err := s.fill(i + 1); err != nil {
		return token.Token{}, err
	}

	return s.buf[i], nil
}

func isBlankOtherText(tk token.Token) bool {
	return tk.Type == token.OtherText && strings.TrimSpace(tk.Text()) == ""
}

// scopeOpenIsBlockShaped looks ahead from the current position (which must
// be immediately after a consumed ScopeOpen) to decide whether that brace
// opens a BlockScope or an InlineScope, per spec §4.3: optional whitespace
// then a Newline (or EOF) resolves to block shape; anything else resolves
// to inline shape. It does not consume any tokens.
func (s *stream) scopeOpenIsBlockShaped() (bool, error) {
	for i := 0; ; i++ {
		tk, err := s.peekAt(i)
		if err != nil {
			return false, err
		}

		switch {
		case tk.Type == token.Newline || tk.Type == token.EOF:
			return true, nil
		case isBlankOtherText(tk):
			continue
		default:
			return false, nil
		}
	}
}

// consumeBlockScopeOpenTrailer consumes the whitespace and Newline a
// block-shaped ScopeOpen is followed by, once scopeOpenIsBlockShaped has
// confirmed that shape; the scope's content begins on the next line.
func (s *stream) consumeBlockScopeOpenTrailer() error {
	for {
		tk, err := s.peek()
		if err != nil {
			return err
		}

		switch {
		case tk.Type == token.Newline:
			_, err := s.next()

			return err
		case isBlankOtherText(tk):
			if _, err := s.next(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// nextScopeOpenAttaches reports whether a ScopeOpen immediately follows the
// current position, skipping only whitespace-only OtherText (a Newline
// does not get skipped: it ends the attachment opportunity), per spec
// §4.4's "next non-inert token" rule governing whether an eval-bracket's
// value becomes an awaiting_builder or is emitted immediately.
func (s *stream) nextScopeOpenAttaches() (bool, error) {
	for i := 0; ; i++ {
		tk, err := s.peekAt(i)
		if err != nil {
			return false, err
		}

		switch {
		case tk.Type == token.ScopeOpen:
			return true, nil
		case isBlankOtherText(tk):
			continue
		default:
			return false, nil
		}
	}
}

// skipInertWhitespace consumes any whitespace-only OtherText tokens at the
// current position, the same run nextScopeOpenAttaches and
// scopeOpenIsBlockShaped look past without consuming.
func (s *stream) skipInertWhitespace() error {
	for {
		tk, err := s.peek()
		if err != nil {
			return err
		}
		if !isBlankOtherText(tk) {
			return nil
		}
		if _, err := s.next(); err != nil {
			return err
		}
	}
}

// consumeBlankLineNewline is called immediately after a sentence-ending
// Newline has been consumed. It looks past any whitespace-only OtherText
// for a second Newline (spec §4.3's "two consecutive Newlines with only
// whitespace between"); if found, it consumes through that Newline and
// reports true (the paragraph ends). Otherwise it consumes nothing,
// leaving any whitespace for the next sentence, and reports false.
func (s *stream) consumeBlankLineNewline() (bool, error) {
	for i := 0; ; i++ {
		tk, err := s.peekAt(i)
		if err != nil {
			return false, err
		}

		switch {
		case tk.Type == token.Newline:
			for j := 0; j <= i; j++ {
				if _, err := s.next(); err != nil {
					return false, err
				}
			}

			return true, nil
		case isBlankOtherText(tk):
			continue
		default:
			return false, nil
		}
	}
}
