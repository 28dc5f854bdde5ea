package turnipparse

import (
	"github.com/connerohnesorge/turniptext/internal/doctree"
	"github.com/connerohnesorge/turniptext/internal/hostiface"
	"github.com/connerohnesorge/turniptext/internal/span"
	"github.com/connerohnesorge/turniptext/internal/token"
	"github.com/connerohnesorge/turniptext/internal/turniperrs"
)

// parseParagraph parses a maximal run of Sentences: a single Newline ends
// a Sentence but continues the Paragraph, while two consecutive Newlines
// (a blank line) end the Paragraph itself, as does EOF or the enclosing
// scope's close. seed, if non-nil, is an already-evaluated inline value
// that starts the first sentence (used when an eval-bracket classified
// Inline/None was found at block position, which implicitly begins a new
// paragraph rather than being a block in its own right).
func (p *Parser) parseParagraph(s *stream, seed doctree.InlineNode) (*doctree.Paragraph, error) {
	var seedItems []doctree.InlineNode
	if seed != nil {
		seedItems = []doctree.InlineNode{seed}
	}

	var sentences []doctree.Sentence
	for {
		sent, blank, stop, err := p.parseSentence(s, seedItems)
		seedItems = nil
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, sent)
		if blank || stop {
			break
		}
	}

	para := &doctree.Paragraph{Sentences: sentences}
	if len(sentences) > 0 {
		para.Span = sentences[0].Span.Join(sentences[len(sentences)-1].Span)
	}

	return para, nil
}

// parseSentence consumes inline content up to (and consuming, where
// present) the terminating newline(s), or up to EOF/the enclosing scope's
// close (both left unconsumed for the caller to see). It reports whether a
// blank line followed (ending the paragraph) and whether the sentence
// should be the paragraph's last regardless (EOF/scope-close).
func (p *Parser) parseSentence(s *stream, seed []doctree.InlineNode) (doctree.Sentence, bool, bool, error) {
	items := append([]doctree.InlineNode{}, seed...)

	for {
		tk, err := s.peek()
		if err != nil {
			return doctree.Sentence{}, false, false, err
		}

		switch tk.Type {
		case token.EOF, token.ScopeClose:
			return finishSentence(items), false, true, nil

		case token.RawScopeClose, token.CodeClose:
			return doctree.Sentence{}, false, false, &turniperrs.UnmatchedScopeClose{Span: tk.Span}

		case token.Newline:
			_, _ = s.next()
			blank, err := s.consumeBlankLineNewline()
			if err != nil {
				return doctree.Sentence{}, false, false, err
			}

			return finishSentence(items), blank, false, nil

		case token.OtherText:
			_, _ = s.next()
			items = append(items, &doctree.Text{Span: tk.Span, Content: tk.Text()})

		case token.Escaped:
			_, _ = s.next()
			items = append(items, &doctree.Text{Span: tk.Span, Content: string(tk.Ch)})

		case token.Hyphens:
			_, _ = s.next()
			items = append(items, &doctree.Text{Span: tk.Span, Content: expandHyphens(tk.N)})

		case token.ScopeOpen:
			_, _ = s.next()
			blockShaped, err := s.scopeOpenIsBlockShaped()
			if err != nil {
				return doctree.Sentence{}, false, false, err
			}
			if blockShaped {
				return doctree.Sentence{}, false, false, &turniperrs.InlineScopeOpenedMidLineButBlockShape{Span: tk.Span}
			}
			inner, err := p.parseInlinesUntilClose(s, tk.Span)
			if err != nil {
				return doctree.Sentence{}, false, false, err
			}
			items = append(items, &doctree.InlineGroup{Span: tk.Span, Content: inner})

		case token.RawScopeOpen:
			_, _ = s.next()
			content, closeSpan, err := s.lx.CaptureRaw(tk.Span, tk.N)
			if err != nil {
				return doctree.Sentence{}, false, false, err
			}
			items = append(items, &doctree.Raw{Span: tk.Span.Join(closeSpan), Content: content})

		case token.CodeOpen:
			_, _ = s.next()
			node, err := p.parseEvalBracketAsInline(s, tk.Span, tk.N)
			if err != nil {
				return doctree.Sentence{}, false, false, err
			}
			items = append(items, node)

		default:
			// Hashes is never emitted standalone by internal/lexer; see
			// its Next doc comment. Treat it as the following token's
			// job by skipping, rather than looping forever on a type
			// this switch does not otherwise recognize.
			_, _ = s.next()
		}
	}
}

// parseInlinesUntilClose parses the content of a nested inline scope (an
// anonymous InlineGroup, or the body supplied to BuildFromInlines): a flat
// run of inline items with no sentence subdivision, ended by the matching
// ScopeClose. openSpan is the ScopeOpen that started this scope, for the
// InlineScopeClosedAcrossNewline error when a Newline is seen before that
// close: an InlineScope must close on the same logical line it opened.
func (p *Parser) parseInlinesUntilClose(s *stream, openSpan span.Span) (doctree.Inlines, error) {
	var items []doctree.InlineNode

	for {
		tk, err := s.peek()
		if err != nil {
			return doctree.Inlines{}, err
		}

		switch tk.Type {
		case token.EOF:
			return doctree.Inlines{}, &turniperrs.UnclosedScope{
				OpenSpans: []span.Label{{Span: openSpan, Message: "inline scope opened here"}},
			}

		case token.ScopeClose:
			_, _ = s.next()
			inl := doctree.Inlines{Items: items}
			if len(items) > 0 {
				inl.Span = spanOf(items[0]).Join(spanOf(items[len(items)-1]))
			}

			return inl, nil

		case token.RawScopeClose, token.CodeClose:
			return doctree.Inlines{}, &turniperrs.UnmatchedScopeClose{Span: tk.Span}

		case token.Newline:
			return doctree.Inlines{}, &turniperrs.InlineScopeClosedAcrossNewline{OpenSpan: openSpan, NLSpan: tk.Span}

		case token.OtherText:
			_, _ = s.next()
			items = append(items, &doctree.Text{Span: tk.Span, Content: tk.Text()})

		case token.Escaped:
			_, _ = s.next()
			items = append(items, &doctree.Text{Span: tk.Span, Content: string(tk.Ch)})

		case token.Hyphens:
			_, _ = s.next()
			items = append(items, &doctree.Text{Span: tk.Span, Content: expandHyphens(tk.N)})

		case token.ScopeOpen:
			_, _ = s.next()
			blockShaped, err := s.scopeOpenIsBlockShaped()
			if err != nil {
				return doctree.Inlines{}, err
			}
			if blockShaped {
				return doctree.Inlines{}, &turniperrs.InlineScopeOpenedMidLineButBlockShape{Span: tk.Span}
			}
			inner, err := p.parseInlinesUntilClose(s, tk.Span)
			if err != nil {
				return doctree.Inlines{}, err
			}
			items = append(items, &doctree.InlineGroup{Span: tk.Span, Content: inner})

		case token.RawScopeOpen:
			_, _ = s.next()
			content, closeSpan, err := s.lx.CaptureRaw(tk.Span, tk.N)
			if err != nil {
				return doctree.Inlines{}, err
			}
			items = append(items, &doctree.Raw{Span: tk.Span.Join(closeSpan), Content: content})

		case token.CodeOpen:
			_, _ = s.next()
			node, err := p.parseEvalBracketAsInline(s, tk.Span, tk.N)
			if err != nil {
				return doctree.Inlines{}, err
			}
			items = append(items, node)

		default:
			_, _ = s.next()
		}
	}
}

// parseEvalBracketAsInline compiles and evaluates the code captured after
// a CodeOpen seen at inline position. Header and Block capabilities are
// rejected here with turniperrs.MissingCapability: only a whole block
// context can host them. Per
// spec §4.4, an Inline-capability value only becomes an awaiting_builder
// if a scope actually attaches (ignoring inert whitespace); otherwise it
// is emitted immediately, same as CapabilityNone.
func (p *Parser) parseEvalBracketAsInline(s *stream, open span.Span, n int) (doctree.InlineNode, error) {
	res, err := p.evalCode(s, open, n)
	if err != nil {
		return nil, err
	}

	switch res.capability {
	case hostiface.CapabilityInline:
		attaches, err := s.nextScopeOpenAttaches()
		if err != nil {
			return nil, err
		}
		if !attaches {
			return &doctree.EmbeddedInline{Span: res.codeSpan, Value: res.value}, nil
		}
		if err := s.skipInertWhitespace(); err != nil {
			return nil, err
		}

		return p.buildInlineBody(s, res)

	case hostiface.CapabilityNone:
		return &doctree.EmbeddedInline{Span: res.codeSpan, Value: res.value}, nil

	case hostiface.CapabilityBlock, hostiface.CapabilityHeader:
		return nil, &turniperrs.MissingCapability{Span: res.codeSpan, Want: "Inline", HostType: res.value.HostTypeName()}

	default:
		return nil, &turniperrs.MissingCapability{Span: res.codeSpan, Want: "Inline", HostType: res.value.HostTypeName()}
	}
}

func finishSentence(items []doctree.InlineNode) doctree.Sentence {
	sent := doctree.Sentence{Inlines: doctree.Inlines{Items: items}}
	if len(items) > 0 {
		sent.Span = spanOf(items[0]).Join(spanOf(items[len(items)-1]))
		sent.Inlines.Span = sent.Span
	}

	return sent
}

// spanOf extracts the Span field every InlineNode concrete type carries.
// InlineNode is kept as a minimal marker interface (isInline()) rather than
// one that exposes Span directly, so this small type switch is the one
// place that needs updating when a new inline node kind is added.
func spanOf(n doctree.InlineNode) span.Span {
	switch v := n.(type) {
	case *doctree.Text:
		return v.Span
	case *doctree.Raw:
		return v.Span
	case *doctree.EmbeddedInline:
		return v.Span
	case *doctree.InlineGroup:
		return v.Span
	default:
		return span.Span{}
	}
}
