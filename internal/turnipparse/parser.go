// Package turnipparse implements the parser state machine of spec §4.3:
// the builder-context push-down stack that turns a token stream into the
// doctree document, dispatching eval-bracket results through hostiface and
// folding headers into the DocSegment tree via doctree.Assembler.
package turnipparse

import (
	"github.com/connerohnesorge/turniptext/internal/doctree"
	"github.com/connerohnesorge/turniptext/internal/hostiface"
	"github.com/connerohnesorge/turniptext/internal/lexer"
	"github.com/connerohnesorge/turniptext/internal/source"
	"github.com/connerohnesorge/turniptext/internal/span"
	"github.com/connerohnesorge/turniptext/internal/token"
	"github.com/connerohnesorge/turniptext/internal/turniperrs"
)

// IncludeResolver resolves an include name (spec's "load(name)") to the
// raw bytes of the source it names, the one filesystem-shaped collaborator
// the core parser needs; internal/loader is the afero-backed implementation
// callers normally plug in here.
type IncludeResolver interface {
	Resolve(name string) ([]byte, error)
}

// Parser runs the state machine described in spec §4.3 against one source
// stack, dispatching eval-bracket content through a single hostiface.Host.
type Parser struct {
	host        hostiface.Host
	stack       *source.Stack
	includes    IncludeResolver
	diagnostics []error
}

// NewParser creates a Parser. includes may be nil if the document being
// parsed performs no includes; calling Include in that case reports an
// error rather than panicking.
func NewParser(host hostiface.Host, stack *source.Stack, includes IncludeResolver) *Parser {
	return &Parser{host: host, stack: stack, includes: includes}
}

// SetHost assigns the Host a Parser dispatches eval-bracket code through.
// It exists alongside the host parameter to NewParser because some hosts
// (internal/testhost among them) need the Parser's own Include method
// bound into them as their load(name) callback, which requires the Parser
// to already exist.
func (p *Parser) SetHost(host hostiface.Host) {
	p.host = host
}

// ParseDocument parses root's entire content as the top level of a
// document: paragraphs and groups accumulate onto whichever DocSegment is
// currently deepest, and headers fold into the segment tree per spec §4.7.
func (p *Parser) ParseDocument(root *source.Source) (*doctree.Document, error) {
	asm := doctree.NewAssembler()
	s := newStream(lexer.New(root.ID, root.Bytes))

	if err := p.parseTopLevel(s, asm); err != nil {
		return nil, err
	}

	return asm.Document(p.diagnostics), nil
}

// Include pushes name (resolved via the IncludeResolver) onto the source
// stack and parses its entire content as a flat doctree.Blocks, the value
// an eval-bracket's "load(name)"-style call embeds at its call site. A
// name already open higher on the stack produces a non-fatal
// turniperrs.RecursionWarning (accumulated in Diagnostics); exceeding the
// stack's configured depth is fatal and returned as a
// *turniperrs.RecursionLimit.
func (p *Parser) Include(name string, atSpan span.Span) (doctree.Blocks, error) {
	if p.includes == nil {
		return doctree.Blocks{}, &turniperrs.BuilderContractViolation{
			Span:   atSpan,
			Detail: "no include resolver configured for this parse",
		}
	}

	contents, err := p.includes.Resolve(name)
	if err != nil {
		return doctree.Blocks{}, &turniperrs.BuilderContractViolation{
			Span:   atSpan,
			Detail: "include " + name + ": " + err.Error(),
		}
	}

	src, warning, pushErr := p.stack.Push(name, contents)
	if pushErr != nil {
		switch e := pushErr.(type) {
		case *source.ErrRecursionLimit:
			return doctree.Blocks{}, &turniperrs.RecursionLimit{
				Span: atSpan, MaxDepth: e.MaxDepth, Name: e.Name,
			}
		case *source.ErrNulByte:
			return doctree.Blocks{}, &turniperrs.NulInSource{
				Span: span.Span{Source: e.Source, Start: e.Offset, End: e.Offset + 1}, Name: e.Name,
			}
		case *source.ErrInvalidUTF8:
			return doctree.Blocks{}, &turniperrs.InvalidUTF8{
				Span: span.Span{Source: e.Source, Start: e.Offset, End: e.Offset + 1}, Name: e.Name,
			}
		}

		return doctree.Blocks{}, pushErr
	}
	if warning != nil {
		p.diagnostics = append(p.diagnostics, &turniperrs.RecursionWarning{
			Span: atSpan, Name: warning.Name, Depth: warning.Depth,
		})
	}

	s := newStream(lexer.New(src.ID, src.Bytes))
	blocks, err := p.parseIncludedBlocks(s)
	p.stack.Pop()
	if err != nil {
		return doctree.Blocks{}, err
	}

	return blocks, nil
}

// parseIncludedBlocks parses a pushed source's entire content as a flat
// sequence of blocks. Unlike parseBlocksUntilClose, reaching EOF ends the
// loop successfully rather than being an unclosed-scope error: a pushed
// top-level source is never closed by a ScopeClose of its own, only by
// running out of bytes. Like parseBlocksUntilClose, there is no DocSegment
// tree here to fold headers into, so a Header-capability value found in an
// included source is rejected with turniperrs.MissingCapability
// (parseOneBlockItem's allowHeader).
func (p *Parser) parseIncludedBlocks(s *stream) (doctree.Blocks, error) {
	var blocks doctree.Blocks

	for {
		item, err := p.parseOneBlockItem(s, false)
		if err != nil {
			return doctree.Blocks{}, err
		}
		if item.done {
			if item.closedScope {
				return doctree.Blocks{}, &turniperrs.UnmatchedScopeClose{Span: item.closeSpan}
			}

			return blocks, nil
		}
		blocks.Items = append(blocks.Items, item.node)
	}
}

// parseTopLevel is parseBlocksUntilClose's counterpart for the outermost
// source: it runs until EOF instead of a ScopeClose, and headers are
// allowed (and placed via asm) since there is no enclosing scope.
func (p *Parser) parseTopLevel(s *stream, asm *doctree.Assembler) error {
	for {
		item, err := p.parseOneBlockItem(s, true)
		if err != nil {
			return err
		}
		if item.done {
			if item.closedScope {
				return &turniperrs.UnmatchedScopeClose{Span: item.closeSpan}
			}

			return nil
		}
		if item.isHeader {
			asm.AppendHeader(item.headerValue, item.headerSpan, item.weight)

			continue
		}
		asm.AppendBlock(item.node)
	}
}

// parseBlocksUntilClose parses a nested block scope's content: an
// anonymous group, or the body supplied to BuildFromBlocks for a Block- or
// Header-capability value. It stops at the matching ScopeClose and does
// not place headers (a Header-capability value found here is rejected with
// turniperrs.MissingCapability: headers only partition the top level of a
// source). openSpan is the scope's ScopeOpen, reported if the source ends
// first.
func (p *Parser) parseBlocksUntilClose(s *stream, openSpan span.Span) (doctree.Blocks, error) {
	var blocks doctree.Blocks

	for {
		item, err := p.parseOneBlockItem(s, false)
		if err != nil {
			return doctree.Blocks{}, err
		}
		if item.done {
			if !item.closedScope {
				return doctree.Blocks{}, &turniperrs.UnclosedScope{
					OpenSpans: []span.Label{{Span: openSpan, Message: "block scope opened here"}},
				}
			}

			return blocks, nil
		}
		blocks.Items = append(blocks.Items, item.node)
	}
}

type blockItem struct {
	node        doctree.BlockNode
	done        bool
	closedScope bool
	closeSpan   span.Span
	isHeader    bool
	headerValue hostiface.HostValue
	headerSpan  span.Span
	weight      int
}

// parseOneBlockItem consumes exactly one block-level construct (a
// paragraph, a group, a raw block, or an eval-bracket's result) and
// returns it, or reports that the enclosing scope/source ended.
func (p *Parser) parseOneBlockItem(s *stream, allowHeader bool) (blockItem, error) {
	for {
		tk, err := s.peek()
		if err != nil {
			return blockItem{}, err
		}

		switch tk.Type {
		case token.EOF:
			return blockItem{done: true}, nil

		case token.Newline:
			_, _ = s.next()

			continue

		case token.ScopeClose:
			_, _ = s.next()

			return blockItem{done: true, closedScope: true, closeSpan: tk.Span}, nil

		case token.RawScopeClose, token.CodeClose:
			return blockItem{}, &turniperrs.UnmatchedScopeClose{Span: tk.Span}

		case token.CodeOpen:
			_, _ = s.next()

			return p.parseEvalBracketAsBlock(s, tk, allowHeader)

		case token.ScopeOpen:
			_, _ = s.next()
			blockShaped, err := s.scopeOpenIsBlockShaped()
			if err != nil {
				return blockItem{}, err
			}
			if blockShaped {
				if err := s.consumeBlockScopeOpenTrailer(); err != nil {
					return blockItem{}, err
				}
				inner, err := p.parseBlocksUntilClose(s, tk.Span)
				if err != nil {
					return blockItem{}, err
				}

				return blockItem{node: &doctree.BlockGroup{Span: tk.Span, Content: inner}}, nil
			}

			inner, err := p.parseInlinesUntilClose(s, tk.Span)
			if err != nil {
				return blockItem{}, err
			}
			seed := &doctree.InlineGroup{Span: tk.Span, Content: inner}
			para, err := p.parseParagraph(s, seed)
			if err != nil {
				return blockItem{}, err
			}

			return blockItem{node: para}, nil

		case token.RawScopeOpen:
			_, _ = s.next()
			content, closeSpan, err := s.lx.CaptureRaw(tk.Span, tk.N)
			if err != nil {
				return blockItem{}, err
			}
			full := tk.Span.Join(closeSpan)
			para := &doctree.Paragraph{
				Span: full,
				Sentences: []doctree.Sentence{{
					Span: full,
					Inlines: doctree.Inlines{
						Span:  full,
						Items: []doctree.InlineNode{&doctree.Raw{Span: full, Content: content}},
					},
				}},
			}

			return blockItem{node: para}, nil

		default: // OtherText, Escaped, Hyphens: the start of a paragraph
			para, err := p.parseParagraph(s, nil)
			if err != nil {
				return blockItem{}, err
			}

			return blockItem{node: para}, nil
		}
	}
}

// parseEvalBracketAsBlock compiles and evaluates the code captured after a
// CodeOpen token seen at block position, then dispatches per spec §4.4: a
// ScopeOpen attaching immediately (ignoring only inert whitespace, not a
// Newline) makes the value an awaiting_builder for Header/Block capability;
// otherwise the value is emitted immediately as-is. Inline and None values
// are not blocks themselves, so they become the first inline item of a new
// paragraph instead.
func (p *Parser) parseEvalBracketAsBlock(s *stream, open token.Token, allowHeader bool) (blockItem, error) {
	res, err := p.evalCode(s, open.Span, open.N)
	if err != nil {
		return blockItem{}, err
	}

	attaches, err := s.nextScopeOpenAttaches()
	if err != nil {
		return blockItem{}, err
	}
	if attaches {
		if err := s.skipInertWhitespace(); err != nil {
			return blockItem{}, err
		}
	}

	switch res.capability {
	case hostiface.CapabilityHeader:
		if !allowHeader {
			return blockItem{}, &turniperrs.MissingCapability{
				Span: res.codeSpan, Want: "Block", HostType: res.value.HostTypeName(),
			}
		}
		built, full, err := p.resolveEvalBlockBody(s, res, attaches)
		if err != nil {
			return blockItem{}, err
		}
		if err := p.requireLineEndsAfterBlock(s); err != nil {
			return blockItem{}, err
		}

		return blockItem{isHeader: true, headerValue: built, headerSpan: full, weight: res.weight}, nil

	case hostiface.CapabilityBlock:
		built, full, err := p.resolveEvalBlockBody(s, res, attaches)
		if err != nil {
			return blockItem{}, err
		}
		if err := p.requireLineEndsAfterBlock(s); err != nil {
			return blockItem{}, err
		}

		return blockItem{node: &doctree.EmbeddedBlock{Span: full, Value: built}}, nil

	case hostiface.CapabilityInline, hostiface.CapabilityNone:
		first := &doctree.EmbeddedInline{Span: res.codeSpan, Value: res.value}
		if res.capability == hostiface.CapabilityInline && attaches {
			var ierr error
			first, ierr = p.buildInlineBody(s, res)
			if ierr != nil {
				return blockItem{}, ierr
			}
		}
		para, err := p.parseParagraph(s, first)
		if err != nil {
			return blockItem{}, err
		}

		return blockItem{node: para}, nil

	default:
		return blockItem{}, &turniperrs.MissingCapability{Span: res.codeSpan, Want: "Block", HostType: res.value.HostTypeName()}
	}
}

// resolveEvalBlockBody returns res.value emitted immediately (codeSpan as
// its own span) when no scope attaches, or the result of consuming a block
// scope and calling BuildFromBlocks when one does.
func (p *Parser) resolveEvalBlockBody(s *stream, res evalResult, attaches bool) (hostiface.HostValue, span.Span, error) {
	if !attaches {
		return res.value, res.codeSpan, nil
	}

	built, bodySpan, err := p.buildBlockBody(s, res)
	if err != nil {
		return nil, span.Span{}, err
	}

	return built, res.codeSpan.Join(bodySpan), nil
}

// requireLineEndsAfterBlock enforces spec's rule that no further content
// may follow a Block or Header emission on the same source line: the next
// non-whitespace token must be a Newline, EOF, or the enclosing scope's
// close. It does not consume any tokens.
func (p *Parser) requireLineEndsAfterBlock(s *stream) error {
	for i := 0; ; i++ {
		tk, err := s.peekAt(i)
		if err != nil {
			return err
		}

		switch {
		case tk.Type == token.Newline || tk.Type == token.EOF || tk.Type == token.ScopeClose:
			return nil
		case isBlankOtherText(tk):
			continue
		default:
			return &turniperrs.SameLineContentAfterBlock{Span: tk.Span}
		}
	}
}

// buildBlockBody requires a ScopeOpen immediately after an eval-bracket
// classified Header or Block, parses its content, and calls
// BuildFromBlocks. The caller has already confirmed a scope attaches and
// skipped any inert whitespace before it.
func (p *Parser) buildBlockBody(s *stream, res evalResult) (hostiface.HostValue, span.Span, error) {
	tk, err := s.next()
	if err != nil {
		return nil, span.Span{}, err
	}
	if tk.Type != token.ScopeOpen {
		return nil, span.Span{}, &turniperrs.BuilderContractViolation{
			Span: res.codeSpan, Detail: "expected a block scope to follow a Block/Header-capability value",
		}
	}

	body, err := p.parseBlocksUntilClose(s, tk.Span)
	if err != nil {
		return nil, span.Span{}, err
	}

	built, err := p.host.BuildFromBlocks(res.value, body, body.Span)
	if err != nil {
		return nil, span.Span{}, &turniperrs.BuilderContractViolation{Span: res.codeSpan, Detail: err.Error()}
	}

	return built, body.Span, nil
}

// buildInlineBody requires a ScopeOpen immediately after an eval-bracket
// classified Inline, parses its inline content, and calls BuildFromInlines.
func (p *Parser) buildInlineBody(s *stream, res evalResult) (*doctree.EmbeddedInline, error) {
	tk, err := s.next()
	if err != nil {
		return nil, err
	}
	if tk.Type != token.ScopeOpen {
		return nil, &turniperrs.BuilderContractViolation{
			Span: res.codeSpan, Detail: "expected an inline scope to follow an Inline-capability value",
		}
	}

	body, err := p.parseInlinesUntilClose(s, tk.Span)
	if err != nil {
		return nil, err
	}

	built, err := p.host.BuildFromInlines(res.value, body, body.Span)
	if err != nil {
		return nil, &turniperrs.BuilderContractViolation{Span: res.codeSpan, Detail: err.Error()}
	}

	return &doctree.EmbeddedInline{Span: res.codeSpan.Join(body.Span), Value: built}, nil
}
