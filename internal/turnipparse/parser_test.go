package turnipparse

import (
	"strings"
	"testing"

	"github.com/connerohnesorge/turniptext/internal/doctree"
	"github.com/connerohnesorge/turniptext/internal/source"
	"github.com/connerohnesorge/turniptext/internal/testhost"
	"github.com/connerohnesorge/turniptext/internal/turniperrs"
)

func parseString(t *testing.T, maxDepth int, input string, resolve func(name string) ([]byte, error)) (*doctree.Document, error) {
	t.Helper()

	stack := source.NewStack(maxDepth)
	root, _, err := stack.Push("<root>", []byte(input))
	if err != nil {
		t.Fatalf("push root: %v", err)
	}

	var resolver IncludeResolver
	if resolve != nil {
		resolver = resolverFunc(resolve)
	}

	p := NewParser(nil, stack, resolver)
	p.SetHost(testhost.New(p.Include))

	return p.ParseDocument(root)
}

type resolverFunc func(name string) ([]byte, error)

func (f resolverFunc) Resolve(name string) ([]byte, error) { return f(name) }

func firstParagraphText(t *testing.T, doc *doctree.Document) string {
	t.Helper()

	if len(doc.Root.Content.Items) == 0 {
		t.Fatalf("expected at least one block at root, got none")
	}
	para, ok := doc.Root.Content.Items[0].(*doctree.Paragraph)
	if !ok {
		t.Fatalf("expected first block to be a Paragraph, got %T", doc.Root.Content.Items[0])
	}

	var sb strings.Builder
	for _, sent := range para.Sentences {
		for _, item := range sent.Inlines.Items {
			if text, ok := item.(*doctree.Text); ok {
				sb.WriteString(text.Content)
			}
		}
	}

	return sb.String()
}

func TestParser_BareText(t *testing.T) {
	doc, err := parseString(t, 0, "hello world", nil)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if got := firstParagraphText(t, doc); got != "hello world" {
		t.Fatalf("text = %q, want %q", got, "hello world")
	}
}

func TestParser_TwoSentenceParagraph(t *testing.T) {
	doc, err := parseString(t, 0, "First sentence.\nSecond sentence.", nil)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	para, ok := doc.Root.Content.Items[0].(*doctree.Paragraph)
	if !ok {
		t.Fatalf("expected a Paragraph, got %T", doc.Root.Content.Items[0])
	}
	if len(para.Sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(para.Sentences))
	}
}

func TestParser_EvalBracketWithInlineBuilder(t *testing.T) {
	doc, err := parseString(t, 0, "say [emph]{world} now", nil)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	para := doc.Root.Content.Items[0].(*doctree.Paragraph)
	found := false
	for _, item := range para.Sentences[0].Inlines.Items {
		emb, ok := item.(*doctree.EmbeddedInline)
		if !ok {
			continue
		}
		val, ok := emb.Value.(*testhost.Value)
		if !ok || val.Kind != "built-inline:inline" {
			continue
		}
		if len(val.Inline.Items) != 1 {
			t.Fatalf("expected 1 inline item built from {world}, got %d", len(val.Inline.Items))
		}
		text, ok := val.Inline.Items[0].(*doctree.Text)
		if !ok || text.Content != "world" {
			t.Fatalf("expected built inline text \"world\", got %+v", val.Inline.Items[0])
		}
		found = true
	}
	if !found {
		t.Fatalf("did not find the built [emph]{world} value in the paragraph")
	}
}

func TestParser_HyphenExpansion(t *testing.T) {
	doc, err := parseString(t, 0, "a - b -- c --- d ---- e", nil)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	got := firstParagraphText(t, doc)
	want := "a - b – c — d —- e"
	if got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
}

func TestParser_HeaderWeighting(t *testing.T) {
	// Spec §8 scenario 5's literal shape: a Header-capability value with no
	// following scope is emitted immediately rather than requiring a body.
	input := "[chap]\nintro text\n\n[sec]\nbody text\n\n[sec]\nmore body\n\n[chap]\nlast\n"
	doc, err := parseString(t, 0, input, nil)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if len(doc.Root.Children) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(doc.Root.Children))
	}
	chap1 := doc.Root.Children[0]
	if len(chap1.Children) != 2 {
		t.Fatalf("expected chap1 to have 2 sections, got %d", len(chap1.Children))
	}
	chap2 := doc.Root.Children[1]
	if len(chap2.Children) != 0 {
		t.Fatalf("expected chap2 to start with no sections, got %d", len(chap2.Children))
	}
}

func TestParser_BlockScopeOpenMidLineIsInline(t *testing.T) {
	doc, err := parseString(t, 0, "{hello} world", nil)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.Root.Content.Items) != 1 {
		t.Fatalf("expected a single block item, got %d", len(doc.Root.Content.Items))
	}
	para, ok := doc.Root.Content.Items[0].(*doctree.Paragraph)
	if !ok {
		t.Fatalf("expected a Paragraph, got %T", doc.Root.Content.Items[0])
	}
	if len(para.Sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(para.Sentences))
	}
	items := para.Sentences[0].Inlines.Items
	if len(items) != 2 {
		t.Fatalf("expected 2 inline items, got %d: %+v", len(items), items)
	}
	group, ok := items[0].(*doctree.InlineGroup)
	if !ok {
		t.Fatalf("expected first item to be an InlineGroup, got %T", items[0])
	}
	if len(group.Content.Items) != 1 {
		t.Fatalf("expected 1 item inside the group, got %d", len(group.Content.Items))
	}
	text, ok := group.Content.Items[0].(*doctree.Text)
	if !ok || text.Content != "hello" {
		t.Fatalf("expected group text \"hello\", got %+v", group.Content.Items[0])
	}
	rest, ok := items[1].(*doctree.Text)
	if !ok || rest.Content != " world" {
		t.Fatalf("expected trailing text \" world\", got %+v", items[1])
	}
}

func TestParser_BlockShapedScopeMidLineIsError(t *testing.T) {
	_, err := parseString(t, 0, "a {\nb}\n", nil)
	if err == nil {
		t.Fatal("expected an error for a block-shaped scope opened mid-line")
	}
	if _, ok := err.(*turniperrs.InlineScopeOpenedMidLineButBlockShape); !ok {
		t.Fatalf("expected *turniperrs.InlineScopeOpenedMidLineButBlockShape, got %T: %v", err, err)
	}
}

func TestParser_InlineScopeCannotCrossNewline(t *testing.T) {
	_, err := parseString(t, 0, "say {hello\nworld} now", nil)
	if err == nil {
		t.Fatal("expected an error for an inline scope spanning a newline")
	}
	if _, ok := err.(*turniperrs.InlineScopeClosedAcrossNewline); !ok {
		t.Fatalf("expected *turniperrs.InlineScopeClosedAcrossNewline, got %T: %v", err, err)
	}
}

func TestParser_BlankLineWithWhitespaceEndsParagraph(t *testing.T) {
	doc, err := parseString(t, 0, "a\n   \nb", nil)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.Root.Content.Items) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Root.Content.Items))
	}
	for i, want := range []string{"a", "b"} {
		para, ok := doc.Root.Content.Items[i].(*doctree.Paragraph)
		if !ok {
			t.Fatalf("block %d: expected a Paragraph, got %T", i, doc.Root.Content.Items[i])
		}
		if len(para.Sentences) != 1 {
			t.Fatalf("block %d: expected 1 sentence, got %d", i, len(para.Sentences))
		}
		text, ok := para.Sentences[0].Inlines.Items[0].(*doctree.Text)
		if !ok || text.Content != want {
			t.Fatalf("block %d: text = %+v, want %q", i, para.Sentences[0].Inlines.Items[0], want)
		}
	}
}

func TestParser_EvalBracketInlineWithNoAttachingScope(t *testing.T) {
	doc, err := parseString(t, 0, "say [emph] now", nil)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	para := doc.Root.Content.Items[0].(*doctree.Paragraph)
	found := false
	for _, item := range para.Sentences[0].Inlines.Items {
		emb, ok := item.(*doctree.EmbeddedInline)
		if !ok {
			continue
		}
		val, ok := emb.Value.(*testhost.Value)
		if !ok || val.Kind != "inline" {
			continue
		}
		found = true
	}
	if !found {
		t.Fatalf("expected [emph] with no attaching scope to be emitted immediately as the raw inline value")
	}
}

func TestParser_SameLineContentAfterBlockIsError(t *testing.T) {
	_, err := parseString(t, 0, "[chap] more text\n", nil)
	if err == nil {
		t.Fatal("expected an error for trailing content on the same line as a header")
	}
	if _, ok := err.(*turniperrs.SameLineContentAfterBlock); !ok {
		t.Fatalf("expected *turniperrs.SameLineContentAfterBlock, got %T: %v", err, err)
	}
}

func TestParser_HyphenExpansionIdempotent(t *testing.T) {
	// A remainder of 2 (n=5, n=8, ...) must render as a single en-dash, not
	// two literal hyphens, or the output would itself be a valid Hyphens(2)
	// run and a second expansion pass would change it further.
	if got, want := expandHyphens(5), strings.Repeat(emDash, 1)+enDash; got != want {
		t.Fatalf("expandHyphens(5) = %q, want %q", got, want)
	}
	if got, want := expandHyphens(8), strings.Repeat(emDash, 2)+enDash; got != want {
		t.Fatalf("expandHyphens(8) = %q, want %q", got, want)
	}
	for _, n := range []int{5, 8, 11} {
		if got := expandHyphens(n); strings.HasSuffix(got, "--") {
			t.Fatalf("expandHyphens(%d) = %q ends in two literal hyphens, not idempotent", n, got)
		}
	}
}

func TestParser_IncludeEOFIsSuccess(t *testing.T) {
	doc, err := parseString(t, 4, `[load("inner")]`, func(name string) ([]byte, error) {
		return []byte("x"), nil
	})
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.Root.Content.Items) == 0 {
		t.Fatalf("expected at least one block at root, got none")
	}
	embedded, ok := doc.Root.Content.Items[0].(*doctree.EmbeddedBlock)
	if !ok {
		t.Fatalf("expected an EmbeddedBlock, got %T", doc.Root.Content.Items[0])
	}
	val, ok := embedded.Value.(*testhost.Value)
	if !ok || val.Kind != "block" {
		t.Fatalf("expected the load() value, got %+v", embedded.Value)
	}
	if len(val.Blocks.Items) != 1 {
		t.Fatalf("expected the included source to yield 1 block, got %d", len(val.Blocks.Items))
	}
	para, ok := val.Blocks.Items[0].(*doctree.Paragraph)
	if !ok {
		t.Fatalf("expected the included block to be a Paragraph, got %T", val.Blocks.Items[0])
	}
	text, ok := para.Sentences[0].Inlines.Items[0].(*doctree.Text)
	if !ok || text.Content != "x" {
		t.Fatalf("included text = %+v, want \"x\"", para.Sentences[0].Inlines.Items[0])
	}
}

func TestParser_RecursionViaLoad(t *testing.T) {
	t.Run("within limit succeeds with a warning", func(t *testing.T) {
		calls := 0
		resolve := func(name string) ([]byte, error) {
			calls++
			if calls == 1 {
				// "a" loads itself once more before bottoming out, so the
				// name is reused on the stack without recursing forever.
				return []byte(`[load("a")]`), nil
			}

			return []byte("leaf text"), nil
		}

		doc, err := parseString(t, 4, `[load("a")]`, resolve)
		if err != nil {
			t.Fatalf("ParseDocument: %v", err)
		}
		if len(doc.Diagnostics) == 0 {
			t.Fatalf("expected at least one recursion warning for a self-referential load chain")
		}
	})

	t.Run("exceeding the depth limit is fatal", func(t *testing.T) {
		_, err := parseString(t, 4, `[load("deep")]`, func(name string) ([]byte, error) {
			return []byte(`[load("deep")]`), nil
		})
		if err == nil {
			t.Fatal("expected a recursion-limit error")
		}
	})
}
