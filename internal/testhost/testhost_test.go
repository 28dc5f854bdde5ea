package testhost

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/connerohnesorge/turniptext/internal/doctree"
	"github.com/connerohnesorge/turniptext/internal/hostiface"
	"github.com/connerohnesorge/turniptext/internal/span"
)

func compileAndEval(t *testing.T, h *Host, src string) hostiface.HostValue {
	t.Helper()

	var code hostiface.CompiledCode
	var lastErr error
	for _, attempt := range hostiface.CompileAttemptOrder {
		c, err := h.Compile(src, attempt, span.Span{})
		if err == nil {
			code = c
			lastErr = nil

			break
		}
		lastErr = err
	}
	require.NoError(t, lastErr, "all compile attempts failed for %q", src)
	require.NotNil(t, code)

	v, err := h.Eval(code, span.Span{})
	require.NoError(t, err)

	return v
}

func TestHost_EvalBuiltins(t *testing.T) {
	h := New(nil)

	chap := compileAndEval(t, h, "chap")
	require.Equal(t, hostiface.CapabilityHeader, h.Classify(chap))
	require.Equal(t, 1, h.HeaderWeight(chap))

	sec := compileAndEval(t, h, "sec")
	require.Equal(t, 2, h.HeaderWeight(sec))

	emph := compileAndEval(t, h, "emph")
	require.Equal(t, hostiface.CapabilityInline, h.Classify(emph))

	bare := compileAndEval(t, h, `"just text"`)
	require.Equal(t, hostiface.CapabilityNone, h.Classify(bare))
}

func TestHost_EvalHeaderCallWithName(t *testing.T) {
	h := New(nil)

	v := compileAndEval(t, h, `header(3, "Appendix")`)
	require.Equal(t, hostiface.CapabilityHeader, h.Classify(v))
	require.Equal(t, 3, h.HeaderWeight(v))

	val, ok := v.(*Value)
	require.True(t, ok)
	require.Equal(t, "Appendix", val.Text)
}

func TestHost_StatementAttemptRequiresPrefix(t *testing.T) {
	h := New(nil)

	_, err := h.Compile("stmt: chap", hostiface.AttemptStrippedExpr, span.Span{})
	require.Error(t, err)

	code, err := h.Compile("stmt: chap", hostiface.AttemptStrippedStatements, span.Span{})
	require.NoError(t, err)
	require.Equal(t, hostiface.AttemptStrippedStatements, code.Attempt())
}

func TestHost_LoadCallsIncludeFunc(t *testing.T) {
	var gotName string
	include := func(name string, at span.Span) (doctree.Blocks, error) {
		gotName = name

		return doctree.Blocks{}, nil
	}

	h := New(include)
	v := compileAndEval(t, h, `load("chapter1.tt")`)

	require.Equal(t, "chapter1.tt", gotName)
	require.Equal(t, hostiface.CapabilityBlock, h.Classify(v))
}

func TestHost_LoadWithoutIncludeFuncErrors(t *testing.T) {
	h := New(nil)

	code, err := h.Compile(`load("x.tt")`, hostiface.AttemptStrippedExpr, span.Span{})
	require.NoError(t, err)

	_, err = h.Eval(code, span.Span{})
	require.Error(t, err)
}

func TestHost_BuildFromBlocksAndInlinesAndRaw(t *testing.T) {
	h := New(nil)

	header := compileAndEval(t, h, "chap")
	built, err := h.BuildFromBlocks(header, doctree.Blocks{}, span.Span{})
	require.NoError(t, err)
	require.Equal(t, "built-block", built.(*Value).Kind)

	inline := compileAndEval(t, h, "emph")
	builtInline, err := h.BuildFromInlines(inline, doctree.Inlines{}, span.Span{})
	require.NoError(t, err)
	require.Equal(t, "built-inline:inline", builtInline.(*Value).Kind)

	builtRaw, err := h.BuildFromRaw(inline, "raw text", span.Span{})
	require.NoError(t, err)
	require.Equal(t, "raw text", builtRaw.(*Value).Raw)
}

func TestHost_BuildFromBlocksRejectsWrongBodyType(t *testing.T) {
	h := New(nil)
	header := compileAndEval(t, h, "chap")

	_, err := h.BuildFromBlocks(header, "not blocks", span.Span{})
	require.Error(t, err)
}
