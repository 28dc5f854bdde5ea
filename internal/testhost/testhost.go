// Package testhost is a minimal reference host implementing hostiface.Host,
// used by the parser's own test suite and by the demo "parse" CLI
// subcommand. It is explicitly not a general scripting language: spec §1
// places host-language evaluation mechanics out of core scope, so this
// package recognizes only a handful of fixed builtin forms (enough to
// exercise every capability and the include mechanism) rather than
// embedding a real interpreter.
package testhost

import (
	"fmt"
	"strings"

	"github.com/connerohnesorge/turniptext/internal/doctree"
	"github.com/connerohnesorge/turniptext/internal/hostiface"
	"github.com/connerohnesorge/turniptext/internal/span"
)

// Value is the only HostValue concrete type this host ever produces.
type Value struct {
	Kind   string // "header", "block", "inline", "none", "built-block", "built-inline:<kind>", "built-raw:<kind>"
	Text   string
	Weight int
	Blocks doctree.Blocks
	Inline doctree.Inlines
	Raw    string
}

func (v *Value) HostTypeName() string { return "testhost.Value(" + v.Kind + ")" }

// compiled is the CompiledCode this host hands back from Compile.
type compiled struct {
	src     string
	attempt hostiface.CompileAttempt
}

func (c *compiled) Attempt() hostiface.CompileAttempt { return c.attempt }

// IncludeFunc resolves a "load(name)" call to the Blocks that source
// parses to; turnipparse.Parser.Include implements exactly this shape.
type IncludeFunc func(name string, at span.Span) (doctree.Blocks, error)

// Host is the reference implementation. Include may be left nil for tests
// that never call load(...).
type Host struct {
	Include IncludeFunc
}

// New creates a Host. Wire includeFn to a *turnipparse.Parser's Include
// method to support load(...) calls; pass nil if the document under test
// never uses them.
func New(includeFn IncludeFunc) *Host {
	return &Host{Include: includeFn}
}

// Compile implements the three-attempt protocol with a simple convention
// rather than a real grammar: source text prefixed "stmt:" only compiles
// under AttemptStrippedStatements; anything else compiles immediately
// under AttemptStrippedExpr; AttemptWrappedStatements is the unconditional
// last resort, so the chain always terminates successfully, matching a
// real host language's fallback behavior without requiring one here.
func (h *Host) Compile(src string, attempt hostiface.CompileAttempt, _ span.Span) (hostiface.CompiledCode, error) {
	trimmed := strings.TrimSpace(src)
	isStatement := strings.HasPrefix(trimmed, "stmt:")

	switch attempt {
	case hostiface.AttemptStrippedExpr:
		if isStatement {
			return nil, fmt.Errorf("testhost: %q looks like a statement, not an expression", trimmed)
		}

		return &compiled{src: trimmed, attempt: attempt}, nil

	case hostiface.AttemptStrippedStatements:
		if !isStatement {
			return nil, fmt.Errorf("testhost: %q is not a statement-form", trimmed)
		}

		return &compiled{src: strings.TrimPrefix(trimmed, "stmt:"), attempt: attempt}, nil

	case hostiface.AttemptWrappedStatements:
		return &compiled{src: strings.TrimPrefix(trimmed, "stmt:"), attempt: attempt}, nil

	default:
		return nil, fmt.Errorf("testhost: unknown compile attempt %q", attempt)
	}
}

// Eval recognizes a handful of fixed builtin forms: chap, sec, subsec,
// header(n[, "name"]), emph, load("name"), and falls back to treating anything else as a bare
// value that echoes its own source text with no build capability.
func (h *Host) Eval(code hostiface.CompiledCode, at span.Span) (hostiface.HostValue, error) {
	c, ok := code.(*compiled)
	if !ok {
		return nil, fmt.Errorf("testhost: foreign CompiledCode")
	}

	src := strings.TrimSpace(c.src)

	switch {
	case src == "emph":
		return &Value{Kind: "inline"}, nil

	case src == "chap":
		return &Value{Kind: "header", Weight: 1}, nil

	case src == "sec":
		return &Value{Kind: "header", Weight: 2}, nil

	case src == "subsec":
		return &Value{Kind: "header", Weight: 3}, nil

	case strings.HasPrefix(src, "header("):
		weight, name, err := parseHeaderCall(src)
		if err != nil {
			return nil, err
		}

		return &Value{Kind: "header", Weight: weight, Text: name}, nil

	case strings.HasPrefix(src, "load("):
		name, err := parseStringArg(src, "load")
		if err != nil {
			return nil, err
		}
		if h.Include == nil {
			return nil, fmt.Errorf("testhost: load(%q) called with no include function wired", name)
		}
		blocks, err := h.Include(name, at)
		if err != nil {
			return nil, err
		}

		return &Value{Kind: "block", Text: name, Blocks: blocks}, nil

	default:
		return &Value{Kind: "none", Text: src}, nil
	}
}

func (h *Host) Classify(v hostiface.HostValue) hostiface.Capability {
	val, ok := v.(*Value)
	if !ok {
		return hostiface.CapabilityNone
	}

	switch val.Kind {
	case "header":
		return hostiface.CapabilityHeader
	case "block":
		return hostiface.CapabilityBlock
	case "inline":
		return hostiface.CapabilityInline
	default:
		return hostiface.CapabilityNone
	}
}

func (h *Host) HeaderWeight(v hostiface.HostValue) int {
	val, ok := v.(*Value)
	if !ok {
		return 0
	}

	return val.Weight
}

func (h *Host) BuildFromBlocks(v hostiface.HostValue, body any, _ span.Span) (hostiface.HostValue, error) {
	val, ok := v.(*Value)
	if !ok {
		return nil, fmt.Errorf("testhost: BuildFromBlocks on foreign value")
	}
	blocks, ok := body.(doctree.Blocks)
	if !ok {
		return nil, fmt.Errorf("testhost: BuildFromBlocks body is not doctree.Blocks")
	}

	return &Value{Kind: "built-block", Text: val.Text, Weight: val.Weight, Blocks: blocks}, nil
}

func (h *Host) BuildFromInlines(v hostiface.HostValue, body any, _ span.Span) (hostiface.HostValue, error) {
	val, ok := v.(*Value)
	if !ok {
		return nil, fmt.Errorf("testhost: BuildFromInlines on foreign value")
	}
	inlines, ok := body.(doctree.Inlines)
	if !ok {
		return nil, fmt.Errorf("testhost: BuildFromInlines body is not doctree.Inlines")
	}

	return &Value{Kind: "built-inline:" + val.Kind, Inline: inlines}, nil
}

func (h *Host) BuildFromRaw(v hostiface.HostValue, raw string, _ span.Span) (hostiface.HostValue, error) {
	val, ok := v.(*Value)
	if !ok {
		return nil, fmt.Errorf("testhost: BuildFromRaw on foreign value")
	}

	return &Value{Kind: "built-raw:" + val.Kind, Raw: raw}, nil
}

// parseHeaderCall parses the trivial fixed form header(<int>[, "<name>"]).
func parseHeaderCall(src string) (int, string, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(src, "header("), ")")
	parts := strings.SplitN(inner, ",", 2)

	var weight int
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &weight); err != nil {
		return 0, "", fmt.Errorf("testhost: bad header() weight in %q: %w", src, err)
	}

	name := ""
	if len(parts) == 2 {
		name = strings.Trim(strings.TrimSpace(parts[1]), `"`)
	}

	return weight, name, nil
}

// parseStringArg parses the trivial fixed form fn("<arg>").
func parseStringArg(src, fn string) (string, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(src, fn+"("), ")")
	inner = strings.TrimSpace(inner)
	if len(inner) < 2 || inner[0] != '"' || inner[len(inner)-1] != '"' {
		return "", fmt.Errorf("testhost: expected a quoted string argument in %q", src)
	}

	return inner[1 : len(inner)-1], nil
}

var _ hostiface.Host = (*Host)(nil)
