// Package hostiface defines the contract between the parser and whatever
// host language evaluates the code captured inside eval-brackets (spec
// §4.2). The core never evaluates code itself; it only compiles a request,
// dispatches capability-probed values through this interface, and folds
// the result back into the document tree. A host implementation is "only a
// collaborator" per spec §1 — this package is the seam, not an
// implementation. See internal/testhost for a minimal reference/test
// double.
package hostiface

import "github.com/connerohnesorge/turniptext/internal/span"

// HostValue is an opaque value produced by evaluating host code. The core
// never inspects it directly; it only passes it back into Classifier and
// BuilderDispatcher calls.
type HostValue interface {
	// HostTypeName is used only for diagnostics (turniperrs.MissingCapability
	// and friends), never for control flow.
	HostTypeName() string
}

// CompileAttempt names one of the three fixed compilation strategies spec
// §4.4 requires the core to try, in order, against the same captured code
// text.
type CompileAttempt string

const (
	// AttemptStrippedExpr strips surrounding whitespace and compiles the
	// text as a single expression.
	AttemptStrippedExpr CompileAttempt = "stripped-expr"
	// AttemptStrippedStatements strips surrounding whitespace and
	// compiles the text as a statement sequence.
	AttemptStrippedStatements CompileAttempt = "stripped-statements"
	// AttemptWrappedStatements compiles the unstripped text as a
	// statement sequence wrapped in an unconditionally-true guard, so
	// that leading-indentation-sensitive host languages still parse it
	// as a block.
	AttemptWrappedStatements CompileAttempt = "wrapped-statements"
)

// CompileAttemptOrder is the fixed sequence the parser tries against each
// captured eval-bracket body, per spec §4.4. The first attempt that
// compiles without error wins; if all three fail the parser reports a
// turniperrs.CompileFailure naming every attempt tried.
var CompileAttemptOrder = []CompileAttempt{
	AttemptStrippedExpr,
	AttemptStrippedStatements,
	AttemptWrappedStatements,
}

// CompiledCode is an opaque compiled-code handle returned by Evaluator.Compile,
// later passed back to Evaluator.Eval.
type CompiledCode interface {
	Attempt() CompileAttempt
}

// Evaluator compiles and runs host code. The parser calls Compile once per
// CompileAttemptOrder entry until one succeeds (or all fail), then calls
// Eval exactly once on the winning CompiledCode.
type Evaluator interface {
	// Compile tries to compile src under the given attempt strategy. An
	// error here is expected and non-fatal for all but the last attempt;
	// the parser moves on to the next attempt.
	Compile(src string, attempt CompileAttempt, codeSpan span.Span) (CompiledCode, error)

	// Eval runs previously compiled code and returns the value it
	// produced (the evaluation of the final expression, or of an
	// explicit "emit" call the host convention defines).
	Eval(code CompiledCode, codeSpan span.Span) (HostValue, error)
}

// Capability is one of the three things the assembler can do with a
// HostValue produced by an eval-bracket, probed in this exact order per
// spec §4.2: Header beats Block beats Inline when a value happens to
// satisfy more than one.
type Capability uint8

const (
	// CapabilityNone means the value cannot be built from blocks,
	// inlines, or raw text; it is used as-is (for example, a plain
	// string or number flows directly into the surrounding inline run).
	CapabilityNone Capability = iota
	// CapabilityInline means BuilderDispatcher.BuildFromInlines applies.
	CapabilityInline
	// CapabilityBlock means BuilderDispatcher.BuildFromBlocks applies.
	CapabilityBlock
	// CapabilityHeader means the value additionally wants to become a
	// new DocSegment at a given weight (spec §4.7); BuildFromBlocks
	// still supplies its body.
	CapabilityHeader
)

// CapabilityProbeOrder documents the probing order named in spec §4.2;
// Classifier.Classify implementations must respect it (return the
// highest-priority capability the value supports rather than leaving it to
// the caller to re-derive).
var CapabilityProbeOrder = []Capability{CapabilityHeader, CapabilityBlock, CapabilityInline}

// Classifier inspects a HostValue to determine which build capability it
// exposes, resolving ties in favor of Header over Block over Inline.
type Classifier interface {
	Classify(v HostValue) Capability
	// HeaderWeight returns the header weight of v. Only called when
	// Classify(v) == CapabilityHeader.
	HeaderWeight(v HostValue) int
}

// BuildKind tells BuilderDispatcher which of the three build contracts the
// parser is invoking, matching spec §4.2's BuildFromBlocks/BuildFromInlines
// /BuildFromRaw trio.
type BuildKind uint8

const (
	BuildFromBlocks BuildKind = iota
	BuildFromInlines
	BuildFromRaw
)

// BuilderDispatcher invokes the build contract a Classifier selected. The
// body parameter is a doctree.Blocks or doctree.Inlines value respectively;
// it is typed as `any` here so that this package (the bridge seam) does not
// need to import internal/doctree (the assembler), avoiding a dependency
// cycle since doctree never needs to know about hosts. Callers in
// internal/turnipparse hold the concrete type on both ends of the call.
type BuilderDispatcher interface {
	BuildFromBlocks(v HostValue, body any, bodySpan span.Span) (HostValue, error)
	BuildFromInlines(v HostValue, body any, bodySpan span.Span) (HostValue, error)
	BuildFromRaw(v HostValue, raw string, bodySpan span.Span) (HostValue, error)
}

// Host bundles the three roles a host implementation must provide. Most
// hosts implement all three on a single type, but the interfaces are kept
// separate so a test double can compose smaller pieces.
type Host interface {
	Evaluator
	Classifier
	BuilderDispatcher
}
