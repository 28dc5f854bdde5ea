package turniperrs

import (
	"fmt"

	"github.com/connerohnesorge/turniptext/internal/span"
)

// CompileFailure wraps a failure to compile the captured code text under
// any of the three host-compilation attempts spec §4.4 describes (strip as
// expression, strip as statements, unstripped if-wrapped statements).
type CompileFailure struct {
	Span     span.Span
	Attempts []string
	Err      error
}

func (e *CompileFailure) Error() string {
	return fmt.Sprintf(
		"host failed to compile code at byte %d after attempts %v: %v",
		e.Span.Start, e.Attempts, e.Err,
	)
}

func (e *CompileFailure) Unwrap() error { return e.Err }

func (e *CompileFailure) Kind() Kind { return Host }

func (e *CompileFailure) Primary() span.Span { return e.Span }

// EvalFailure wraps a runtime error the host raised while evaluating
// already-compiled code.
type EvalFailure struct {
	Span span.Span
	Err  error
}

func (e *EvalFailure) Error() string {
	return fmt.Sprintf("host evaluation failed at byte %d: %v", e.Span.Start, e.Err)
}

func (e *EvalFailure) Unwrap() error { return e.Err }

func (e *EvalFailure) Kind() Kind { return Host }

func (e *EvalFailure) Primary() span.Span { return e.Span }
