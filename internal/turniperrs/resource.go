package turniperrs

import (
	"fmt"

	"github.com/connerohnesorge/turniptext/internal/span"
)

// RecursionLimit indicates an include chain exceeded the source stack's
// configured maximum depth (internal/source.DefaultMaxDepth unless a
// caller overrides it).
type RecursionLimit struct {
	Span     span.Span
	MaxDepth int
	Name     string
}

func (e *RecursionLimit) Error() string {
	return fmt.Sprintf(
		"include of %q at byte %d exceeds recursion limit of %d",
		e.Name, e.Span.Start, e.MaxDepth,
	)
}

func (e *RecursionLimit) Kind() Kind { return Resource }

func (e *RecursionLimit) Primary() span.Span { return e.Span }

// RecursionWarning is a non-fatal diagnostic: a source name already open
// somewhere on the include stack was pushed again. Accumulated alongside a
// successful parse rather than aborting it, per spec §7's policy that
// warnings do not stop a parse that otherwise succeeds.
type RecursionWarning struct {
	Span  span.Span
	Name  string
	Depth int
}

func (w *RecursionWarning) Error() string {
	return fmt.Sprintf(
		"include of %q at byte %d re-opens a source already open at depth %d",
		w.Name, w.Span.Start, w.Depth,
	)
}

func (w *RecursionWarning) Kind() Kind { return Resource }

func (w *RecursionWarning) Primary() span.Span { return w.Span }
