package turniperrs

import (
	"fmt"

	"github.com/connerohnesorge/turniptext/internal/span"
)

// MissingCapability indicates an eval-bracket produced a value that the
// surrounding context needed to build from (Header, Block, or Inline) but
// the value does not implement that build contract.
type MissingCapability struct {
	Span     span.Span
	Want     string // "Header", "Block", or "Inline"
	HostType string
}

func (e *MissingCapability) Error() string {
	return fmt.Sprintf(
		"value of host type %q at byte %d has no %s build capability",
		e.HostType, e.Span.Start, e.Want,
	)
}

func (e *MissingCapability) Kind() Kind { return Semantic }

func (e *MissingCapability) Primary() span.Span { return e.Span }

// BuilderContractViolation indicates a builder's BuildFromBlocks /
// BuildFromInlines / BuildFromRaw call returned a value the assembler
// cannot place (wrong shape, or an error the host reported mid-build).
type BuilderContractViolation struct {
	Span   span.Span
	Detail string
}

func (e *BuilderContractViolation) Error() string {
	return fmt.Sprintf("builder contract violation at byte %d: %s", e.Span.Start, e.Detail)
}

func (e *BuilderContractViolation) Kind() Kind { return Semantic }

func (e *BuilderContractViolation) Primary() span.Span { return e.Span }

// AmbiguousCapability indicates a value implements more than one of Header,
// Block, Inline ambiguously for the position it was produced in (the
// probing order in spec §4.2 resolves most cases; this fires only when the
// host reports the value itself refuses to pick one).
type AmbiguousCapability struct {
	Span     span.Span
	HostType string
}

func (e *AmbiguousCapability) Error() string {
	return fmt.Sprintf(
		"value of host type %q at byte %d did not resolve to a single build capability",
		e.HostType, e.Span.Start,
	)
}

func (e *AmbiguousCapability) Kind() Kind { return Semantic }

func (e *AmbiguousCapability) Primary() span.Span { return e.Span }
