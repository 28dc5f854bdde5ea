package turnipparse

import (
	"github.com/connerohnesorge/turniptext/internal/hostiface"
	"github.com/connerohnesorge/turniptext/internal/span"
	"github.com/connerohnesorge/turniptext/internal/turniperrs"
)

// evalResult is what running an eval-bracket's captured code through the
// three-attempt compile protocol and a single Eval call produces.
type evalResult struct {
	value      hostiface.HostValue
	capability hostiface.Capability
	weight     int
	codeSpan   span.Span
}

// evalCode captures the code text via s.lx.CaptureCode, then tries each
// entry of hostiface.CompileAttemptOrder in turn against it until one
// compiles, per spec §4.4. If every attempt fails, it returns a
// *turniperrs.CompileFailure naming all three.
func (p *Parser) evalCode(s *stream, open span.Span, n int) (evalResult, error) {
	src, closeSpan, err := s.lx.CaptureCode(open, n)
	if err != nil {
		return evalResult{}, err
	}
	codeSpan := open.Join(closeSpan)

	var (
		lastErr error
		tried   []string
	)

	for _, attempt := range hostiface.CompileAttemptOrder {
		compiled, cerr := p.host.Compile(src, attempt, codeSpan)
		tried = append(tried, string(attempt))
		if cerr != nil {
			lastErr = cerr

			continue
		}

		value, everr := p.host.Eval(compiled, codeSpan)
		if everr != nil {
			return evalResult{}, &turniperrs.EvalFailure{Span: codeSpan, Err: everr}
		}

		cap := p.host.Classify(value)
		weight := 0
		if cap == hostiface.CapabilityHeader {
			weight = p.host.HeaderWeight(value)
		}

		return evalResult{value: value, capability: cap, weight: weight, codeSpan: codeSpan}, nil
	}

	return evalResult{}, &turniperrs.CompileFailure{Span: codeSpan, Attempts: tried, Err: lastErr}
}
