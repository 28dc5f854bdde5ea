// Package diagnostics renders a turniperrs.Diagnostic as a message line
// followed by a source excerpt with the offending byte range underlined,
// colorized by severity when writing to a terminal. spec.md §6 only
// requires that a diagnostic carry spans and labels; how it is displayed is
// left to "the caller", so this package picks and blends the colors
// internal/theme names, nothing more.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"

	"github.com/connerohnesorge/turniptext/internal/span"
	"github.com/connerohnesorge/turniptext/internal/theme"
)

// Severity distinguishes a fatal diagnostic from an accumulated warning.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Renderer writes diagnostics to an io.Writer, deciding whether to colorize
// based on whether that writer is a terminal.
type Renderer struct {
	out       io.Writer
	color     bool
	errColor  colorful.Color
	warnColor colorful.Color
}

// NewRenderer builds a Renderer for out using th's Error/Warning palette.
// color should come from IsTerminalFile on out's underlying fd; a Renderer
// built with color=false never emits ANSI escapes, so piping to a file or
// another process degrades to plain text.
func NewRenderer(out io.Writer, th *theme.Theme, color bool) *Renderer {
	errC, _ := ansiColor(string(th.Error))
	warnC, _ := ansiColor(string(th.Warning))

	return &Renderer{out: out, color: color, errColor: errC, warnColor: warnC}
}

// IsTerminalFile reports whether the file descriptor fd is an interactive
// terminal, the detection internal/diagnostics and cmd/ use to decide on
// ANSI output instead of always coloring.
func IsTerminalFile(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Diagnostic is the minimal shape internal/diagnostics needs to render a
// message; every type in internal/turniperrs satisfies it.
type Diagnostic interface {
	error
	Primary() span.Span
}

// Render writes one diagnostic: a colored severity-tagged message line,
// then (if idx is non-nil) the source line containing Primary() with the
// offending range underlined.
func (r *Renderer) Render(d Diagnostic, sev Severity, idx *span.LineIndex) {
	tag := "error"
	c := r.errColor
	if sev == SeverityWarning {
		tag = "warning"
		c = r.warnColor
	}

	fmt.Fprintln(r.out, r.style(c, true).Render(tag+":")+" "+d.Error())

	if idx == nil {
		return
	}

	pspan := d.Primary()
	line, col := idx.LineCol(pspan.Start)
	text := idx.LineText(line)
	if text == nil {
		return
	}

	fmt.Fprintf(r.out, "  %4d | %s\n", line, text)

	width := pspan.Len()
	if width < 1 {
		width = 1
	}
	underline := strings.Repeat(" ", col) + strings.Repeat("^", width)
	fmt.Fprintln(r.out, r.style(c, false).Render("       | "+underline))
}

// Blend interpolates between the error and warning colors in CIE-Lab space
// (via go-colorful), t=0 pure error, t=1 pure warning, giving a shade
// between the two extremes rather than an abrupt switch.
func (r *Renderer) Blend(t float64) lipgloss.Color {
	return lipgloss.Color(r.errColor.BlendLab(r.warnColor, t).Hex())
}

func (r *Renderer) style(c colorful.Color, bold bool) lipgloss.Style {
	st := lipgloss.NewStyle()
	if !r.color {
		return st
	}

	st = st.Foreground(lipgloss.Color(c.Hex()))
	if bold {
		st = st.Bold(true)
	}

	return st
}

// ANSI 256 color code constants: the standard 16, a 6x6x6 color cube, and
// a 24-step grayscale ramp, converted to RGB so go-colorful can blend them
// in Lab space.
const (
	ansiMaxColorCode    = 255
	ansiStandardMax     = 16
	ansiCubeStart       = 16
	ansiCubeEnd         = 231
	ansiGrayscaleStart  = 232
	ansiGrayscaleEnd    = 255
	ansiCubeSize        = 6
	ansiCubePlaneSize   = 36
	ansiGrayscaleSteps  = 23.0
	ansiColorSteps      = 5.0
	standardColorDim    = 0.5
	standardColorBright = 0.75
	fullBrightness      = 1.0
	zeroBrightness      = 0.0
)

// ansiColor converts a theme color (a hex string or an ANSI 256 code, as
// internal/theme's Theme fields hold) to a colorful.Color for blending.
func ansiColor(color string) (colorful.Color, error) {
	if strings.HasPrefix(color, "#") {
		return colorful.Hex(color)
	}

	var code int
	if _, err := fmt.Sscanf(color, "%d", &code); err == nil && code >= 0 && code <= ansiMaxColorCode {
		return ansi256ToRGB(code), nil
	}

	return colorful.Color{}, fmt.Errorf("diagnostics: invalid color format: %s", color)
}

func ansi256ToRGB(code int) colorful.Color {
	switch {
	case code < ansiStandardMax:
		return standardAnsiColor(code)
	case code >= ansiCubeStart && code <= ansiCubeEnd:
		index := code - ansiCubeStart
		r := index / ansiCubePlaneSize
		g := (index % ansiCubePlaneSize) / ansiCubeSize
		b := index % ansiCubeSize

		return colorful.Color{R: float64(r) / ansiColorSteps, G: float64(g) / ansiColorSteps, B: float64(b) / ansiColorSteps}
	case code >= ansiGrayscaleStart && code <= ansiGrayscaleEnd:
		gray := float64(code-ansiGrayscaleStart) / ansiGrayscaleSteps

		return colorful.Color{R: gray, G: gray, B: gray}
	default:
		return colorful.Color{R: fullBrightness, G: fullBrightness, B: fullBrightness}
	}
}

func standardAnsiColor(code int) colorful.Color {
	standardColors := [ansiStandardMax]colorful.Color{
		{R: zeroBrightness, G: zeroBrightness, B: zeroBrightness},
		{R: standardColorDim, G: zeroBrightness, B: zeroBrightness},
		{R: zeroBrightness, G: standardColorDim, B: zeroBrightness},
		{R: standardColorDim, G: standardColorDim, B: zeroBrightness},
		{R: zeroBrightness, G: zeroBrightness, B: standardColorDim},
		{R: standardColorDim, G: zeroBrightness, B: standardColorDim},
		{R: zeroBrightness, G: standardColorDim, B: standardColorDim},
		{R: standardColorBright, G: standardColorBright, B: standardColorBright},
		{R: standardColorDim, G: standardColorDim, B: standardColorDim},
		{R: fullBrightness, G: zeroBrightness, B: zeroBrightness},
		{R: zeroBrightness, G: fullBrightness, B: zeroBrightness},
		{R: fullBrightness, G: fullBrightness, B: zeroBrightness},
		{R: zeroBrightness, G: zeroBrightness, B: fullBrightness},
		{R: fullBrightness, G: zeroBrightness, B: fullBrightness},
		{R: zeroBrightness, G: fullBrightness, B: fullBrightness},
		{R: fullBrightness, G: fullBrightness, B: fullBrightness},
	}

	return standardColors[code]
}
