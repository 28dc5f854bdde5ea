package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/connerohnesorge/turniptext/internal/config"
	"github.com/connerohnesorge/turniptext/internal/diagnostics"
	"github.com/connerohnesorge/turniptext/internal/doctree"
	"github.com/connerohnesorge/turniptext/internal/loader"
	"github.com/connerohnesorge/turniptext/internal/source"
	"github.com/connerohnesorge/turniptext/internal/testhost"
	"github.com/connerohnesorge/turniptext/internal/theme"
	"github.com/connerohnesorge/turniptext/internal/turnipparse"
)

// ParseCmd is the demo "parse" subcommand: it reads a turnip_text source
// file via internal/loader, drives it through internal/testhost's reference
// host, and prints either a flattened outline of the resulting document or
// a rendered diagnostic. It is a smoke test, not a renderer (spec.md §1
// excludes rendering from scope).
type ParseCmd struct {
	File     string `arg:"" help:"Path to the turnip_text source file to parse" type:"existingfile"`
	MaxDepth int    `help:"Maximum include recursion depth (0 selects the default)" default:"0"`
	NoColor  bool   `help:"Disable colorized diagnostic output" name:"no-color"`
}

func (c *ParseCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{Theme: "default"}
	}
	th, err := theme.Get(cfg.Theme)
	if err != nil {
		th, _ = theme.Get("default")
	}

	color := !c.NoColor && diagnostics.IsTerminalFile(os.Stdout.Fd())
	renderer := diagnostics.NewRenderer(os.Stdout, th, color)

	fs := afero.NewOsFs()
	ld := loader.New(fs, cfg.IncludeRoots)
	stack := source.NewStack(c.MaxDepth)

	root, err := ld.LoadFile(stack, c.File, c.File)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	p := turnipparse.NewParser(nil, stack, ld)
	host := testhost.New(p.Include)
	p.SetHost(host)

	idx := root.LineIndex()

	doc, err := p.ParseDocument(root)
	if err != nil {
		if d, ok := err.(diagnostics.Diagnostic); ok {
			renderer.Render(d, diagnostics.SeverityError, idx)

			return fmt.Errorf("parse failed")
		}

		return err
	}

	for _, diag := range doc.Diagnostics {
		if d, ok := diag.(diagnostics.Diagnostic); ok {
			renderer.Render(d, diagnostics.SeverityWarning, idx)
		}
	}

	printSegment(os.Stdout, doc.Root, 0)

	return nil
}

func printSegment(w io.Writer, seg *doctree.DocSegment, depth int) {
	indent := strings.Repeat("  ", depth)
	if seg.Header != nil {
		fmt.Fprintf(w, "%s- [weight %d] %s\n", indent, seg.Weight, seg.Header.Value.HostTypeName())
	} else if depth > 0 {
		fmt.Fprintf(w, "%ssegment (weight %d)\n", indent, seg.Weight)
	}

	for _, block := range seg.Content.Items {
		fmt.Fprintf(w, "%s  %s\n", indent, describeBlock(block))
	}

	for _, child := range seg.Children {
		printSegment(w, child, depth+1)
	}
}

func describeBlock(b doctree.BlockNode) string {
	switch v := b.(type) {
	case *doctree.Paragraph:
		return fmt.Sprintf("paragraph (%d sentences)", len(v.Sentences))
	case *doctree.EmbeddedBlock:
		return "block: " + v.Value.HostTypeName()
	case *doctree.BlockGroup:
		return fmt.Sprintf("group (%d items)", len(v.Content.Items))
	default:
		return "block"
	}
}
