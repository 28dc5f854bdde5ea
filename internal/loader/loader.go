// Package loader is the one filesystem-shaped collaborator the core parser
// itself never needs: it turns a path on an afero.Fs into a *source.Source,
// and resolves a "load(name)" include name against a configured search path,
// the piece spec.md §5 leaves entirely to "the caller".
package loader

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/connerohnesorge/turniptext/internal/source"
)

// Loader reads turnip_text source files from an afero.Fs, using Roots as
// an ordered search path for relative include names. A real CLI wires Fs to
// afero.NewOsFs(); tests wire it to afero.NewMemMapFs() to avoid touching
// disk, per SPEC_FULL.md's rationale for choosing afero over os directly.
type Loader struct {
	Fs    afero.Fs
	Roots []string
}

// New creates a Loader rooted at the given search path list. An empty Roots
// means relative includes resolve only against the current working
// directory of Fs.
func New(fs afero.Fs, roots []string) *Loader {
	return &Loader{Fs: fs, Roots: roots}
}

// LoadFile reads path directly (no search-root resolution) and pushes it
// onto stack as the named source name.
func (l *Loader) LoadFile(stack *source.Stack, name, path string) (*source.Source, error) {
	contents, err := afero.ReadFile(l.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}

	src, _, err := stack.Push(name, contents)
	if err != nil {
		return nil, err
	}

	return src, nil
}

// Resolve implements turnipparse.IncludeResolver: it walks Roots in order,
// returning the bytes of the first existing "<root>/<name>" match; with no
// Roots configured (or no match), it falls back to name interpreted
// relative to Fs's working directory.
func (l *Loader) Resolve(name string) ([]byte, error) {
	for _, root := range l.Roots {
		candidate := filepath.Join(root, name)
		if exists, _ := afero.Exists(l.Fs, candidate); exists {
			return afero.ReadFile(l.Fs, candidate)
		}
	}

	exists, err := afero.Exists(l.Fs, name)
	if err != nil {
		return nil, fmt.Errorf("loader: checking %s: %w", name, err)
	}
	if !exists {
		return nil, fmt.Errorf("loader: could not find include %q in any of %v", name, l.Roots)
	}

	return afero.ReadFile(l.Fs, name)
}
