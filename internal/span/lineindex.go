package span

import "sort"

// LineIndex converts byte offsets within one source's bytes into 1-based
// line / 0-based column coordinates. Construction is lazy: the line-start
// table is only built on the first query, so sources that are never the
// subject of a diagnostic never pay the scan.
type LineIndex struct {
	source     []byte
	lineStarts []int
	built      bool
}

// NewLineIndex wraps source for position lookups. The byte slice is kept,
// not copied, and must outlive the index.
func NewLineIndex(source []byte) *LineIndex {
	return &LineIndex{source: source}
}

func (idx *LineIndex) build() {
	if idx.built {
		return
	}

	idx.lineStarts = []int{0}

	i := 0
	for i < len(idx.source) {
		switch idx.source[i] {
		case '\n':
			idx.lineStarts = append(idx.lineStarts, i+1)
			i++
		case '\r':
			if i+1 < len(idx.source) && idx.source[i+1] == '\n' {
				idx.lineStarts = append(idx.lineStarts, i+2)
				i += 2
			} else {
				idx.lineStarts = append(idx.lineStarts, i+1)
				i++
			}
		default:
			i++
		}
	}

	idx.built = true
}

// LineCol returns the 1-based line and 0-based column for a byte offset.
// Offsets outside [0, len(source)] are clamped to the nearest valid
// position rather than reported as an error, since diagnostics must always
// be renderable even for an off-by-one span produced by a bug elsewhere.
func (idx *LineIndex) LineCol(offset int) (line, col int) {
	idx.build()

	if offset < 0 {
		return 1, 0
	}
	if offset >= len(idx.source) {
		last := len(idx.lineStarts)
		lastStart := idx.lineStarts[last-1]

		return last, len(idx.source) - lastStart
	}

	lineIdx := sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	})
	if lineIdx > 0 {
		lineIdx--
	}

	return lineIdx + 1, offset - idx.lineStarts[lineIdx]
}

// Position builds a full Position for offset, tagging it with src.
func (idx *LineIndex) Position(src SourceID, offset int) Position {
	line, col := idx.LineCol(offset)

	return Position{Source: src, Line: line, Column: col, Offset: offset}
}

// LineCount returns the total number of lines, building the index if needed.
func (idx *LineIndex) LineCount() int {
	idx.build()

	return len(idx.lineStarts)
}

// LineText returns the raw bytes of the given 1-based line, excluding its
// terminator, for use in rendering a source excerpt under a diagnostic.
func (idx *LineIndex) LineText(lineNum int) []byte {
	idx.build()

	if lineNum <= 0 || len(idx.lineStarts) == 0 {
		return nil
	}

	lineIdx := lineNum - 1
	if lineIdx >= len(idx.lineStarts) {
		return nil
	}

	start := idx.lineStarts[lineIdx]

	var end int
	if lineIdx+1 < len(idx.lineStarts) {
		end = idx.lineStarts[lineIdx+1]
		if end > start && idx.source[end-1] == '\n' {
			end--
		}
		if end > start && idx.source[end-1] == '\r' {
			end--
		}
	} else {
		end = len(idx.source)
	}

	return idx.source[start:end]
}
