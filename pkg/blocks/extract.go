package blocks

import (
	"sort"
	"strings"

	"github.com/matzehuels/gridtext/pkg/grid"
)

// Options tunes block extraction.
type Options struct {
	// GapThreshold is the empty-column count that splits a line.
	GapThreshold int

	// IncludeSpaces keeps whitespace cells as content. By default they are
	// dropped before segmentation.
	IncludeSpaces bool
}

// DefaultOptions returns the extraction settings used by
// [ExtractAllTextBlocks].
func DefaultOptions() Options {
	return Options{GapThreshold: DefaultGapThreshold}
}

// LineBlocks maps a line number to the blocks on that line, ordered by Start.
type LineBlocks map[int][]TextBlock

// ExtractAllTextBlocks returns the blocks of every line of g with content.
// When viewport is non-nil, cells outside it are ignored. Lines that end up
// with no blocks are absent from the result.
func ExtractAllTextBlocks(g grid.Grid, viewport *grid.Viewport) LineBlocks {
	return ExtractAllTextBlocksWithOptions(g, viewport, DefaultOptions())
}

// ExtractAllTextBlocksWithOptions is [ExtractAllTextBlocks] with explicit
// options.
func ExtractAllTextBlocksWithOptions(g grid.Grid, viewport *grid.Viewport, opts Options) LineBlocks {
	rows := make(map[int][]Char)
	for k, c := range g {
		if !viewport.Contains(k.X, k.Y) {
			continue
		}
		ch := grid.CharOf(c)
		if ch == "" || (!opts.IncludeSpaces && strings.TrimSpace(ch) == "") {
			continue
		}
		rows[k.Y] = append(rows[k.Y], Char{X: k.X, Char: ch})
	}

	out := make(LineBlocks, len(rows))
	for y, chars := range rows {
		sort.Slice(chars, func(i, j int) bool { return chars[i].X < chars[j].X })
		if bs := DetectTextBlocks(chars, opts.GapThreshold); len(bs) > 0 {
			out[y] = bs
		}
	}
	return out
}

// SortedLines returns the line numbers of lb in ascending order.
func (lb LineBlocks) SortedLines() []int {
	lines := make([]int, 0, len(lb))
	for y := range lb {
		lines = append(lines, y)
	}
	sort.Ints(lines)
	return lines
}

// Count returns the total number of blocks across all lines.
func (lb LineBlocks) Count() int {
	n := 0
	for _, bs := range lb {
		n += len(bs)
	}
	return n
}
