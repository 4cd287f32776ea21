// Package blocks segments canvas lines into text blocks.
//
// A block is a maximal horizontal run of characters on one line in which no
// two neighbours are separated by gapThreshold or more empty columns.
// [DetectTextBlocks] segments a single pre-sorted line; [ExtractAllTextBlocks]
// scans a whole grid (optionally restricted to a viewport) and returns the
// blocks of every line that has content:
//
//	lines := blocks.ExtractAllTextBlocks(g, nil)
//	for y, bs := range lines {
//	    for _, b := range bs {
//	        fmt.Printf("line %d: [%d..%d] %q\n", y, b.Start, b.End, b.Text())
//	    }
//	}
//
// Results are recomputed from the grid snapshot on every call. The map
// returned by [ExtractAllTextBlocks] has no defined iteration order; use
// [SortedLines] when determinism matters.
package blocks
