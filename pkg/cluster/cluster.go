package cluster

import (
	"sort"
	"strings"

	"github.com/matzehuels/gridtext/pkg/blocks"
)

// TextCluster is a group of blocks, possibly spanning several lines.
// Blocks and Lines are parallel: Blocks[i] sits on line Lines[i].
type TextCluster struct {
	ID              string             `json:"id"`
	Blocks          []blocks.TextBlock `json:"blocks"`
	Lines           []int              `json:"lines"`
	BoundingBox     BoundingBox        `json:"boundingBox"`
	Density         float64            `json:"density"`
	TotalCharacters int                `json:"totalCharacters"`
	EstimatedWords  int                `json:"estimatedWords"`
	Centroid        Point              `json:"centroid"`
}

// BlockCount returns the number of member blocks.
func (c TextCluster) BlockCount() int {
	return len(c.Blocks)
}

// ReadingOrder returns the indices of c.Blocks sorted by line, then by start
// column. Blocks keep their growth order in the cluster itself.
func (c TextCluster) ReadingOrder() []int {
	idx := make([]int, len(c.Blocks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if c.Lines[ia] != c.Lines[ib] {
			return c.Lines[ia] < c.Lines[ib]
		}
		return c.Blocks[ia].Start < c.Blocks[ib].Start
	})
	return idx
}

// Text reconstructs the cluster's content in reading order. Blocks on the
// same line are separated by a space and lines by a newline.
func (c TextCluster) Text() string {
	var sb strings.Builder
	prevLine := 0
	for n, i := range c.ReadingOrder() {
		if n > 0 {
			if c.Lines[i] != prevLine {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(c.Blocks[i].SpacedText())
		prevLine = c.Lines[i]
	}
	return sb.String()
}

// finalize computes density and the character-weighted centroid.
func (c *TextCluster) finalize() {
	c.Density = float64(c.TotalCharacters) / float64(c.BoundingBox.Area())

	var sx, sy, w float64
	for i, b := range c.Blocks {
		n := float64(b.Len())
		sx += b.Midpoint() * n
		sy += float64(c.Lines[i]) * n
		w += n
	}
	if w > 0 {
		c.Centroid = Point{X: sx / w, Y: sy / w}
	}
}
