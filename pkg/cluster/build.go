package cluster

import (
	"fmt"
	"sort"

	"github.com/matzehuels/gridtext/pkg/blocks"
)

// sharedMarginTolerance is how far a block's start may drift from the
// cluster's left edge and still count as aligned.
const sharedMarginTolerance = 2

// Result is the full outcome of a clustering pass. Discarded holds the
// clusters that fell below MinBlocksPerCluster; together with Clusters it
// accounts for every input block exactly once.
type Result struct {
	Clusters  []TextCluster
	Discarded []TextCluster
}

// GroupTextBlocksIntoClusters groups blocks into clusters and returns the
// clusters with at least cond.MinBlocksPerCluster blocks, in seeding order.
func GroupTextBlocksIntoClusters(lb blocks.LineBlocks, cond Conditions) []TextCluster {
	return Build(lb, cond).Clusters
}

// Build runs the clustering pass and also reports discarded clusters.
func Build(lb blocks.LineBlocks, cond Conditions) Result {
	a := newArena(lb)
	var res Result

	for _, y := range a.lines {
		for _, id := range a.byLine[y] {
			if a.claimed[id] {
				continue
			}
			c := a.grow(id, cond)
			c.finalize()
			if len(c.Blocks) >= cond.MinBlocksPerCluster {
				c.ID = fmt.Sprintf("cluster-%d", len(res.Clusters))
				res.Clusters = append(res.Clusters, c)
			} else {
				c.ID = fmt.Sprintf("discarded-%d", len(res.Discarded))
				res.Discarded = append(res.Discarded, c)
			}
		}
	}
	return res
}

// arena stores every block once and tracks which ones have been claimed.
type arena struct {
	blocks  []blocks.TextBlock
	lineOf  []int
	byLine  map[int][]int
	lines   []int
	claimed []bool
}

func newArena(lb blocks.LineBlocks) *arena {
	a := &arena{
		byLine: make(map[int][]int, len(lb)),
		lines:  lb.SortedLines(),
	}
	for _, y := range a.lines {
		row := append([]blocks.TextBlock(nil), lb[y]...)
		sort.SliceStable(row, func(i, j int) bool { return row[i].Start < row[j].Start })
		for _, b := range row {
			a.byLine[y] = append(a.byLine[y], len(a.blocks))
			a.blocks = append(a.blocks, b)
			a.lineOf = append(a.lineOf, y)
		}
	}
	a.claimed = make([]bool, len(a.blocks))
	return a
}

// nearby returns the lines within gap of seed, nearest first. Ties keep
// ascending order, so the line above wins over the line below.
func (a *arena) nearby(seed, gap int) []int {
	var out []int
	for _, y := range a.lines {
		if abs(y-seed) <= gap {
			out = append(out, y)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return abs(out[i]-seed) < abs(out[j]-seed) })
	return out
}

// grow seeds a cluster from block id and expands it to a fixed point.
func (a *arena) grow(id int, cond Conditions) TextCluster {
	seedLine := a.lineOf[id]
	seed := a.blocks[id]
	c := TextCluster{
		BoundingBox: BoundingBox{MinX: seed.Start, MaxX: seed.End, MinY: seedLine, MaxY: seedLine},
	}
	a.claim(&c, id)

	candidates := a.nearby(seedLine, cond.MaxVerticalGap)
	for {
		added := false
		for _, y := range candidates {
			for _, cand := range a.byLine[y] {
				if a.claimed[cand] || !isBlockAlignedWithCluster(a.blocks[cand], c.BoundingBox, cond) {
					continue
				}
				a.claim(&c, cand)
				added = true
			}
		}
		if !added {
			return c
		}
	}
}

func (a *arena) claim(c *TextCluster, id int) {
	b, y := a.blocks[id], a.lineOf[id]
	a.claimed[id] = true
	c.Blocks = append(c.Blocks, b)
	c.Lines = append(c.Lines, y)
	c.TotalCharacters += b.Len()
	c.EstimatedWords += b.Words()
	c.BoundingBox = c.BoundingBox.Union(BoundingBox{MinX: b.Start, MaxX: b.End, MinY: y, MaxY: y})
}

// isBlockAlignedWithCluster reports whether b overlaps the horizontal span of
// box by at least one column, or sits within MaxHorizontalOverlap empty
// columns of it while sharing its left margin.
func isBlockAlignedWithCluster(b blocks.TextBlock, box BoundingBox, cond Conditions) bool {
	if b.Start <= box.MaxX && b.End >= box.MinX {
		return true
	}
	var gap int
	if b.Start > box.MaxX {
		gap = b.Start - box.MaxX - 1
	} else {
		gap = box.MinX - b.End - 1
	}
	return gap <= cond.MaxHorizontalOverlap && abs(b.Start-box.MinX) <= sharedMarginTolerance
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
