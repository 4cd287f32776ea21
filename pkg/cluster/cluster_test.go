package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gridtext/pkg/blocks"
	"github.com/matzehuels/gridtext/pkg/grid"
)

func linesOf(rows map[int]string) blocks.LineBlocks {
	g := grid.New()
	for y, s := range rows {
		g.WriteString(0, y, s)
	}
	return blocks.ExtractAllTextBlocks(g, nil)
}

func single(start, end int) blocks.TextBlock {
	var chars []blocks.Char
	for x := start; x <= end; x++ {
		chars = append(chars, blocks.Char{X: x, Char: "x"})
	}
	return blocks.TextBlock{Start: start, End: end, Characters: chars}
}

func TestAdjacentSingleCharactersMerge(t *testing.T) {
	lb := blocks.LineBlocks{
		0: {single(0, 0)},
		1: {single(0, 0)},
	}
	clusters := GroupTextBlocksIntoClusters(lb, DefaultConditions())
	require.Len(t, clusters, 1)

	c := clusters[0]
	assert.Equal(t, 2, c.BlockCount())
	assert.Equal(t, BoundingBox{MinX: 0, MaxX: 0, MinY: 0, MaxY: 1}, c.BoundingBox)
	assert.Equal(t, 1.0, c.Density)
	assert.Equal(t, Point{X: 0, Y: 0.5}, c.Centroid)
	assert.Equal(t, "cluster-0", c.ID)
}

func TestVerticalGapLimit(t *testing.T) {
	lb := blocks.LineBlocks{
		0: {single(0, 3)},
		6: {single(0, 3)},
	}
	assert.Len(t, GroupTextBlocksIntoClusters(lb, DefaultConditions()), 2)

	cond := DefaultConditions()
	cond.MaxVerticalGap = 6
	assert.Len(t, GroupTextBlocksIntoClusters(lb, cond), 1)
}

func TestDistantColumnsStaySeparate(t *testing.T) {
	lb := linesOf(map[int]string{
		0: "left                    right",
		1: "text                    words",
	})
	clusters := GroupTextBlocksIntoClusters(lb, DefaultConditions())
	require.Len(t, clusters, 2)
	assert.Equal(t, "left\ntext", clusters[0].Text())
	assert.Equal(t, "right\nwords", clusters[1].Text())
}

func TestSharedLeftMargin(t *testing.T) {
	box := BoundingBox{MinX: 10, MaxX: 10, MinY: 0, MaxY: 0}
	cond := DefaultConditions()

	// Right of a narrow cluster, starting within the margin tolerance.
	assert.True(t, isBlockAlignedWithCluster(single(12, 20), box, cond))
	// Overlap always wins.
	assert.True(t, isBlockAlignedWithCluster(single(0, 10), box, cond))
	// Left of the cluster and too far from its margin.
	assert.False(t, isBlockAlignedWithCluster(single(0, 5), box, cond))
	// Right of the cluster beyond the tolerance.
	assert.False(t, isBlockAlignedWithCluster(single(14, 20), box, cond))
}

func TestFixedPointGrowth(t *testing.T) {
	// Line 2 only overlaps once line 1 has widened the box to the right.
	lb := blocks.LineBlocks{
		0: {single(0, 4)},
		1: {single(2, 12)},
		2: {single(10, 14)},
		3: {single(13, 16)},
	}
	clusters := GroupTextBlocksIntoClusters(lb, DefaultConditions())
	require.Len(t, clusters, 1)
	assert.Equal(t, BoundingBox{MinX: 0, MaxX: 16, MinY: 0, MaxY: 3}, clusters[0].BoundingBox)
}

func TestLateWideningPicksUpEarlierCandidate(t *testing.T) {
	// Line 1 is the nearest candidate but only aligns after line 2 (farther
	// away) widens the box, so it joins on the second pass.
	lb := blocks.LineBlocks{
		0: {single(0, 3)},
		1: {single(20, 22)},
		2: {single(2, 21)},
	}
	clusters := GroupTextBlocksIntoClusters(lb, DefaultConditions())
	require.Len(t, clusters, 1)
	assert.Equal(t, []int{0, 2, 1}, clusters[0].Lines)
}

func TestCoverage(t *testing.T) {
	lb := linesOf(map[int]string{
		0:  "one two   three",
		1:  "four five",
		3:  "                       lonely",
		10: "far away line",
	})
	cond := DefaultConditions()
	cond.MinBlocksPerCluster = 2
	res := Build(lb, cond)

	seen := 0
	for _, c := range append(append([]TextCluster{}, res.Clusters...), res.Discarded...) {
		seen += c.BlockCount()
		require.Len(t, c.Lines, c.BlockCount())
	}
	assert.Equal(t, lb.Count(), seen)
	assert.NotEmpty(t, res.Discarded)
	assert.Less(t, res.Coverage(), 1.0)

	cond.MinBlocksPerCluster = 1
	assert.Equal(t, 1.0, Build(lb, cond).Coverage())
}

func TestDensityBound(t *testing.T) {
	lb := linesOf(map[int]string{
		0: "a quick brown",
		1: "fox   jumps",
		2: "    over the lazy dog",
		7: "x",
	})
	for _, c := range GroupTextBlocksIntoClusters(lb, DefaultConditions()) {
		area := float64(c.BoundingBox.Area())
		assert.Greater(t, c.Density, 0.0)
		assert.LessOrEqual(t, c.Density, float64(c.TotalCharacters))
		assert.Equal(t, float64(c.TotalCharacters)/area, c.Density)
	}
}

func TestBuildDeterministic(t *testing.T) {
	lb := linesOf(map[int]string{
		0: "alpha  beta",
		1: "gamma    delta",
		2: "epsilon",
	})
	assert.Equal(t, Build(lb, DefaultConditions()), Build(lb, DefaultConditions()))
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, GroupTextBlocksIntoClusters(nil, DefaultConditions()))
	assert.Equal(t, 1.0, Build(nil, DefaultConditions()).Coverage())
}

func TestTextReadingOrder(t *testing.T) {
	c := TextCluster{
		Blocks: []blocks.TextBlock{single(5, 5), single(0, 0), single(0, 2)},
		Lines:  []int{0, 0, -1},
	}
	c.Blocks[0].Characters[0].Char = "b"
	c.Blocks[1].Characters[0].Char = "a"
	assert.Equal(t, []int{2, 1, 0}, c.ReadingOrder())
	assert.Equal(t, "xxx\na b", c.Text())
}

func TestConditionsValidate(t *testing.T) {
	assert.NoError(t, DefaultConditions().Validate())

	c := DefaultConditions()
	c.MaxVerticalGap = -1
	assert.Error(t, c.Validate())

	c = DefaultConditions()
	c.MinDensity = -0.5
	assert.Error(t, c.Validate())
}
