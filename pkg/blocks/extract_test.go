package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gridtext/pkg/grid"
)

func TestExtractAllTextBlocksEmpty(t *testing.T) {
	assert.Empty(t, ExtractAllTextBlocks(grid.New(), nil))
	assert.Empty(t, ExtractAllTextBlocks(nil, nil))
}

func TestExtractAllTextBlocksScenario(t *testing.T) {
	g := grid.New()
	g.SetChar(0, 0, "a")
	g.SetChar(1, 0, "b")
	g.SetChar(4, 0, "c")
	g.SetChar(5, 0, "d")

	lb := ExtractAllTextBlocks(g, nil)
	require.Len(t, lb, 1)
	assert.Equal(t, [][2]int{{0, 1}, {4, 5}}, spans(lb[0]))
	assert.Equal(t, "ab", lb[0][0].Text())
	assert.Equal(t, "cd", lb[0][1].Text())
}

func TestExtractAllTextBlocksSkipsWhitespace(t *testing.T) {
	g := grid.New()
	g.SetChar(0, 0, "a")
	g.SetChar(1, 0, " ")
	g.SetChar(2, 0, " ")
	g.SetChar(3, 0, "b")
	g.SetChar(0, 1, " ")
	g.SetChar(0, 2, "")

	lb := ExtractAllTextBlocks(g, nil)
	require.Len(t, lb, 1, "whitespace-only lines are omitted")
	assert.Equal(t, [][2]int{{0, 0}, {3, 3}}, spans(lb[0]))

	withSpaces := ExtractAllTextBlocksWithOptions(g, nil, Options{GapThreshold: 2, IncludeSpaces: true})
	assert.Equal(t, [][2]int{{0, 3}}, spans(withSpaces[0]))
	assert.Contains(t, withSpaces, 1)
	assert.NotContains(t, withSpaces, 2, "empty cells are never content")
}

func TestExtractAllTextBlocksStyledCells(t *testing.T) {
	g := grid.New()
	g.Set(grid.Key{X: 0, Y: 3}, grid.Styled{Char: "h", Color: "#fff"})
	g.Set(grid.Key{X: 1, Y: 3}, grid.Plain("i"))

	lb := ExtractAllTextBlocks(g, nil)
	require.Len(t, lb[3], 1)
	assert.Equal(t, "hi", lb[3][0].Text())
}

func TestExtractAllTextBlocksViewport(t *testing.T) {
	g := grid.New()
	g.WriteString(0, 0, "hello world")
	g.WriteString(0, 5, "far away")

	v := &grid.Viewport{MinX: 2, MaxX: 7, MinY: 0, MaxY: 1}
	lb := ExtractAllTextBlocks(g, v)

	require.Len(t, lb, 1)
	require.Len(t, lb[0], 1)
	assert.Equal(t, "llowo", lb[0][0].Text())
	assert.Equal(t, 2, lb[0][0].Start)
	assert.Equal(t, 7, lb[0][0].End)

	empty := ExtractAllTextBlocks(g, &grid.Viewport{MinX: 100, MaxX: 200, MinY: 100, MaxY: 200})
	assert.Empty(t, empty)
}

func TestExtractAllTextBlocksIdempotent(t *testing.T) {
	g := grid.New()
	g.WriteString(-4, -2, "alpha  beta gamma")
	g.WriteString(3, 1, "delta")
	g.WriteString(0, 7, "x    y")

	first := ExtractAllTextBlocks(g, nil)
	second := ExtractAllTextBlocks(g, nil)
	assert.Equal(t, first, second)
}

func TestLineBlocksHelpers(t *testing.T) {
	g := grid.New()
	g.WriteString(0, 9, "a  b")
	g.WriteString(0, -3, "c")
	g.WriteString(0, 2, "d")

	lb := ExtractAllTextBlocks(g, nil)
	assert.Equal(t, []int{-3, 2, 9}, lb.SortedLines())
	assert.Equal(t, 4, lb.Count())
}
