package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chars(xs ...int) []Char {
	out := make([]Char, len(xs))
	for i, x := range xs {
		out[i] = Char{X: x, Char: "x"}
	}
	return out
}

func spans(bs []TextBlock) [][2]int {
	out := make([][2]int, len(bs))
	for i, b := range bs {
		out[i] = [2]int{b.Start, b.End}
	}
	return out
}

func TestDetectTextBlocksEmpty(t *testing.T) {
	assert.Empty(t, DetectTextBlocks(nil, 2))
}

func TestDetectTextBlocksSingle(t *testing.T) {
	bs := DetectTextBlocks(chars(7), 2)
	require.Len(t, bs, 1)
	assert.Equal(t, 7, bs[0].Start)
	assert.Equal(t, 7, bs[0].End)
	assert.Equal(t, 1, bs[0].Width())
}

func TestDetectTextBlocksGapRule(t *testing.T) {
	tests := []struct {
		name      string
		xs        []int
		threshold int
		want      [][2]int
	}{
		{"gap of two splits", []int{0, 1, 4, 5}, 2, [][2]int{{0, 1}, {4, 5}}},
		{"gap of two joins at three", []int{0, 1, 4, 5}, 3, [][2]int{{0, 5}}},
		{"single gap stays inside", []int{0, 2, 3}, 2, [][2]int{{0, 3}}},
		{"zero threshold splits adjacent", []int{0, 1, 2}, 0, [][2]int{{0, 0}, {1, 1}, {2, 2}}},
		{"negative coordinates", []int{-5, -4, -1}, 2, [][2]int{{-5, -4}, {-1, -1}}},
		{"large gaps", []int{0, 100, 101, 300}, 2, [][2]int{{0, 0}, {100, 101}, {300, 300}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spans(DetectTextBlocks(chars(tt.xs...), tt.threshold)))
		})
	}
}

// Adjacent characters share a block iff the empty-column gap is below g.
func TestDetectTextBlocksGapProperty(t *testing.T) {
	xs := []int{-3, -2, 0, 3, 4, 8, 9, 10, 14, 15, 17}
	for g := 0; g <= 5; g++ {
		bs := DetectTextBlocks(chars(xs...), g)

		blockOf := make(map[int]int)
		for i, b := range bs {
			for _, c := range b.Characters {
				blockOf[c.X] = i
			}
		}
		for i := 1; i < len(xs); i++ {
			same := blockOf[xs[i]] == blockOf[xs[i-1]]
			want := xs[i]-xs[i-1]-1 < g
			assert.Equal(t, want, same, "g=%d pair %d,%d", g, xs[i-1], xs[i])
		}

		for i := 1; i < len(bs); i++ {
			assert.Less(t, bs[i-1].End, bs[i].Start, "blocks overlap at g=%d", g)
		}
		for _, b := range bs {
			assert.LessOrEqual(t, b.Start, b.End)
			assert.NotEmpty(t, b.Characters)
		}
	}
}

func TestDetectTextBlocksKeepsCharacters(t *testing.T) {
	in := []Char{{0, "a"}, {2, "b"}, {6, "c"}}
	bs := DetectTextBlocks(in, 2)
	require.Len(t, bs, 2)
	assert.Equal(t, []Char{{0, "a"}, {2, "b"}}, bs[0].Characters)
	assert.Equal(t, "ab", bs[0].Text())
	assert.Equal(t, "a b", bs[0].SpacedText())
	assert.Equal(t, "c", bs[1].Text())
}

func TestTextBlockWords(t *testing.T) {
	b := TextBlock{Characters: []Char{{0, "h"}, {1, "i"}, {2, " "}, {3, "y"}, {4, "o"}}}
	assert.Equal(t, 2, b.Words())

	b = TextBlock{Characters: []Char{{0, "h"}, {2, "i"}}}
	assert.Equal(t, 1, b.Words(), "internal gaps do not split words")

	assert.Equal(t, 0, TextBlock{Characters: []Char{{0, " "}}}.Words())
}
