package blocks

import "strings"

// DefaultGapThreshold is the number of empty columns that splits a line.
const DefaultGapThreshold = 2

// Char is one character at column X.
type Char struct {
	X    int    `json:"x"`
	Char string `json:"char"`
}

// TextBlock is a contiguous run of characters on a single line.
// Characters keep their original columns, so a single-column gap inside the
// block is visible as a jump in X.
type TextBlock struct {
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Characters []Char `json:"characters"`
}

// Width returns the number of columns the block spans.
func (b TextBlock) Width() int {
	return b.End - b.Start + 1
}

// Len returns the number of characters in the block.
func (b TextBlock) Len() int {
	return len(b.Characters)
}

// Text joins the block's characters without reinserting gap columns.
func (b TextBlock) Text() string {
	var sb strings.Builder
	for _, c := range b.Characters {
		sb.WriteString(c.Char)
	}
	return sb.String()
}

// SpacedText renders the block as it appears on the canvas, with one space
// for every empty column inside it.
func (b TextBlock) SpacedText() string {
	var sb strings.Builder
	prev := b.Start - 1
	for _, c := range b.Characters {
		for x := prev + 1; x < c.X; x++ {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Char)
		prev = c.X
	}
	return sb.String()
}

// Words estimates the number of words in the block by splitting Text on
// whitespace and counting non-empty tokens.
func (b TextBlock) Words() int {
	return len(strings.Fields(b.Text()))
}

// Midpoint returns the horizontal center of the block.
func (b TextBlock) Midpoint() float64 {
	return float64(b.Start+b.End) / 2
}
