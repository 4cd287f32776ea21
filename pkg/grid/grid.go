package grid

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Grid is a sparse snapshot of the canvas. Callers must not mutate a grid
// while an analysis over it is running.
type Grid map[Key]Cell

// New returns an empty grid.
func New() Grid {
	return make(Grid)
}

// Set stores c at k.
func (g Grid) Set(k Key, c Cell) {
	g[k] = c
}

// SetChar stores a plain character at (x, y).
func (g Grid) SetChar(x, y int, ch string) {
	g[Key{X: x, Y: y}] = Plain(ch)
}

// WriteString places s on line y starting at column x, one rune per cell.
// Spaces are skipped so the grid stays sparse.
func (g Grid) WriteString(x, y int, s string) {
	col := x
	for _, r := range s {
		if r != ' ' {
			g[Key{X: col, Y: y}] = Plain(string(r))
		}
		col++
	}
}

// Char returns the character at (x, y) and whether the cell is occupied.
func (g Grid) Char(x, y int) (string, bool) {
	c, ok := g[Key{X: x, Y: y}]
	if !ok {
		return "", false
	}
	return CharOf(c), true
}

// Len returns the number of occupied cells.
func (g Grid) Len() int {
	return len(g)
}

// Keys returns all occupied keys in reading order.
func (g Grid) Keys() []Key {
	keys := make([]Key, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Clone returns a shallow copy of g.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for k, c := range g {
		out[k] = c
	}
	return out
}

// Bounds returns the smallest viewport containing every occupied cell.
// ok is false for an empty grid.
func (g Grid) Bounds() (v Viewport, ok bool) {
	for k := range g {
		if !ok {
			v = Viewport{MinX: k.X, MaxX: k.X, MinY: k.Y, MaxY: k.Y}
			ok = true
			continue
		}
		v.MinX = min(v.MinX, k.X)
		v.MaxX = max(v.MaxX, k.X)
		v.MinY = min(v.MinY, k.Y)
		v.MaxY = max(v.MaxY, k.Y)
	}
	return v, ok
}

// Hash returns a SHA-256 content hash of g that is independent of map
// iteration order. Styling is part of the hash.
func (g Grid) Hash() string {
	h := sha256.New()
	for _, k := range g.Keys() {
		c := g[k]
		color, bg := StyleOf(c)
		h.Write([]byte(k.String()))
		h.Write([]byte{0})
		h.Write([]byte(CharOf(c)))
		h.Write([]byte{0})
		h.Write([]byte(color))
		h.Write([]byte{0})
		h.Write([]byte(bg))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
