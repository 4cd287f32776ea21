package grid

import "github.com/matzehuels/gridtext/pkg/errors"

// Viewport is an inclusive rectangle of canvas coordinates. A nil *Viewport
// means "everything".
type Viewport struct {
	MinX int `json:"minX" toml:"min_x"`
	MaxX int `json:"maxX" toml:"max_x"`
	MinY int `json:"minY" toml:"min_y"`
	MaxY int `json:"maxY" toml:"max_y"`
}

// ContainsLine reports whether line y is inside v.
func (v *Viewport) ContainsLine(y int) bool {
	return v == nil || (y >= v.MinY && y <= v.MaxY)
}

// ContainsColumn reports whether column x is inside v.
func (v *Viewport) ContainsColumn(x int) bool {
	return v == nil || (x >= v.MinX && x <= v.MaxX)
}

// Contains reports whether (x, y) is inside v.
func (v *Viewport) Contains(x, y int) bool {
	return v.ContainsLine(y) && v.ContainsColumn(x)
}

// Center returns the midpoint of v.
func (v Viewport) Center() (float64, float64) {
	return float64(v.MinX+v.MaxX) / 2, float64(v.MinY+v.MaxY) / 2
}

// Validate rejects inverted rectangles.
func (v Viewport) Validate() error {
	if v.MinX > v.MaxX || v.MinY > v.MaxY {
		return errors.New(errors.ErrCodeInvalidViewport,
			"viewport is inverted: x [%d, %d], y [%d, %d]", v.MinX, v.MaxX, v.MinY, v.MaxY)
	}
	return nil
}
