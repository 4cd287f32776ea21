package cluster

import "math"

// BoundingBox is an inclusive rectangle of canvas cells.
type BoundingBox struct {
	MinX int `json:"minX"`
	MaxX int `json:"maxX"`
	MinY int `json:"minY"`
	MaxY int `json:"maxY"`
}

// Width returns the number of columns covered.
func (b BoundingBox) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of lines covered.
func (b BoundingBox) Height() int { return b.MaxY - b.MinY + 1 }

// Area returns the number of cells covered.
func (b BoundingBox) Area() int { return b.Width() * b.Height() }

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return Point{X: float64(b.MinX+b.MaxX) / 2, Y: float64(b.MinY+b.MaxY) / 2}
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: min(b.MinX, o.MinX),
		MaxX: max(b.MaxX, o.MaxX),
		MinY: min(b.MinY, o.MinY),
		MaxY: max(b.MaxY, o.MaxY),
	}
}

// Contains reports whether o lies entirely inside b.
func (b BoundingBox) Contains(o BoundingBox) bool {
	return o.MinX >= b.MinX && o.MaxX <= b.MaxX && o.MinY >= b.MinY && o.MaxY <= b.MaxY
}

// Point is a position in continuous canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}
