package hierarchy

import "fmt"

// Level is a level of detail.
type Level int

const (
	FineDetail Level = 1
	Grouped    Level = 2
)

// Levels lists every level in ascending order.
var Levels = []Level{FineDetail, Grouped}

func (l Level) String() string {
	switch l {
	case FineDetail:
		return "fine_detail"
	case Grouped:
		return "grouped"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Style is the stroke used to draw a frame.
type Style struct {
	Stroke string  `json:"stroke"`
	Width  float64 `json:"width"`
	Dash   []int   `json:"dash,omitempty"`
}

// StyleFor returns the fixed stroke style of level l.
func StyleFor(l Level) Style {
	switch l {
	case FineDetail:
		return Style{Stroke: "#22c55e", Width: 1, Dash: []int{4, 2}}
	case Grouped:
		return Style{Stroke: "#3b82f6", Width: 2, Dash: []int{6, 3}}
	default:
		return Style{Stroke: "#9ca3af", Width: 1}
	}
}

// GetHierarchyLevel buckets a viewer distance into a level.
func GetHierarchyLevel(distance float64, cfg Config) Level {
	if distance < cfg.FineDetailThreshold {
		return FineDetail
	}
	return Grouped
}
