package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/errors"
	"github.com/matzehuels/gridtext/pkg/grid"
	"github.com/matzehuels/gridtext/pkg/hierarchy"
)

// MaxOverlayCells bounds the area RenderOverlay will draw.
const MaxOverlayCells = 1 << 20

type OverlayOption func(*overlayRenderer)

type overlayRenderer struct {
	plain    bool
	viewport *grid.Viewport
}

// WithPlainOverlay disables ANSI styling.
func WithPlainOverlay() OverlayOption { return func(r *overlayRenderer) { r.plain = true } }

// WithOverlayViewport crops the drawing to v.
func WithOverlayViewport(v *grid.Viewport) OverlayOption {
	return func(r *overlayRenderer) { r.viewport = v }
}

type borderSet struct {
	tl, tr, bl, br, h, v string
}

var (
	fineBorder    = borderSet{"┌", "┐", "└", "┘", "╌", "┆"}
	groupedBorder = borderSet{"╔", "╗", "╚", "╝", "═", "║"}
)

type overlayCell struct {
	ch    string
	level hierarchy.Level
}

// RenderOverlay draws g with the borders of the active frames one cell
// outside their bounding boxes. Text always wins over a border. Grouped
// frames are drawn after fine ones, so they win where borders cross.
func RenderOverlay(g grid.Grid, fs hierarchy.FrameSystem, opts ...OverlayOption) (string, error) {
	r := overlayRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	box, ok := canvasBounds(g, fs.ActiveFrames, nil)
	if !ok {
		return "", nil
	}
	box.MinX--
	box.MinY--
	box.MaxX++
	box.MaxY++
	if v := r.viewport; v != nil {
		box = cluster.BoundingBox{
			MinX: max(box.MinX, v.MinX), MaxX: min(box.MaxX, v.MaxX),
			MinY: max(box.MinY, v.MinY), MaxY: min(box.MaxY, v.MaxY),
		}
		if box.MinX > box.MaxX || box.MinY > box.MaxY {
			return "", nil
		}
	}
	if box.Area() > MaxOverlayCells {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"overlay of %dx%d cells is too large; pass a viewport", box.Width(), box.Height())
	}

	rows := make([][]overlayCell, box.Height())
	for i := range rows {
		rows[i] = make([]overlayCell, box.Width())
	}
	put := func(x, y int, c overlayCell) {
		if x < box.MinX || x > box.MaxX || y < box.MinY || y > box.MaxY {
			return
		}
		rows[y-box.MinY][x-box.MinX] = c
	}

	for _, l := range hierarchy.Levels {
		for _, f := range fs.ActiveFrames {
			if f.Level == l {
				drawBorder(put, f)
			}
		}
	}
	for k, c := range g {
		if ch := grid.CharOf(c); ch != "" {
			put(k.X, k.Y, overlayCell{ch: ch})
		}
	}

	styles := map[hierarchy.Level]lipgloss.Style{}
	if !r.plain {
		for _, l := range hierarchy.Levels {
			styles[l] = lipgloss.NewStyle().Foreground(lipgloss.Color(hierarchy.StyleFor(l).Stroke))
		}
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		var line strings.Builder
		for _, c := range row {
			switch {
			case c.ch == "":
				line.WriteByte(' ')
			case c.level != 0 && !r.plain:
				line.WriteString(styles[c.level].Render(c.ch))
			default:
				line.WriteString(c.ch)
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
	}
	return sb.String(), nil
}

func drawBorder(put func(x, y int, c overlayCell), f hierarchy.Frame) {
	bs := fineBorder
	if f.Level == hierarchy.Grouped {
		bs = groupedBorder
	}
	b := f.BoundingBox
	x0, x1, y0, y1 := b.MinX-1, b.MaxX+1, b.MinY-1, b.MaxY+1
	cell := func(s string) overlayCell { return overlayCell{ch: s, level: f.Level} }

	for x := x0 + 1; x < x1; x++ {
		put(x, y0, cell(bs.h))
		put(x, y1, cell(bs.h))
	}
	for y := y0 + 1; y < y1; y++ {
		put(x0, y, cell(bs.v))
		put(x1, y, cell(bs.v))
	}
	put(x0, y0, cell(bs.tl))
	put(x1, y0, cell(bs.tr))
	put(x0, y1, cell(bs.bl))
	put(x1, y1, cell(bs.br))
}
