package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/grid"
	"github.com/matzehuels/gridtext/pkg/hierarchy"
	"github.com/matzehuels/gridtext/pkg/label"
)

// Default cell geometry in SVG user units.
const (
	DefaultCellWidth  = 10.0
	DefaultCellHeight = 18.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellW, cellH float64
	margin       int
	labels       []label.ClusterLabel
	background   string
}

func WithCellSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.cellW, r.cellH = w, h }
}
func WithLabels(l []label.ClusterLabel) SVGOption { return func(r *svgRenderer) { r.labels = l } }
func WithBackground(color string) SVGOption       { return func(r *svgRenderer) { r.background = color } }

// RenderSVG draws the characters of g and the active frames of fs. The
// canvas covers the union of the occupied cells, the frames and the label
// positions, plus a one-cell margin.
func RenderSVG(g grid.Grid, fs hierarchy.FrameSystem, opts ...SVGOption) []byte {
	r := svgRenderer{cellW: DefaultCellWidth, cellH: DefaultCellHeight, margin: 1, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}

	box, ok := canvasBounds(g, fs.ActiveFrames, r.labels)
	if !ok {
		box = cluster.BoundingBox{}
	}
	box.MinX -= r.margin
	box.MinY -= r.margin
	box.MaxX += r.margin
	box.MaxY += r.margin

	width := float64(box.Width()) * r.cellW
	height := float64(box.Height()) * r.cellH
	x := func(col int) float64 { return float64(col-box.MinX) * r.cellW }
	y := func(line int) float64 { return float64(line-box.MinY) * r.cellH }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)

	buf.WriteString(`  <g class="cells" font-family="monospace" font-size="` + ftoa(r.cellH*0.8) + `" text-anchor="middle">` + "\n")
	for _, k := range g.Keys() {
		ch := grid.CharOf(g[k])
		if strings.TrimSpace(ch) == "" {
			continue
		}
		fill := "#111827"
		if color, _ := grid.StyleOf(g[k]); color != "" {
			fill = color
		}
		fmt.Fprintf(&buf, `    <text x="%s" y="%s" fill="%s">%s</text>`+"\n",
			ftoa(x(k.X)+r.cellW/2), ftoa(y(k.Y)+r.cellH*0.8), escape(fill), escape(ch))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="frames" fill="none">` + "\n")
	for _, f := range fs.ActiveFrames {
		b := f.BoundingBox
		fmt.Fprintf(&buf, `    <rect id="%s" class="frame level-%d" x="%s" y="%s" width="%s" height="%s" stroke="%s" stroke-width="%s"%s/>`+"\n",
			escape(f.ID), int(f.Level),
			ftoa(x(b.MinX)), ftoa(y(b.MinY)),
			ftoa(float64(b.Width())*r.cellW), ftoa(float64(b.Height())*r.cellH),
			f.Style.Stroke, ftoa(f.Style.Width), dashAttr(f.Style.Dash))
	}
	buf.WriteString("  </g>\n")

	if len(r.labels) > 0 {
		buf.WriteString(`  <g class="labels" font-family="sans-serif" font-style="italic" fill="#6b7280">` + "\n")
		for _, l := range r.labels {
			fmt.Fprintf(&buf, `    <text x="%s" y="%s" data-cluster="%s" font-size="%s">%s</text>`+"\n",
				ftoa(x(int(l.Position.X))), ftoa(y(int(l.Position.Y))+r.cellH*0.8),
				escape(l.ClusterID), ftoa(r.cellH*0.7), escape(l.Text))
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func canvasBounds(g grid.Grid, frames []hierarchy.Frame, labels []label.ClusterLabel) (cluster.BoundingBox, bool) {
	var (
		box cluster.BoundingBox
		ok  bool
	)
	grow := func(b cluster.BoundingBox) {
		if !ok {
			box, ok = b, true
			return
		}
		box = box.Union(b)
	}
	if v, has := g.Bounds(); has {
		grow(cluster.BoundingBox{MinX: v.MinX, MaxX: v.MaxX, MinY: v.MinY, MaxY: v.MaxY})
	}
	for _, f := range frames {
		grow(f.BoundingBox)
	}
	for _, l := range labels {
		px, py := int(l.Position.X), int(l.Position.Y)
		grow(cluster.BoundingBox{MinX: px, MaxX: px + len([]rune(l.Text)), MinY: py, MaxY: py})
	}
	return box, ok
}

func dashAttr(dash []int) string {
	if len(dash) == 0 {
		return ""
	}
	parts := make([]string, len(dash))
	for i, d := range dash {
		parts[i] = strconv.Itoa(d)
	}
	return ` stroke-dasharray="` + strings.Join(parts, ",") + `"`
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
