// Package dot renders the frame hierarchy as a Graphviz diagram: one node per
// grouped frame, with edges to the fine frames whose clusters it absorbed.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridtext/pkg/hierarchy"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed adds bounding boxes and distances to node labels.
	Detailed bool
}

// ToDOT converts all frames of fs (not only the active ones) to DOT.
func ToDOT(fs hierarchy.FrameSystem, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph frames {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,dashed\", fontname=\"monospace\"];\n")
	buf.WriteString("\n")

	fineByCluster := make(map[string]string)
	for _, l := range hierarchy.Levels {
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+l.String())
		fmt.Fprintf(&buf, "    label=%q;\n", l.String())
		for _, f := range fs.Levels[l] {
			fmt.Fprintf(&buf, "    %q [label=%q, color=%q, penwidth=%s];\n",
				f.ID, nodeLabel(f, opts.Detailed), f.Style.Stroke, strconv.FormatFloat(f.Style.Width, 'f', -1, 64))
			if l == hierarchy.FineDetail && len(f.Clusters) == 1 {
				fineByCluster[f.Clusters[0].ID] = f.ID
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, f := range fs.Levels[hierarchy.Grouped] {
		for _, c := range f.Clusters {
			if fine, ok := fineByCluster[c.ID]; ok {
				fmt.Fprintf(&buf, "  %q -> %q;\n", f.ID, fine)
			}
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(f hierarchy.Frame, detailed bool) string {
	label := f.ID
	if len(f.Clusters) > 1 {
		label += fmt.Sprintf(" (%d clusters)", len(f.Clusters))
	}
	if !detailed {
		return label
	}
	b := f.BoundingBox
	return fmt.Sprintf("%s\nx %d..%d  y %d..%d\ndistance %.1f  radius %.1f",
		label, b.MinX, b.MaxX, b.MinY, b.MaxY, f.ViewerDistance, f.MergeRadius)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's pt-based root element so the diagram
// scales like the other SVG outputs.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
