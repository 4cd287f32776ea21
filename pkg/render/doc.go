// Package render draws grids and their frame systems.
//
// # Overview
//
//   - [sink] renders a frame system as JSON, SVG or a colored terminal
//     overlay
//   - [dot] renders the level hierarchy (grouped frames and the fine frames
//     folded into them) with Graphviz
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG produced here to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(g, fs, sink.WithLabels(labels))
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [sink]: github.com/matzehuels/gridtext/pkg/render/sink
// [dot]: github.com/matzehuels/gridtext/pkg/render/dot
package render
