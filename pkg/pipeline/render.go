package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gridtext/pkg/grid"
	"github.com/matzehuels/gridtext/pkg/render"
	"github.com/matzehuels/gridtext/pkg/render/dot"
	"github.com/matzehuels/gridtext/pkg/render/sink"
)

// PNGScale is the resolution multiplier for PNG output.
const PNGScale = 2.0

// Render generates output artifacts in the requested formats from an
// already analyzed result. The SVG is rendered once and reused for PNG and
// PDF conversion.
func Render(ctx context.Context, g grid.Grid, res *Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = sink.RenderSVG(g, res.Frames, sink.WithLabels(res.Labels))
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(res.Frames,
				sink.WithJSONLabels(res.Labels),
				sink.WithJSONGridHash(res.GridHash),
				sink.WithJSONRunID(res.RunID),
				sink.WithJSONIndent())
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNG(ctx, svgOnce(), PNGScale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svgOnce())
		case FormatOverlay:
			var s string
			s, err = sink.RenderOverlay(g, res.Frames,
				sink.WithPlainOverlay(),
				sink.WithOverlayViewport(opts.Viewport))
			data = []byte(s)
		case FormatDOT:
			data = []byte(dot.ToDOT(res.Frames, dot.Options{Detailed: opts.Detailed}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
