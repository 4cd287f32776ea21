package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtext/pkg/pipeline"
	"github.com/matzehuels/gridtext/pkg/render/dot"
	"github.com/matzehuels/gridtext/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // json, svg, png, pdf, txt, dot
	labels   bool     // summarize clusters and draw labels
	detailed bool     // detailed DOT node labels
	diagram  bool     // also render the DOT hierarchy to <base>.hierarchy.svg
	print    bool     // write the single artifact to stdout
}

func (c *CLI) renderCommand() *cobra.Command {
	var flags analysisFlags
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render clusters and frames to SVG, PNG, PDF, JSON, text or DOT",
		Long: `Run the full pipeline and write one file per format.

The txt format is the grid with frame borders drawn around each cluster.
PNG and PDF conversion needs rsvg-convert (librsvg) on the PATH.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.print && len(opts.formats) != 1 {
				return fmt.Errorf("--print needs exactly one format (got %d)", len(opts.formats))
			}
			input := stdinPath
			if len(args) > 0 {
				input = args[0]
			}
			return c.runRender(cmd, args, input, &flags, &opts)
		},
	}

	addAnalysisFlags(cmd, &flags)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf, txt, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "summarize clusters and draw the labels")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show boxes and distances in DOT output")
	cmd.Flags().BoolVar(&opts.diagram, "diagram", false, "also render the frame hierarchy with Graphviz")
	cmd.Flags().BoolVar(&opts.print, "print", false, "write the artifact to stdout instead of a file")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, input string, flags *analysisFlags, ro *renderOpts) error {
	ctx := cmd.Context()
	s, err := c.open(cmd, args, flags)
	if err != nil {
		return err
	}
	defer s.runner.Close()

	s.opts.Formats = ro.formats
	s.opts.Labels = s.opts.Labels || ro.labels
	s.opts.Detailed = s.opts.Detailed || ro.detailed

	if ro.print {
		// Terminal output gets the styled overlay.
		if ro.formats[0] == pipeline.FormatOverlay {
			s.opts.Formats = nil
		}
		res, err := s.runner.Execute(ctx, s.grid, s.opts)
		if err != nil {
			return err
		}
		data := res.Artifacts[ro.formats[0]]
		if ro.formats[0] == pipeline.FormatOverlay {
			text, err := sink.RenderOverlay(s.grid, res.Frames, sink.WithOverlayViewport(s.opts.Viewport))
			if err != nil {
				return err
			}
			data = []byte(text)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	prog := newProgress(c.Logger)
	sp := newSpinner(ctx, os.Stderr, "Rendering "+strings.Join(ro.formats, ", "))
	sp.Start()
	res, err := s.runner.Execute(ctx, s.grid, s.opts)
	if err != nil {
		sp.StopWithError("Render failed")
		return err
	}

	var written []string
	if ro.diagram {
		sp.SetMessage("Rendering hierarchy diagram")
		svg, err := dot.RenderSVG(ctx, dot.ToDOT(res.Frames, dot.Options{Detailed: s.opts.Detailed}))
		if err != nil {
			sp.StopWithError("Diagram failed")
			return err
		}
		path := basePath(ro.output, input) + ".hierarchy.svg"
		if err := os.WriteFile(path, svg, 0o644); err != nil {
			sp.Stop()
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	sp.Stop()

	for _, format := range ro.formats {
		path := outputPath(ro.output, input, format, len(ro.formats))
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %d file(s)", len(written))
	for _, p := range written {
		printFile(p)
	}
	printStatsTo(os.Stdout, []string{
		fmt.Sprintf("%d clusters", res.Stats.Clusters),
		fmt.Sprintf("%d frames", res.Stats.Frames),
		fmt.Sprintf("%d labels", res.Stats.Labels),
	}, res.CacheInfo.AnalysisHit)
	prog.done("Render complete")
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinPath {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// extensions keeps derived outputs from overwriting .json or .txt inputs.
var extensions = map[string]string{
	pipeline.FormatJSON:    "frames.json",
	pipeline.FormatOverlay: "overlay.txt",
}

// outputPath returns output verbatim for a single format and
// <base>.<extension> otherwise.
func outputPath(output, input, format string, count int) string {
	if count == 1 && output != "" {
		return output
	}
	ext, ok := extensions[format]
	if !ok {
		ext = format
	}
	return basePath(output, input) + "." + ext
}
