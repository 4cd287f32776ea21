package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtext/pkg/grid"
	"github.com/matzehuels/gridtext/pkg/stage"
)

func (c *CLI) generateCommand() *cobra.Command {
	var (
		opts     stage.Options
		output   string
		stageOut string
		sidebar  bool
		footer   bool
		labels   bool
		asText   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sample stage layout as a grid",
		Long: `Generate a procedural stage: a title, an image area with a caption, and
optionally a sidebar, a footer and floating labels. The same seed always
produces the same grid. Toggles left unset are decided by the seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("seed") {
				opts.Seed = uint64(time.Now().UnixNano())
			}
			if flags.Changed("sidebar") {
				opts.Sidebar = &sidebar
			}
			if flags.Changed("footer") {
				opts.Footer = &footer
			}
			if flags.Changed("labels") {
				opts.Labels = &labels
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			st := stage.Generate(opts)
			g := st.Grid()
			c.Logger.Debug("generated stage", "name", st.Name, "seed", st.Seed, "layout", st.Layout.Name, "regions", len(st.Regions), "cells", g.Len())

			var data []byte
			if asText {
				data = []byte(gridText(g))
			} else {
				var err error
				if data, err = grid.Marshal(g); err != nil {
					return err
				}
			}

			if stageOut != "" {
				if err := writeJSONFile(stageOut, st); err != nil {
					return err
				}
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Generated %q (seed %d, %s layout)", st.Name, st.Seed, st.Layout.Name)
			printFile(output)
			if stageOut != "" {
				printFile(stageOut)
			}
			printNextStep("Render it", fmt.Sprintf("%s render %s -f svg,txt", appName, output))
			return nil
		},
	}

	f := cmd.Flags()
	f.Uint64Var(&opts.Seed, "seed", 0, "random seed (default: time based)")
	f.StringVar(&opts.Name, "name", "", "stage name (default: generated)")
	f.StringVar(&opts.Layout, "layout", "", "layout preset: "+strings.Join(stage.PresetNames(), ", "))
	f.BoolVar(&sidebar, "sidebar", false, "include a sidebar")
	f.BoolVar(&footer, "footer", false, "include a footer")
	f.BoolVar(&labels, "labels", false, "include floating labels")
	f.IntVar(&opts.StartX, "x", 0, "left column of the stage")
	f.IntVar(&opts.StartY, "y", 0, "top line of the stage")
	f.IntVar(&opts.ImageHeight, "image-height", stage.DefaultImageHeight, "height of the image area")
	f.StringVarP(&output, "output", "o", "", "write the grid to this file instead of stdout")
	f.StringVar(&stageOut, "stage", "", "also write the region metadata as JSON to this file")
	f.BoolVar(&asText, "text", false, "emit plain text instead of grid JSON")

	return cmd
}

// gridText draws g as plain text from its bounds, one line per row.
func gridText(g grid.Grid) string {
	v, ok := g.Bounds()
	if !ok {
		return ""
	}
	var b strings.Builder
	for y := v.MinY; y <= v.MaxY; y++ {
		var line strings.Builder
		for x := v.MinX; x <= v.MaxX; x++ {
			if ch, ok := g.Char(x, y); ok {
				line.WriteString(ch)
			} else {
				line.WriteByte(' ')
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeJSON(f, v); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
