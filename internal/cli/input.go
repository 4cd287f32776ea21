package cli

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtext/pkg/errors"
	"github.com/matzehuels/gridtext/pkg/grid"
	"github.com/matzehuels/gridtext/pkg/pipeline"
)

// stdinPath selects standard input.
const stdinPath = "-"

// readGrid loads a grid from a .json grid file, a plain text file or stdin.
// On stdin the JSON form is recognised by a leading '{'.
func readGrid(path string, stdin io.Reader) (grid.Grid, error) {
	if path != stdinPath {
		return grid.ReadFile(path)
	}
	data, err := io.ReadAll(bufio.NewReader(stdin))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return grid.ReadJSON(bytes.NewReader(trimmed))
	}
	return grid.FromText(bytes.NewReader(data), 0, 0)
}

// parseViewport parses "minX,maxX,minY,maxY".
func parseViewport(s string) (*grid.Viewport, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, errors.New(errors.ErrCodeInvalidViewport, "viewport must be minX,maxX,minY,maxY (got %q)", s)
	}
	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidViewport, err, "viewport component %q", p)
		}
		n[i] = v
	}
	v := &grid.Viewport{MinX: n[0], MaxX: n[1], MinY: n[2], MaxY: n[3]}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// analysisFlags are shared by every command that runs the pipeline.
type analysisFlags struct {
	viewport      string
	gap           int
	vx, vy        float64
	zoom          float64
	singleLevel   bool
	maxGap        int
	maxOverlap    int
	minBlocks     int
	minDensity    float64
	minWords      int
	mergeDistance float64
	refresh       bool
}

func addAnalysisFlags(cmd *cobra.Command, f *analysisFlags) {
	d := pipeline.DefaultOptions()
	cond := d.Hierarchy.Clustering

	fs := cmd.Flags()
	fs.StringVar(&f.viewport, "viewport", "", "restrict analysis to minX,maxX,minY,maxY")
	fs.IntVar(&f.gap, "gap", d.GapThreshold, "empty columns that split a line into blocks")
	fs.Float64Var(&f.vx, "vx", 0, "viewpoint x")
	fs.Float64Var(&f.vy, "vy", 0, "viewpoint y")
	fs.Float64Var(&f.zoom, "zoom", d.Zoom, "zoom level")
	fs.BoolVar(&f.singleLevel, "single-level", false, "show only the level matching each frame's viewer distance")
	fs.IntVar(&f.maxGap, "max-vertical-gap", cond.MaxVerticalGap, "largest line distance from the seed line")
	fs.IntVar(&f.maxOverlap, "max-horizontal-overlap", cond.MaxHorizontalOverlap, "largest column gap for a shared-margin join")
	fs.IntVar(&f.minBlocks, "min-blocks", cond.MinBlocksPerCluster, "smallest cluster kept")
	fs.Float64Var(&f.minDensity, "min-density", cond.MinDensity, "smallest density labeled")
	fs.IntVar(&f.minWords, "min-words", cond.MinWords, "fewest words labeled")
	fs.Float64Var(&f.mergeDistance, "merge-distance", d.Hierarchy.MergeDistance, "centroid distance for grouped frames")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// options starts from the config and applies only the flags the user set.
func (f *analysisFlags) options(cmd *cobra.Command, cfg pipeline.Config) (pipeline.Options, error) {
	opts := cfg.Options()
	changed := cmd.Flags().Changed

	if f.viewport != "" {
		v, err := parseViewport(f.viewport)
		if err != nil {
			return opts, err
		}
		opts.Viewport = v
	}
	if changed("gap") {
		opts.GapThreshold = f.gap
	}
	opts.Viewpoint.X, opts.Viewpoint.Y = f.vx, f.vy
	if changed("zoom") {
		opts.Zoom = f.zoom
	}
	opts.SingleLevel = f.singleLevel

	cond := &opts.Hierarchy.Clustering
	if changed("max-vertical-gap") {
		cond.MaxVerticalGap = f.maxGap
	}
	if changed("max-horizontal-overlap") {
		cond.MaxHorizontalOverlap = f.maxOverlap
	}
	if changed("min-blocks") {
		cond.MinBlocksPerCluster = f.minBlocks
	}
	if changed("min-density") {
		cond.MinDensity = f.minDensity
	}
	if changed("min-words") {
		cond.MinWords = f.minWords
	}
	if changed("merge-distance") {
		opts.Hierarchy.MergeDistance = f.mergeDistance
	}
	opts.Refresh = f.refresh

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func openInput(cmd *cobra.Command, args []string) (grid.Grid, error) {
	path := stdinPath
	if len(args) > 0 {
		path = args[0]
	}
	return readGrid(path, cmd.InOrStdin())
}
