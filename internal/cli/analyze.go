package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtext/pkg/blocks"
	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/grid"
	"github.com/matzehuels/gridtext/pkg/hierarchy"
	"github.com/matzehuels/gridtext/pkg/label"
	"github.com/matzehuels/gridtext/pkg/pipeline"
	"github.com/matzehuels/gridtext/pkg/render/sink"
)

// maxSampleRunes bounds the text column of cluster tables.
const maxSampleRunes = 40

// session bundles what every analysis command needs.
type session struct {
	runner *pipeline.Runner
	grid   grid.Grid
	opts   pipeline.Options
}

// open loads config, input and runner. Callers must close the runner.
func (c *CLI) open(cmd *cobra.Command, args []string, f *analysisFlags) (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	opts, err := f.options(cmd, cfg)
	if err != nil {
		return nil, err
	}
	opts.Logger = c.Logger
	g, err := openInput(cmd, args)
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	return &session{runner: runner, grid: g, opts: opts}, nil
}

// =============================================================================
// blocks
// =============================================================================

func (c *CLI) blocksCommand() *cobra.Command {
	var flags analysisFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "blocks [file]",
		Short: "List the text blocks of each line",
		Long:  `Segment every line of the grid into blocks. A block ends where at least --gap empty columns follow. Reads stdin when no file is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd, args, &flags)
			if err != nil {
				return err
			}
			defer s.runner.Close()

			lb := s.runner.Extract(cmd.Context(), s.grid, s.opts)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), lineBlocksJSON(lb))
			}
			writeBlocks(cmd.OutOrStdout(), lb)
			return nil
		},
	}
	addAnalysisFlags(cmd, &flags)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

type lineJSON struct {
	Y      int                `json:"y"`
	Blocks []blocks.TextBlock `json:"blocks"`
}

func lineBlocksJSON(lb blocks.LineBlocks) []lineJSON {
	out := make([]lineJSON, 0, len(lb))
	for _, y := range lb.SortedLines() {
		out = append(out, lineJSON{Y: y, Blocks: lb[y]})
	}
	return out
}

func writeBlocks(w io.Writer, lb blocks.LineBlocks) {
	for _, y := range lb.SortedLines() {
		for _, b := range lb[y] {
			fmt.Fprintf(w, "%s %s %s\n",
				StyleDim.Render(fmt.Sprintf("%4d", y)),
				StyleNumber.Render(fmt.Sprintf("[%d..%d]", b.Start, b.End)),
				b.SpacedText())
		}
	}
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d blocks on %d lines", lb.Count(), len(lb))))
}

// =============================================================================
// clusters
// =============================================================================

func (c *CLI) clustersCommand() *cobra.Command {
	var flags analysisFlags
	var asJSON, showDiscarded bool

	cmd := &cobra.Command{
		Use:   "clusters [file]",
		Short: "Group blocks into clusters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd, args, &flags)
			if err != nil {
				return err
			}
			defer s.runner.Close()

			ctx := cmd.Context()
			res := s.runner.Cluster(ctx, s.runner.Extract(ctx, s.grid, s.opts), s.opts)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), clusterTable(res.Clusters))
			if showDiscarded && len(res.Discarded) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), StyleWarning.Render("discarded"))
				fmt.Fprintln(cmd.OutOrStdout(), clusterTable(res.Discarded))
			}
			printStatsTo(cmd.OutOrStdout(), []string{
				fmt.Sprintf("%d clusters", len(res.Clusters)),
				fmt.Sprintf("%d discarded", len(res.Discarded)),
				fmt.Sprintf("%.0f%% coverage", res.Coverage()*100),
			}, false)
			return nil
		},
	}
	addAnalysisFlags(cmd, &flags)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&showDiscarded, "discarded", false, "also list clusters below --min-blocks")
	return cmd
}

func clusterTable(clusters []cluster.TextCluster) string {
	rows := make([][]string, 0, len(clusters))
	for _, cl := range clusters {
		rows = append(rows, []string{
			cl.ID,
			strconv.Itoa(cl.BlockCount()),
			boxString(cl.BoundingBox),
			strconv.FormatFloat(cl.Density, 'f', 2, 64),
			strconv.Itoa(cl.EstimatedWords),
			sample(cl.Text()),
		})
	}
	return newTable("ID", "Blocks", "Box", "Density", "Words", "Text").Rows(rows...).Render()
}

// =============================================================================
// frames
// =============================================================================

func (c *CLI) framesCommand() *cobra.Command {
	var flags analysisFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "frames [file]",
		Short: "Build the hierarchical frame system",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd, args, &flags)
			if err != nil {
				return err
			}
			defer s.runner.Close()

			a, hit, err := s.runner.AnalyzeWithCacheInfo(cmd.Context(), s.grid, s.opts)
			if err != nil {
				return err
			}
			if asJSON {
				data, err := sink.RenderJSON(a.Frames, sink.WithJSONGridHash(s.grid.Hash()), sink.WithJSONIndent())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), frameTable(a.Frames))
			printStatsTo(cmd.OutOrStdout(), []string{
				fmt.Sprintf("%d fine", a.Frames.Count(hierarchy.FineDetail)),
				fmt.Sprintf("%d grouped", a.Frames.Count(hierarchy.Grouped)),
				fmt.Sprintf("%d active", len(a.Frames.ActiveFrames)),
			}, hit)
			return nil
		},
	}
	addAnalysisFlags(cmd, &flags)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func frameTable(fs hierarchy.FrameSystem) string {
	rows := make([][]string, 0, len(fs.ActiveFrames))
	for _, f := range fs.ActiveFrames {
		rows = append(rows, []string{
			f.ID,
			f.Level.String(),
			strconv.Itoa(len(f.Clusters)),
			boxString(f.BoundingBox),
			strconv.FormatFloat(f.ViewerDistance, 'f', 1, 64),
			strconv.FormatFloat(f.MergeRadius, 'f', 1, 64),
		})
	}
	return newTable("ID", "Level", "Clusters", "Box", "Distance", "Radius").Rows(rows...).Render()
}

// =============================================================================
// labels
// =============================================================================

func (c *CLI) labelsCommand() *cobra.Command {
	var flags analysisFlags
	var asJSON bool
	var summarizer string
	var words int

	cmd := &cobra.Command{
		Use:   "labels [file]",
		Short: "Summarize each labelable cluster",
		Long:  `Generate a label for every cluster that passes --min-density and --min-words. The default headline summarizer works offline and takes the first --words words of the cluster text.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd, args, &flags)
			if err != nil {
				return err
			}
			defer s.runner.Close()

			if cmd.Flags().Changed("summarizer") {
				s.opts.Summarizer = summarizer
			}
			if cmd.Flags().Changed("words") {
				s.opts.HeadlineWords = words
			}
			if err := s.opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			ctx := cmd.Context()
			a, _, err := s.runner.AnalyzeWithCacheInfo(ctx, s.grid, s.opts)
			if err != nil {
				return err
			}
			labels, err := s.runner.Label(ctx, a.Clusters, s.opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), labels)
			}
			writeLabels(cmd.OutOrStdout(), labels)
			return nil
		},
	}
	addAnalysisFlags(cmd, &flags)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().StringVar(&summarizer, "summarizer", pipeline.DefaultSummarizer, "summarizer: headline, none")
	cmd.Flags().IntVar(&words, "words", label.DefaultHeadlineWords, "words per headline")
	return cmd
}

func writeLabels(w io.Writer, labels []label.ClusterLabel) {
	for _, l := range labels {
		fmt.Fprintf(w, "%s %s %s\n",
			StyleNumber.Render(fmt.Sprintf("(%g,%g)", l.Position.X, l.Position.Y)),
			StyleHighlight.Render(l.Text),
			StyleDim.Render(l.ClusterID))
	}
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d labels", len(labels))))
}

// =============================================================================
// Helpers
// =============================================================================

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func boxString(b cluster.BoundingBox) string {
	return fmt.Sprintf("%d,%d-%d,%d", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// sample flattens text to one line and truncates it.
func sample(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	r := []rune(s)
	if len(r) > maxSampleRunes {
		return string(r[:maxSampleRunes-1]) + "…"
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
