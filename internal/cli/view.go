package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/grid"
	"github.com/matzehuels/gridtext/pkg/hierarchy"
	"github.com/matzehuels/gridtext/pkg/render/sink"
)

// Zoom limits and step for the viewer.
const (
	minZoom    = 0.1
	maxZoom    = 10.0
	zoomFactor = 1.25
)

var (
	viewHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

func (c *CLI) viewCommand() *cobra.Command {
	var flags analysisFlags

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore frames interactively in the terminal",
		Long: `Open the grid in a full-screen viewer with frame borders drawn around
clusters. Panning moves the viewpoint to the centre of the screen, so in
--single-level mode frames switch level as you move.

Keys: arrows/hjkl pan, +/- zoom, a toggle all levels, 0 reset, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd, args, &flags)
			if err != nil {
				return err
			}
			defer s.runner.Close()

			a, _, err := s.runner.AnalyzeWithCacheInfo(cmd.Context(), s.grid, s.opts)
			if err != nil {
				return err
			}
			m := newViewModel(s.grid, a.Clusters, s.opts.Hierarchy, s.opts.Zoom, s.opts.ShowAllLevels())
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	addAnalysisFlags(cmd, &flags)
	return cmd
}

// viewModel is the bubbletea model of the frame viewer.
type viewModel struct {
	grid     grid.Grid
	clusters []cluster.TextCluster
	cfg      hierarchy.Config

	originX, originY int
	offX, offY       int
	width, height    int
	zoom, zoom0      float64
	showAll          bool

	frames hierarchy.FrameSystem
	body   string
	err    error
}

func newViewModel(g grid.Grid, clusters []cluster.TextCluster, cfg hierarchy.Config, zoom float64, showAll bool) viewModel {
	m := viewModel{
		grid:     g,
		clusters: clusters,
		cfg:      cfg,
		width:    80,
		height:   24,
		zoom:     zoom,
		zoom0:    zoom,
		showAll:  showAll,
	}
	if b, ok := g.Bounds(); ok {
		m.originX, m.originY = b.MinX-1, b.MinY-1
	}
	m.offX, m.offY = m.originX, m.originY
	m.recompute()
	return m
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		stepX, stepY := max(1, m.width/8), max(1, m.bodyHeight()/4)
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.offX -= stepX
		case "right", "l":
			m.offX += stepX
		case "up", "k":
			m.offY -= stepY
		case "down", "j":
			m.offY += stepY
		case "+", "=":
			m.zoom = min(maxZoom, m.zoom*zoomFactor)
		case "-", "_":
			m.zoom = max(minZoom, m.zoom/zoomFactor)
		case "a":
			m.showAll = !m.showAll
		case "0":
			m.offX, m.offY, m.zoom = m.originX, m.originY, m.zoom0
		default:
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	default:
		return m, nil
	}
	m.recompute()
	return m, nil
}

// bodyHeight leaves room for the header, status and help lines.
func (m viewModel) bodyHeight() int {
	return max(1, m.height-3)
}

// visible is the grid rectangle on screen.
func (m viewModel) visible() grid.Viewport {
	return grid.Viewport{
		MinX: m.offX,
		MaxX: m.offX + max(1, m.width) - 1,
		MinY: m.offY,
		MaxY: m.offY + m.bodyHeight() - 1,
	}
}

// viewpoint is the centre of the screen in grid coordinates.
func (m viewModel) viewpoint() cluster.Point {
	x, y := m.visible().Center()
	return cluster.Point{X: x, Y: y}
}

func (m *viewModel) recompute() {
	m.frames = hierarchy.GenerateFromClusters(m.clusters, m.viewpoint(), m.zoom, m.cfg, m.showAll)
	v := m.visible()
	m.body, m.err = sink.RenderOverlay(m.grid, m.frames, sink.WithOverlayViewport(&v))
}

func (m viewModel) View() string {
	var b strings.Builder

	vp := m.viewpoint()
	mode := "single level"
	if m.showAll {
		mode = "all levels"
	}
	b.WriteString(viewHeaderStyle.Render(appName + " view"))
	b.WriteString("  ")
	b.WriteString(viewStatusStyle.Render(fmt.Sprintf("viewpoint %.0f,%.0f · zoom %.2f · %s · %d fine · %d grouped · %d active",
		vp.X, vp.Y, m.zoom, mode,
		m.frames.Count(hierarchy.FineDetail), m.frames.Count(hierarchy.Grouped), len(m.frames.ActiveFrames))))
	b.WriteString("\n")

	lines := strings.Split(m.body, "\n")
	if m.err != nil {
		lines = []string{viewErrorStyle.Render(m.err.Error())}
	}
	for i := 0; i < m.bodyHeight(); i++ {
		if i < len(lines) {
			b.WriteString(lines[i])
		}
		b.WriteString("\n")
	}

	b.WriteString(viewHelpStyle.Render("←↑↓→ pan  +/- zoom  a levels  0 reset  q quit"))
	return b.String()
}
