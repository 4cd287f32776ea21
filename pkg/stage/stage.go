package stage

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/gridtext/pkg/errors"
	"github.com/matzehuels/gridtext/pkg/grid"
)

// DefaultImageHeight is the height of the empty image area.
const DefaultImageHeight = 12

// Region kinds.
const (
	KindText  = "text"
	KindImage = "image"
)

// Options controls generation. Nil toggles are decided randomly.
type Options struct {
	Seed        uint64
	Name        string
	Layout      string
	Sidebar     *bool
	Footer      *bool
	Labels      *bool
	StartX      int
	StartY      int
	ImageHeight int
}

// Region is one placed element. Text regions carry their rendered lines;
// the image region only reserves Width x Height cells.
type Region struct {
	ID     string   `json:"id"`
	Kind   string   `json:"kind"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Lines  []string `json:"lines,omitempty"`
}

// Stage is a generated layout.
type Stage struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Seed        uint64   `json:"seed"`
	Layout      Layout   `json:"layout"`
	Regions     []Region `json:"regions"`
	Dictionary  []string `json:"dictionary"`
}

// Validate checks the options that can be wrong.
func (o Options) Validate() error {
	if o.Layout != "" {
		if _, ok := PresetByName(o.Layout); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown layout %q (want one of %s)",
				o.Layout, strings.Join(PresetNames(), ", "))
		}
	}
	if o.ImageHeight < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "image height must be >= 0")
	}
	return nil
}

// Generate builds a stage. An unknown layout name falls back to the first
// preset; call Options.Validate first to reject it instead.
func Generate(opts Options) *Stage {
	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	gen := &generator{r: r}

	layout := Presets[r.IntN(len(Presets))]
	if opts.Layout != "" {
		if l, ok := PresetByName(opts.Layout); ok {
			layout = l
		} else {
			layout = Presets[0]
		}
	}
	imageHeight := opts.ImageHeight
	if imageHeight == 0 {
		imageHeight = DefaultImageHeight
	}

	name := opts.Name
	if name == "" {
		name = gen.pick(adjectives) + "-" + gen.pick(nouns)
	}
	sidebar := decide(opts.Sidebar, func() bool { return r.Float64() > 0.4 })
	footer := decide(opts.Footer, func() bool { return r.Float64() > 0.5 })
	numLabels := r.IntN(4)
	if opts.Labels != nil {
		numLabels = 0
		if *opts.Labels {
			numLabels = 1 + r.IntN(3)
		}
	}

	gen.dict = gen.sample(allWords(), gen.between(15, 25))

	st := &Stage{
		Name:        name,
		Description: fmt.Sprintf("Procedurally generated %s stage", layout.Name),
		Seed:        opts.Seed,
		Layout:      layout,
		Dictionary:  gen.dict,
	}
	x, y, w, sp := opts.StartX, opts.StartY, layout.ImageWidth, layout.Spacing

	title := gen.title(gen.between(1, 3))
	if r.IntN(2) == 0 {
		title = center(title, w)
	}
	st.add(Region{ID: "title", Kind: KindText, X: x, Y: y - sp.TitleAboveImage, Width: w, Lines: []string{title}})
	st.add(Region{ID: "main-image", Kind: KindImage, X: x, Y: y, Width: w, Height: imageHeight})

	if r.Float64() > 0.2 {
		lines := wrap(gen.bogus(gen.between(8, 20)), w)
		st.add(Region{ID: "caption", Kind: KindText, X: x, Y: y + imageHeight + sp.CaptionBelowImage, Width: w, Lines: lines})
	}

	if sidebar {
		sw := gen.between(25, 35)
		sx := x + w + sp.SidebarFromImage
		st.add(Region{ID: "sidebar-header", Kind: KindText, X: sx, Y: y, Width: sw, Lines: []string{gen.pick(sidebarHeaders)}})
		st.add(Region{ID: "sidebar-divider", Kind: KindText, X: sx, Y: y + 1, Width: sw, Lines: []string{strings.Repeat("─", sw)}})
		st.add(Region{ID: "sidebar-body", Kind: KindText, X: sx, Y: y + 2, Width: sw, Lines: wrap(gen.bogus(gen.between(15, 40)), sw)})
	}

	if footer {
		text := "— " + strings.Join(gen.bogus(gen.between(1, 3)), " ") + " —"
		fy := y + imageHeight + sp.CaptionBelowImage + sp.FooterBelowCaption + 2
		st.add(Region{ID: "footer", Kind: KindText, X: x, Y: fy, Width: w, Lines: []string{center(text, w)}})
	}

	for i := 0; i < numLabels; i++ {
		st.add(Region{
			ID:    fmt.Sprintf("label-%d", gen.between(1000, 9999)),
			Kind:  KindText,
			X:     x + gen.between(0, 20),
			Y:     y + gen.between(-10, 30),
			Lines: []string{gen.title(1)},
		})
	}
	return st
}

func (s *Stage) add(r Region) {
	if r.Kind == KindText {
		r.Height = len(r.Lines)
		for _, l := range r.Lines {
			r.Width = max(r.Width, len([]rune(l)))
		}
	}
	s.Regions = append(s.Regions, r)
}

// Grid draws every text region. Later regions overwrite earlier ones where
// they overlap, as floating labels do.
func (s *Stage) Grid() grid.Grid {
	g := grid.New()
	for _, r := range s.Regions {
		for i, line := range r.Lines {
			g.WriteString(r.X, r.Y+i, line)
		}
	}
	return g
}

// Region returns the region with the given id.
func (s *Stage) Region(id string) (Region, bool) {
	for _, r := range s.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// decide always consumes the random draw so forcing one toggle leaves the
// rest of the stage unchanged.
func decide(forced *bool, random func() bool) bool {
	v := random()
	if forced != nil {
		return *forced
	}
	return v
}

type generator struct {
	r    *rand.Rand
	dict []string
}

func (g *generator) between(lo, hi int) int {
	return lo + g.r.IntN(hi-lo+1)
}

func (g *generator) pick(words []string) string {
	return words[g.r.IntN(len(words))]
}

func (g *generator) sample(words []string, n int) []string {
	cp := append([]string(nil), words...)
	g.r.Shuffle(len(cp), func(i, j int) { cp[i], cp[j] = cp[j], cp[i] })
	return cp[:min(n, len(cp))]
}

func (g *generator) title(n int) string {
	words := make([]string, n)
	for i := range words {
		if g.r.IntN(2) == 0 {
			words[i] = g.pick(adjectives)
		} else {
			words[i] = g.pick(nouns)
		}
	}
	return strings.ToUpper(strings.Join(words, " "))
}

// bogus returns n words drawn from the stage dictionary.
func (g *generator) bogus(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = g.pick(g.dict)
	}
	return words
}

// wrap greedily packs words into lines of at most width runes. A word longer
// than width gets a line of its own.
func wrap(words []string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	for _, w := range words {
		n := len([]rune(cur.String()))
		if n > 0 && n+1+len([]rune(w)) > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func center(s string, width int) string {
	pad := (width - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
