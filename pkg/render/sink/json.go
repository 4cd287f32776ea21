package sink

import (
	"encoding/json"

	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/hierarchy"
	"github.com/matzehuels/gridtext/pkg/label"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	labels   []label.ClusterLabel
	gridHash string
	runID    string
	indent   bool
}

// WithJSONLabels includes cluster labels in the output.
func WithJSONLabels(l []label.ClusterLabel) JSONOption {
	return func(r *jsonRenderer) { r.labels = l }
}

// WithJSONGridHash records the content hash of the source grid.
func WithJSONGridHash(h string) JSONOption { return func(r *jsonRenderer) { r.gridHash = h } }

// WithJSONRunID records the pipeline run that produced the frames.
func WithJSONRunID(id string) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	RunID          string               `json:"run_id,omitempty"`
	GridHash       string               `json:"grid_hash,omitempty"`
	Zoom           float64              `json:"zoom"`
	ViewportCenter cluster.Point        `json:"viewport_center"`
	Levels         map[string]int       `json:"levels"`
	Frames         []jsonFrame          `json:"frames"`
	Labels         []label.ClusterLabel `json:"labels,omitempty"`
}

type jsonFrame struct {
	ID             string          `json:"id"`
	Level          int             `json:"level"`
	LevelName      string          `json:"level_name"`
	X              int             `json:"x"`
	Y              int             `json:"y"`
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	Center         cluster.Point   `json:"center"`
	ViewerDistance float64         `json:"viewer_distance"`
	MergeRadius    float64         `json:"merge_radius"`
	Clusters       []string        `json:"clusters"`
	Style          hierarchy.Style `json:"style"`
}

// RenderJSON serializes the active frames of fs.
func RenderJSON(fs hierarchy.FrameSystem, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		RunID:          r.runID,
		GridHash:       r.gridHash,
		Zoom:           fs.ZoomLevel,
		ViewportCenter: fs.ViewportCenter,
		Levels:         make(map[string]int, len(hierarchy.Levels)),
		Frames:         make([]jsonFrame, 0, len(fs.ActiveFrames)),
		Labels:         r.labels,
	}
	for _, l := range hierarchy.Levels {
		out.Levels[l.String()] = fs.Count(l)
	}
	for _, f := range fs.ActiveFrames {
		out.Frames = append(out.Frames, toJSONFrame(f))
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

func toJSONFrame(f hierarchy.Frame) jsonFrame {
	ids := make([]string, len(f.Clusters))
	for i, c := range f.Clusters {
		ids[i] = c.ID
	}
	return jsonFrame{
		ID:             f.ID,
		Level:          int(f.Level),
		LevelName:      f.Level.String(),
		X:              f.BoundingBox.MinX,
		Y:              f.BoundingBox.MinY,
		Width:          f.BoundingBox.Width(),
		Height:         f.BoundingBox.Height(),
		Center:         f.Center,
		ViewerDistance: f.ViewerDistance,
		MergeRadius:    f.MergeRadius,
		Clusters:       ids,
		Style:          f.Style,
	}
}
