package hierarchy

import (
	"fmt"

	"github.com/matzehuels/gridtext/pkg/blocks"
	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/grid"
)

// Frame is one cluster (or merged cluster) ready to draw.
type Frame struct {
	ID             string                `json:"id"`
	Level          Level                 `json:"level"`
	BoundingBox    cluster.BoundingBox   `json:"boundingBox"`
	Center         cluster.Point         `json:"center"`
	ViewerDistance float64               `json:"viewerDistance"`
	MergeRadius    float64               `json:"mergeRadius"`
	Clusters       []cluster.TextCluster `json:"clusters"`
	Style          Style                 `json:"style"`
}

// FrameSystem is the output of one frame-generation call. Renderers iterate
// ActiveFrames only.
type FrameSystem struct {
	Levels         map[Level][]Frame `json:"levels"`
	ViewportCenter cluster.Point     `json:"viewportCenter"`
	ZoomLevel      float64           `json:"zoomLevel"`
	ActiveFrames   []Frame           `json:"activeFrames"`
}

// Count returns the number of frames at level l.
func (fs FrameSystem) Count(l Level) int {
	return len(fs.Levels[l])
}

// GenerateHierarchicalFrames extracts blocks from g (restricted to viewport
// when non-nil), clusters them with cfg.Clustering and builds both levels.
func GenerateHierarchicalFrames(g grid.Grid, viewpoint cluster.Point, zoom float64, cfg Config, viewport *grid.Viewport, showAllLevels bool) FrameSystem {
	lb := blocks.ExtractAllTextBlocks(g, viewport)
	clusters := cluster.GroupTextBlocksIntoClusters(lb, cfg.Clustering)
	return GenerateFromClusters(clusters, viewpoint, zoom, cfg, showAllLevels)
}

// GenerateFromClusters builds both levels from precomputed base clusters.
func GenerateFromClusters(clusters []cluster.TextCluster, viewpoint cluster.Point, zoom float64, cfg Config, showAllLevels bool) FrameSystem {
	fine := make([]group, len(clusters))
	for i, c := range clusters {
		fine[i] = singleton(c)
	}

	fs := FrameSystem{
		Levels: map[Level][]Frame{
			FineDetail: buildFrames(FineDetail, fine, viewpoint, zoom, cfg),
			Grouped:    buildFrames(Grouped, simpleMerge(clusters, cfg.MergeDistance), viewpoint, zoom, cfg),
		},
		ViewportCenter: viewpoint,
		ZoomLevel:      zoom,
	}
	fs.ActiveFrames = SelectActiveFrames(fs.Levels, cfg, showAllLevels)
	return fs
}

func buildFrames(l Level, groups []group, viewpoint cluster.Point, zoom float64, cfg Config) []Frame {
	frames := make([]Frame, 0, len(groups))
	for i, g := range groups {
		center := g.merged.BoundingBox.Center()
		d := viewpoint.Distance(center)
		frames = append(frames, Frame{
			ID:             fmt.Sprintf("l%d-%d", int(l), i),
			Level:          l,
			BoundingBox:    g.merged.BoundingBox,
			Center:         center,
			ViewerDistance: d,
			MergeRadius:    cfg.MergeRadius(d, zoom),
			Clusters:       g.sources,
			Style:          StyleFor(l),
		})
	}
	return frames
}

// SelectActiveFrames returns every frame when showAllLevels is set. Otherwise
// it keeps the frames whose distance bucket matches the level they were
// built at.
func SelectActiveFrames(levels map[Level][]Frame, cfg Config, showAllLevels bool) []Frame {
	var out []Frame
	for _, l := range Levels {
		for _, f := range levels[l] {
			if showAllLevels || GetHierarchyLevel(f.ViewerDistance, cfg) == f.Level {
				out = append(out, f)
			}
		}
	}
	return out
}
