package hierarchy

import (
	"strings"

	"github.com/matzehuels/gridtext/pkg/blocks"
	"github.com/matzehuels/gridtext/pkg/cluster"
)

// lookahead is how many following clusters the simple merge compares.
const lookahead = 2

// group is a merged cluster together with the base clusters folded into it.
type group struct {
	merged  cluster.TextCluster
	sources []cluster.TextCluster
}

func singleton(c cluster.TextCluster) group {
	return group{merged: cloneCluster(c), sources: []cluster.TextCluster{c}}
}

func (g *group) absorb(o group) {
	g.merged = mergePair(g.merged, o.merged)
	g.sources = append(g.sources, o.sources...)
}

// ApplySimpleProximityMerging folds each cluster together with any of the
// next two clusters whose centroid lies closer than distance. It makes one
// pass and never revisits a merged result.
func ApplySimpleProximityMerging(clusters []cluster.TextCluster, distance float64) []cluster.TextCluster {
	return mergedOf(simpleMerge(clusters, distance))
}

func simpleMerge(clusters []cluster.TextCluster, distance float64) []group {
	processed := make([]bool, len(clusters))
	var out []group
	for i := range clusters {
		if processed[i] {
			continue
		}
		processed[i] = true
		g := singleton(clusters[i])
		for j := i + 1; j < len(clusters) && j <= i+lookahead; j++ {
			if processed[j] {
				continue
			}
			if g.merged.Centroid.Distance(clusters[j].Centroid) < distance {
				g.absorb(singleton(clusters[j]))
				processed[j] = true
			}
		}
		out = append(out, g)
	}
	return out
}

// ApplyDistanceBasedMerging merges any two clusters whose centroids are
// closer than radius, rescanning after every merge until no pair qualifies.
func ApplyDistanceBasedMerging(clusters []cluster.TextCluster, radius float64) []cluster.TextCluster {
	return mergedOf(distanceMerge(clusters, radius))
}

func distanceMerge(clusters []cluster.TextCluster, radius float64) []group {
	groups := make([]group, len(clusters))
	for i, c := range clusters {
		groups[i] = singleton(c)
	}
	for changed := true; changed; {
		changed = false
	scan:
		for i := 0; i < len(groups); i++ {
			for j := i + 1; j < len(groups); j++ {
				if groups[i].merged.Centroid.Distance(groups[j].merged.Centroid) < radius {
					groups[i].absorb(groups[j])
					groups = append(groups[:j], groups[j+1:]...)
					changed = true
					break scan
				}
			}
		}
	}
	return groups
}

func mergedOf(groups []group) []cluster.TextCluster {
	out := make([]cluster.TextCluster, len(groups))
	for i, g := range groups {
		out[i] = g.merged
	}
	return out
}

// mergePair concatenates members and unions boxes. Density is the mean of
// the two inputs, not recomputed from the merged box.
func mergePair(a, b cluster.TextCluster) cluster.TextCluster {
	wa, wb := float64(a.TotalCharacters), float64(b.TotalCharacters)
	centroid := a.Centroid
	if wa+wb > 0 {
		centroid = cluster.Point{
			X: (a.Centroid.X*wa + b.Centroid.X*wb) / (wa + wb),
			Y: (a.Centroid.Y*wa + b.Centroid.Y*wb) / (wa + wb),
		}
	}
	return cluster.TextCluster{
		ID:              strings.Join([]string{a.ID, b.ID}, "+"),
		Blocks:          append(append([]blocks.TextBlock(nil), a.Blocks...), b.Blocks...),
		Lines:           append(append([]int(nil), a.Lines...), b.Lines...),
		BoundingBox:     a.BoundingBox.Union(b.BoundingBox),
		Density:         (a.Density + b.Density) / 2,
		TotalCharacters: a.TotalCharacters + b.TotalCharacters,
		EstimatedWords:  a.EstimatedWords + b.EstimatedWords,
		Centroid:        centroid,
	}
}

func cloneCluster(c cluster.TextCluster) cluster.TextCluster {
	c.Blocks = append([]blocks.TextBlock(nil), c.Blocks...)
	c.Lines = append([]int(nil), c.Lines...)
	return c
}
