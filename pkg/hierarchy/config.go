package hierarchy

import (
	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/errors"
)

// DefaultMergeDistance is the centroid distance below which neighbouring
// clusters fold together at the Grouped level.
const DefaultMergeDistance = 8.0

// Config tunes frame generation.
type Config struct {
	// BaseRadius is the merge radius at distance zero and zoom 1.
	BaseRadius float64 `json:"baseRadius" toml:"base_radius"`

	// DistanceScaling is the distance at which the radius doubles.
	DistanceScaling float64 `json:"distanceScaling" toml:"distance_scaling"`

	// ZoomScaling divides the radius by the zoom level (clamped to 0.1).
	ZoomScaling bool `json:"zoomScaling" toml:"zoom_scaling"`

	// FineDetailThreshold is the viewer distance below which a frame is
	// shown at FineDetail in single-level mode.
	FineDetailThreshold float64 `json:"fineDetailThreshold" toml:"fine_detail_threshold"`

	// MergeDistance is the Grouped-level merge distance.
	MergeDistance float64 `json:"mergeDistance" toml:"merge_distance"`

	// Clustering is used when frames are built straight from a grid.
	Clustering cluster.Conditions `json:"clustering" toml:"clustering"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		BaseRadius:          10,
		DistanceScaling:     100,
		ZoomScaling:         true,
		FineDetailThreshold: 50,
		MergeDistance:       DefaultMergeDistance,
		Clustering:          cluster.DefaultConditions(),
	}
}

// Validate checks that every numeric field is usable.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"base_radius", c.BaseRadius},
		{"fine_detail_threshold", c.FineDetailThreshold},
		{"merge_distance", c.MergeDistance},
		{"distance_scaling", c.DistanceScaling},
	} {
		if err := errors.ValidateRatio(f.name, f.v); err != nil {
			return err
		}
	}
	if c.DistanceScaling == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "distance_scaling must be > 0")
	}
	return c.Clustering.Validate()
}

// MergeRadius returns the effective merge radius for a frame at the given
// viewer distance and zoom.
func (c Config) MergeRadius(distance, zoom float64) float64 {
	zoomFactor := 1.0
	if c.ZoomScaling {
		zoomFactor = 1 / max(0.1, zoom)
	}
	return c.BaseRadius * (1 + distance/c.DistanceScaling) * zoomFactor
}
