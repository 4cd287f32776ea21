package cluster

import "github.com/matzehuels/gridtext/pkg/errors"

// Conditions tunes clustering and the labeling filter.
type Conditions struct {
	// MaxVerticalGap is the largest line distance from the seed line that
	// expansion considers.
	MaxVerticalGap int `json:"maxVerticalGap" toml:"max_vertical_gap"`

	// MinBlocksPerCluster drops smaller clusters from the build output and
	// from the labeling filter.
	MinBlocksPerCluster int `json:"minBlocksPerCluster" toml:"min_blocks_per_cluster"`

	// MaxHorizontalOverlap is the largest gap in columns between a
	// non-overlapping block and the cluster span that still allows a join
	// on a shared left margin.
	MaxHorizontalOverlap int `json:"maxHorizontalOverlap" toml:"max_horizontal_overlap"`

	// MinDensity and MinWords gate labeling.
	MinDensity float64 `json:"minDensity" toml:"min_density"`
	MinWords   int     `json:"minWords" toml:"min_words"`
}

// DefaultConditions returns the stock tuning.
func DefaultConditions() Conditions {
	return Conditions{
		MaxVerticalGap:       5,
		MinBlocksPerCluster:  1,
		MaxHorizontalOverlap: 8,
		MinDensity:           0.1,
		MinWords:             2,
	}
}

// Validate rejects negative thresholds.
func (c Conditions) Validate() error {
	if err := errors.ValidateThreshold("max_vertical_gap", c.MaxVerticalGap); err != nil {
		return err
	}
	if err := errors.ValidateThreshold("min_blocks_per_cluster", c.MinBlocksPerCluster); err != nil {
		return err
	}
	if err := errors.ValidateThreshold("max_horizontal_overlap", c.MaxHorizontalOverlap); err != nil {
		return err
	}
	if err := errors.ValidateRatio("min_density", c.MinDensity); err != nil {
		return err
	}
	return errors.ValidateThreshold("min_words", c.MinWords)
}
