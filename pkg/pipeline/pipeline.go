// Package pipeline runs the full grid analysis: block extraction, clustering,
// frame generation, labeling and rendering.
//
// The CLI and the API server both go through [Runner], so caching, logging
// and defaults behave the same everywhere. The clustering core itself is
// stateless; the runner caches its output keyed by the grid's content hash
// and every option that affects the result.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{pipeline.FormatSVG}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Run individual stages:
//
//	lb := runner.Extract(ctx, g, opts)
//	res := runner.Cluster(ctx, lb, opts)
//	labels, err := runner.Label(ctx, res.Clusters, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridtext/pkg/blocks"
	"github.com/matzehuels/gridtext/pkg/cache"
	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/errors"
	"github.com/matzehuels/gridtext/pkg/grid"
	"github.com/matzehuels/gridtext/pkg/hierarchy"
	"github.com/matzehuels/gridtext/pkg/label"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultZoom is the zoom level used when none is given.
	DefaultZoom = 1.0

	// DefaultSummarizer is the offline headline summarizer.
	DefaultSummarizer = SummarizerHeadline
)

// Summarizer names.
const (
	SummarizerHeadline = "headline"
	SummarizerNone     = "none"
)

// Format constants for output formats.
const (
	FormatJSON    = "json"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatOverlay = "txt"
	FormatDOT     = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:    true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPDF:     true,
	FormatOverlay: true,
	FormatDOT:     true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests; decode requests
// over [DefaultOptions] so omitted fields keep their defaults.
type Options struct {
	// Extraction
	Viewport     *grid.Viewport `json:"viewport,omitempty"`
	GapThreshold int            `json:"gap_threshold"`

	// Clustering and frames (Hierarchy.Clustering holds the conditions)
	Hierarchy   hierarchy.Config `json:"hierarchy"`
	Viewpoint   cluster.Point    `json:"viewpoint"`
	Zoom        float64          `json:"zoom"`
	SingleLevel bool             `json:"single_level,omitempty"`

	// Labeling
	Labels        bool   `json:"labels,omitempty"`
	Summarizer    string `json:"summarizer,omitempty"`
	HeadlineWords int    `json:"headline_words,omitempty"`

	// Rendering
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Refresh bypasses cached results (they are still written).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns options with every default filled in.
func DefaultOptions() Options {
	return Options{
		GapThreshold:  blocks.DefaultGapThreshold,
		Hierarchy:     hierarchy.DefaultConfig(),
		Zoom:          DefaultZoom,
		Summarizer:    DefaultSummarizer,
		HeadlineWords: label.DefaultHeadlineWords,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// GridHash is the content hash of the input grid.
	GridHash string

	Clusters  []cluster.TextCluster
	Discarded int
	Frames    hierarchy.FrameSystem
	Labels    []label.ClusterLabel

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Lines       int
	Blocks      int
	Clusters    int
	Frames      int
	Labels      int
	AnalyzeTime time.Duration
	LabelTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AnalysisHit bool // Whether clusters and frames came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, svg, png, pdf, txt, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSummarizer checks that a summarizer name is known.
func ValidateSummarizer(name string) error {
	switch name {
	case SummarizerHeadline, SummarizerNone:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid summarizer: %q (must be one of: headline, none)", name)
}

// SetDefaults fills in fields whose zero value is never meaningful.
func (o *Options) SetDefaults() {
	if o.Hierarchy == (hierarchy.Config{}) {
		o.Hierarchy = hierarchy.DefaultConfig()
	}
	if o.Hierarchy.Clustering == (cluster.Conditions{}) {
		o.Hierarchy.Clustering = cluster.DefaultConditions()
	}
	if o.Summarizer == "" {
		o.Summarizer = DefaultSummarizer
	}
	if o.HeadlineWords == 0 {
		o.HeadlineWords = label.DefaultHeadlineWords
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every option.
func (o *Options) Validate() error {
	if err := errors.ValidateThreshold("gap_threshold", o.GapThreshold); err != nil {
		return err
	}
	if err := errors.ValidateZoom(o.Zoom); err != nil {
		return err
	}
	if o.Viewport != nil {
		if err := o.Viewport.Validate(); err != nil {
			return err
		}
	}
	if err := o.Hierarchy.Validate(); err != nil {
		return err
	}
	if err := ValidateSummarizer(o.Summarizer); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// ShowAllLevels reports whether every level is active.
func (o *Options) ShowAllLevels() bool {
	return !o.SingleLevel
}

// Conditions returns the clustering conditions.
func (o *Options) Conditions() cluster.Conditions {
	return o.Hierarchy.Clustering
}

// FrameKeyOpts returns cache key options for the analysis stage.
func (o *Options) FrameKeyOpts() cache.FrameKeyOpts {
	vp := ""
	if o.Viewport != nil {
		vp = fmt.Sprintf("%d,%d,%d,%d", o.Viewport.MinX, o.Viewport.MaxX, o.Viewport.MinY, o.Viewport.MaxY)
	}
	return cache.FrameKeyOpts{
		Viewport:      vp,
		ViewpointX:    o.Viewpoint.X,
		ViewpointY:    o.Viewpoint.Y,
		Zoom:          o.Zoom,
		ShowAllLevels: o.ShowAllLevels(),
		GapThreshold:  o.GapThreshold,
		Settings:      o.Hierarchy,
	}
}
