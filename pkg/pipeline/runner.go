package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gridtext/pkg/blocks"
	"github.com/matzehuels/gridtext/pkg/cache"
	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/grid"
	"github.com/matzehuels/gridtext/pkg/hierarchy"
	"github.com/matzehuels/gridtext/pkg/label"
	"github.com/matzehuels/gridtext/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Summarizer overrides the summarizer selected by Options.Summarizer.
	Summarizer label.Summarizer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Analysis is the cached part of a run: everything derived from the grid
// before labeling.
type Analysis struct {
	Lines     int                   `json:"lines"`
	Blocks    int                   `json:"blocks"`
	Clusters  []cluster.TextCluster `json:"clusters"`
	Discarded int                   `json:"discarded"`
	Frames    hierarchy.FrameSystem `json:"frames"`
}

// Execute runs extraction, clustering, frames, labels and rendering.
func (r *Runner) Execute(ctx context.Context, g grid.Grid, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		GridHash:  g.Hash(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run", result.RunID[:8])

	// Stage 1: blocks, clusters, frames
	start := time.Now()
	a, hit, err := r.AnalyzeWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Clusters = a.Clusters
	result.Discarded = a.Discarded
	result.Frames = a.Frames
	result.CacheInfo.AnalysisHit = hit
	result.Stats.Lines = a.Lines
	result.Stats.Blocks = a.Blocks
	result.Stats.Clusters = len(a.Clusters)
	result.Stats.Frames = len(a.Frames.ActiveFrames)
	result.Stats.AnalyzeTime = time.Since(start)

	logger.Info("analyzed grid",
		"lines", a.Lines,
		"blocks", a.Blocks,
		"clusters", len(a.Clusters),
		"frames", len(a.Frames.ActiveFrames),
		"cached", hit,
		"duration", result.Stats.AnalyzeTime)

	// Stage 2: labels
	if opts.Labels {
		start = time.Now()
		labels, err := r.Label(ctx, a.Clusters, opts)
		if err != nil {
			return nil, fmt.Errorf("label: %w", err)
		}
		result.Labels = labels
		result.Stats.Labels = len(labels)
		result.Stats.LabelTime = time.Since(start)
		logger.Info("labeled clusters", "labels", len(labels), "duration", result.Stats.LabelTime)
	}

	// Stage 3: render
	if len(opts.Formats) > 0 {
		start = time.Now()
		artifacts, err := Render(ctx, g, result, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(start)
		logger.Info("rendered outputs", "formats", opts.Formats, "duration", result.Stats.RenderTime)
	}

	return result, nil
}

// Extract returns the blocks of g within opts.Viewport.
func (r *Runner) Extract(ctx context.Context, g grid.Grid, opts Options) blocks.LineBlocks {
	start := time.Now()
	lb := blocks.ExtractAllTextBlocksWithOptions(g, opts.Viewport, blocks.Options{GapThreshold: opts.GapThreshold})
	d := time.Since(start)
	observability.Pipeline().OnExtract(ctx, len(lb), lb.Count(), d)
	r.Logger.Debug("extracted blocks", "lines", len(lb), "blocks", lb.Count(), "duration", d)
	return lb
}

// Cluster groups lb with the conditions in opts.
func (r *Runner) Cluster(ctx context.Context, lb blocks.LineBlocks, opts Options) cluster.Result {
	start := time.Now()
	res := cluster.Build(lb, opts.Conditions())
	d := time.Since(start)
	observability.Pipeline().OnCluster(ctx, len(res.Clusters), len(res.Discarded), d)
	r.Logger.Debug("built clusters", "clusters", len(res.Clusters), "discarded", len(res.Discarded), "duration", d)
	return res
}

// Frames builds the frame system for clusters.
func (r *Runner) Frames(ctx context.Context, clusters []cluster.TextCluster, opts Options) hierarchy.FrameSystem {
	start := time.Now()
	fs := hierarchy.GenerateFromClusters(clusters, opts.Viewpoint, opts.Zoom, opts.Hierarchy, opts.ShowAllLevels())
	observability.Pipeline().OnFrames(ctx, len(fs.ActiveFrames), false, time.Since(start))
	return fs
}

// AnalyzeWithCacheInfo runs extraction, clustering and frame generation, or
// loads their combined result from the cache.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, g grid.Grid, opts Options) (*Analysis, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.FrameKey(g.Hash(), opts.FrameKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		start := time.Now()
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var a Analysis
			if err := json.Unmarshal(data, &a); err == nil {
				hooks.OnCacheHit(ctx, cache.KeyTypeFrames)
				observability.Pipeline().OnFrames(ctx, len(a.Frames.ActiveFrames), true, time.Since(start))
				return &a, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		hooks.OnCacheMiss(ctx, cache.KeyTypeFrames)
	}

	lb := r.Extract(ctx, g, opts)
	res := r.Cluster(ctx, lb, opts)
	a := &Analysis{
		Lines:     len(lb),
		Blocks:    lb.Count(),
		Clusters:  res.Clusters,
		Discarded: len(res.Discarded),
		Frames:    r.Frames(ctx, res.Clusters, opts),
	}

	if data, err := json.Marshal(a); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLFrames); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, cache.KeyTypeFrames, len(data))
		}
	}
	return a, false, nil
}

// Label summarizes the clusters that pass the labeling filter. Summaries are
// cached per text.
func (r *Runner) Label(ctx context.Context, clusters []cluster.TextCluster, opts Options) ([]label.ClusterLabel, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s, name := r.summarizer(opts)
	if s == nil {
		return nil, nil
	}
	if !opts.Refresh {
		cs := label.NewCachedSummarizer(s, name, r.Cache)
		cs.Keyer = r.Keyer
		s = cs
	}
	return label.GenerateLabels(ctx, clusters, opts.Conditions(), s,
		label.WithObserver(func(id string, labeled bool, d time.Duration, err error) {
			observability.Pipeline().OnLabel(ctx, id, labeled, d, err)
			if err != nil {
				r.Logger.Debug("summarizer failed", "cluster", id, "error", err)
			}
		}))
}

func (r *Runner) summarizer(opts Options) (label.Summarizer, string) {
	if r.Summarizer != nil {
		return r.Summarizer, "custom"
	}
	switch opts.Summarizer {
	case SummarizerNone:
		return nil, ""
	default:
		return label.HeadlineSummarizer{MaxWords: opts.HeadlineWords},
			fmt.Sprintf("%s-%d", SummarizerHeadline, opts.HeadlineWords)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
