// Package pkg provides the core libraries of gridtext.
//
// # Overview
//
// gridtext finds structure in text placed on a sparse 2-D character grid.
// The pkg directory is organized by pipeline stage:
//
//  1. [grid] - the sparse grid, its keys, viewports and JSON form
//  2. [blocks] - per-line segmentation into text blocks
//  3. [cluster] - grouping of blocks into text clusters
//  4. [hierarchy] - fine and grouped frames around clusters
//  5. [label] - cluster summaries
//  6. [render] - SVG, PNG, PDF, JSON, text overlay and DOT output
//  7. [pipeline] - orchestration, caching and configuration
//  8. [api] - the HTTP API over the pipeline
//
// Supporting packages: [cache] (file and Redis backends), [errors]
// (coded errors), [observability] (stage hooks), [httputil] (JSON
// helpers for the API), [stage] (procedural sample layouts) and
// [buildinfo].
//
// # Data Flow
//
//	grid.Grid
//	     ↓
//	blocks.ExtractAllTextBlocks  (line → blocks)
//	     ↓
//	cluster.Build                (blocks → clusters)
//	     ↓
//	hierarchy.GenerateFromClusters (clusters → frames)
//	     ↓
//	label.GenerateLabels / render  (labels, artifacts)
//
// # Quick Start
//
//	g, _ := grid.ReadFile("page.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(ctx, g, pipeline.DefaultOptions())
//
// [grid]: github.com/matzehuels/gridtext/pkg/grid
// [blocks]: github.com/matzehuels/gridtext/pkg/blocks
// [cluster]: github.com/matzehuels/gridtext/pkg/cluster
// [hierarchy]: github.com/matzehuels/gridtext/pkg/hierarchy
// [label]: github.com/matzehuels/gridtext/pkg/label
// [render]: github.com/matzehuels/gridtext/pkg/render
// [pipeline]: github.com/matzehuels/gridtext/pkg/pipeline
// [api]: github.com/matzehuels/gridtext/pkg/api
// [cache]: github.com/matzehuels/gridtext/pkg/cache
// [errors]: github.com/matzehuels/gridtext/pkg/errors
// [observability]: github.com/matzehuels/gridtext/pkg/observability
// [httputil]: github.com/matzehuels/gridtext/pkg/httputil
// [stage]: github.com/matzehuels/gridtext/pkg/stage
// [buildinfo]: github.com/matzehuels/gridtext/pkg/buildinfo
package pkg
