// Package hierarchy wraps clusters into rendering-ready frames at two levels
// of detail.
//
// Level [FineDetail] holds one frame per base cluster. Level [Grouped] holds
// the result of a conservative proximity merge over the same clusters: a
// single left-to-right pass that only looks two clusters ahead. Every frame
// carries its distance from a viewpoint and a merge radius derived from that
// distance and the zoom level.
//
// [GenerateHierarchicalFrames] recomputes everything from a grid snapshot on
// each call. Nothing is cached here; callers that need caching key it on
// [grid.Grid.Hash] (see the pipeline package).
package hierarchy
