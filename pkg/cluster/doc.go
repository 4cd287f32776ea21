// Package cluster groups text blocks from neighbouring lines into clusters.
//
// [GroupTextBlocksIntoClusters] performs a greedy region-growing pass: lines
// are visited top to bottom and blocks left to right; every block that is not
// yet part of a cluster seeds a new one, which then absorbs unclaimed blocks
// on nearby lines that line up with its current bounding box. Growth repeats
// until a complete pass over the candidate lines adds nothing, because a
// block accepted late can widen the box enough to make an earlier candidate
// acceptable.
//
// The result depends on seeding order but is deterministic for a given grid
// snapshot. Each block ends up in exactly one cluster; clusters smaller than
// [Conditions.MinBlocksPerCluster] are dropped from the output but keep
// their blocks claimed.
//
// [FilterClustersForLabeling] selects the clusters that look like prose and
// are worth summarizing.
package cluster
