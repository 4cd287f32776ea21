package cluster

// FilterClustersForLabeling keeps the clusters that have enough blocks,
// enough ink and enough words to be worth summarizing. Order is preserved.
func FilterClustersForLabeling(clusters []TextCluster, cond Conditions) []TextCluster {
	var out []TextCluster
	for _, c := range clusters {
		if c.BlockCount() >= cond.MinBlocksPerCluster &&
			c.Density >= cond.MinDensity &&
			c.EstimatedWords >= cond.MinWords {
			out = append(out, c)
		}
	}
	return out
}

// Coverage returns the fraction of input blocks that ended up in surviving
// clusters. It is 1 when MinBlocksPerCluster is at most 1.
func (r Result) Coverage() float64 {
	kept, total := 0, 0
	for _, c := range r.Clusters {
		kept += c.BlockCount()
	}
	total = kept
	for _, c := range r.Discarded {
		total += c.BlockCount()
	}
	if total == 0 {
		return 1
	}
	return float64(kept) / float64(total)
}
