// Package label turns prose-like clusters into short labels.
//
// [GenerateLabels] filters clusters with [cluster.FilterClustersForLabeling],
// reconstructs each one's text in reading order and hands it to a
// [Summarizer], one cluster at a time. A summarizer error or an empty
// summary means that cluster gets no label; the remaining clusters are still
// processed.
//
// Summarizers are pluggable. [HeadlineSummarizer] works offline by taking the
// leading words of the text. [CachedSummarizer] wraps any summarizer with a
// [cache.Cache].
package label
