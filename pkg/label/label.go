package label

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/matzehuels/gridtext/pkg/cluster"
)

// TypeSummary is the only label type produced today.
const TypeSummary = "summary"

// sampleRunes bounds ClusterLabel.ContentSample.
const sampleRunes = 100

// ClusterLabel is a label placed just above a cluster.
type ClusterLabel struct {
	ClusterID     string              `json:"clusterId"`
	Position      cluster.Point       `json:"position"`
	Text          string              `json:"text"`
	Type          string              `json:"type"`
	Confidence    float64             `json:"confidence"`
	ContentSample string              `json:"contentSample"`
	BoundingBox   cluster.BoundingBox `json:"boundingBox"`
}

// Observer is told about every summarizer call.
type Observer func(clusterID string, labeled bool, duration time.Duration, err error)

// Option configures GenerateLabels.
type Option func(*generator)

// WithObserver registers fn to be called after every summarizer call.
func WithObserver(fn Observer) Option {
	return func(g *generator) { g.observe = fn }
}

type generator struct {
	observe Observer
}

// GenerateLabels labels the clusters that pass the labeling filter. It stops
// early only when ctx is cancelled, returning the labels produced so far
// together with ctx.Err().
func GenerateLabels(ctx context.Context, clusters []cluster.TextCluster, cond cluster.Conditions, s Summarizer, opts ...Option) ([]ClusterLabel, error) {
	g := generator{observe: func(string, bool, time.Duration, error) {}}
	for _, opt := range opts {
		opt(&g)
	}

	var labels []ClusterLabel
	for _, c := range cluster.FilterClustersForLabeling(clusters, cond) {
		if err := ctx.Err(); err != nil {
			return labels, err
		}
		text := c.Text()

		start := time.Now()
		summary, err := s.Summarize(ctx, text)
		ok := err == nil && summary != ""
		g.observe(c.ID, ok, time.Since(start), err)
		if !ok {
			continue
		}
		labels = append(labels, newLabel(c, summary, text))
	}
	return labels, nil
}

func newLabel(c cluster.TextCluster, summary, text string) ClusterLabel {
	return ClusterLabel{
		ClusterID:     c.ID,
		Position:      cluster.Point{X: float64(c.BoundingBox.MinX), Y: float64(c.BoundingBox.MinY - 1)},
		Text:          summary,
		Type:          TypeSummary,
		Confidence:    min(c.Density, 1),
		ContentSample: truncateRunes(text, sampleRunes),
		BoundingBox:   c.BoundingBox,
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
