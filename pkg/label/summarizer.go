package label

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/gridtext/pkg/cache"
	"github.com/matzehuels/gridtext/pkg/observability"
)

// Summarizer produces a short label for a block of text. An empty result
// means "no label".
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// SummarizerFunc adapts a function to Summarizer.
type SummarizerFunc func(ctx context.Context, text string) (string, error)

// Summarize calls f.
func (f SummarizerFunc) Summarize(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// DefaultHeadlineWords is the word count used when HeadlineSummarizer.MaxWords
// is not set.
const DefaultHeadlineWords = 4

// HeadlineSummarizer labels a cluster with its first few words in title case.
type HeadlineSummarizer struct {
	MaxWords int
}

// Summarize returns the leading words of text, or "" for blank text.
func (h HeadlineSummarizer) Summarize(_ context.Context, text string) (string, error) {
	n := h.MaxWords
	if n <= 0 {
		n = DefaultHeadlineWords
	}
	words := strings.Fields(norm.NFC.String(text))
	if len(words) == 0 {
		return "", nil
	}
	if len(words) > n {
		words = words[:n]
	}
	headline := strings.Join(words, " ")
	return cases.Title(language.English).String(strings.ToLower(headline)), nil
}

// CachedSummarizer memoizes another summarizer. Name distinguishes entries of
// different summarizers sharing one cache. Empty summaries are cached too,
// errors are not. Cache failures fall through to the wrapped summarizer.
type CachedSummarizer struct {
	Inner Summarizer
	Name  string
	Cache cache.Cache
	Keyer cache.Keyer
}

// NewCachedSummarizer wraps s with c using the default keyer.
func NewCachedSummarizer(s Summarizer, name string, c cache.Cache) *CachedSummarizer {
	return &CachedSummarizer{Inner: s, Name: name, Cache: c, Keyer: cache.NewDefaultKeyer()}
}

// Summarize returns the cached summary for text, computing it on a miss.
func (s *CachedSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	key := s.Keyer.SummaryKey(s.Name, text)
	hooks := observability.Cache()

	if data, hit, err := s.Cache.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, cache.KeyTypeSummary)
		return string(data), nil
	}
	hooks.OnCacheMiss(ctx, cache.KeyTypeSummary)

	summary, err := s.Inner.Summarize(ctx, text)
	if err != nil {
		return "", err
	}
	if err := s.Cache.Set(ctx, key, []byte(summary), cache.TTLSummary); err == nil {
		hooks.OnCacheSet(ctx, cache.KeyTypeSummary, len(summary))
	}
	return summary, nil
}
