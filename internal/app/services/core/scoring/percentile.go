package scoring

import (
	"context"
	"fmt"
	"tawjih-service/internal/app/contracts"

	lru "github.com/hashicorp/golang-lru/v2"
)

type neutralPercentileSource struct{}

// NewNeutralPercentileSource knows no normative dataset, so every lookup misses.
func NewNeutralPercentileSource() contracts.PercentileSource {
	return neutralPercentileSource{}
}

func (neutralPercentileSource) Percentile(ctx context.Context, templateID string, totalScore int) (int, bool, error) {
	return 0, false, nil
}

type PercentileEntry struct {
	Value int
	Found bool
}

type cachedPercentileSource struct {
	Source contracts.PercentileSource
	Cache  *lru.Cache[string, PercentileEntry]
}

// NewPercentileCache builds the bounded cache handed to NewCachedPercentileSource.
func NewPercentileCache(size int) (*lru.Cache[string, PercentileEntry], error) {
	return lru.New[string, PercentileEntry](size)
}

// NewCachedPercentileSource memoizes successful lookups of source, misses included.
// Failed lookups are never cached.
func NewCachedPercentileSource(source contracts.PercentileSource, cache *lru.Cache[string, PercentileEntry]) contracts.PercentileSource {
	return &cachedPercentileSource{
		Source: source,
		Cache:  cache,
	}
}

func (s *cachedPercentileSource) Percentile(ctx context.Context, templateID string, totalScore int) (int, bool, error) {
	key := fmt.Sprintf("%s:%d", templateID, totalScore)
	if entry, ok := s.Cache.Get(key); ok {
		return entry.Value, entry.Found, nil
	}

	value, found, err := s.Source.Percentile(ctx, templateID, totalScore)
	if err != nil {
		return 0, false, err
	}
	s.Cache.Add(key, PercentileEntry{Value: value, Found: found})
	return value, found, nil
}
