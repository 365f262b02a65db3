package classify

import (
	"context"
	"time"

	"github.com/ppiankov/moodbot/internal/cache"
	"github.com/ppiankov/moodbot/internal/model"
)

// CachedProvider wraps a Provider with a result cache. Identical texts resent
// within the TTL are answered without another classifier call.
type CachedProvider struct {
	inner Provider
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedProvider creates a caching wrapper around the given provider
func NewCachedProvider(inner Provider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// Name returns the wrapped provider's name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *CachedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Classify returns cached scores when available, otherwise calls the wrapped
// provider and caches its answer.
func (p *CachedProvider) Classify(ctx context.Context, text string) ([]model.LabelScore, error) {
	key := cache.Key(text)

	if scores, found := p.cache.Get(key); found {
		return scores, nil
	}

	scores, err := p.inner.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	_ = p.cache.Set(key, scores, p.ttl)

	return scores, nil
}
