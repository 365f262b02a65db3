package classify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/moodbot/internal/cache"
	"github.com/ppiankov/moodbot/internal/model"
)

// countingProvider implements Provider and counts Classify calls
type countingProvider struct {
	calls  int
	scores []model.LabelScore
	err    error
}

func (p *countingProvider) Name() string                        { return "counting" }
func (p *countingProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *countingProvider) Classify(ctx context.Context, text string) ([]model.LabelScore, error) {
	p.calls++
	return p.scores, p.err
}

func TestCachedProvider_SecondCallHitsCache(t *testing.T) {
	inner := &countingProvider{
		scores: []model.LabelScore{{Label: "POSITIVE", Score: 0.9}},
	}
	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	cached := NewCachedProvider(inner, mem, time.Minute)

	first, err := cached.Classify(context.Background(), "same text")
	if err != nil {
		t.Fatalf("First Classify failed: %v", err)
	}
	second, err := cached.Classify(context.Background(), "same text")
	if err != nil {
		t.Fatalf("Second Classify failed: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", inner.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Label != "POSITIVE" {
		t.Errorf("Unexpected cached scores: %+v", second)
	}
}

func TestCachedProvider_DistinctTextsMiss(t *testing.T) {
	inner := &countingProvider{
		scores: []model.LabelScore{{Label: "NEUTRAL", Score: 0.6}},
	}
	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	cached := NewCachedProvider(inner, mem, time.Minute)

	_, _ = cached.Classify(context.Background(), "text one")
	_, _ = cached.Classify(context.Background(), "text two")

	if inner.calls != 2 {
		t.Errorf("Expected 2 provider calls for distinct texts, got %d", inner.calls)
	}
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("provider down")}
	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	cached := NewCachedProvider(inner, mem, time.Minute)

	if _, err := cached.Classify(context.Background(), "text"); err == nil {
		t.Fatal("Expected error, got nil")
	}
	if _, err := cached.Classify(context.Background(), "text"); err == nil {
		t.Fatal("Expected error, got nil")
	}

	if inner.calls != 2 {
		t.Errorf("Expected failures to bypass the cache, got %d calls", inner.calls)
	}
}
