package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/moodbot/internal/cache"
	"github.com/ppiankov/moodbot/internal/classify"
	"github.com/ppiankov/moodbot/internal/metrics"
	"github.com/ppiankov/moodbot/internal/model"
	"github.com/ppiankov/moodbot/internal/stats"
	"github.com/ppiankov/moodbot/internal/store"
)

// Pipeline orchestrates one classification request end to end: external
// classifier call, label normalization, durable append. It also answers
// stats requests against the same store.
type Pipeline struct {
	provider   classify.Provider // nil when classification is disabled
	store      store.Store
	aggregator *stats.Aggregator
	log        *slog.Logger
}

// New creates a pipeline from explicit components
func New(provider classify.Provider, st store.Store, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		provider:   provider,
		store:      st,
		aggregator: stats.New(st),
		log:        logger,
	}
}

// FromConfig assembles the pipeline described by the configuration, wrapping
// the provider with the result cache when enabled.
func FromConfig(cfg *model.Config, logger *slog.Logger) (*Pipeline, error) {
	provider, err := classify.NewProvider(classify.ConfigFromModel(cfg.Classifier))
	if err != nil {
		return nil, fmt.Errorf("create classifier provider: %w", err)
	}

	if provider != nil && cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
		layered := cache.NewLayeredCache(ttl, cfg.Cache.Dir, ttl)
		provider = classify.NewCachedProvider(provider, layered, ttl)
	}

	return New(provider, store.NewCSVStore(cfg.Storage.Path()), logger), nil
}

// Available reports whether a classifier provider is configured and reachable.
func (p *Pipeline) Available(ctx context.Context) bool {
	return p.provider != nil && p.provider.IsAvailable(ctx)
}

// Classify runs the classifier and normalizer without persisting anything.
func (p *Pipeline) Classify(ctx context.Context, text string) (model.Sentiment, model.Distribution, error) {
	if p.provider == nil {
		return "", model.Distribution{}, classify.ErrClassificationUnavailable
	}

	scores, err := p.provider.Classify(ctx, text)
	if err != nil {
		metrics.IncClassifierError()
		return "", model.Distribution{}, fmt.Errorf("%w: %v", classify.ErrClassificationUnavailable, err)
	}

	return classify.Normalize(scores)
}

// Analyze classifies one submission and durably records the result. On any
// failure nothing is persisted.
func (p *Pipeline) Analyze(ctx context.Context, userID, text string) (*model.ClassificationEvent, error) {
	verdict, dist, err := p.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	ev := model.NewEvent(userID, text, verdict, dist)
	if err := p.store.Append(ctx, ev); err != nil {
		metrics.IncAppendError()
		return nil, err
	}

	metrics.IncClassified(string(verdict))
	p.log.Debug("classified message",
		"user_id", userID,
		"sentiment", string(verdict),
		"chars", len(ev.Text),
	)

	return &ev, nil
}

// Stats recomputes the aggregate report over the full event history.
func (p *Pipeline) Stats(ctx context.Context) (*model.StatsReport, error) {
	metrics.IncStatsRequest()
	return p.aggregator.Compute(ctx)
}
