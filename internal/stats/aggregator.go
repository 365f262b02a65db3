package stats

import (
	"context"
	"errors"
	"math"
	"unicode/utf8"

	"github.com/ppiankov/moodbot/internal/model"
	"github.com/ppiankov/moodbot/internal/store"
)

// ErrNoData signals that stats were requested with zero stored events. The
// caller presents this as "no statistics yet", not as a failure.
var ErrNoData = errors.New("no classification data")

// Aggregator computes summary statistics over the full event history. Every
// Compute call rescans the store from scratch; at human chat volume the O(N)
// pass is cheaper than keeping incremental state correct.
type Aggregator struct {
	store store.Store
}

// New creates an aggregator reading from the given store
func New(s store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// Compute scans the store and returns the aggregate report.
func (a *Aggregator) Compute(ctx context.Context) (*model.StatsReport, error) {
	total := 0
	lengthSum := 0
	counts := make(map[model.Sentiment]int)

	err := a.store.Scan(ctx, func(ev model.ClassificationEvent) error {
		total++
		counts[ev.Sentiment]++
		lengthSum += utf8.RuneCountInString(ev.Text)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if total == 0 {
		return nil, ErrNoData
	}

	dist := make(map[model.Sentiment]float64, len(counts))
	for label, count := range counts {
		dist[label] = math.Round(float64(count)/float64(total)*1000) / 10
	}

	return &model.StatsReport{
		Total:         total,
		Distribution:  dist,
		AvgTextLength: float64(lengthSum) / float64(total),
	}, nil
}
