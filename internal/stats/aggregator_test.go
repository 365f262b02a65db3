package stats

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/moodbot/internal/model"
	"github.com/ppiankov/moodbot/internal/store"
)

func seedStore(t *testing.T, events []model.ClassificationEvent) *store.CSVStore {
	t.Helper()
	s := store.NewCSVStore(filepath.Join(t.TempDir(), "requests.csv"))
	for _, ev := range events {
		if err := s.Append(context.Background(), ev); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	return s
}

func event(sentiment model.Sentiment, text string) model.ClassificationEvent {
	return model.ClassificationEvent{
		Timestamp: time.Now().UTC(),
		UserID:    "1",
		Text:      text,
		Sentiment: sentiment,
		Probs:     model.Distribution{},
	}
}

func TestAggregator_Distribution(t *testing.T) {
	// 10 events: 6 positive, 4 negative, 0 neutral
	var events []model.ClassificationEvent
	for i := 0; i < 6; i++ {
		events = append(events, event(model.SentimentPositive, "good"))
	}
	for i := 0; i < 4; i++ {
		events = append(events, event(model.SentimentNegative, "bad"))
	}

	agg := New(seedStore(t, events))
	report, err := agg.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if report.Total != 10 {
		t.Errorf("Expected total 10, got %d", report.Total)
	}

	want := map[model.Sentiment]float64{
		model.SentimentPositive: 60.0,
		model.SentimentNegative: 40.0,
	}
	if !reflect.DeepEqual(report.Distribution, want) {
		t.Errorf("Expected distribution %v, got %v", want, report.Distribution)
	}
	if _, ok := report.Distribution[model.SentimentNeutral]; ok {
		t.Error("Labels with zero occurrences must be omitted")
	}
}

func TestAggregator_AverageTextLength(t *testing.T) {
	events := []model.ClassificationEvent{
		event(model.SentimentNeutral, strings.Repeat("a", 10)),
		event(model.SentimentNeutral, strings.Repeat("b", 21)),
	}

	agg := New(seedStore(t, events))
	report, err := agg.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if report.AvgTextLength != 15.5 {
		t.Errorf("Expected full-precision mean 15.5, got %v", report.AvgTextLength)
	}
}

func TestAggregator_AverageCountsRunes(t *testing.T) {
	agg := New(seedStore(t, []model.ClassificationEvent{
		event(model.SentimentNeutral, strings.Repeat("ж", 4)), // 4 chars, 8 bytes
	}))

	report, err := agg.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if report.AvgTextLength != 4 {
		t.Errorf("Expected average of 4 characters, got %v", report.AvgTextLength)
	}
}

func TestAggregator_EmptyStore(t *testing.T) {
	agg := New(store.NewCSVStore(filepath.Join(t.TempDir(), "never-created.csv")))

	_, err := agg.Compute(context.Background())
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}
}

func TestAggregator_Idempotent(t *testing.T) {
	events := []model.ClassificationEvent{
		event(model.SentimentPositive, "one"),
		event(model.SentimentNegative, "two"),
		event(model.SentimentNegative, "three"),
	}
	agg := New(seedStore(t, events))

	first, err := agg.Compute(context.Background())
	if err != nil {
		t.Fatalf("First Compute failed: %v", err)
	}
	second, err := agg.Compute(context.Background())
	if err != nil {
		t.Fatalf("Second Compute failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical reports, got %+v and %+v", first, second)
	}
}

// failingStore implements store.Store and always fails
type failingStore struct{}

func (failingStore) Append(ctx context.Context, ev model.ClassificationEvent) error {
	return store.ErrStorageUnavailable
}

func (failingStore) Scan(ctx context.Context, fn func(model.ClassificationEvent) error) error {
	return store.ErrStorageUnavailable
}

func TestAggregator_StorageErrorPassesThrough(t *testing.T) {
	_, err := New(failingStore{}).Compute(context.Background())
	if !errors.Is(err, store.ErrStorageUnavailable) {
		t.Errorf("Expected ErrStorageUnavailable, got %v", err)
	}
}
