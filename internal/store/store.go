package store

import (
	"context"
	"errors"

	"github.com/ppiankov/moodbot/internal/model"
)

// ErrStorageUnavailable signals that the durable log cannot be written or
// opened. A missing log is not this error; it means zero events.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is an append-only durable log of classification events.
//
// Append must be safe under concurrent invocation. Scan streams all persisted
// events in write order; each call reads the log from the start and may miss
// an append still in flight.
type Store interface {
	Append(ctx context.Context, ev model.ClassificationEvent) error
	Scan(ctx context.Context, fn func(model.ClassificationEvent) error) error
}

// ReadAll collects every event in the store into a slice.
func ReadAll(ctx context.Context, s Store) ([]model.ClassificationEvent, error) {
	var events []model.ClassificationEvent
	err := s.Scan(ctx, func(ev model.ClassificationEvent) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
