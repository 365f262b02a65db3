package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/ppiankov/moodbot/internal/model"
)

// header is written exactly once, when the log file is first created.
var header = []string{
	"timestamp",
	"user_id",
	"text_excerpt",
	"sentiment_label",
	"positive_pct",
	"negative_pct",
	"neutral_pct",
}

// CSVStore is a durable append-only CSV log of classification events.
//
// Appends are serialized by a mutex and the physical write is a single Write
// call on an O_APPEND handle, so a row is either fully on disk or not there
// at all. Scans open the file independently and never block appenders.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVStore creates a store backed by the CSV file at path. The file and
// its parent directory are created lazily on first append.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the location of the backing log file.
func (s *CSVStore) Path() string {
	return s.path
}

// Append durably appends one event to the log.
func (s *CSVStore) Append(ctx context.Context, ev model.ClassificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	// Create-if-absent is idempotent; concurrent first appends race safely
	// because both MkdirAll and O_CREATE tolerate "already exists".
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create log dir: %v", ErrStorageUnavailable, err)
		}
	}

	needHeader := false
	if fi, err := os.Stat(s.path); os.IsNotExist(err) || (err == nil && fi.Size() == 0) {
		needHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: open log: %v", ErrStorageUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if needHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("encode header: %w", err)
		}
	}
	if err := w.Write(encode(ev)); err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: append: %v", ErrStorageUnavailable, err)
	}

	return nil
}

// Scan streams every persisted event in write order. A missing log file means
// zero events. A torn or malformed trailing row ends the scan without error;
// an unopenable file reports ErrStorageUnavailable.
func (s *CSVStore) Scan(ctx context.Context, fn func(model.ClassificationEvent) error) error {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: open log: %v", ErrStorageUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	first := true
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// A row still being flushed by a concurrent appender may be
			// incomplete; stop at the last well-formed row.
			return nil
		}

		if first {
			first = false
			if len(rec) > 0 && rec[0] == header[0] {
				continue
			}
		}

		ev, ok := decode(rec)
		if !ok {
			continue
		}

		if err := fn(ev); err != nil {
			return err
		}
	}
}

func encode(ev model.ClassificationEvent) []string {
	return []string{
		ev.Timestamp.UTC().Format(time.RFC3339Nano),
		ev.UserID,
		ev.Text,
		string(ev.Sentiment),
		formatPct(ev.Probs.Positive),
		formatPct(ev.Probs.Negative),
		formatPct(ev.Probs.Neutral),
	}
}

func decode(rec []string) (model.ClassificationEvent, bool) {
	if len(rec) != len(header) {
		return model.ClassificationEvent{}, false
	}

	ts, err := time.Parse(time.RFC3339Nano, rec[0])
	if err != nil {
		return model.ClassificationEvent{}, false
	}

	pos, err1 := strconv.ParseFloat(rec[4], 64)
	neg, err2 := strconv.ParseFloat(rec[5], 64)
	neu, err3 := strconv.ParseFloat(rec[6], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return model.ClassificationEvent{}, false
	}

	return model.ClassificationEvent{
		Timestamp: ts,
		UserID:    rec[1],
		Text:      rec[2],
		Sentiment: model.Sentiment(rec[3]),
		Probs: model.Distribution{
			Positive: pos,
			Negative: neg,
			Neutral:  neu,
		},
	}, true
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
