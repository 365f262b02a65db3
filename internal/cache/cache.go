package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/moodbot/internal/model"
)

// Cache stores classifier score sets keyed by a hash of the submitted text.
type Cache interface {
	Get(key string) ([]model.LabelScore, bool)
	Set(key string, scores []model.LabelScore, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from the submitted text
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "moodbot:v1:" + hex.EncodeToString(hash[:])
}
