package classify

import (
	"context"
	"errors"

	"github.com/ppiankov/moodbot/internal/model"
)

// ErrClassificationUnavailable signals that the classifier returned nothing
// usable or failed outright. No event is produced for such requests.
var ErrClassificationUnavailable = errors.New("classification unavailable")

// Provider defines the interface for external sentiment classifiers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Classify scores one text input, returning raw (label, confidence)
	// pairs. The label vocabulary and pair count are provider-specific.
	Classify(ctx context.Context, text string) ([]model.LabelScore, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds classifier provider configuration
type Config struct {
	// Provider name: "openai", "hf", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds
}

// ConfigFromModel converts model.ClassifierConfig to classify.Config
func ConfigFromModel(mc model.ClassifierConfig) Config {
	return Config{
		Provider: mc.Provider,
		Model:    mc.Model,
		APIKey:   mc.APIKey,
		BaseURL:  mc.BaseURL,
		Timeout:  mc.Timeout,
	}
}
