package classify

import (
	"fmt"
	"strings"
)

// NewProvider creates a new classifier provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "hf", "huggingface":
		return NewHFProvider(config)

	case "":
		// No provider configured - return nil (classification disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: openai, hf)", config.Provider)
	}
}
