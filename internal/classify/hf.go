package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/moodbot/internal/model"
)

// HFProvider implements the Provider interface for a HuggingFace-style
// inference endpoint (the hosted Inference API or a self-hosted
// text-classification server). The endpoint takes {"inputs": text} and
// returns all per-label scores.
type HFProvider struct {
	baseURL    string
	httpClient *http.Client
	config     Config
}

// HuggingFace inference API structures
type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfLabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfError struct {
	Error string `json:"error"`
}

// NewHFProvider creates a new HuggingFace inference provider
func NewHFProvider(config Config) (*HFProvider, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("inference endpoint base URL is required")
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HFProvider{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
	}, nil
}

// Name returns the provider name
func (p *HFProvider) Name() string {
	return "hf"
}

// IsAvailable checks if the endpoint is reachable
func (p *HFProvider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return false
	}
	if p.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	// Any HTTP answer counts as reachable; classification endpoints often
	// reject GET with 405 while still being perfectly healthy.
	return true
}

// Classify scores one text via the inference endpoint
func (p *HFProvider) Classify(ctx context.Context, text string) ([]model.LabelScore, error) {
	body, err := json.Marshal(hfRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("inference error (HTTP %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("inference error: HTTP %d", resp.StatusCode)
	}

	return parseHFScores(data)
}

// parseHFScores handles both response shapes the inference API produces:
// [[{"label":...,"score":...}]] for single inputs and a flat
// [{"label":...,"score":...}] from some self-hosted servers.
func parseHFScores(data []byte) ([]model.LabelScore, error) {
	var nested [][]hfLabelScore
	if err := json.Unmarshal(data, &nested); err == nil && len(nested) > 0 {
		return toLabelScores(nested[0]), nil
	}

	var flat []hfLabelScore
	if err := json.Unmarshal(data, &flat); err == nil {
		return toLabelScores(flat), nil
	}

	return nil, fmt.Errorf("unexpected inference response: %s", truncateForError(data))
}

func toLabelScores(raw []hfLabelScore) []model.LabelScore {
	scores := make([]model.LabelScore, 0, len(raw))
	for _, r := range raw {
		scores = append(scores, model.LabelScore{Label: r.Label, Score: r.Score})
	}
	return scores
}

func truncateForError(data []byte) string {
	const max = 200
	s := string(data)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
