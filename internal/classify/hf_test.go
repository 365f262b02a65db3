package classify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHFProvider_Classify_NestedResponse(t *testing.T) {
	// The hosted Inference API wraps single-input results in an outer array
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer hf-token" {
			t.Errorf("Expected Authorization header Bearer hf-token, got %s", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`[[{"label":"POSITIVE","score":0.93},{"label":"NEGATIVE","score":0.02},{"label":"NEUTRAL","score":0.05}]]`))
	}))
	defer server.Close()

	provider, err := NewHFProvider(Config{BaseURL: server.URL, APIKey: "hf-token", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	scores, err := provider.Classify(context.Background(), "great stuff")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Label != "POSITIVE" || scores[0].Score != 0.93 {
		t.Errorf("Unexpected first score: %+v", scores[0])
	}
}

func TestHFProvider_Classify_FlatResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"NEGATIVE","score":0.77}]`))
	}))
	defer server.Close()

	provider, err := NewHFProvider(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	scores, err := provider.Classify(context.Background(), "awful")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Label != "NEGATIVE" {
		t.Errorf("Unexpected scores: %+v", scores)
	}
}

func TestHFProvider_Classify_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"model is loading"}`))
	}))
	defer server.Close()

	provider, err := NewHFProvider(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Classify(context.Background(), "hello"); err == nil {
		t.Error("Expected error from API failure, got nil")
	}
}

func TestNewHFProvider_RequiresBaseURL(t *testing.T) {
	if _, err := NewHFProvider(Config{}); err == nil {
		t.Error("Expected error for missing base URL, got nil")
	}
}

func TestNewProvider_Factory(t *testing.T) {
	p, err := NewProvider(Config{Provider: ""})
	if err != nil || p != nil {
		t.Errorf("Expected nil provider for empty config, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider, got nil")
	}

	p, err = NewProvider(Config{Provider: "hf", BaseURL: "http://localhost:8080"})
	if err != nil {
		t.Fatalf("Expected hf provider, got error %v", err)
	}
	if p.Name() != "hf" {
		t.Errorf("Expected provider name hf, got %s", p.Name())
	}
}
