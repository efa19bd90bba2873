package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/domain"
)

// chatRequest mirrors the fields the generator sends.
type chatRequest struct {
	Model          string  `json:"model"`
	Temperature    float32 `json:"temperature"`
	TopP           float32 `json:"top_p"`
	MaxTokens      int     `json:"max_tokens"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 20, "total_tokens": 60},
	}
}

func newTestGenerator(url string) *Generator {
	return NewGenerator(&Config{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})
}

func TestGenerator_Generate(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse(`{"summary":"s"}`))
	}))
	defer server.Close()

	g := newTestGenerator(server.URL)
	res, err := g.Generate(context.Background(), domain.GenerationRequest{
		Prompt:          "analyze this",
		Temperature:     0.1,
		TopP:            0.8,
		TopK:            40,
		MaxOutputTokens: 2048,
		JSONResponse:    true,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if res.Text != `{"summary":"s"}` {
		t.Errorf("unexpected text %q", res.Text)
	}
	if res.PromptTokens != 40 || res.TotalTokens != 60 {
		t.Errorf("unexpected usage %d/%d", res.PromptTokens, res.TotalTokens)
	}
	if got.Model != "test-model" || got.MaxTokens != 2048 {
		t.Errorf("unexpected request %+v", got)
	}
	if got.Temperature < 0.09 || got.Temperature > 0.11 {
		t.Errorf("unexpected temperature %v", got.Temperature)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "analyze this" {
		t.Errorf("unexpected messages %+v", got.Messages)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != "json_object" {
		t.Errorf("expected json_object response format, got %+v", got.ResponseFormat)
	}
	if g.Name() != "test-model" {
		t.Errorf("unexpected name %q", g.Name())
	}
}

func TestGenerator_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), domain.GenerationRequest{Prompt: "x"})
	if !errors.Is(err, domain.ErrEnrichmentTransport) {
		t.Fatalf("expected ErrEnrichmentTransport, got %v", err)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in message, got %q", err.Error())
	}
}

func TestGenerator_DetailError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"model not found"}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), domain.GenerationRequest{Prompt: "x"})
	if !errors.Is(err, domain.ErrEnrichmentTransport) {
		t.Fatalf("expected ErrEnrichmentTransport, got %v", err)
	}
}

func TestGenerator_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := chatResponse("")
		resp["choices"] = []map[string]any{}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), domain.GenerationRequest{Prompt: "x"})
	if !errors.Is(err, domain.ErrEnrichmentTransport) {
		t.Fatalf("expected ErrEnrichmentTransport, got %v", err)
	}
}

func TestGenerator_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	}))
	defer server.Close()

	if err := newTestGenerator(server.URL).HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractDetail(t *testing.T) {
	if got := extractDetail([]byte(`{"detail":"quota"}`)); got != "quota" {
		t.Errorf("expected quota, got %q", got)
	}
	if got := extractDetail([]byte(`not json`)); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
