package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/mvoloshin/personify/internal/model"
)

// fakeOpenAI serves a canned chat completion response
func fakeOpenAI(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"}},
			"usage":   map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testPersona() *model.PersonaResult {
	return &model.PersonaResult{
		Username:  "kn0thing",
		Archetype: "Long-term Reddit user",
		Traits: []model.Trait{{
			Category:   model.CategoryLocation,
			Value:      "NYC",
			Confidence: model.ConfidenceLow,
			Evidence:   []model.Evidence{{URL: "https://reddit.com/r/AskNYC/comments/x/_/c1"}},
		}},
		PostsAnalyzed:    3,
		CommentsAnalyzed: 5,
	}
}

func newTestProvider(t *testing.T, server *httptest.Server) *OpenAIProvider {
	t.Helper()
	provider, err := NewOpenAIProvider(model.LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}
	return provider
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(model.LLMConfig{}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestOpenAIProvider_Summarize(t *testing.T) {
	server := fakeOpenAI(t, "An active New York based user. Source: https://reddit.com/r/AskNYC/comments/x/_/c1")
	defer server.Close()

	persona := testPersona()
	resp, err := newTestProvider(t, server).Summarize(context.Background(), SummarizeRequest{
		Persona:      persona,
		EvidenceURLs: persona.EvidenceURLs(),
	})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if resp.Summary == "" || resp.TokensUsed != 30 {
		t.Errorf("unexpected response: %+v", resp)
	}
	want := []string{"https://reddit.com/r/AskNYC/comments/x/_/c1"}
	if !reflect.DeepEqual(resp.CitedURLs, want) {
		t.Errorf("cited URLs = %v, want %v", resp.CitedURLs, want)
	}
}

func TestOpenAIProvider_RejectsCitationLeak(t *testing.T) {
	server := fakeOpenAI(t, "See https://evil.example.com/made-up for details.")
	defer server.Close()

	persona := testPersona()
	_, err := newTestProvider(t, server).Summarize(context.Background(), SummarizeRequest{
		Persona:      persona,
		EvidenceURLs: persona.EvidenceURLs(),
	})
	if err == nil {
		t.Fatal("expected citation leak error")
	}
}

func TestOpenAIProvider_NoURLsIsFine(t *testing.T) {
	server := fakeOpenAI(t, "A long-term user active in city-focused communities.")
	defer server.Close()

	persona := testPersona()
	resp, err := newTestProvider(t, server).Summarize(context.Background(), SummarizeRequest{
		Persona:      persona,
		EvidenceURLs: persona.EvidenceURLs(),
	})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(resp.CitedURLs) != 0 {
		t.Errorf("expected no cited URLs, got %v", resp.CitedURLs)
	}
}

func TestExtractURLs(t *testing.T) {
	text := "See https://a.example/one. Also (https://b.example/two) and https://a.example/one again."
	got := extractURLs(text)
	want := []string{"https://a.example/one", "https://b.example/two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractURLs = %v, want %v", got, want)
	}
}

func TestBuildPrompt_ContainsAllowlistAndTraits(t *testing.T) {
	persona := testPersona()
	prompt := BuildPrompt(persona, persona.EvidenceURLs())

	for _, want := range []string{
		"u/kn0thing",
		"https://reddit.com/r/AskNYC/comments/x/_/c1",
		"location: NYC [confidence: low]",
		"ONLY cite URLs",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
