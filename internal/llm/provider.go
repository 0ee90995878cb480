// Package llm adds an optional narrative summary on top of a finished
// persona. The summary is presentation only: it never feeds back into
// trait inference, and it may only cite URLs the persona already cites.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvoloshin/personify/internal/model"
)

// Provider defines the interface for LLM backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative summary under strict evidence mode
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains the input for summarization
type SummarizeRequest struct {
	// Persona is the finished inference result to narrate
	Persona *model.PersonaResult

	// EvidenceURLs is the STRICT allowlist of URLs the model may cite.
	// Anything outside this list in the response is a citation leak.
	EvidenceURLs []string

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model and MaxTokens override the provider's configured defaults
	Model     string
	MaxTokens int
}

// SummarizeResponse is the model's output plus verification data
type SummarizeResponse struct {
	Summary    string
	CitedURLs  []string // URLs the model actually cited
	Model      string
	TokensUsed int
}

// NewProvider creates a provider from configuration. An empty provider
// name means the LLM layer is disabled and returns (nil, nil).
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}

// BuildPrompt constructs the default summarization prompt. The allowlist
// is embedded verbatim so the model has no excuse to invent sources.
func BuildPrompt(p *model.PersonaResult, evidenceURLs []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing an inferred persona of the Reddit user u/%s. Every statement below was derived from the user's own public posts and comments.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. Values marked "Unknown" had no supporting evidence. Say so; never guess them.
4. Describe what the activity suggests, not who the person "really is".

Persona:
- Archetype: %s
- Posts analyzed: %d, comments analyzed: %d
`, p.Username, joinURLs(evidenceURLs), p.Archetype, p.PostsAnalyzed, p.CommentsAnalyzed)

	for _, trait := range p.Traits {
		if trait.Unknown() {
			fmt.Fprintf(&b, "- %s: Unknown\n", trait.Category)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s [confidence: %s]\n", trait.Category, trait.Value, trait.Confidence)
	}

	writeFindings(&b, "Behaviors", p.Behaviors)
	writeFindings(&b, "Motivations", p.Motivations)
	writeFindings(&b, "Personality", p.Personality)
	writeFindings(&b, "Frustrations", p.Frustrations)
	writeFindings(&b, "Goals", p.Goals)

	b.WriteString("\nProvide a 3-5 sentence narrative summary of this persona.")

	return b.String()
}

func writeFindings(b *strings.Builder, label string, findings []model.Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", label)
	for _, f := range findings {
		fmt.Fprintf(b, "- %s\n", f.Text)
	}
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No evidence URLs available)"
	}
	var b strings.Builder
	for i, url := range urls {
		if i >= 20 { // Cap the allowlist to avoid token bloat
			fmt.Fprintf(&b, "\n... and %d more URLs", len(urls)-20)
			break
		}
		fmt.Fprintf(&b, "\n- %s", url)
	}
	return b.String()
}
