package llm

import (
	"context"
	"fmt"

	"github.com/mvoloshin/personify/internal/model"
)

// Summarizer wraps a provider and wires the persona's own citations in
// as the evidence allowlist
type Summarizer struct {
	provider Provider
}

// NewSummarizer builds a summarizer from configuration. With no provider
// configured it returns a disabled summarizer, not an error.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider}, nil
}

// NewSummarizerWithProvider is the injection point for tests
func NewSummarizerWithProvider(provider Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary narrates the persona. The allowlist is always the
// persona's own evidence URLs; there is no way to widen it.
func (s *Summarizer) GenerateSummary(ctx context.Context, p *model.PersonaResult) (*SummarizeResponse, error) {
	if !s.IsEnabled() {
		return nil, fmt.Errorf("LLM summarization is not enabled")
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Persona:      p,
		EvidenceURLs: p.EvidenceURLs(),
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary via %s: %w", s.provider.Name(), err)
	}
	return resp, nil
}
