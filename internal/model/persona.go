package model

import "time"

// Confidence buckets an inferred trait by how much evidence backs it
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ConfidenceForEvidence maps evidence volume to a confidence level.
// Non-decreasing in the count: 1-2 low, 3-5 medium, 6+ high.
func ConfidenceForEvidence(count int) Confidence {
	switch {
	case count >= 6:
		return ConfidenceHigh
	case count >= 3:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Evidence cites the collected item that supports an inferred value
type Evidence struct {
	Kind      ItemKind `json:"kind"`
	URL       string   `json:"url"`
	Subreddit string   `json:"subreddit"`
	Excerpt   string   `json:"excerpt"`        // Quoted preview of the matching text
	Rule      string   `json:"rule,omitempty"` // Which rule produced the match, e.g. "location:NYC"
}

// Trait is one resolved demographic dimension with its supporting citations.
// A trait with Value "Unknown" carries no evidence by contract.
type Trait struct {
	Category   Category   `json:"category"`
	Value      string     `json:"value"`
	Confidence Confidence `json:"confidence,omitempty"`
	Qualifier  string     `json:"qualifier,omitempty"` // Fixed per-category label, e.g. "based on language patterns"
	Evidence   []Evidence `json:"evidence,omitempty"`
}

// Unknown reports whether the trait resolved to no value
func (t Trait) Unknown() bool {
	return t.Value == "" || t.Value == UnknownValue
}

// UnknownValue is the placeholder for categories with zero matches
const UnknownValue = "Unknown"

// Finding is one behavioral/motivational observation with its citations
type Finding struct {
	Text     string     `json:"text"`
	Evidence []Evidence `json:"evidence,omitempty"`
}

// SubredditActivity counts a user's posts and comments in one subreddit
type SubredditActivity struct {
	Name     string `json:"name"`
	Posts    int    `json:"posts"`
	Comments int    `json:"comments"`
}

// Total is the combined activity count
func (s SubredditActivity) Total() int { return s.Posts + s.Comments }

// PersonaResult is the complete inferred persona for one user. It is built
// once per run, rendered, and discarded; nothing here persists.
type PersonaResult struct {
	Username    string    `json:"username"`
	Meta        UserMeta  `json:"meta"`
	GeneratedAt time.Time `json:"generated_at"`

	Archetype     string              `json:"archetype"` // Derived from account age, not from text
	TopSubreddits []SubredditActivity `json:"top_subreddits,omitempty"`

	Traits []Trait `json:"traits"` // Fixed DemographicCategories order

	Behaviors    []Finding `json:"behaviors,omitempty"`
	Motivations  []Finding `json:"motivations,omitempty"`
	Personality  []Finding `json:"personality,omitempty"`
	Frustrations []Finding `json:"frustrations,omitempty"`
	Goals        []Finding `json:"goals,omitempty"`

	PostsAnalyzed    int  `json:"posts_analyzed"`
	CommentsAnalyzed int  `json:"comments_analyzed"`
	InsufficientData bool `json:"insufficient_data,omitempty"`
}

// Trait returns the resolved trait for a category, if present
func (p *PersonaResult) Trait(c Category) (Trait, bool) {
	for _, t := range p.Traits {
		if t.Category == c {
			return t, true
		}
	}
	return Trait{}, false
}

// EvidenceURLs returns every cited URL across the persona, deduplicated,
// in citation order. Used as the strict allowlist for the LLM summary.
func (p *PersonaResult) EvidenceURLs() []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(evs []Evidence) {
		for _, e := range evs {
			if e.URL != "" && !seen[e.URL] {
				seen[e.URL] = true
				urls = append(urls, e.URL)
			}
		}
	}
	for _, t := range p.Traits {
		add(t.Evidence)
	}
	for _, group := range [][]Finding{p.Behaviors, p.Motivations, p.Personality, p.Frustrations, p.Goals} {
		for _, f := range group {
			add(f.Evidence)
		}
	}
	return urls
}
