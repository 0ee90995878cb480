// Package persona is the trait inference engine: a deterministic, pure
// function from a collected profile and a rule table to a cited persona.
// Nothing here performs I/O or keeps state between calls.
package persona

import (
	"sort"
	"strings"

	"github.com/mvoloshin/personify/internal/model"
	"github.com/mvoloshin/personify/internal/rules"
	"github.com/mvoloshin/personify/internal/util"
)

const (
	excerptLen      = 100
	topInterests    = 3
	topSubredditCap = 5
)

// Fixed per-category qualifier printed next to an inferred value
var categoryQualifiers = map[model.Category]string{
	model.CategoryAge:        "based on language patterns",
	model.CategoryLocation:   "inferred from activity patterns",
	model.CategoryOccupation: "based on content analysis",
	model.CategoryEducation:  "inferred from communication style",
}

// Engine matches collected text against an immutable rule table
type Engine struct {
	rules *rules.Ruleset
}

// NewEngine creates an engine over a compiled ruleset
func NewEngine(rs *rules.Ruleset) *Engine {
	return &Engine{rules: rs}
}

// scannedItem pairs an item with its lowered, cleaned scan text
type scannedItem struct {
	item model.TextItem
	text string
}

// candidate accumulates support for one (category, value) pair
type candidate struct {
	value      string
	score      int // Sum of rule.Weight * hits across all matching items
	firstIndex int // Lowest registration index among contributing rules
	evidence   []model.Evidence
}

// Infer builds the persona for a profile. Identical profiles and rule
// tables always produce identical results; the only time reference used
// is profile.CollectedAt.
func (e *Engine) Infer(profile *model.Profile) *model.PersonaResult {
	result := &model.PersonaResult{
		Username:         profile.Meta.Username,
		Meta:             profile.Meta,
		Archetype:        archetype(profile.Meta.CreatedUTC, profile.CollectedAt),
		PostsAnalyzed:    len(profile.Posts),
		CommentsAnalyzed: len(profile.Comments),
	}

	items := profile.Items()
	if len(items) == 0 {
		result.InsufficientData = true
		result.Traits = unknownTraits()
		return result
	}

	scanned := make([]scannedItem, 0, len(items))
	var allText strings.Builder
	for _, item := range items {
		text := strings.ToLower(util.CleanText(item.Title + " " + item.Body + " " + item.Subreddit))
		scanned = append(scanned, scannedItem{item: item, text: text})
		allText.WriteString(text)
		allText.WriteString(" ")
	}
	lowered := allText.String()

	candidates := e.scan(scanned)

	result.TopSubreddits = topSubreddits(profile, topSubredditCap)
	result.Traits = resolveTraits(candidates)

	result.Behaviors = append(behaviorFindings(profile, scanned), interestFindings(candidates)...)
	result.Motivations = motivationFindings(profile, scanned, lowered)
	result.Personality = personalityFindings(profile, scanned, lowered)
	result.Frustrations = frustrationFindings(scanned, lowered)
	result.Goals = goalFindings(profile, scanned, lowered)

	return result
}

// scan matches every item against every rule, accumulating one Evidence
// per (item, rule) hit. Items outer, rules inner: evidence order follows
// collection order, which keeps the result deterministic.
func (e *Engine) scan(scanned []scannedItem) map[model.Category]map[string]*candidate {
	candidates := make(map[model.Category]map[string]*candidate)
	ruleList := e.rules.Rules()

	for _, si := range scanned {
		if si.text == "" {
			continue
		}
		for i := range ruleList {
			rule := &ruleList[i]
			hits := rule.Match(si.text)
			if hits == 0 {
				continue
			}

			byValue := candidates[rule.Category]
			if byValue == nil {
				byValue = make(map[string]*candidate)
				candidates[rule.Category] = byValue
			}
			cand := byValue[rule.Value]
			if cand == nil {
				cand = &candidate{value: rule.Value, firstIndex: rule.Index}
				byValue[rule.Value] = cand
			}

			cand.score += rule.Weight * hits
			if rule.Index < cand.firstIndex {
				cand.firstIndex = rule.Index
			}
			cand.evidence = append(cand.evidence, evidenceFor(si.item, rule.ID()))
		}
	}

	return candidates
}

// resolveTraits picks a winner per demographic category: highest aggregate
// score, ties to the earliest-registered rule. No matches means Unknown
// with no evidence, never a fabricated value.
func resolveTraits(candidates map[model.Category]map[string]*candidate) []model.Trait {
	traits := make([]model.Trait, 0, len(model.DemographicCategories))

	for _, cat := range model.DemographicCategories {
		ranked := rankCandidates(candidates[cat])
		if len(ranked) == 0 {
			traits = append(traits, model.Trait{Category: cat, Value: model.UnknownValue})
			continue
		}

		best := ranked[0]
		traits = append(traits, model.Trait{
			Category:   cat,
			Value:      best.value,
			Confidence: model.ConfidenceForEvidence(len(best.evidence)),
			Qualifier:  categoryQualifiers[cat],
			Evidence:   best.evidence,
		})
	}

	return traits
}

// interestFindings reports the top interest categories as behaviors
func interestFindings(candidates map[model.Category]map[string]*candidate) []model.Finding {
	ranked := rankCandidates(candidates[model.CategoryInterest])
	if len(ranked) > topInterests {
		ranked = ranked[:topInterests]
	}

	var findings []model.Finding
	for _, cand := range ranked {
		findings = append(findings, model.Finding{
			Text:     "Shows strong interest in " + strings.ToLower(cand.value),
			Evidence: capEvidence(cand.evidence, 3),
		})
	}
	return findings
}

// rankCandidates orders by score descending, then registration order
func rankCandidates(byValue map[string]*candidate) []*candidate {
	ranked := make([]*candidate, 0, len(byValue))
	for _, c := range byValue {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].firstIndex < ranked[j].firstIndex
	})
	return ranked
}

func unknownTraits() []model.Trait {
	traits := make([]model.Trait, 0, len(model.DemographicCategories))
	for _, cat := range model.DemographicCategories {
		traits = append(traits, model.Trait{Category: cat, Value: model.UnknownValue})
	}
	return traits
}

// evidenceFor cites an item: posts excerpt their title, comments their body
func evidenceFor(item model.TextItem, ruleID string) model.Evidence {
	preview := item.Body
	if item.Kind == model.ItemKindPost && item.Title != "" {
		preview = item.Title
	}
	if preview == "" {
		preview = item.Title
	}

	return model.Evidence{
		Kind:      item.Kind,
		URL:       item.URL,
		Subreddit: item.Subreddit,
		Excerpt:   util.Truncate(util.CleanText(preview), excerptLen),
		Rule:      ruleID,
	}
}

func capEvidence(evidence []model.Evidence, max int) []model.Evidence {
	if len(evidence) > max {
		return evidence[:max]
	}
	return evidence
}
