package persona

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mvoloshin/personify/internal/model"
	"github.com/mvoloshin/personify/internal/rules"
)

func manyComments(n, subreddits int, body string) []model.TextItem {
	items := make([]model.TextItem, n)
	for i := range items {
		items[i] = comment(fmt.Sprintf("c%d", i), body, fmt.Sprintf("sub%d", i%subreddits))
	}
	return items
}

func findingTexts(findings []model.Finding) []string {
	texts := make([]string, len(findings))
	for i, f := range findings {
		texts[i] = f.Text
	}
	return texts
}

func hasFinding(findings []model.Finding, prefix string) bool {
	for _, f := range findings {
		if strings.HasPrefix(f.Text, prefix) {
			return true
		}
	}
	return false
}

func TestInfer_CommentHeavyBehavior(t *testing.T) {
	engine := NewEngine(rules.Default())
	result := engine.Infer(profileWith(
		[]model.TextItem{post("p1", "hello", "", "sub0")},
		manyComments(8, 2, "plain text"),
	))

	if !hasFinding(result.Behaviors, "Prefers commenting over posting") {
		t.Errorf("expected comment-heavy finding, got %v", findingTexts(result.Behaviors))
	}
	for _, f := range result.Behaviors {
		if strings.HasPrefix(f.Text, "Prefers commenting") {
			for _, ev := range f.Evidence {
				if ev.Kind != model.ItemKindComment {
					t.Errorf("comment-heavy finding must cite comments, got %+v", ev)
				}
			}
		}
	}
}

func TestInfer_DiverseCommunities(t *testing.T) {
	engine := NewEngine(rules.Default())
	result := engine.Infer(profileWith(nil, manyComments(12, 6, "plain text")))

	if !hasFinding(result.Behaviors, "Engages across diverse communities") {
		t.Errorf("expected diversity finding, got %v", findingTexts(result.Behaviors))
	}
}

func TestInfer_HelpSeekingCitesMatchingItems(t *testing.T) {
	engine := NewEngine(rules.Default())
	result := engine.Infer(profileWith(
		[]model.TextItem{
			post("p1", "Weekend plans", "", "sub0"),
			post("p2", "Need advice on my lease", "", "sub0"),
		},
		nil,
	))

	if !hasFinding(result.Motivations, "Seeks community support") {
		t.Fatalf("expected help-seeking finding, got %v", findingTexts(result.Motivations))
	}
	for _, f := range result.Motivations {
		if strings.HasPrefix(f.Text, "Seeks community support") {
			if len(f.Evidence) != 1 || f.Evidence[0].Excerpt != "Need advice on my lease" {
				t.Errorf("must cite only the item containing a cue, got %+v", f.Evidence)
			}
		}
	}
}

func TestInfer_EngagementFindings(t *testing.T) {
	engine := NewEngine(rules.Default())
	result := engine.Infer(profileWith(nil, manyComments(25, 3, "plain text")))

	if !hasFinding(result.Motivations, "Motivated to share knowledge") {
		t.Errorf("expected knowledge-sharing motivation, got %v", findingTexts(result.Motivations))
	}
	if !hasFinding(result.Personality, "Highly Engaged") {
		t.Errorf("expected engagement trait, got %v", findingTexts(result.Personality))
	}
	if !hasFinding(result.Goals, "Build connections") {
		t.Errorf("expected community goal, got %v", findingTexts(result.Goals))
	}
}

func TestInfer_FrustrationFindings(t *testing.T) {
	engine := NewEngine(rules.Default())
	result := engine.Infer(profileWith(
		[]model.TextItem{
			post("p1", "This bug is so annoying", "Another error after the update, terrible", "sub0"),
			post("p2", "I hate how the worst problem never gets fixed", "", "sub0"),
		},
		nil,
	))

	if !hasFinding(result.Frustrations, "Expresses dissatisfaction") {
		t.Errorf("expected dissatisfaction finding, got %v", findingTexts(result.Frustrations))
	}
	if !hasFinding(result.Frustrations, "Encounters technical issues") {
		t.Errorf("expected technical finding, got %v", findingTexts(result.Frustrations))
	}
}

func TestInfer_LearningGoal(t *testing.T) {
	engine := NewEngine(rules.Default())
	result := engine.Infer(profileWith(
		[]model.TextItem{
			post("p1", "Trying to learn and understand this course", "Working through a tutorial and a study guide", "sub0"),
		},
		nil,
	))

	if !hasFinding(result.Goals, "Continuously learns") {
		t.Errorf("expected learning goal, got %v", findingTexts(result.Goals))
	}
}

func TestDistinctCues(t *testing.T) {
	text := "i hate this bug, such a problem"
	if got := distinctCues(text, negativeCues); got != 2 {
		t.Errorf("expected 2 distinct negative cues, got %d", got)
	}
	if got := distinctCues(text, technicalCues); got != 1 {
		t.Errorf("expected 1 technical cue, got %d", got)
	}
	if got := distinctCues("", negativeCues); got != 0 {
		t.Errorf("expected 0 cues in empty text, got %d", got)
	}
}

func TestAvgWordsPerPost(t *testing.T) {
	if got := avgWordsPerPost("one two three four", 2); got != 2 {
		t.Errorf("expected 2 words per post, got %d", got)
	}
	if got := avgWordsPerPost("words", 0); got != 0 {
		t.Errorf("expected 0 for no posts, got %d", got)
	}
}
