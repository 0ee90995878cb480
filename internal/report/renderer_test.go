package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mvoloshin/personify/internal/model"
)

func samplePersona() *model.PersonaResult {
	generated := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &model.PersonaResult{
		Username: "kn0thing",
		Meta: model.UserMeta{
			Username:     "kn0thing",
			CreatedUTC:   generated.AddDate(-5, 0, 0).Unix(),
			LinkKarma:    1200,
			CommentKarma: 3400,
		},
		GeneratedAt: generated,
		Archetype:   "Long-term Reddit user",
		TopSubreddits: []model.SubredditActivity{
			{Name: "golang", Posts: 3, Comments: 5},
		},
		Traits: []model.Trait{
			{Category: model.CategoryAge, Value: model.UnknownValue},
			{
				Category:   model.CategoryLocation,
				Value:      "NYC",
				Confidence: model.ConfidenceLow,
				Qualifier:  "inferred from activity patterns",
				Evidence: []model.Evidence{{
					Kind:    model.ItemKindComment,
					URL:     "https://reddit.com/r/AskNYC/comments/x/_/c1",
					Excerpt: "The subway in nyc is faster",
				}},
			},
			{Category: model.CategoryOccupation, Value: model.UnknownValue},
			{Category: model.CategoryEducation, Value: model.UnknownValue},
		},
		Behaviors: []model.Finding{{
			Text: "Shows strong interest in gaming",
			Evidence: []model.Evidence{{
				Kind: model.ItemKindPost,
				URL:  "https://reddit.com/r/gaming/comments/p1",
			}},
		}},
		PostsAnalyzed:    3,
		CommentsAnalyzed: 5,
	}
}

func TestRenderText_Layout(t *testing.T) {
	out := NewRenderer().RenderText(samplePersona())

	for _, want := range []string{
		strings.Repeat("=", 40),
		"USER PERSONA: kn0thing",
		"Generated on: 2026-08-01 12:00:00 UTC",
		"Account created: 2021-08-01",
		"Link karma: 1200",
		"Posts analyzed: 3",
		"Archetype: Long-term Reddit user",
		"Most active subreddits: r/golang (8)",
		"DEMOGRAPHICS",
		"Age: Unknown",
		"Location: NYC (inferred from activity patterns) [confidence: low]",
		"  Citations:",
		"    - Comment: https://reddit.com/r/AskNYC/comments/x/_/c1",
		"      \"The subway in nyc is faster\"",
		"BEHAVIORS & HABITS",
		"• Shows strong interest in gaming",
		"GOALS & NEEDS",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestRenderText_UnknownTraitHasNoCitations(t *testing.T) {
	out := NewRenderer().RenderText(samplePersona())

	idx := strings.Index(out, "Age: Unknown")
	if idx < 0 {
		t.Fatal("expected Age: Unknown line")
	}
	rest := out[idx:]
	next := strings.Index(rest, "\n")
	if strings.HasPrefix(rest[next+1:], "  Citations:") {
		t.Error("Unknown trait must not be followed by citations")
	}
}

func TestRenderText_Deterministic(t *testing.T) {
	r := NewRenderer()
	p := samplePersona()
	if r.RenderText(p) != r.RenderText(p) {
		t.Error("expected byte-identical output for identical input")
	}
}

func TestRenderText_InsufficientData(t *testing.T) {
	p := samplePersona()
	p.InsufficientData = true
	out := NewRenderer().RenderText(p)

	if !strings.Contains(out, "Insufficient public activity") {
		t.Errorf("expected insufficient-data notice\n%s", out)
	}
	if strings.Contains(out, "DEMOGRAPHICS") {
		t.Error("minimal report must skip the demographics section")
	}
}

func TestRenderText_EmptySections(t *testing.T) {
	p := samplePersona()
	p.Goals = nil
	out := NewRenderer().RenderText(p)

	idx := strings.Index(out, "GOALS & NEEDS")
	if idx < 0 {
		t.Fatal("expected goals section header")
	}
	if !strings.Contains(out[idx:], "No notable patterns detected.") {
		t.Error("expected placeholder for an empty section")
	}
}

func TestWriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kn0thing_persona.txt")
	if err := NewRenderer().WriteText(samplePersona(), path); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "USER PERSONA: kn0thing") {
		t.Error("written report missing header")
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kn0thing_persona.json")
	if err := NewRenderer().RenderJSON(samplePersona(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var decoded model.PersonaResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded.Username != "kn0thing" || decoded.Archetype != "Long-term Reddit user" {
		t.Errorf("unexpected round-trip: %+v", decoded)
	}
}
