// Package report renders a PersonaResult into the fixed-layout text
// document and an optional JSON dump. Rendering is pure string building;
// the same persona always produces the same bytes.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvoloshin/personify/internal/model"
	"github.com/mvoloshin/personify/internal/util"
)

const (
	bannerChar  = "="
	dividerChar = "-"
	lineWidth   = 40
)

var categoryLabels = map[model.Category]string{
	model.CategoryAge:        "Age",
	model.CategoryLocation:   "Location",
	model.CategoryOccupation: "Occupation",
	model.CategoryEducation:  "Education",
}

var kindLabels = map[model.ItemKind]string{
	model.ItemKindPost:    "Post",
	model.ItemKindComment: "Comment",
}

// Renderer produces persona documents
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderText builds the full text report
func (r *Renderer) RenderText(p *model.PersonaResult) string {
	var b strings.Builder

	banner := strings.Repeat(bannerChar, lineWidth)
	divider := strings.Repeat(dividerChar, lineWidth)

	b.WriteString(banner + "\n")
	b.WriteString("USER PERSONA: " + p.Username + "\n")
	b.WriteString(banner + "\n\n")

	b.WriteString("Generated on: " + p.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC") + "\n")
	if p.Meta.CreatedUTC > 0 {
		b.WriteString("Account created: " + util.FormatTimestamp(p.Meta.CreatedUTC) + "\n")
		b.WriteString("Account age: " + util.AccountAge(p.Meta.CreatedUTC, p.GeneratedAt.UTC()) + "\n")
	}
	fmt.Fprintf(&b, "Link karma: %d\n", p.Meta.LinkKarma)
	fmt.Fprintf(&b, "Comment karma: %d\n", p.Meta.CommentKarma)
	fmt.Fprintf(&b, "Posts analyzed: %d\n", p.PostsAnalyzed)
	fmt.Fprintf(&b, "Comments analyzed: %d\n", p.CommentsAnalyzed)
	b.WriteString("Archetype: " + p.Archetype + "\n")
	if len(p.TopSubreddits) > 0 {
		b.WriteString("Most active subreddits: " + formatSubreddits(p.TopSubreddits) + "\n")
	}
	b.WriteString("\n")

	if p.InsufficientData {
		b.WriteString("Insufficient public activity to build a persona.\n")
		b.WriteString("The account has no visible posts or comments to analyze.\n")
		return b.String()
	}

	b.WriteString(divider + "\n")
	b.WriteString("DEMOGRAPHICS\n")
	b.WriteString(divider + "\n\n")
	for _, trait := range p.Traits {
		writeTrait(&b, trait)
	}
	b.WriteString("\n")

	writeSection(&b, divider, "BEHAVIORS & HABITS", p.Behaviors)
	writeSection(&b, divider, "MOTIVATIONS", p.Motivations)
	writeSection(&b, divider, "PERSONALITY", p.Personality)
	writeSection(&b, divider, "FRUSTRATIONS", p.Frustrations)
	writeSection(&b, divider, "GOALS & NEEDS", p.Goals)

	return b.String()
}

// WriteText renders the report and writes it to path, creating parent
// directories as needed
func (r *Renderer) WriteText(p *model.PersonaResult, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(r.RenderText(p)), 0o644); err != nil {
		return fmt.Errorf("write persona report: %w", err)
	}
	return nil
}

// RenderJSON writes the persona as indented JSON
func (r *Renderer) RenderJSON(p *model.PersonaResult, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode persona: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write persona json: %w", err)
	}
	return nil
}

func formatSubreddits(subs []model.SubredditActivity) string {
	parts := make([]string, len(subs))
	for i, s := range subs {
		parts[i] = fmt.Sprintf("r/%s (%d)", s.Name, s.Total())
	}
	return strings.Join(parts, ", ")
}

func writeTrait(b *strings.Builder, trait model.Trait) {
	label := categoryLabels[trait.Category]
	if trait.Unknown() {
		b.WriteString(label + ": " + model.UnknownValue + "\n")
		return
	}

	fmt.Fprintf(b, "%s: %s (%s) [confidence: %s]\n", label, trait.Value, trait.Qualifier, trait.Confidence)
	writeCitations(b, trait.Evidence)
}

func writeSection(b *strings.Builder, divider, title string, findings []model.Finding) {
	b.WriteString(divider + "\n")
	b.WriteString(title + "\n")
	b.WriteString(divider + "\n\n")

	if len(findings) == 0 {
		b.WriteString("No notable patterns detected.\n\n")
		return
	}

	for _, f := range findings {
		b.WriteString("• " + f.Text + "\n")
		writeCitations(b, f.Evidence)
	}
	b.WriteString("\n")
}

func writeCitations(b *strings.Builder, evidence []model.Evidence) {
	if len(evidence) == 0 {
		return
	}

	b.WriteString("  Citations:\n")
	for _, ev := range evidence {
		fmt.Fprintf(b, "    - %s: %s\n", kindLabels[ev.Kind], ev.URL)
		if ev.Excerpt != "" {
			fmt.Fprintf(b, "      %q\n", ev.Excerpt)
		}
	}
}
