// Package rules holds the static trait rule table: immutable configuration
// mapping keyword sets and regex patterns to inferred persona values.
package rules

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mvoloshin/personify/internal/model"
	"gopkg.in/yaml.v3"
)

var validCategories = map[model.Category]bool{
	model.CategoryAge:        true,
	model.CategoryLocation:   true,
	model.CategoryOccupation: true,
	model.CategoryEducation:  true,
	model.CategoryInterest:   true,
}

// CompiledRule is a TraitRule ready for matching: keywords lowercased,
// pattern compiled, registration index recorded for tie-breaking.
type CompiledRule struct {
	model.TraitRule

	Index    int // Registration order in the table
	keywords []string
	re       *regexp.Regexp
}

// ID identifies the rule in evidence entries, e.g. "location:NYC"
func (r *CompiledRule) ID() string {
	return fmt.Sprintf("%s:%s", r.Category, r.Value)
}

// Match counts how many of the rule's keywords occur in the (already
// lowercased) text, plus one per regex match. Zero means no hit.
func (r *CompiledRule) Match(loweredText string) int {
	hits := 0
	for _, kw := range r.keywords {
		if strings.Contains(loweredText, kw) {
			hits++
		}
	}
	if r.re != nil {
		hits += len(r.re.FindAllStringIndex(loweredText, -1))
	}
	return hits
}

// Ruleset is an immutable, compiled rule table
type Ruleset struct {
	rules []CompiledRule
}

// Default compiles the built-in rule table
func Default() *Ruleset {
	rs, err := Compile(Builtin())
	if err != nil {
		// The built-in table is static and always compiles
		panic(fmt.Sprintf("builtin rules: %v", err))
	}
	return rs
}

// Load reads a YAML rule file (a list of trait rules) and compiles it
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var raw []model.TraitRule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	rs, err := Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rs, nil
}

// Compile validates and compiles a raw rule table
func Compile(raw []model.TraitRule) (*Ruleset, error) {
	rules := make([]CompiledRule, 0, len(raw))

	for i, tr := range raw {
		if !validCategories[tr.Category] {
			return nil, fmt.Errorf("rule %d: unknown category %q", i, tr.Category)
		}
		if tr.Value == "" {
			return nil, fmt.Errorf("rule %d: empty value", i)
		}
		if len(tr.Keywords) == 0 && tr.Pattern == "" {
			return nil, fmt.Errorf("rule %d (%s): no keywords and no pattern", i, tr.Value)
		}
		if tr.Weight <= 0 {
			tr.Weight = 1
		}

		cr := CompiledRule{TraitRule: tr, Index: i}
		for _, kw := range tr.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				cr.keywords = append(cr.keywords, kw)
			}
		}
		if tr.Pattern != "" {
			re, err := regexp.Compile("(?i)" + tr.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): bad pattern: %w", i, tr.Value, err)
			}
			cr.re = re
		}

		rules = append(rules, cr)
	}

	return &Ruleset{rules: rules}, nil
}

// Rules returns all compiled rules in registration order
func (s *Ruleset) Rules() []CompiledRule {
	return s.rules
}

// Category returns the rules for one category, preserving order
func (s *Ruleset) Category(c model.Category) []CompiledRule {
	var out []CompiledRule
	for _, r := range s.rules {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of rules in the set
func (s *Ruleset) Len() int { return len(s.rules) }

// Raw returns the underlying rule definitions, for display
func (s *Ruleset) Raw() []model.TraitRule {
	out := make([]model.TraitRule, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.TraitRule
	}
	return out
}
