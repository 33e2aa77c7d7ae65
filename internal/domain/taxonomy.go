package domain

import (
	"fmt"
	"strings"
)

// MaxTags is the number of keyword tags collected before the tagger stops.
const MaxTags = 2

// Rule maps a label to the keywords that select it.
// Rules are evaluated in slice order: the order is both the tie-break and the cutoff.
type Rule struct {
	Label    string   `yaml:"label" json:"label"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Matches reports whether any keyword is a substring of lowerText.
func (r Rule) Matches(lowerText string) bool {
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}

// Taxonomy is the ordered keyword data used by the tagger and the keyword classifier.
type Taxonomy struct {
	Tags       []Rule `yaml:"tags" json:"tags"`
	Categories []Rule `yaml:"categories" json:"categories"`
}

// Validate checks that every rule has a label and keywords, and that category
// rules only name known categories. Keywords are lower-cased in place.
func (t *Taxonomy) Validate() error {
	if len(t.Tags) == 0 {
		return fmt.Errorf("%w: taxonomy has no tag rules", ErrInvalidInput)
	}
	for i := range t.Tags {
		if err := normalizeRule(&t.Tags[i]); err != nil {
			return fmt.Errorf("tag rule %d: %w", i, err)
		}
	}
	for i := range t.Categories {
		if err := normalizeRule(&t.Categories[i]); err != nil {
			return fmt.Errorf("category rule %d: %w", i, err)
		}
		if !Category(t.Categories[i].Label).Valid() {
			return fmt.Errorf("%w: category rule %d names unknown category %q",
				ErrInvalidInput, i, t.Categories[i].Label)
		}
	}
	return nil
}

func normalizeRule(r *Rule) error {
	r.Label = strings.TrimSpace(r.Label)
	if r.Label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidInput)
	}
	kws := make([]string, 0, len(r.Keywords))
	for _, kw := range r.Keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			kws = append(kws, kw)
		}
	}
	if len(kws) == 0 {
		return fmt.Errorf("%w: rule %q has no keywords", ErrInvalidInput, r.Label)
	}
	r.Keywords = kws
	return nil
}

// DefaultTaxonomy returns a fresh copy of the built-in dictionaries.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Tags: []Rule{
			{Label: "AI", Keywords: []string{"ai", "artificial intelligence", "machine learning", "gpt", "llm", "chatgpt", "openai", "neural", "agents", "automation with ai"}},
			{Label: "Product Management", Keywords: []string{"product manager", "product management", "roadmap", "prioritization", "backlog", "mvp", "hypothesis", "validation", "discovery", "user research", "product thinking", "strategy", "feature", "pm", "launch", "iteration", "tradeoff"}},
			{Label: "Data", Keywords: []string{"data", "analytics", "metrics", "kpi", "insights", "dashboards", "data-informed", "decision making", "experiments", "ab testing"}},
			{Label: "Automation & No-Code", Keywords: []string{"nocode", "n8n", "zapier", "automation", "workflow", "automate", "make.com", "scripts", "bot", "process automation"}},
			{Label: "SEO & Growth", Keywords: []string{"seo", "keywords", "search", "visibility", "content strategy", "growth", "organic", "ranking", "distribution"}},
			{Label: "Design & UX", Keywords: []string{"design", "figma", "ui", "ux", "interface", "prototyping", "wireframe", "user flow", "experience", "design thinking"}},
			{Label: "Development", Keywords: []string{"code", "developer", "software", "engineering", "frontend", "backend", "javascript", "api"}},
			{Label: "Philosophy & Mindset", Keywords: []string{"mindset", "philosophy", "reflection", "meaning", "deep work", "thinking", "purpose", "values", "mental models"}},
			{Label: "Productivity", Keywords: []string{"productivity", "efficiency", "workflow", "time management", "habits", "focus", "systems"}},
			{Label: "Teams & Leadership", Keywords: []string{"team", "collaboration", "communication", "culture", "leadership", "alignment", "ownership", "accountability"}},
			{Label: "Customer & Users", Keywords: []string{"customer", "users", "client", "feedback", "pain points", "user needs", "interviews"}},
		},
		// Priority order: the first rule with a match wins.
		Categories: []Rule{
			{Label: string(CategorySEO), Keywords: []string{"seo", "ranking", "serp", "backlink", "search engine", "keyword research", "organic traffic", "link building"}},
			{Label: string(CategoryProduct), Keywords: []string{"product manager", "product management", "roadmap", "backlog", "mvp", "product discovery", "feature"}},
			{Label: string(CategoryAnalysis), Keywords: []string{"analytics", "analysis", "metrics", "kpi", "dashboard", "data-driven", "experiment"}},
			{Label: string(CategoryStrategy), Keywords: []string{"strategy", "strategic", "competitive", "positioning", "market", "go-to-market"}},
			{Label: string(CategoryLeadership), Keywords: []string{"leadership", "leader", "manager", "culture", "hiring", "mentoring"}},
			{Label: string(CategoryFrameworks), Keywords: []string{"framework", "methodology", "canvas", "okr", "jobs to be done", "mental model"}},
		},
	}
}
