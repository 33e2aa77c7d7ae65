package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/MrSnakeDoc/linkvault/internal/ai/aitest"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
	"github.com/MrSnakeDoc/linkvault/internal/taxonomy"
)

func TestAIClassifier(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  domain.Category
	}{
		{"valid", `{"category":"SEO"}`, nil, domain.CategorySEO},
		{"case insensitive", `{"category":"leadership"}`, nil, domain.CategoryLeadership},
		{"outside enum", `{"category":"Cooking"}`, nil, domain.CategoryBusiness},
		{"missing field", `{"label":"SEO"}`, nil, domain.CategoryBusiness},
		{"not a string", `{"category":3}`, nil, domain.CategoryBusiness},
		{"not json", `SEO`, nil, domain.CategoryBusiness},
		{"transport error", "", errors.New("timeout"), domain.CategoryBusiness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &aitest.Fake{Reply: tt.reply, CompleteErr: tt.err}
			c := NewAIClassifier(fake, logger.Nop(), metrics.New())

			if got := c.Classify(context.Background(), "some text"); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAIClassifierSendsBoundedJSONRequest(t *testing.T) {
	fake := &aitest.Fake{Reply: `{"category":"Product"}`}
	c := NewAIClassifier(fake, logger.Nop(), nil)

	c.Classify(context.Background(), strings.Repeat("é", ClassifyPrefixRunes+500))

	if len(fake.Completions) != 1 {
		t.Fatalf("Complete() calls = %d, want 1", len(fake.Completions))
	}
	got := fake.Completions[0]
	if !got.JSON {
		t.Error("Complete() JSON = false, want true")
	}
	if n := utf8.RuneCountInString(got.User); n != ClassifyPrefixRunes {
		t.Errorf("Complete() user runes = %d, want %d", n, ClassifyPrefixRunes)
	}
	for _, name := range domain.CategoryNames() {
		if !strings.Contains(got.System, name) {
			t.Errorf("classifier prompt is missing %q", name)
		}
	}
}

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier(taxonomy.NewRegistry(nil), nil)

	tests := []struct {
		text string
		want domain.Category
	}{
		{"How RANKING works in search", domain.CategorySEO},
		{"Building a product roadmap", domain.CategoryProduct},
		{"A recipe for bread", domain.CategoryBusiness},
	}
	for _, tt := range tests {
		if got := c.Classify(context.Background(), tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestNewClassifierPolicy(t *testing.T) {
	reg := taxonomy.NewRegistry(nil)
	tests := []struct {
		policy string
		want   string
	}{
		{"", PolicyAI},
		{"ai", PolicyAI},
		{"Keyword", PolicyKeyword},
		{"bogus", PolicyAI},
	}
	for _, tt := range tests {
		c := NewClassifier(tt.policy, &aitest.Fake{}, reg, logger.Nop(), nil)
		if c.Policy() != tt.want {
			t.Errorf("NewClassifier(%q).Policy() = %q, want %q", tt.policy, c.Policy(), tt.want)
		}
	}
}
