package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/MrSnakeDoc/linkvault/internal/ai"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
	"github.com/MrSnakeDoc/linkvault/internal/taxonomy"
)

// ClassifyPrefixRunes bounds the text sent to a classifier.
const ClassifyPrefixRunes = 3000

const (
	PolicyAI      = "ai"
	PolicyKeyword = "keyword"
)

// Classifier maps analysis text to exactly one category. It never fails:
// every problem ends in domain.DefaultCategory.
type Classifier interface {
	Classify(ctx context.Context, text string) domain.Category
	Policy() string
}

// NewClassifier returns the classifier for policy. Unknown policies get the AI one.
func NewClassifier(policy string, client ai.Client, reg *taxonomy.Registry, log logger.Logger, m *metrics.Metrics) Classifier {
	if strings.EqualFold(strings.TrimSpace(policy), PolicyKeyword) {
		return &KeywordClassifier{registry: reg, metrics: m}
	}
	return &AIClassifier{client: client, log: log, metrics: m}
}

// ─────────────────────────────
// AI policy
// ─────────────────────────────

var classifierPrompt = fmt.Sprintf(
	`You are a classifier. Given the following piece of text, return a JSON object with a single field "category" whose value is one of: %s.`,
	strings.Join(domain.CategoryNames(), ", "),
)

type AIClassifier struct {
	client  ai.Client
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewAIClassifier(client ai.Client, log logger.Logger, m *metrics.Metrics) *AIClassifier {
	return &AIClassifier{client: client, log: log, metrics: m}
}

func (c *AIClassifier) Policy() string { return PolicyAI }

func (c *AIClassifier) Classify(ctx context.Context, text string) domain.Category {
	out, err := c.client.Complete(ctx, ai.Completion{
		System: classifierPrompt,
		User:   domain.TruncateRunes(text, ClassifyPrefixRunes),
		JSON:   true,
	})
	if err != nil {
		return c.fallback("classification request failed", err)
	}

	if !gjson.Valid(out) {
		return c.fallback("classification is not JSON", nil)
	}
	value := gjson.Get(out, "category")
	if value.Type != gjson.String {
		return c.fallback("classification has no category", nil)
	}

	category, err := domain.ParseCategory(value.String())
	if err != nil {
		return c.fallback("classification outside the enumeration", err)
	}

	c.metrics.Classified(PolicyAI, string(category))
	return category
}

func (c *AIClassifier) fallback(msg string, err error) domain.Category {
	if err != nil {
		c.log.Warn(msg, logger.Error(err))
	} else {
		c.log.Warn(msg)
	}
	c.metrics.Fallback(metrics.StageCategory)
	c.metrics.Classified(PolicyAI, string(domain.DefaultCategory))
	return domain.DefaultCategory
}

// ─────────────────────────────
// Keyword policy
// ─────────────────────────────

type KeywordClassifier struct {
	registry *taxonomy.Registry
	metrics  *metrics.Metrics
}

func NewKeywordClassifier(reg *taxonomy.Registry, m *metrics.Metrics) *KeywordClassifier {
	return &KeywordClassifier{registry: reg, metrics: m}
}

func (c *KeywordClassifier) Policy() string { return PolicyKeyword }

func (c *KeywordClassifier) Classify(_ context.Context, text string) domain.Category {
	lower := strings.ToLower(domain.TruncateRunes(text, ClassifyPrefixRunes))
	category := domain.ClassifyKeywords(lower, c.registry.Current().Categories)
	c.metrics.Classified(PolicyKeyword, string(category))
	return category
}
