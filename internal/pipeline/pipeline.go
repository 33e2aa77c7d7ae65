// Package pipeline turns a URL into a normalized link record.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/ai"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
	"github.com/MrSnakeDoc/linkvault/internal/taxonomy"
)

// Overrides are manual choices from the add-link form. Zero values mean
// "use the extracted value".
type Overrides struct {
	Category domain.Category
	Tags     []string
}

type Pipeline struct {
	client     ai.Client
	classifier Classifier
	registry   *taxonomy.Registry
	log        logger.Logger
	metrics    *metrics.Metrics
}

func New(client ai.Client, classifier Classifier, reg *taxonomy.Registry, log logger.Logger, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		client:     client,
		classifier: classifier,
		registry:   reg,
		log:        log,
		metrics:    m,
	}
}

// Extract runs the analysis of url and returns a link without ID and
// CreatedAt. Only the content-service call can fail; every later stage
// falls back to its default.
func (p *Pipeline) Extract(ctx context.Context, url string, ov Overrides) (*domain.Link, error) {
	start := time.Now()
	log := p.log.With(logger.String("url", url))

	raw, err := p.client.Generate(ctx, url)
	if err != nil {
		p.metrics.Extraction(err)
		return nil, fmt.Errorf("%w: could not process the URL: %v", domain.ErrExtraction, err)
	}

	env := ai.DecodeEnvelope(raw)
	if env.Kind == ai.KindUnknown {
		log.Warn("unknown response shape, using raw body")
	}
	text := env.Text

	link := &domain.Link{
		URL:     url,
		Content: text,
	}

	link.Source = domain.SourceFromURL(url)
	if link.Source == domain.UnknownSource {
		p.fallback(log, metrics.StageSource)
	}

	link.Title = domain.ExtractTitle(text)
	if link.Title == domain.DefaultTitle {
		p.fallback(log, metrics.StageTitle)
	}

	if summary, ok := domain.KeyInsights(text); ok {
		link.Summary = summary
	} else {
		link.Summary = domain.SummaryFallback(text)
		p.fallback(log, metrics.StageSummary)
	}

	if ov.Category != "" {
		link.Category = ov.Category
	} else {
		link.Category = p.classifier.Classify(ctx, text)
	}

	if tags := cleanTags(ov.Tags); len(tags) > 0 {
		link.Tags = tags
	} else {
		rules := p.registry.Current().Tags
		link.Tags = domain.Tag(strings.ToLower(text), link.Category, rules)
		if len(link.Tags) == 1 && link.Tags[0] == string(link.Category) {
			p.fallback(log, metrics.StageTags)
		}
	}

	p.metrics.Extraction(nil)
	log.Info("link extracted",
		logger.String("envelope", env.Kind.String()),
		logger.String("category", string(link.Category)),
		logger.Strings("tags", link.Tags),
		logger.String("policy", p.classifier.Policy()),
		logger.Duration("took", time.Since(start)),
	)

	return link, nil
}

func (p *Pipeline) fallback(log logger.Logger, stage string) {
	log.Debug("fallback taken", logger.String("stage", stage))
	p.metrics.Fallback(stage)
}

// cleanTags trims tags and drops blanks and duplicates.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == domain.MaxTags {
			break
		}
	}
	return out
}
