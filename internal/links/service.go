// Package links implements the add, list, re-categorise and delete use cases.
package links

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/pipeline"
	"github.com/MrSnakeDoc/linkvault/internal/store"
)

// Sort orders accepted by List.
const (
	SortDate  = "date"
	SortTitle = "title"
)

// Extractor turns a URL into an unsaved link.
type Extractor interface {
	Extract(ctx context.Context, url string, ov pipeline.Overrides) (*domain.Link, error)
}

type AddRequest struct {
	URL      string
	Category string
	Tags     []string
}

// Filter narrows List. Zero value lists everything, newest first.
type Filter struct {
	Category string
	Tag      string
	Query    string
	Sort     string
}

// Facets are the distinct values offered by the list filters.
type Facets struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

type Service struct {
	repo      store.Repository
	extractor Extractor
	log       logger.Logger
}

func NewService(repo store.Repository, extractor Extractor, log logger.Logger) *Service {
	return &Service{repo: repo, extractor: extractor, log: log}
}

// Add validates the request, runs the extraction and saves the result.
// Nothing reaches the network when validation fails.
func (s *Service) Add(ctx context.Context, req AddRequest) (*domain.Link, error) {
	url, err := domain.ValidateURL(req.URL)
	if err != nil {
		return nil, err
	}

	var ov pipeline.Overrides
	if strings.TrimSpace(req.Category) != "" {
		c, err := domain.ParseCategory(req.Category)
		if err != nil {
			return nil, err
		}
		ov.Category = c
	}
	ov.Tags = req.Tags

	link, err := s.extractor.Extract(ctx, url, ov)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Create(ctx, link)
	if err != nil {
		s.log.Error("saving link failed", logger.String("url", url), logger.Error(err))
		return nil, err
	}

	s.log.Info("link saved", logger.String("id", saved.ID), logger.String("url", url))
	return saved, nil
}

// List returns stored links matching f.
func (s *Service) List(ctx context.Context, f Filter) ([]*domain.Link, error) {
	var opts store.ListOptions
	if strings.TrimSpace(f.Category) != "" {
		c, err := domain.ParseCategory(f.Category)
		if err != nil {
			return nil, err
		}
		opts.Category = c
	}

	sortBy := strings.ToLower(strings.TrimSpace(f.Sort))
	switch sortBy {
	case "", SortDate, SortTitle:
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidInput, f.Sort)
	}

	all, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	tag := strings.TrimSpace(f.Tag)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]*domain.Link, 0, len(all))
	for _, l := range all {
		if tag != "" && !l.HasTag(tag) {
			continue
		}
		if query != "" && !matchesQuery(l, query) {
			continue
		}
		out = append(out, l)
	}

	if sortBy == SortTitle {
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	}
	return out, nil
}

// matchesQuery is a case-insensitive substring search over the visible fields.
func matchesQuery(l *domain.Link, lowerQuery string) bool {
	for _, field := range []string{l.Title, l.URL, l.Content, string(l.Category)} {
		if strings.Contains(strings.ToLower(field), lowerQuery) {
			return true
		}
	}
	return false
}

// Facets returns the distinct categories and tags over all stored links,
// sorted alphabetically.
func (s *Service) Facets(ctx context.Context) (*Facets, error) {
	all, err := s.repo.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}

	categories := map[string]struct{}{}
	tags := map[string]struct{}{}
	for _, l := range all {
		categories[string(l.Category)] = struct{}{}
		for _, t := range l.Tags {
			tags[t] = struct{}{}
		}
	}

	return &Facets{
		Categories: sortedKeys(categories),
		Tags:       sortedKeys(tags),
	}, nil
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UpdateCategory changes only the category; tags are not recomputed.
func (s *Service) UpdateCategory(ctx context.Context, id, category string) (*domain.Link, error) {
	c, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, store.Patch{Category: c})
	if err != nil {
		return nil, err
	}

	s.log.Info("link re-categorised", logger.String("id", id), logger.String("category", string(c)))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("link deleted", logger.String("id", id))
	return nil
}
