// Package memory is an in-process store.Repository for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/store"
)

// Store keeps links in a map guarded by a RWMutex. Values are copied on the
// way in and out so callers never share memory with the store.
type Store struct {
	mu    sync.RWMutex
	links map[string]*domain.Link // ID -> Link
	now   func() time.Time
}

var _ store.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		links: make(map[string]*domain.Link),
		now:   time.Now,
	}
}

func (s *Store) Create(_ context.Context, link *domain.Link) (*domain.Link, error) {
	l := store.Clone(link)
	l.ID = store.NewID()
	l.CreatedAt = s.now().UTC()

	s.mu.Lock()
	s.links[l.ID] = l
	s.mu.Unlock()

	return store.Clone(l), nil
}

func (s *Store) List(_ context.Context, opts store.ListOptions) ([]*domain.Link, error) {
	s.mu.RLock()
	links := make([]*domain.Link, 0, len(s.links))
	for _, l := range s.links {
		if opts.Matches(l) {
			links = append(links, store.Clone(l))
		}
	}
	s.mu.RUnlock()

	store.SortNewestFirst(links)
	return links, nil
}

func (s *Store) Get(_ context.Context, id string) (*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.links[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return store.Clone(l), nil
}

func (s *Store) Update(_ context.Context, id string, patch store.Patch) (*domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.links[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Category != "" {
		l.Category = patch.Category
	}
	return store.Clone(l), nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.links, id)
	return nil
}

// Count returns the number of stored links.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
