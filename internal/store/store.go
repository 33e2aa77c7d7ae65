// Package store defines the persistence contract for saved links.
// Drivers live in sub-packages.
package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// Domain messages used when wrapping driver failures.
const (
	OpSave   = "save the link"
	OpLoad   = "load the links"
	OpGet    = "load the link"
	OpUpdate = "update the link"
	OpDelete = "delete the link"
	OpPing   = "reach the store"
)

// ListOptions narrows a List call. Zero value lists everything.
type ListOptions struct {
	Category domain.Category
}

// Patch is the narrow update allowed on a saved link.
type Patch struct {
	Category domain.Category
}

// Repository persists links. Implementations return domain.ErrNotFound for
// unknown ids and wrap every other failure in domain.ErrStoreUnavailable.
type Repository interface {
	// Create assigns ID and CreatedAt and persists link.
	Create(ctx context.Context, link *domain.Link) (*domain.Link, error)
	// List returns links newest first.
	List(ctx context.Context, opts ListOptions) ([]*domain.Link, error)
	Get(ctx context.Context, id string) (*domain.Link, error)
	Update(ctx context.Context, id string, patch Patch) (*domain.Link, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// Unavailable wraps a driver error with the domain message for op.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: could not %s: %v", domain.ErrStoreUnavailable, op, err)
}

// NewID returns a fresh opaque link id.
func NewID() string {
	return uuid.NewString()
}

// SortNewestFirst orders links by CreatedAt descending, ids breaking ties.
func SortNewestFirst(links []*domain.Link) {
	sort.SliceStable(links, func(i, j int) bool {
		if links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].ID > links[j].ID
		}
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
}

// Matches reports whether link passes opts.
func (o ListOptions) Matches(link *domain.Link) bool {
	return o.Category == "" || link.Category == o.Category
}

// Clone returns a copy of link that shares no slices with it.
func Clone(link *domain.Link) *domain.Link {
	c := *link
	c.Tags = append([]string(nil), link.Tags...)
	return &c
}
