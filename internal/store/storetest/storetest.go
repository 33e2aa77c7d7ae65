// Package storetest holds the behaviour every store.Repository driver must share.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/store"
)

// Sample returns a link as the pipeline would hand it to a store.
func Sample(url string, category domain.Category) *domain.Link {
	return &domain.Link{
		URL:      url,
		Title:    "Title of " + url,
		Summary:  "summary",
		Content:  "content of " + url,
		Category: category,
		Tags:     []string{"AI", "Data"},
		Source:   domain.SourceFromURL(url),
	}
}

// Run exercises repo through the whole Repository contract. newRepo must
// return an empty repository.
func Run(t *testing.T, newRepo func(t *testing.T) store.Repository) {
	t.Run("CreateAssignsIdentity", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		in := Sample("https://a.io", domain.CategorySEO)
		got, err := repo.Create(ctx, in)
		require.NoError(t, err)

		assert.NotEmpty(t, got.ID)
		assert.False(t, got.CreatedAt.IsZero())
		assert.Equal(t, in.URL, got.URL)
		assert.Equal(t, in.Tags, got.Tags)

		other, err := repo.Create(ctx, Sample("https://b.io", domain.CategorySEO))
		require.NoError(t, err)
		assert.NotEqual(t, got.ID, other.ID)
	})

	t.Run("GetRoundTrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Create(ctx, Sample("https://a.io", domain.CategoryProduct))
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Content, got.Content)
		assert.Equal(t, created.Category, got.Category)
		assert.Equal(t, created.Tags, got.Tags)
		assert.Equal(t, created.Source, got.Source)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		var ids []string
		for _, u := range []string{"https://1.io", "https://2.io", "https://3.io"} {
			l, err := repo.Create(ctx, Sample(u, domain.CategoryBusiness))
			require.NoError(t, err)
			ids = append(ids, l.ID)
			time.Sleep(2 * time.Millisecond)
		}

		links, err := repo.List(ctx, store.ListOptions{})
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{links[0].ID, links[1].ID, links[2].ID})
	})

	t.Run("ListByCategory", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Create(ctx, Sample("https://a.io", domain.CategorySEO))
		require.NoError(t, err)
		_, err = repo.Create(ctx, Sample("https://b.io", domain.CategoryProduct))
		require.NoError(t, err)

		links, err := repo.List(ctx, store.ListOptions{Category: domain.CategoryProduct})
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://b.io", links[0].URL)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		repo := newRepo(t)
		links, err := repo.List(context.Background(), store.ListOptions{})
		require.NoError(t, err)
		assert.NotNil(t, links)
		assert.Empty(t, links)
	})

	t.Run("UpdateCategoryOnly", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Create(ctx, Sample("https://a.io", domain.CategorySEO))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, store.Patch{Category: domain.CategoryStrategy})
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryStrategy, updated.Category)
		assert.Equal(t, created.Tags, updated.Tags)
		assert.Equal(t, created.Title, updated.Title)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryStrategy, got.Category)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Create(ctx, Sample("https://a.io", domain.CategorySEO))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.Get(ctx, created.ID)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "Get after Delete: %v", err)

		links, err := repo.List(ctx, store.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("UnknownID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = repo.Update(ctx, "missing", store.Patch{Category: domain.CategorySEO})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = repo.Delete(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.Ping(context.Background()))
	})
}
