package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store"
	"github.com/MrSnakeDoc/linkvault/internal/store/storetest"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewStore(client, logger.Nop())
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRepository(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Repository {
		s, _ := newTestStore(t)
		return s
	})
}

func TestCreateWritesValueAndIndex(t *testing.T) {
	s, mr := newTestStore(t)

	l, err := s.Create(context.Background(), storetest.Sample("https://a.io", domain.CategorySEO))
	require.NoError(t, err)

	assert.True(t, mr.Exists(LinkKey(l.ID)))
	members, err := mr.ZMembers(LinksByCreatedKey())
	require.NoError(t, err)
	assert.Equal(t, []string{l.ID}, members)
}

func TestDeleteRemovesIndexEntry(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	l, err := s.Create(ctx, storetest.Sample("https://a.io", domain.CategorySEO))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, l.ID))

	assert.False(t, mr.Exists(LinkKey(l.ID)))
	assert.False(t, mr.Exists(LinksByCreatedKey()))
}

func TestListSkipsDanglingIDs(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	l, err := s.Create(ctx, storetest.Sample("https://a.io", domain.CategorySEO))
	require.NoError(t, err)
	_, err = mr.ZAdd(LinksByCreatedKey(), 1, "ghost")
	require.NoError(t, err)

	links, err := s.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, l.ID, links[0].ID)
}

func TestUnavailable(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	_, err := s.List(context.Background(), store.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	assert.ErrorIs(t, s.Ping(context.Background()), domain.ErrStoreUnavailable)
}
