package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store"
)

// Store persists each link as a JSON value and keeps a sorted set of ids
// scored by creation time for newest-first listing.
type Store struct {
	client *redis.Client
	logger logger.Logger
	now    func() time.Time
}

var _ store.Repository = (*Store)(nil)

// NewStore creates a new Redis store
func NewStore(client *redis.Client, log logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log,
		now:    time.Now,
	}
}

// Create stores a new link and indexes it by creation time
func (s *Store) Create(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	l := store.Clone(link)
	l.ID = store.NewID()
	l.CreatedAt = s.now().UTC()

	data, err := json.Marshal(l)
	if err != nil {
		return nil, store.Unavailable(store.OpSave, fmt.Errorf("marshal link: %w", err))
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, LinkKey(l.ID), data, 0)
		pipe.ZAdd(ctx, LinksByCreatedKey(), redis.Z{
			Score:  float64(l.CreatedAt.UnixMicro()),
			Member: l.ID,
		})
		return nil
	})
	if err != nil {
		return nil, store.Unavailable(store.OpSave, err)
	}

	return l, nil
}

// List returns links newest first, filtered by opts
func (s *Store) List(ctx context.Context, opts store.ListOptions) ([]*domain.Link, error) {
	ids, err := s.client.ZRevRange(ctx, LinksByCreatedKey(), 0, -1).Result()
	if err != nil {
		return nil, store.Unavailable(store.OpLoad, err)
	}
	if len(ids) == 0 {
		return []*domain.Link{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = LinkKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, store.Unavailable(store.OpLoad, err)
	}

	links := make([]*domain.Link, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// indexed id without a value: skip it
			s.logger.Warn("dangling link id in index", logger.String("id", ids[i]))
			continue
		}
		var l domain.Link
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			s.logger.Warn("skipping unreadable link", logger.String("id", ids[i]), logger.Error(err))
			continue
		}
		if opts.Matches(&l) {
			links = append(links, &l)
		}
	}

	return links, nil
}

// Get retrieves a link by ID
func (s *Store) Get(ctx context.Context, id string) (*domain.Link, error) {
	data, err := s.client.Get(ctx, LinkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, store.Unavailable(store.OpGet, err)
	}

	var l domain.Link
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, store.Unavailable(store.OpGet, fmt.Errorf("unmarshal link: %w", err))
	}

	return &l, nil
}

// Update applies patch to an existing link. Concurrent updates are last write wins.
func (s *Store) Update(ctx context.Context, id string, patch store.Patch) (*domain.Link, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Category != "" {
		l.Category = patch.Category
	}

	data, err := json.Marshal(l)
	if err != nil {
		return nil, store.Unavailable(store.OpUpdate, fmt.Errorf("marshal link: %w", err))
	}

	// XX: only overwrite if the link was not deleted meanwhile
	ok, err := s.client.SetXX(ctx, LinkKey(id), data, 0).Result()
	if err != nil {
		return nil, store.Unavailable(store.OpUpdate, err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	return l, nil
}

// Delete removes a link and its index entry
func (s *Store) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, LinkKey(id))
		pipe.ZRem(ctx, LinksByCreatedKey(), id)
		return nil
	})
	if err != nil {
		return store.Unavailable(store.OpDelete, err)
	}
	if del.Val() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return store.Unavailable(store.OpPing, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
