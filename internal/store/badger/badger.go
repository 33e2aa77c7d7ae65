// Package badger is a store.Repository on an embedded BadgerDB directory.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store"
)

// gcDiscardRatio is the value-log rewrite threshold used by CollectGarbage.
const gcDiscardRatio = 0.5

var linkPrefix = []byte("link:")

func linkKey(id string) []byte {
	return append(append([]byte{}, linkPrefix...), id...)
}

// Repository stores each link as a JSON value under "link:{id}".
type Repository struct {
	db  *badger.DB
	log logger.Logger
	now func() time.Time
}

var _ store.Repository = (*Repository)(nil)

// Open opens (or creates) the database in dir.
func Open(dir string, log logger.Logger) (*Repository, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = &badgerLogger{log: log}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, store.Unavailable(store.OpPing, fmt.Errorf("open badger db at %s: %w", dir, err))
	}
	log.Info("badger store opened", logger.String("dir", dir))

	return &Repository{db: db, log: log, now: time.Now}, nil
}

func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		r.log.Error("closing badger store failed", logger.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Create(_ context.Context, link *domain.Link) (*domain.Link, error) {
	l := store.Clone(link)
	l.ID = store.NewID()
	l.CreatedAt = r.now().UTC()

	data, err := json.Marshal(l)
	if err != nil {
		return nil, store.Unavailable(store.OpSave, fmt.Errorf("marshal link: %w", err))
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(linkKey(l.ID), data))
	})
	if err != nil {
		return nil, store.Unavailable(store.OpSave, err)
	}

	return l, nil
}

func (r *Repository) List(_ context.Context, opts store.ListOptions) ([]*domain.Link, error) {
	links := make([]*domain.Link, 0)

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(linkPrefix); it.ValidForPrefix(linkPrefix); it.Next() {
			item := it.Item()
			var l domain.Link
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &l)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", item.Key(), err)
			}
			if opts.Matches(&l) {
				links = append(links, &l)
			}
		}
		return nil
	})
	if err != nil {
		return nil, store.Unavailable(store.OpLoad, err)
	}

	store.SortNewestFirst(links)
	return links, nil
}

func (r *Repository) Get(_ context.Context, id string) (*domain.Link, error) {
	var l domain.Link
	err := r.db.View(func(txn *badger.Txn) error {
		return readLink(txn, id, &l)
	})
	if err != nil {
		return nil, r.wrap(store.OpGet, err)
	}
	return &l, nil
}

func (r *Repository) Update(_ context.Context, id string, patch store.Patch) (*domain.Link, error) {
	var l domain.Link
	err := r.db.Update(func(txn *badger.Txn) error {
		if err := readLink(txn, id, &l); err != nil {
			return err
		}
		if patch.Category != "" {
			l.Category = patch.Category
		}
		data, err := json.Marshal(&l)
		if err != nil {
			return fmt.Errorf("marshal link: %w", err)
		}
		return txn.SetEntry(badger.NewEntry(linkKey(id), data))
	})
	if err != nil {
		return nil, r.wrap(store.OpUpdate, err)
	}
	return &l, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(linkKey(id)); err != nil {
			return err
		}
		return txn.Delete(linkKey(id))
	})
	if err != nil {
		return r.wrap(store.OpDelete, err)
	}
	return nil
}

func (r *Repository) Ping(context.Context) error {
	if r.db.IsClosed() {
		return store.Unavailable(store.OpPing, errors.New("badger db is closed"))
	}
	return nil
}

// CollectGarbage rewrites value-log files until badger reports nothing left
// to reclaim.
func (r *Repository) CollectGarbage(ctx context.Context) error {
	rewrites := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := r.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			r.log.Debug("badger value log gc done", logger.Int("rewrites", rewrites))
			return nil
		}
		if err != nil {
			return fmt.Errorf("value log gc: %w", err)
		}
		rewrites++
	}
}

func readLink(txn *badger.Txn, id string, l *domain.Link) error {
	item, err := txn.Get(linkKey(id))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, l)
	})
}

func (r *Repository) wrap(op string, err error) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.ErrNotFound
	}
	return store.Unavailable(op, err)
}

// badgerLogger adapts logger.Logger to badger's logger interface. Badger is
// chatty at info level so its info lines are logged at debug.
type badgerLogger struct {
	log logger.Logger
}

func (l *badgerLogger) Errorf(f string, v ...interface{})   { l.log.Errorf("badger: "+f, v...) }
func (l *badgerLogger) Warningf(f string, v ...interface{}) { l.log.Warnf("badger: "+f, v...) }
func (l *badgerLogger) Infof(f string, v ...interface{})    { l.log.Debugf("badger: "+f, v...) }
func (l *badgerLogger) Debugf(f string, v ...interface{})   { l.log.Debugf("badger: "+f, v...) }
