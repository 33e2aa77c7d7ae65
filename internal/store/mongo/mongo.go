// Package mongo is a store.Repository on a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store"
)

// Collection is the name of the links collection.
const Collection = "links"

type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type Store struct {
	client *mongo.Client
	links  *mongo.Collection
	log    logger.Logger
	now    func() time.Time
}

var _ store.Repository = (*Store)(nil)

// Connect opens the client, checks it with a ping and makes sure the
// created_at index exists.
func Connect(ctx context.Context, opts Options, log logger.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, store.Unavailable(store.OpPing, fmt.Errorf("connect mongo: %w", err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, store.Unavailable(store.OpPing, fmt.Errorf("ping mongo: %w", err))
	}

	links := client.Database(opts.Database).Collection(Collection)
	_, err = links.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		log.Warn("could not create created_at index", logger.Error(err))
	}

	log.Info("connected to mongo", logger.String("database", opts.Database))
	return &Store{client: client, links: links, log: log, now: time.Now}, nil
}

func (s *Store) Create(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	doc := toDoc(link)
	doc.ID = primitive.NewObjectID()
	// mongo keeps milliseconds
	doc.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	if _, err := s.links.InsertOne(ctx, doc); err != nil {
		return nil, store.Unavailable(store.OpSave, err)
	}
	return doc.toLink(), nil
}

func (s *Store) List(ctx context.Context, opts store.ListOptions) ([]*domain.Link, error) {
	filter := bson.M{}
	if opts.Category != "" {
		filter["category"] = string(opts.Category)
	}

	cur, err := s.links.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, store.Unavailable(store.OpLoad, err)
	}
	defer cur.Close(ctx)

	links := make([]*domain.Link, 0)
	for cur.Next(ctx) {
		var doc linkDoc
		if err := cur.Decode(&doc); err != nil {
			s.log.Warn("skipping unreadable link", logger.Error(err))
			continue
		}
		links = append(links, doc.toLink())
	}
	if err := cur.Err(); err != nil {
		return nil, store.Unavailable(store.OpLoad, err)
	}

	return links, nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Link, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc linkDoc
	if err := s.links.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrap(store.OpGet, err)
	}
	return doc.toLink(), nil
}

func (s *Store) Update(ctx context.Context, id string, patch store.Patch) (*domain.Link, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	set := bson.M{}
	if patch.Category != "" {
		set["category"] = string(patch.Category)
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	var doc linkDoc
	err = s.links.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrap(store.OpUpdate, err)
	}
	return doc.toLink(), nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := s.links.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return store.Unavailable(store.OpDelete, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return store.Unavailable(store.OpPing, err)
	}
	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func wrap(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return store.Unavailable(op, err)
}
