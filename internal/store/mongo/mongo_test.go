package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store"
	"github.com/MrSnakeDoc/linkvault/internal/store/storetest"
)

func TestDocRoundTrip(t *testing.T) {
	in := storetest.Sample("https://www.a.io/x", domain.CategoryFrameworks)
	doc := toDoc(in)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded linkDoc
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	out := decoded.toLink()
	assert.Equal(t, doc.ID.Hex(), out.ID)
	assert.Equal(t, in.URL, out.URL)
	assert.Equal(t, in.Tags, out.Tags)
	assert.Equal(t, domain.CategoryFrameworks, out.Category)
	assert.Equal(t, "a.io", out.Source)
	assert.True(t, doc.CreatedAt.Equal(out.CreatedAt))
}

func TestDocFieldNames(t *testing.T) {
	raw, err := bson.Marshal(toDoc(storetest.Sample("https://a.io", domain.CategorySEO)))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	for _, key := range []string{"url", "title", "summary", "content", "category", "tags", "source", "created_at"} {
		assert.Contains(t, m, key)
	}
	// empty ObjectID is omitted so the server assigns none we did not choose
	assert.NotContains(t, m, "_id")
}

func TestWrap(t *testing.T) {
	assert.ErrorIs(t, wrap(store.OpGet, mongo.ErrNoDocuments), domain.ErrNotFound)

	err := wrap(store.OpGet, errors.New("server selection timeout"))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestInvalidIDIsNotFound(t *testing.T) {
	s := &Store{}
	ctx := context.Background()

	_, err := s.Get(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Update(ctx, "not-an-object-id", store.Patch{Category: domain.CategorySEO})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), domain.ErrNotFound)
}

// TestRepository runs against a real server when LINKVAULT_TEST_MONGO_URI is set.
func TestRepository(t *testing.T) {
	uri := os.Getenv("LINKVAULT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("LINKVAULT_TEST_MONGO_URI not set")
	}

	storetest.Run(t, func(t *testing.T) store.Repository {
		db := fmt.Sprintf("linkvault_test_%d", time.Now().UnixNano())
		s, err := Connect(context.Background(), Options{URI: uri, Database: db, ConnectTimeout: 10 * time.Second}, logger.Nop())
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = s.client.Database(db).Drop(context.Background())
			_ = s.Close()
		})
		return s
	})
}
