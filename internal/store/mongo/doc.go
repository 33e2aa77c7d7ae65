package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// linkDoc is the stored shape of a link in the links collection.
type linkDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	URL       string             `bson:"url"`
	Title     string             `bson:"title"`
	Summary   string             `bson:"summary"`
	Content   string             `bson:"content"`
	Category  string             `bson:"category"`
	Tags      []string           `bson:"tags"`
	Source    string             `bson:"source"`
	CreatedAt time.Time          `bson:"created_at"`
}

func toDoc(l *domain.Link) linkDoc {
	return linkDoc{
		URL:       l.URL,
		Title:     l.Title,
		Summary:   l.Summary,
		Content:   l.Content,
		Category:  string(l.Category),
		Tags:      append([]string(nil), l.Tags...),
		Source:    l.Source,
		CreatedAt: l.CreatedAt,
	}
}

func (d linkDoc) toLink() *domain.Link {
	return &domain.Link{
		ID:        d.ID.Hex(),
		URL:       d.URL,
		Title:     d.Title,
		Summary:   d.Summary,
		Content:   d.Content,
		Category:  domain.Category(d.Category),
		Tags:      d.Tags,
		Source:    d.Source,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
