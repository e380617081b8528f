package repositories

import (
	"context"
	"time"

	"Backend-UniClub/src/database"
	"Backend-UniClub/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NewsRepository interface {
	List(ctx context.Context, tag string) ([]models.News, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.News, error)
	Create(ctx context.Context, n *models.News) error
	Update(ctx context.Context, n *models.News) (*models.News, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

var _ NewsRepository = (*MongoNewsRepository)(nil)

type MongoNewsRepository struct {
	collection[models.News]
}

func NewNewsRepository(db *mongo.Database) *MongoNewsRepository {
	return &MongoNewsRepository{collection[models.News]{c: db.Collection(database.NewsCollection)}}
}

func (r *MongoNewsRepository) List(ctx context.Context, tag string) ([]models.News, error) {
	q := bson.M{}
	if tag != "" {
		q["tags"] = tag
	}
	return r.find(ctx, q, options.Find().SetSort(bson.D{{Key: "publishedDate", Value: -1}}))
}

func (r *MongoNewsRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.News, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoNewsRepository) Create(ctx context.Context, n *models.News) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	now := time.Now()
	n.CreatedAt, n.UpdatedAt = now, now
	return r.insert(ctx, n)
}

func (r *MongoNewsRepository) Update(ctx context.Context, n *models.News) (*models.News, error) {
	return r.updateByID(ctx, n.ID, bson.M{"$set": bson.M{
		"title":         n.Title,
		"summary":       n.Summary,
		"content":       n.Content,
		"author":        n.Author,
		"publishedDate": n.PublishedDate,
		"image":         n.Image,
		"tags":          n.Tags,
		"featured":      n.Featured,
		"updatedAt":     time.Now(),
	}})
}

func (r *MongoNewsRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}
