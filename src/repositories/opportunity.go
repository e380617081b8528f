package repositories

import (
	"context"
	"fmt"
	"time"

	"Backend-UniClub/src/database"
	"Backend-UniClub/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OpportunityRepository interface {
	List(ctx context.Context, oppType string) ([]models.Opportunity, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Opportunity, error)
	Create(ctx context.Context, o *models.Opportunity) error
	CreateMany(ctx context.Context, items []models.Opportunity) error
	Update(ctx context.Context, o *models.Opportunity) (*models.Opportunity, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

var _ OpportunityRepository = (*MongoOpportunityRepository)(nil)

type MongoOpportunityRepository struct {
	collection[models.Opportunity]
}

func NewOpportunityRepository(db *mongo.Database) *MongoOpportunityRepository {
	return &MongoOpportunityRepository{collection[models.Opportunity]{c: db.Collection(database.OpportunityCollection)}}
}

func (r *MongoOpportunityRepository) List(ctx context.Context, oppType string) ([]models.Opportunity, error) {
	q := bson.M{}
	if oppType != "" {
		q["type"] = oppType
	}
	return r.find(ctx, q, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *MongoOpportunityRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Opportunity, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoOpportunityRepository) Create(ctx context.Context, o *models.Opportunity) error {
	stampOpportunity(o, time.Now())
	return r.insert(ctx, o)
}

func (r *MongoOpportunityRepository) CreateMany(ctx context.Context, items []models.Opportunity) error {
	if len(items) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(items))
	for i := range items {
		stampOpportunity(&items[i], now)
		docs = append(docs, items[i])
	}
	if _, err := r.c.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert opportunities: %w", err)
	}
	return nil
}

func stampOpportunity(o *models.Opportunity, now time.Time) {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	o.CreatedAt, o.UpdatedAt = now, now
}

func (r *MongoOpportunityRepository) Update(ctx context.Context, o *models.Opportunity) (*models.Opportunity, error) {
	return r.updateByID(ctx, o.ID, bson.M{"$set": bson.M{
		"type":         o.Type,
		"title":        o.Title,
		"provider":     o.Provider,
		"location":     o.Location,
		"description":  o.Description,
		"deadline":     o.Deadline,
		"link":         o.Link,
		"image":        o.Image,
		"tags":         o.Tags,
		"requirements": o.Requirements,
		"updatedAt":    time.Now(),
	}})
}

func (r *MongoOpportunityRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *MongoOpportunityRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}
