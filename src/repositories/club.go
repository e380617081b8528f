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

type ClubRepository interface {
	List(ctx context.Context) ([]models.Club, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Club, error)
	GetByClubID(ctx context.Context, clubID string) (*models.Club, error)
	Create(ctx context.Context, c *models.Club) error
	Update(ctx context.Context, c *models.Club) (*models.Club, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

var _ ClubRepository = (*MongoClubRepository)(nil)

type MongoClubRepository struct {
	collection[models.Club]
}

func NewClubRepository(db *mongo.Database) *MongoClubRepository {
	return &MongoClubRepository{collection[models.Club]{c: db.Collection(database.ClubCollection)}}
}

func (r *MongoClubRepository) List(ctx context.Context) ([]models.Club, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *MongoClubRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Club, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoClubRepository) GetByClubID(ctx context.Context, clubID string) (*models.Club, error) {
	return r.findOne(ctx, bson.M{"clubId": clubID})
}

func (r *MongoClubRepository) Create(ctx context.Context, c *models.Club) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	return r.insert(ctx, c)
}

func (r *MongoClubRepository) Update(ctx context.Context, c *models.Club) (*models.Club, error) {
	return r.updateByID(ctx, c.ID, bson.M{"$set": bson.M{
		"clubId":      c.ClubID,
		"name":        c.Name,
		"description": c.Description,
		"image":       c.Image,
		"website":     c.Website,
		"email":       c.Email,
		"updatedAt":   time.Now(),
	}})
}

func (r *MongoClubRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}
