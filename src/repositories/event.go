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

type EventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	ListByUniversity(ctx context.Context, code string, includeUnassigned bool) ([]models.Event, error)
	ListByAttendee(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	Create(ctx context.Context, e *models.Event) error
	Update(ctx context.Context, e *models.Event) (*models.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddAttendee adds userID only when absent; added is false when the user
	// was already an attendee.
	AddAttendee(ctx context.Context, eventID, userID primitive.ObjectID) (added bool, err error)
	RemoveAttendee(ctx context.Context, eventID, userID primitive.ObjectID) error
	// SetStatusIf moves the event from one status to another and reports
	// whether a document changed.
	SetStatusIf(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error)
}

var _ EventRepository = (*MongoEventRepository)(nil)

type MongoEventRepository struct {
	collection[models.Event]
}

func NewEventRepository(db *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{collection[models.Event]{c: db.Collection(database.EventCollection)}}
}

func (r *MongoEventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	q := bson.M{}
	if filter.Category != "" {
		q["category"] = filter.Category
	}
	if filter.University != "" {
		q["university"] = filter.University
	}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	return r.find(ctx, q, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *MongoEventRepository) ListByUniversity(ctx context.Context, code string, includeUnassigned bool) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	if code == "" {
		return r.find(ctx, bson.M{}, opts)
	}
	return r.find(ctx, universityFilter(code, includeUnassigned), opts)
}

func (r *MongoEventRepository) ListByAttendee(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	return r.find(ctx, bson.M{"attendees": userID}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *MongoEventRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoEventRepository) Create(ctx context.Context, e *models.Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Attendees == nil {
		e.Attendees = []primitive.ObjectID{}
	}
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	return r.insert(ctx, e)
}

// Update writes the editable fields only; attendees are owned by the join flow.
func (r *MongoEventRepository) Update(ctx context.Context, e *models.Event) (*models.Event, error) {
	return r.updateByID(ctx, e.ID, bson.M{"$set": bson.M{
		"title":       e.Title,
		"description": e.Description,
		"location":    e.Location,
		"date":        e.Date,
		"timeString":  e.TimeString,
		"image":       e.Image,
		"category":    e.Category,
		"university":  e.University,
		"status":      e.Status,
		"featured":    e.Featured,
		"updatedAt":   time.Now(),
	}})
}

func (r *MongoEventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *MongoEventRepository) AddAttendee(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": eventID, "attendees": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"attendees": userID}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("add attendee: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoEventRepository) RemoveAttendee(ctx context.Context, eventID, userID primitive.ObjectID) error {
	if _, err := r.c.UpdateOne(ctx, bson.M{"_id": eventID}, bson.M{"$pull": bson.M{"attendees": userID}}); err != nil {
		return fmt.Errorf("remove attendee: %w", err)
	}
	return nil
}

func (r *MongoEventRepository) SetStatusIf(ctx context.Context, id primitive.ObjectID, from, to string) (bool, error) {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("set event status: %w", err)
	}
	return res.ModifiedCount > 0, nil
}
