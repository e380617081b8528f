package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-UniClub/src/database"
	"Backend-UniClub/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserProfile carries the fields a member may set on themselves.
type UserProfile struct {
	FullName   string
	StudentID  string
	University string
}

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByClerkID(ctx context.Context, clerkID string) (*models.User, error)
	// Ensure returns the user for the identity, creating it with defaults when
	// absent, and reports whether it was created. Existing documents are not
	// modified.
	Ensure(ctx context.Context, id models.Identity, university string) (*models.User, bool, error)
	// UpsertProfile writes profile onto the user keyed by the identity.
	UpsertProfile(ctx context.Context, id models.Identity, p UserProfile) (*models.User, error)
	// RecordEventJoin appends entry to the activity log and credits its points
	// in one document update.
	RecordEventJoin(ctx context.Context, userID primitive.ObjectID, entry models.ActivityEntry) error
	CountByUniversity(ctx context.Context, primary string) (map[string]int, error)
	CountInUniversity(ctx context.Context, code string, includeUnassigned bool) (int, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role string) (*models.User, error)
	AddBadge(ctx context.Context, id primitive.ObjectID, badge string) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

var _ UserRepository = (*MongoUserRepository)(nil)

type MongoUserRepository struct {
	collection[models.User]
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection[models.User]{c: db.Collection(database.UserCollection)}}
}

func (r *MongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *MongoUserRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"clerkId": clerkID})
}

func newUserDefaults(id models.Identity, now time.Time) bson.M {
	return bson.M{
		"clerkId":             id.ClerkID,
		"email":               id.Email,
		"role":                models.RoleMember,
		"points":              0,
		"volunteerHours":      0,
		"eventsAttendedCount": 0,
		"level":               1,
		"badges":              bson.A{},
		"activityHistory":     bson.A{},
		"createdAt":           now,
	}
}

func (r *MongoUserRepository) Ensure(ctx context.Context, id models.Identity, university string) (*models.User, bool, error) {
	now := time.Now()
	onInsert := newUserDefaults(id, now)
	onInsert["fullName"] = id.FullName
	onInsert["university"] = university
	onInsert["updatedAt"] = now

	res, err := r.c.UpdateOne(ctx, bson.M{"clerkId": id.ClerkID}, bson.M{"$setOnInsert": onInsert}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, false, ErrDuplicate
		}
		return nil, false, fmt.Errorf("ensure user: %w", err)
	}
	u, err := r.GetByClerkID(ctx, id.ClerkID)
	if err != nil {
		return nil, false, err
	}
	return u, res.UpsertedCount > 0, nil
}

func (r *MongoUserRepository) UpsertProfile(ctx context.Context, id models.Identity, p UserProfile) (*models.User, error) {
	now := time.Now()
	set := bson.M{
		"fullName":   p.FullName,
		"studentId":  p.StudentID,
		"university": p.University,
		"updatedAt":  now,
	}
	if id.Email != "" {
		set["email"] = id.Email
	}
	onInsert := newUserDefaults(id, now)
	delete(onInsert, "email")
	if id.Email == "" {
		onInsert["email"] = ""
	}
	return r.upsertByClerkID(ctx, id.ClerkID, bson.M{"$set": set, "$setOnInsert": onInsert})
}

func (r *MongoUserRepository) upsertByClerkID(ctx context.Context, clerkID string, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var u models.User
	err := r.c.FindOneAndUpdate(ctx, bson.M{"clerkId": clerkID}, update, opts).Decode(&u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &u, nil
}

func (r *MongoUserRepository) RecordEventJoin(ctx context.Context, userID primitive.ObjectID, entry models.ActivityEntry) error {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"activityHistory": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$activityHistory", bson.A{}}},
				bson.A{bson.M{
					"type":   entry.Type,
					"title":  entry.Title,
					"date":   entry.Date,
					"points": entry.Points,
					"status": entry.Status,
				}},
			}},
			"points":              bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$points", 0}}, entry.Points}},
			"eventsAttendedCount": bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$eventsAttendedCount", 0}}, 1}},
			"updatedAt":           "$$NOW",
		}}},
		{{Key: "$set", Value: bson.M{
			"level": bson.M{"$add": bson.A{
				bson.M{"$floor": bson.M{"$divide": bson.A{"$points", models.PointsPerLevel}}},
				1,
			}},
		}}},
	}
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": userID}, pipeline)
	if err != nil {
		return fmt.Errorf("record event join: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type universityCount struct {
	University string `bson:"_id"`
	Count      int    `bson:"count"`
}

// CountByUniversity groups members by university; members without one are
// counted under primary.
func (r *MongoUserRepository) CountByUniversity(ctx context.Context, primary string) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$university", ""}}, ""}},
				primary,
				"$university",
			}},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate users by university: %w", err)
	}
	var rows []universityCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode user counts: %w", err)
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.University] += row.Count
	}
	return out, nil
}

func (r *MongoUserRepository) CountInUniversity(ctx context.Context, code string, includeUnassigned bool) (int, error) {
	n, err := r.count(ctx, universityFilter(code, includeUnassigned))
	return int(n), err
}

func (r *MongoUserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role string) (*models.User, error) {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}})
}

func (r *MongoUserRepository) AddBadge(ctx context.Context, id primitive.ObjectID, badge string) (*models.User, error) {
	return r.updateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"badges": badge},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
}

func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
