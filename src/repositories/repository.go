// Package repositories holds the MongoDB-backed stores of the five document
// collections. Services depend on the interfaces declared here.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// collection wraps the CRUD calls shared by every store.
type collection[T any] struct {
	c *mongo.Collection
}

func (s collection[T]) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.c.Name(), err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.c.Name(), err)
	}
	return out, nil
}

func (s collection[T]) findOne(ctx context.Context, filter any) (*T, error) {
	var doc T
	if err := s.c.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find one %s: %w", s.c.Name(), err)
	}
	return &doc, nil
}

func (s collection[T]) insert(ctx context.Context, doc any) error {
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", s.c.Name(), err)
	}
	return nil
}

// updateByID applies update and returns the document as stored afterwards.
func (s collection[T]) updateByID(ctx context.Context, id primitive.ObjectID, update any) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update %s: %w", s.c.Name(), err)
	}
	return &doc, nil
}

// deleteByID is unconditional: a missing id is not an error.
func (s collection[T]) deleteByID(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete %s: %w", s.c.Name(), err)
	}
	return nil
}

func (s collection[T]) count(ctx context.Context, filter any) (int64, error) {
	n, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.c.Name(), err)
	}
	return n, nil
}

// universityFilter matches code, and also documents without a university when
// code is the primary institution.
func universityFilter(code string, includeUnassigned bool) bson.M {
	if !includeUnassigned {
		return bson.M{"university": code}
	}
	return bson.M{"$or": bson.A{
		bson.M{"university": code},
		bson.M{"university": bson.M{"$exists": false}},
		bson.M{"university": ""},
		bson.M{"university": nil},
	}}
}
