// Package services holds the errors and helpers shared by the domain
// services in its subpackages.
package services

import (
	"context"
	"errors"
	"time"

	"Backend-UniClub/src/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound          = repositories.ErrNotFound
	ErrInvalidID         = errors.New("invalid id")
	ErrMissingID         = errors.New("missing id")
	ErrImageRequired     = errors.New("image is required")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrUnknownUniversity = errors.New("unknown university")
	ErrDuplicate         = repositories.ErrDuplicate
)

// DefaultTimeout bounds a single service call against the database.
const DefaultTimeout = 5 * time.Second

// ParseID converts a hex document id, mapping blanks to ErrMissingID.
func ParseID(hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, ErrMissingID
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// WithTimeout derives the per-call context; a non-positive d uses DefaultTimeout.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultTimeout
	}
	return context.WithTimeout(ctx, d)
}
