package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club is one university chapter; ClubID is its university code.
type Club struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty" swaggertype:"string"`
	ClubID      string             `json:"clubId" bson:"clubId" example:"NUM"`
	Name        Localized          `json:"name" bson:"name"`
	Description Localized          `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	Website     string             `json:"website" bson:"website"`
	Email       string             `json:"email" bson:"email"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
