package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type News struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty" swaggertype:"string"`
	Title         Localized          `json:"title" bson:"title"`
	Summary       Localized          `json:"summary" bson:"summary"`
	Content       Localized          `json:"content" bson:"content"`
	Author        string             `json:"author" bson:"author" example:"Admin"`
	PublishedDate time.Time          `json:"publishedDate" bson:"publishedDate"`
	Image         string             `json:"image" bson:"image"`
	Tags          []string           `json:"tags" bson:"tags" example:"volunteer,environment"`
	Featured      bool               `json:"featured" bson:"featured"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
