package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OpportunityScholarship = "scholarship"
	OpportunityInternship  = "internship"
	OpportunityVolunteer   = "volunteer"
)

type Opportunity struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty" swaggertype:"string"`
	Type         string             `json:"type" bson:"type" example:"scholarship"`
	Title        Localized          `json:"title" bson:"title"`
	Provider     Localized          `json:"provider" bson:"provider"`
	Location     Localized          `json:"location" bson:"location"`
	Description  Localized          `json:"description" bson:"description"`
	Deadline     string             `json:"deadline" bson:"deadline" example:"2025-12-31"`
	Link         string             `json:"link" bson:"link"`
	Image        string             `json:"image" bson:"image"`
	Tags         []string           `json:"tags" bson:"tags"`
	Requirements LocalizedList      `json:"requirements" bson:"requirements"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
