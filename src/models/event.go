package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventCategoryCampaign   = "campaign"
	EventCategoryWorkshop   = "workshop"
	EventCategoryFundraiser = "fundraiser"
	EventCategoryMeeting    = "meeting"

	EventStatusUpcoming  = "upcoming"
	EventStatusPast      = "past"
	EventStatusCancelled = "cancelled"
	// EventStatusCompleted is not accepted on write but older records carry it.
	EventStatusCompleted = "completed"
)

// Event is a club activity members can join.
type Event struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty" swaggertype:"string" example:"507f1f77bcf86cd799439011"`
	Title       Localized            `json:"title" bson:"title"`
	Description Localized            `json:"description" bson:"description"`
	Location    Localized            `json:"location" bson:"location"`
	Date        time.Time            `json:"date" bson:"date"`
	TimeString  string               `json:"timeString" bson:"timeString" example:"14:00 - 17:00"`
	Image       string               `json:"image" bson:"image"`
	Category    string               `json:"category" bson:"category" example:"campaign"`
	University  string               `json:"university" bson:"university" example:"NUM"`
	Status      string               `json:"status" bson:"status" example:"upcoming"`
	Featured    bool                 `json:"featured" bson:"featured"`
	Attendees   []primitive.ObjectID `json:"attendees" bson:"attendees" swaggertype:"array,string"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasAttendee reports whether userID already joined the event.
func (e *Event) HasAttendee(userID primitive.ObjectID) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// EventFilter narrows an event list. Zero values mean "any".
type EventFilter struct {
	Category   string
	University string
	Status     string
}
