package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"

	// EventJoinPoints is awarded once per joined event.
	EventJoinPoints = 10
	// PointsPerLevel is the number of points between two levels.
	PointsPerLevel = 100
)

// User is a site member keyed by the identity provider's user id (ClerkID).
type User struct {
	ID                  primitive.ObjectID `json:"_id" bson:"_id,omitempty" swaggertype:"string"`
	ClerkID             string             `json:"clerkId" bson:"clerkId"`
	Email               string             `json:"email" bson:"email"`
	StudentID           string             `json:"studentId,omitempty" bson:"studentId,omitempty"`
	FullName            string             `json:"fullName" bson:"fullName"`
	University          string             `json:"university" bson:"university" example:"NUM"`
	Role                string             `json:"role" bson:"role" example:"member"`
	Points              int                `json:"points" bson:"points"`
	VolunteerHours      int                `json:"volunteerHours" bson:"volunteerHours"`
	EventsAttendedCount int                `json:"eventsAttendedCount" bson:"eventsAttendedCount"`
	Level               int                `json:"level" bson:"level"`
	Badges              []string           `json:"badges" bson:"badges"`
	ActivityHistory     []ActivityEntry    `json:"activityHistory" bson:"activityHistory"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ActivityEntry is one line of a member's append-only activity log.
type ActivityEntry struct {
	Type   string    `json:"type" bson:"type" example:"event"`
	Title  string    `json:"title" bson:"title"`
	Date   time.Time `json:"date" bson:"date"`
	Points int       `json:"points" bson:"points"`
	Status string    `json:"status" bson:"status" example:"registered"`
}

// LevelFor derives the member level from accumulated points.
func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// Identity is what the session token tells us about the caller.
type Identity struct {
	ClerkID  string
	Email    string
	FullName string
	Role     string
}
