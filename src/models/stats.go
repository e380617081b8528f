package models

const (
	ActivityInactive = "inactive"
	ActivityLow      = "low"
	ActivityMedium   = "medium"
	ActivityHigh     = "high"
	ActivityVeryHigh = "very high"
)

// ClubStats is the derived engagement summary of one university chapter.
type ClubStats struct {
	Members         int      `json:"members"`
	Activity        string   `json:"activity" example:"medium"`
	CurrentEvents   []string `json:"currentEvents"`
	PastEventsCount int      `json:"pastEventsCount"`
	TotalEvents     int      `json:"totalEvents"`
}

// ClubDetail is the single-chapter view served by /api/clubs/:id.
type ClubDetail struct {
	ClubID    string    `json:"clubId"`
	Club      *Club     `json:"club,omitempty"`
	Stats     ClubStats `json:"stats"`
	Score     int       `json:"score"`
	NextEvent *Event    `json:"nextEvent"`
}
