package models

// Dashboard is the member's own view served by /api/user/dashboard.
type Dashboard struct {
	Profile          *User           `json:"profile"`
	Stats            DashboardStats  `json:"stats"`
	Activity         []ActivityEntry `json:"activity"`
	RegisteredEvents []Event         `json:"registeredEvents"`
}

type DashboardStats struct {
	Points            int `json:"points"`
	Level             int `json:"level"`
	PointsToNextLevel int `json:"pointsToNextLevel"`
	EventsAttended    int `json:"eventsAttended"`
	VolunteerHours    int `json:"volunteerHours"`
	Badges            int `json:"badges"`
}

// AdminOverview is the admin console landing summary.
type AdminOverview struct {
	TotalEvents         int            `json:"totalEvents"`
	UpcomingEventsCount int            `json:"upcomingEventsCount"`
	TotalUsers          int            `json:"totalUsers"`
	Admins              int            `json:"admins"`
	TotalPoints         int            `json:"totalPoints"`
	MembersByUniversity map[string]int `json:"membersByUniversity"`
	UpcomingEvents      []Event        `json:"upcomingEvents"`
	TopMembers          []User         `json:"topMembers"`
}
