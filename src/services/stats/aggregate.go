// Package stats derives the per-university engagement summary from member
// and event records.
package stats

import (
	"strings"
	"time"

	"Backend-UniClub/src/models"
)

// EventWeight is how many members one event counts for in the score.
const EventWeight = 5

// CurrentEventsShown caps the upcoming titles listed per university.
const CurrentEventsShown = 3

func Score(members, totalEvents int) int {
	return members + totalEvents*EventWeight
}

// Tier maps the score to an activity label. Thresholds are strict; a chapter
// with neither members nor events is inactive whatever the score.
func Tier(members, totalEvents int) string {
	if members == 0 && totalEvents == 0 {
		return models.ActivityInactive
	}
	switch score := Score(members, totalEvents); {
	case score > 100:
		return models.ActivityVeryHigh
	case score > 50:
		return models.ActivityHigh
	case score > 10:
		return models.ActivityMedium
	default:
		return models.ActivityLow
	}
}

func universityKey(code, primary string) string {
	if strings.TrimSpace(code) == "" {
		return primary
	}
	return code
}

func newStats(members int) *models.ClubStats {
	return &models.ClubStats{Members: members, CurrentEvents: []string{}}
}

// addEvent counts e into s.
func addEvent(s *models.ClubStats, e models.Event) {
	s.TotalEvents++
	switch e.Status {
	case models.EventStatusUpcoming:
		if len(s.CurrentEvents) < CurrentEventsShown {
			s.CurrentEvents = append(s.CurrentEvents, e.Title.Get(models.LangEN))
		}
	case models.EventStatusPast, models.EventStatusCompleted:
		s.PastEventsCount++
	}
}

func finish(s *models.ClubStats) {
	s.Activity = Tier(s.Members, s.TotalEvents)
}

// Aggregate builds the summary of every university that has members or
// events. memberCounts is keyed by university with blanks already folded
// into primary; events are walked once in the given order.
func Aggregate(memberCounts map[string]int, events []models.Event, primary string) map[string]models.ClubStats {
	acc := make(map[string]*models.ClubStats, len(memberCounts))
	for code, n := range memberCounts {
		key := universityKey(code, primary)
		if s, ok := acc[key]; ok {
			s.Members += n
			continue
		}
		acc[key] = newStats(n)
	}
	for _, e := range events {
		key := universityKey(e.University, primary)
		s, ok := acc[key]
		if !ok {
			s = newStats(0)
			acc[key] = s
		}
		addEvent(s, e)
	}

	out := make(map[string]models.ClubStats, len(acc))
	for code, s := range acc {
		finish(s)
		out[code] = *s
	}
	return out
}

// Summarize computes one university's summary from its pre-filtered members
// count and events, using the same rules as Aggregate.
func Summarize(members int, events []models.Event) models.ClubStats {
	s := newStats(members)
	for _, e := range events {
		addEvent(s, e)
	}
	finish(s)
	return *s
}

// NextEvent returns the earliest upcoming event dated at or after now.
func NextEvent(events []models.Event, now time.Time) *models.Event {
	var next *models.Event
	for i := range events {
		e := &events[i]
		if e.Status != models.EventStatusUpcoming || e.Date.Before(now) {
			continue
		}
		if next == nil || e.Date.Before(next.Date) {
			next = e
		}
	}
	return next
}
