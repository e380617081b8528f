package stats

import (
	"context"
	"testing"
	"time"

	"Backend-UniClub/src/config"
	"Backend-UniClub/src/metrics"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services"
	"Backend-UniClub/src/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTier(t *testing.T) {
	cases := []struct {
		name        string
		members     int
		totalEvents int
		want        string
	}{
		{"nothing at all", 0, 0, models.ActivityInactive},
		{"low", 5, 1, models.ActivityLow},
		{"score 10 is still low", 10, 0, models.ActivityLow},
		{"score 11", 11, 0, models.ActivityMedium},
		{"score 21", 21, 0, models.ActivityMedium},
		{"score 50 is medium", 0, 10, models.ActivityMedium},
		{"score 61", 11, 10, models.ActivityHigh},
		{"score 100 is high", 50, 10, models.ActivityHigh},
		{"score 101", 101, 0, models.ActivityVeryHigh},
		{"events only", 0, 3, models.ActivityMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Tier(tc.members, tc.totalEvents))
		})
	}
	assert.Equal(t, 61, Score(11, 10))
}

func event(univ, status, title string, date time.Time) models.Event {
	return models.Event{
		University: univ,
		Status:     status,
		Title:      models.Localized{En: title, Mn: title + " (mn)"},
		Date:       date,
	}
}

func TestAggregate(t *testing.T) {
	day := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		event("NUM", models.EventStatusUpcoming, "A", day),
		event("NUM", models.EventStatusUpcoming, "B", day.AddDate(0, 0, 1)),
		event("", models.EventStatusUpcoming, "C", day.AddDate(0, 0, 2)),
		event("NUM", models.EventStatusUpcoming, "D", day.AddDate(0, 0, 3)),
		event("NUM", models.EventStatusPast, "E", day.AddDate(0, 0, -3)),
		event("MUST", models.EventStatusCompleted, "F", day),
		event("MUST", models.EventStatusCancelled, "G", day),
		{University: "GMIT", Status: models.EventStatusUpcoming, Title: models.Localized{Mn: "Зөвхөн монгол"}},
	}
	out := Aggregate(map[string]int{"NUM": 3, "MNUMS": 0}, events, "NUM")

	num := out["NUM"]
	assert.Equal(t, 3, num.Members)
	assert.Equal(t, 5, num.TotalEvents)
	assert.Equal(t, 1, num.PastEventsCount)
	assert.Equal(t, []string{"A", "B", "C"}, num.CurrentEvents)
	assert.Equal(t, models.ActivityMedium, num.Activity) // 3 + 25

	must := out["MUST"]
	assert.Equal(t, 0, must.Members)
	assert.Equal(t, 2, must.TotalEvents)
	assert.Equal(t, 1, must.PastEventsCount)
	assert.Empty(t, must.CurrentEvents)

	assert.Equal(t, []string{"Зөвхөн монгол"}, out["GMIT"].CurrentEvents)
	assert.Equal(t, models.ActivityInactive, out["MNUMS"].Activity)
	assert.NotContains(t, out, "UFE")
}

func TestAggregateTwoMembersNoEvents(t *testing.T) {
	out := Aggregate(map[string]int{"NUM": 2}, nil, "NUM")
	assert.Equal(t, 2, out["NUM"].Members)
	assert.Equal(t, 0, out["NUM"].TotalEvents)
	assert.Equal(t, models.ActivityLow, out["NUM"].Activity)
}

func TestNextEvent(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		event("NUM", models.EventStatusUpcoming, "stale", now.Add(-time.Hour)),
		event("NUM", models.EventStatusUpcoming, "later", now.Add(48*time.Hour)),
		event("NUM", models.EventStatusCancelled, "cancelled", now.Add(time.Hour)),
		event("NUM", models.EventStatusUpcoming, "soon", now.Add(24*time.Hour)),
	}
	next := NextEvent(events, now)
	require.NotNil(t, next)
	assert.Equal(t, "soon", next.Title.En)

	assert.Nil(t, NextEvent(events[:1], now))
}

func newService(users *testutil.UserRepo, events *testutil.EventRepo, clubs *testutil.ClubRepo) *Service {
	return NewService(Deps{
		Users:   users,
		Events:  events,
		Clubs:   clubs,
		Site:    config.Default().Site,
		Metrics: metrics.Nop(),
		Logger:  zap.NewNop(),
	})
}

// The bulk and single-club paths must agree for every university.
func TestBulkAndSingleAgree(t *testing.T) {
	day := time.Now().Add(24 * time.Hour)
	var users []models.User
	for i := 0; i < 12; i++ {
		users = append(users, models.User{University: "NUM"})
	}
	users = append(users, models.User{University: ""}, models.User{University: "MUST"})
	for i := 0; i < 60; i++ {
		users = append(users, models.User{University: "MNUMS"})
	}

	svc := newService(
		testutil.NewUserRepo(users...),
		testutil.NewEventRepo(
			event("NUM", models.EventStatusUpcoming, "a", day),
			event("", models.EventStatusPast, "b", day),
			event("MUST", models.EventStatusUpcoming, "c", day),
			event("UFE", models.EventStatusUpcoming, "d", day),
			event("MNUMS", models.EventStatusPast, "e", day),
		),
		testutil.NewClubRepo(),
	)
	ctx := context.Background()

	all, err := svc.All(ctx)
	require.NoError(t, err)

	for _, code := range config.Default().Site.Universities {
		detail, err := svc.Club(ctx, code)
		require.NoError(t, err, code)

		bulk, ok := all[code]
		if !ok {
			assert.Equal(t, models.ActivityInactive, detail.Stats.Activity, code)
			continue
		}
		assert.Equal(t, bulk.Activity, detail.Stats.Activity, code)
		assert.Equal(t, bulk.Members, detail.Stats.Members, code)
		assert.Equal(t, bulk.TotalEvents, detail.Stats.TotalEvents, code)
	}

	num, err := svc.Club(ctx, "NUM")
	require.NoError(t, err)
	assert.Equal(t, 13, num.Stats.Members)
	assert.Equal(t, 2, num.Stats.TotalEvents)
	assert.Equal(t, 23, num.Score)
	require.NotNil(t, num.NextEvent)
	assert.Equal(t, "a", num.NextEvent.Title.En)
}

func TestClubUnknownCode(t *testing.T) {
	svc := newService(testutil.NewUserRepo(), testutil.NewEventRepo(), testutil.NewClubRepo())
	_, err := svc.Club(context.Background(), "XYZ")
	assert.ErrorIs(t, err, services.ErrNotFound)

	clubs := testutil.NewClubRepo(models.Club{ClubID: "XYZ"})
	svc = newService(testutil.NewUserRepo(), testutil.NewEventRepo(), clubs)
	detail, err := svc.Club(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Equal(t, models.ActivityInactive, detail.Stats.Activity)
	assert.NotNil(t, detail.Club)
}

func TestClubCodeIsCaseInsensitive(t *testing.T) {
	users := testutil.NewUserRepo(models.User{University: "NUM"}, models.User{University: "NUM"})
	svc := newService(users, testutil.NewEventRepo(), testutil.NewClubRepo())

	detail, err := svc.Club(context.Background(), " num ")
	require.NoError(t, err)
	assert.Equal(t, "NUM", detail.ClubID)
	assert.Equal(t, 2, detail.Stats.Members)
}

func TestAllIsCachedUntilInvalidated(t *testing.T) {
	users := testutil.NewUserRepo(models.User{University: "MUST"})
	svc := newService(users, testutil.NewEventRepo(), testutil.NewClubRepo())
	cache, mr := testutil.NewCache(t)
	svc.cache = cache
	ctx := context.Background()

	first, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first["MUST"].Members)
	assert.True(t, mr.Exists(cacheKeyStats))

	_, _, err = users.Ensure(ctx, models.Identity{ClerkID: "late"}, "MUST")
	require.NoError(t, err)

	cached, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cached["MUST"].Members, "served from cache")

	svc.Invalidate(ctx)
	fresh, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh["MUST"].Members)

	single, err := svc.Club(ctx, "MUST")
	require.NoError(t, err)
	assert.Equal(t, fresh["MUST"].Activity, single.Stats.Activity)
}
