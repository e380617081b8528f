package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Backend-UniClub/src/config"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services"
	"Backend-UniClub/src/services/stats"
	"Backend-UniClub/src/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(users *testutil.UserRepo, events *testutil.EventRepo) *Service {
	return NewService(Deps{
		Users:  users,
		Events: events,
		Site:   config.Default().Site,
		Now:    func() time.Time { return now },
	})
}

func TestDashboardCreatesMissingUser(t *testing.T) {
	users := testutil.NewUserRepo()
	svc := newService(users, testutil.NewEventRepo())

	d, err := svc.Dashboard(context.Background(), models.Identity{ClerkID: "user_new", Email: "new@num.edu.mn"})
	require.NoError(t, err)
	assert.Equal(t, "user_new", d.Profile.ClerkID)
	assert.Equal(t, "NUM", d.Profile.University)
	assert.Equal(t, models.RoleMember, d.Profile.Role)
	assert.Equal(t, 1, d.Stats.Level)
	assert.Equal(t, 100, d.Stats.PointsToNextLevel)
	assert.Empty(t, d.RegisteredEvents)
	assert.Len(t, users.Users, 1)

	// a second load reuses the record
	_, err = svc.Dashboard(context.Background(), models.Identity{ClerkID: "user_new"})
	require.NoError(t, err)
	assert.Len(t, users.Users, 1)
}

func TestDashboardContents(t *testing.T) {
	u := models.User{
		ID:                  primitive.NewObjectID(),
		ClerkID:             "user_1",
		Points:              230,
		EventsAttendedCount: 2,
		Badges:              []string{"early-bird"},
		ActivityHistory: []models.ActivityEntry{
			{Title: "old", Date: now.AddDate(0, -2, 0)},
			{Title: "new", Date: now.AddDate(0, 0, -1)},
		},
	}
	joined := models.Event{ID: primitive.NewObjectID(), Attendees: []primitive.ObjectID{u.ID}}
	other := models.Event{ID: primitive.NewObjectID()}
	svc := newService(testutil.NewUserRepo(u), testutil.NewEventRepo(joined, other))

	d, err := svc.Dashboard(context.Background(), models.Identity{ClerkID: "user_1"})
	require.NoError(t, err)
	assert.Equal(t, 3, d.Stats.Level)
	assert.Equal(t, 70, d.Stats.PointsToNextLevel)
	assert.Equal(t, 1, d.Stats.Badges)
	assert.Equal(t, "new", d.Activity[0].Title)
	require.Len(t, d.RegisteredEvents, 1)
	assert.Equal(t, joined.ID, d.RegisteredEvents[0].ID)
}

func TestSync(t *testing.T) {
	users := testutil.NewUserRepo(models.User{ClerkID: "other", StudentID: "B123"})
	svc := newService(users, testutil.NewEventRepo())
	ctx := context.Background()
	id := models.Identity{ClerkID: "user_1", Email: "a@must.edu.mn"}

	u, err := svc.Sync(ctx, id, &models.SyncUserRequest{FullName: " Bat ", StudentID: "B999", University: "must"})
	require.NoError(t, err)
	assert.Equal(t, "Bat", u.FullName)
	assert.Equal(t, "MUST", u.University)
	assert.Equal(t, "a@must.edu.mn", u.Email)

	u, err = svc.Sync(ctx, id, &models.SyncUserRequest{FullName: "Bat", StudentID: "B999"})
	require.NoError(t, err)
	assert.Equal(t, "NUM", u.University)

	_, err = svc.Sync(ctx, id, &models.SyncUserRequest{FullName: "Bat", StudentID: "B999", University: "MIT"})
	assert.ErrorIs(t, err, services.ErrUnknownUniversity)

	_, err = svc.Sync(ctx, id, &models.SyncUserRequest{FullName: "Bat", StudentID: "B123"})
	assert.ErrorIs(t, err, services.ErrDuplicate)
}

func TestBadgesAndRoles(t *testing.T) {
	u := models.User{ID: primitive.NewObjectID(), Role: models.RoleMember}
	users := testutil.NewUserRepo(u)
	svc := newService(users, testutil.NewEventRepo())
	ctx := context.Background()

	_, err := svc.AddBadge(ctx, u.ID.Hex(), "volunteer")
	require.NoError(t, err)
	got, err := svc.AddBadge(ctx, u.ID.Hex(), "volunteer")
	require.NoError(t, err)
	assert.Equal(t, []string{"volunteer"}, got.Badges)

	got, err = svc.SetRole(ctx, u.ID.Hex(), models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)

	_, err = svc.SetRole(ctx, primitive.NewObjectID().Hex(), models.RoleAdmin)
	assert.ErrorIs(t, err, services.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, u.ID.Hex()))
	assert.Empty(t, users.Users)
}

func TestOverview(t *testing.T) {
	users := testutil.NewUserRepo(
		models.User{Role: models.RoleAdmin, Points: 10, University: "MUST"},
		models.User{Points: 50},
		models.User{Points: 30, University: "NUM"},
	)
	events := testutil.NewEventRepo(
		models.Event{Status: models.EventStatusUpcoming, Date: now.Add(time.Hour)},
		models.Event{Status: models.EventStatusUpcoming, Date: now.Add(-time.Hour)},
		models.Event{Status: models.EventStatusPast, Date: now.Add(-48 * time.Hour)},
	)
	svc := newService(users, events)

	o, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, o.TotalEvents)
	assert.Equal(t, 2, o.UpcomingEventsCount)
	assert.Len(t, o.UpcomingEvents, 1)
	assert.Equal(t, 3, o.TotalUsers)
	assert.Equal(t, 1, o.Admins)
	assert.Equal(t, 90, o.TotalPoints)
	assert.Equal(t, map[string]int{"NUM": 2, "MUST": 1}, o.MembersByUniversity)
	assert.Equal(t, 50, o.TopMembers[0].Points)

	users.Fail = true
	_, err = svc.Overview(context.Background())
	assert.Error(t, err)
}

func TestNewMemberRefreshesClubStats(t *testing.T) {
	var seeded []models.User
	for i := 0; i < 10; i++ {
		seeded = append(seeded, models.User{ClerkID: fmt.Sprintf("member_%d", i), University: "NUM"})
	}
	users := testutil.NewUserRepo(seeded...)
	events := testutil.NewEventRepo()
	site := config.Default().Site
	cache, _ := testutil.NewCache(t)
	statsSvc := stats.NewService(stats.Deps{Users: users, Events: events, Clubs: testutil.NewClubRepo(), Site: site, Cache: cache})
	svc := NewService(Deps{Users: users, Events: events, Stats: statsSvc, Site: site})
	ctx := context.Background()

	before, err := statsSvc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityLow, before["NUM"].Activity)

	_, err = svc.Dashboard(ctx, models.Identity{ClerkID: "newcomer"})
	require.NoError(t, err)

	after, err := statsSvc.All(ctx)
	require.NoError(t, err)
	single, err := statsSvc.Club(ctx, "NUM")
	require.NoError(t, err)
	assert.Equal(t, 11, after["NUM"].Members)
	assert.Equal(t, models.ActivityMedium, after["NUM"].Activity)
	assert.Equal(t, after["NUM"].Activity, single.Stats.Activity)
}

type countingStats struct{ calls int }

func (c *countingStats) Invalidate(context.Context) { c.calls++ }

func TestEnsureInvalidatesOnlyOnCreate(t *testing.T) {
	inv := &countingStats{}
	svc := NewService(Deps{Users: testutil.NewUserRepo(), Events: testutil.NewEventRepo(), Stats: inv, Site: config.Default().Site})
	ctx := context.Background()

	_, err := svc.Ensure(ctx, models.Identity{ClerkID: "user_a"})
	require.NoError(t, err)
	_, err = svc.Ensure(ctx, models.Identity{ClerkID: "user_a"})
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)
}
