package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Backend-UniClub/src/config"
	"Backend-UniClub/src/controllers"
	"Backend-UniClub/src/middleware"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services/clubs"
	"Backend-UniClub/src/services/events"
	"Backend-UniClub/src/services/identity"
	"Backend-UniClub/src/services/news"
	"Backend-UniClub/src/services/opportunities"
	"Backend-UniClub/src/services/stats"
	"Backend-UniClub/src/services/users"
	"Backend-UniClub/src/testutil"
	"Backend-UniClub/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "router-test-secret"

type testEnv struct {
	app      *fiber.App
	events   *testutil.EventRepo
	news     *testutil.NewsRepo
	opps     *testutil.OpportunityRepo
	clubs    *testutil.ClubRepo
	users    *testutil.UserRepo
	uploader *testutil.Uploader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	site := config.Default().Site
	e := &testEnv{
		events:   testutil.NewEventRepo(),
		news:     testutil.NewNewsRepo(),
		opps:     testutil.NewOpportunityRepo(),
		clubs:    testutil.NewClubRepo(),
		users:    testutil.NewUserRepo(),
		uploader: &testutil.Uploader{},
	}

	statsService := stats.NewService(stats.Deps{Users: e.users, Events: e.events, Clubs: e.clubs, Site: site, Logger: logger})
	eventService := events.NewService(events.Deps{
		Events:     e.events,
		Users:      e.users,
		Transactor: &testutil.Transactor{},
		Uploader:   e.uploader,
		Stats:      statsService,
		Site:       site,
		Folder:     "uniclub",
		Logger:     logger,
	})
	userService := users.NewService(users.Deps{Users: e.users, Events: e.events, Stats: statsService, Site: site, Logger: logger})

	verifier, err := utils.NewTokenVerifier(config.Auth{Secret: testSecret})
	require.NoError(t, err)
	auth := middleware.NewAuth(verifier, identity.NewResolver(e.users, time.Second, logger), logger)

	e.app = fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler(logger)})
	InitRoutes(e.app, Handlers{
		Events:        controllers.NewEventController(eventService, logger),
		News:          controllers.NewNewsController(news.NewService(news.Deps{News: e.news, Uploader: e.uploader, Logger: logger}), logger),
		Opportunities: controllers.NewOpportunityController(opportunities.NewService(opportunities.Deps{Opportunities: e.opps, Uploader: e.uploader, Logger: logger}), logger),
		Clubs:         controllers.NewClubController(clubs.NewService(clubs.Deps{Clubs: e.clubs, Uploader: e.uploader, Site: site, Logger: logger}), statsService, logger),
		Users:         controllers.NewUserController(userService, logger),
		Admin:         controllers.NewAdminController(userService, logger),
	}, auth)
	return e
}

func token(t *testing.T, clerkID, role string) string {
	t.Helper()
	tok, err := utils.GenerateSessionToken(testSecret, models.Identity{ClerkID: clerkID, Email: clerkID + "@num.edu.mn", Role: role}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, req *http.Request, tok string) (int, []byte) {
	t.Helper()
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, image string) *http.Request {
	body, contentType := testutil.MultipartBody(t, fields, image)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", contentType)
	return req
}

func jsonRequest(t *testing.T, method, target string, v interface{}) *http.Request {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func errorOf(t *testing.T, body []byte) string {
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error
}

func eventFields() map[string]string {
	return map[string]string{
		"title_en": "Tree planting",
		"title_mn": "Мод тарих",
		"date":     "2030-05-01",
		"category": "campaign",
	}
}

func TestAdminMutationsRequireAdmin(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, multipartRequest(t, http.MethodPost, "/api/admin/events", eventFields(), "cover.png"), "")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Forbidden", errorOf(t, body))

	status, _ = e.do(t, multipartRequest(t, http.MethodPost, "/api/admin/events", eventFields(), "cover.png"), token(t, "user_member", ""))
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = e.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/news?id="+primitive.NewObjectID().Hex(), nil), token(t, "user_member", ""))
	assert.Equal(t, fiber.StatusForbidden, status)

	assert.Zero(t, e.uploader.Count())
	assert.Empty(t, e.events.Events)
}

func TestAdminRoleFromDatabase(t *testing.T) {
	e := newTestEnv(t)
	e.users.Users[primitive.NewObjectID()] = models.User{ClerkID: "user_admin", Role: models.RoleAdmin}

	status, _ := e.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), token(t, "user_admin", ""))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestCreateEvent(t *testing.T) {
	e := newTestEnv(t)
	admin := token(t, "user_admin", models.RoleAdmin)

	t.Run("missing image", func(t *testing.T) {
		status, body := e.do(t, multipartRequest(t, http.MethodPost, "/api/admin/events", eventFields(), ""), admin)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Missing required fields", errorOf(t, body))
		assert.Empty(t, e.events.Events)
	})

	t.Run("unknown field", func(t *testing.T) {
		fields := eventFields()
		fields["editingEventId"] = "x"
		status, body := e.do(t, multipartRequest(t, http.MethodPost, "/api/admin/events", fields, "cover.png"), admin)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, errorOf(t, body), "editingEventId")
		assert.Empty(t, e.events.Events)
	})

	t.Run("missing title", func(t *testing.T) {
		fields := eventFields()
		delete(fields, "title_en")
		delete(fields, "title_mn")
		status, _ := e.do(t, multipartRequest(t, http.MethodPost, "/api/admin/events", fields, "cover.png"), admin)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("created", func(t *testing.T) {
		status, body := e.do(t, multipartRequest(t, http.MethodPost, "/api/admin/events", eventFields(), "cover.png"), admin)
		require.Equal(t, fiber.StatusCreated, status, string(body))

		var created models.Event
		require.NoError(t, json.Unmarshal(body, &created))
		assert.Equal(t, "Tree planting", created.Title.En)
		assert.Equal(t, "NUM", created.University)
		assert.Equal(t, models.EventStatusUpcoming, created.Status)
		assert.True(t, strings.HasPrefix(created.Image, "https://cdn.test/"))
		assert.Len(t, e.events.Events, 1)
	})
}

func TestUpdateEvent(t *testing.T) {
	e := newTestEnv(t)
	admin := token(t, "user_admin", models.RoleAdmin)
	existing := models.Event{ID: primitive.NewObjectID(), Title: models.Localized{En: "Old"}, Image: "https://cdn.test/old.png", Status: models.EventStatusUpcoming}
	e.events.Events[existing.ID] = existing

	t.Run("missing id", func(t *testing.T) {
		status, _ := e.do(t, multipartRequest(t, http.MethodPut, "/api/admin/events", eventFields(), ""), admin)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("unknown id", func(t *testing.T) {
		fields := eventFields()
		fields["id"] = primitive.NewObjectID().Hex()
		status, _ := e.do(t, multipartRequest(t, http.MethodPut, "/api/admin/events", fields, "new.png"), admin)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Zero(t, e.uploader.Count())
	})

	t.Run("keeps image", func(t *testing.T) {
		fields := eventFields()
		fields["id"] = existing.ID.Hex()
		status, body := e.do(t, multipartRequest(t, http.MethodPut, "/api/admin/events", fields, ""), admin)
		require.Equal(t, fiber.StatusOK, status, string(body))

		var updated models.Event
		require.NoError(t, json.Unmarshal(body, &updated))
		assert.Equal(t, "Tree planting", updated.Title.En)
		assert.Equal(t, existing.Image, updated.Image)
	})
}

func TestDeleteIsNoopForUnknownID(t *testing.T) {
	e := newTestEnv(t)
	admin := token(t, "user_admin", models.RoleAdmin)

	status, body := e.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/events?id="+primitive.NewObjectID().Hex(), nil), admin)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"success":true}`, string(body))

	status, _ = e.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/events", nil), admin)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = e.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/opportunities?id=nope", nil), admin)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestJoinEventTwice(t *testing.T) {
	e := newTestEnv(t)
	user := models.User{ID: primitive.NewObjectID(), ClerkID: "user_1", Role: models.RoleMember}
	e.users.Users[user.ID] = user
	event := models.Event{ID: primitive.NewObjectID(), Title: models.Localized{En: "Cleanup"}, Status: models.EventStatusUpcoming, Date: time.Now().Add(24 * time.Hour)}
	e.events.Events[event.ID] = event
	member := token(t, "user_1", "")

	status, body := e.do(t, httptest.NewRequest(http.MethodPost, "/api/events/"+event.ID.Hex(), nil), member)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.JSONEq(t, `{"success":true}`, string(body))

	status, body = e.do(t, httptest.NewRequest(http.MethodPost, "/api/events/"+event.ID.Hex(), nil), member)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Already registered", errorOf(t, body))

	assert.Equal(t, 10, e.users.Users[user.ID].Points)
	assert.Len(t, e.users.Users[user.ID].ActivityHistory, 1)
	assert.Len(t, e.events.Events[event.ID].Attendees, 1)
}

func TestJoinEventErrors(t *testing.T) {
	e := newTestEnv(t)
	event := models.Event{ID: primitive.NewObjectID()}
	e.events.Events[event.ID] = event

	status, _ := e.do(t, httptest.NewRequest(http.MethodPost, "/api/events/"+event.ID.Hex(), nil), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = e.do(t, httptest.NewRequest(http.MethodPost, "/api/events/"+event.ID.Hex(), nil), token(t, "user_unknown", ""))
	assert.Equal(t, fiber.StatusNotFound, status)

	e.users.Users[primitive.NewObjectID()] = models.User{ClerkID: "user_2"}
	status, _ = e.do(t, httptest.NewRequest(http.MethodPost, "/api/events/"+primitive.NewObjectID().Hex(), nil), token(t, "user_2", ""))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestPublicEventReads(t *testing.T) {
	e := newTestEnv(t)
	event := models.Event{ID: primitive.NewObjectID(), Title: models.Localized{En: "Hackathon"}, Category: models.EventCategoryWorkshop}
	e.events.Events[event.ID] = event

	status, body := e.do(t, httptest.NewRequest(http.MethodGet, "/api/events?lang=mn", nil), "")
	require.Equal(t, fiber.StatusOK, status)
	var views []models.EventView
	require.NoError(t, json.Unmarshal(body, &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Hackathon", views[0].Localized.Title)

	status, body = e.do(t, httptest.NewRequest(http.MethodGet, "/api/events?category=campaign", nil), "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, _ = e.do(t, httptest.NewRequest(http.MethodGet, "/api/events/"+event.ID.Hex(), nil), "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = e.do(t, httptest.NewRequest(http.MethodGet, "/api/events/"+primitive.NewObjectID().Hex(), nil), "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = e.do(t, httptest.NewRequest(http.MethodGet, "/api/news/not-an-id", nil), "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestClubStatsRoutes(t *testing.T) {
	e := newTestEnv(t)
	e.users.Users[primitive.NewObjectID()] = models.User{University: "NUM"}
	e.users.Users[primitive.NewObjectID()] = models.User{University: "NUM"}

	status, body := e.do(t, httptest.NewRequest(http.MethodGet, "/api/clubs/stats", nil), "")
	require.Equal(t, fiber.StatusOK, status)
	var all map[string]models.ClubStats
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Equal(t, 2, all["NUM"].Members)
	assert.Equal(t, 0, all["NUM"].TotalEvents)

	status, body = e.do(t, httptest.NewRequest(http.MethodGet, "/api/clubs/NUM", nil), "")
	require.Equal(t, fiber.StatusOK, status)
	var detail models.ClubDetail
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, all["NUM"].Activity, detail.Stats.Activity)

	status, _ = e.do(t, httptest.NewRequest(http.MethodGet, "/api/clubs/XYZ", nil), "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUserDashboardAndSync(t *testing.T) {
	e := newTestEnv(t)
	member := token(t, "user_new", "")

	status, _ := e.do(t, httptest.NewRequest(http.MethodGet, "/api/user/dashboard", nil), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := e.do(t, httptest.NewRequest(http.MethodGet, "/api/user/dashboard", nil), member)
	require.Equal(t, fiber.StatusOK, status, string(body))
	var d models.Dashboard
	require.NoError(t, json.Unmarshal(body, &d))
	assert.Equal(t, "user_new", d.Profile.ClerkID)
	assert.Equal(t, 1, d.Stats.Level)

	status, _ = e.do(t, jsonRequest(t, http.MethodPost, "/api/user/sync", map[string]string{"fullName": "Bat"}), member)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = e.do(t, jsonRequest(t, http.MethodPost, "/api/user/sync", models.SyncUserRequest{FullName: "Bat", StudentID: "B1", University: "MUST"}), member)
	require.Equal(t, fiber.StatusOK, status, string(body))
	var u models.User
	require.NoError(t, json.Unmarshal(body, &u))
	assert.Equal(t, "MUST", u.University)
	assert.Len(t, e.users.Users, 1)
}

func TestAdminUserManagement(t *testing.T) {
	e := newTestEnv(t)
	admin := token(t, "user_admin", models.RoleAdmin)
	target := models.User{ID: primitive.NewObjectID(), ClerkID: "user_t", Role: models.RoleMember}
	e.users.Users[target.ID] = target

	status, _ := e.do(t, jsonRequest(t, http.MethodPut, "/api/admin/users/role", models.UpdateRoleRequest{ID: target.ID.Hex(), Role: "owner"}), admin)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = e.do(t, jsonRequest(t, http.MethodPut, "/api/admin/users/role", models.UpdateRoleRequest{ID: target.ID.Hex(), Role: models.RoleAdmin}), admin)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.RoleAdmin, e.users.Users[target.ID].Role)

	for i := 0; i < 2; i++ {
		status, _ = e.do(t, jsonRequest(t, http.MethodPost, "/api/admin/users/badges", models.AssignBadgeRequest{ID: target.ID.Hex(), Badge: "volunteer"}), admin)
		assert.Equal(t, fiber.StatusOK, status)
	}
	assert.Equal(t, []string{"volunteer"}, e.users.Users[target.ID].Badges)

	status, _ = e.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil), admin)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = e.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/users?id="+target.ID.Hex(), nil), admin)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, e.users.Users)
}
